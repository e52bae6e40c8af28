package dataset

import (
	"fmt"
	"sort"
	"strings"
)

var regionMetrics = map[string]func(Region) float64{
	"youth_registered": func(r Region) float64 { return r.YouthRegistered },
	"jobs_matched":     func(r Region) float64 { return r.JobsMatched },
	"skill_gap":        func(r Region) float64 { return r.SkillGapScore },
	"unemployment":     func(r Region) float64 { return r.UnemploymentRate },
	"athletes":         func(r Region) float64 { return r.AthletesTracked },
	"facilities":       func(r Region) float64 { return r.FacilitiesCount },
	"match_rate":       MatchRate,
}

var monthlySeries = map[string]func(MonthlyTrend) float64{
	"registrations": func(m MonthlyTrend) float64 { return m.Registrations },
	"jobs_matched":  func(m MonthlyTrend) float64 { return m.JobsMatched },
	"placements":    func(m MonthlyTrend) float64 { return m.Placements },
	"training":      func(m MonthlyTrend) float64 { return m.TrainingEnrollments },
}

// RegionMetrics lists the metric names accepted by TopRegions.
func RegionMetrics() []string {
	return sortedKeys(regionMetrics)
}

// SeriesNames lists the monthly series accepted by Series.
func SeriesNames() []string {
	return sortedKeys(monthlySeries)
}

// MatchRate is the share of registered youth matched to a job, in percent.
func MatchRate(r Region) float64 {
	if r.YouthRegistered == 0 {
		return 0
	}
	return 100 * r.JobsMatched / r.YouthRegistered
}

// RegionMetric returns the value of the named metric for r.
func RegionMetric(r Region, metric string) (float64, error) {
	fn, ok := regionMetrics[metric]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownMetric, metric)
	}
	return fn(r), nil
}

// TopRegions returns the n regions with the highest value of metric, ties
// broken by name. n <= 0 returns every region.
func (d *Dataset) TopRegions(metric string, n int) ([]Region, error) {
	fn, ok := regionMetrics[metric]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMetric, metric)
	}

	out := make([]Region, len(d.Regions))
	copy(out, d.Regions)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := fn(out[i]), fn(out[j])
		if a != b {
			return a > b
		}
		return out[i].Name < out[j].Name
	})

	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out, nil
}

// RegionByCode looks a region up by its two-letter code, case-insensitively.
func (d *Dataset) RegionByCode(code string) (Region, error) {
	for _, r := range d.Regions {
		if strings.EqualFold(r.Code, code) {
			return r, nil
		}
	}
	return Region{}, fmt.Errorf("%w: %s", ErrRegionNotFound, code)
}

// Series returns one monthly series together with its month labels.
func (d *Dataset) Series(name string) ([]float64, []string, error) {
	fn, ok := monthlySeries[name]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownSeries, name)
	}
	values := make([]float64, len(d.MonthlyTrends))
	labels := make([]string, len(d.MonthlyTrends))
	for i, m := range d.MonthlyTrends {
		values[i] = fn(m)
		labels[i] = m.Month
	}
	return values, labels, nil
}

// CriticalSkills returns skills whose demand-to-supply ratio is at least
// minGap, widest gap first.
func (d *Dataset) CriticalSkills(minGap float64) []SkillDemand {
	var out []SkillDemand
	for _, s := range d.SkillsDemand {
		if s.GapRatio >= minGap {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].GapRatio > out[j].GapRatio })
	return out
}

// TotalYouthRegistered sums registrations across regions.
func (d *Dataset) TotalYouthRegistered() float64 {
	total := 0.0
	for _, r := range d.Regions {
		total += r.YouthRegistered
	}
	return total
}

// PipelineTiers returns the talent pipeline as ordered (tier, count) pairs,
// grassroots first.
func (d *Dataset) PipelineTiers() ([]string, []float64) {
	p := d.TalentPipeline
	return []string{"community", "district", "regional", "national", "international"},
		[]float64{p.Community, p.District, p.Regional, p.National, p.International}
}

// NationalPlusAthletes counts athletes at national tier or above.
func (d *Dataset) NationalPlusAthletes() float64 {
	return d.TalentPipeline.National + d.TalentPipeline.International
}

// FundUtilization is the disbursed share of all regional allocations, in percent.
func (d *Dataset) FundUtilization() float64 {
	var allocated, disbursed float64
	for _, f := range d.FundByRegion {
		allocated += f.Allocated
		disbursed += f.Disbursed
	}
	if allocated == 0 {
		return 0
	}
	return 100 * disbursed / allocated
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
