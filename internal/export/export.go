// Package export writes the dashboard datasets out as JSON and CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/san-kum/youthpulse/internal/dataset"
)

var ErrUnknownTable = errors.New("export: unknown table")

type table struct {
	header []string
	rows   func(*dataset.Dataset) [][]string
}

var tables = map[string]table{
	"regions": {
		header: []string{"code", "name", "capital", "youth_registered", "jobs_matched", "match_rate", "skill_gap_score", "facilities", "athletes", "top_sport", "unemployment_rate"},
		rows: func(ds *dataset.Dataset) [][]string {
			out := make([][]string, 0, len(ds.Regions))
			for _, r := range ds.Regions {
				out = append(out, []string{
					r.Code, r.Name, r.Capital,
					num(r.YouthRegistered), num(r.JobsMatched), fixed(dataset.MatchRate(r), 2),
					num(r.SkillGapScore), num(r.FacilitiesCount), num(r.AthletesTracked),
					r.TopSport, num(r.UnemploymentRate),
				})
			}
			return out
		},
	},
	"trends": {
		header: []string{"month", "registrations", "jobs_matched", "placements", "training_enrollments"},
		rows: func(ds *dataset.Dataset) [][]string {
			out := make([][]string, 0, len(ds.MonthlyTrends))
			for _, m := range ds.MonthlyTrends {
				out = append(out, []string{m.Month, num(m.Registrations), num(m.JobsMatched), num(m.Placements), num(m.TrainingEnrollments)})
			}
			return out
		},
	},
	"skills": {
		header: []string{"name", "sector", "demand", "supply", "gap_ratio", "trend", "avg_salary_ghs"},
		rows: func(ds *dataset.Dataset) [][]string {
			out := make([][]string, 0, len(ds.SkillsDemand))
			for _, s := range ds.SkillsDemand {
				out = append(out, []string{s.Name, s.Sector, num(s.DemandCount), num(s.SupplyCount), num(s.GapRatio), s.Trend, num(s.AvgSalaryGHS)})
			}
			return out
		},
	},
	"sectors": {
		header: []string{"sector", "job_count", "percent_of_total"},
		rows: func(ds *dataset.Dataset) [][]string {
			out := make([][]string, 0, len(ds.EmploymentBySector))
			for _, s := range ds.EmploymentBySector {
				out = append(out, []string{s.Sector, num(s.JobCount), num(s.PercentOfTotal)})
			}
			return out
		},
	},
	"programmes": {
		header: []string{"name", "enrolled", "completed", "employed_after", "completion_rate", "employment_rate", "avg_income_after_ghs"},
		rows: func(ds *dataset.Dataset) [][]string {
			out := make([][]string, 0, len(ds.Programmes))
			for _, p := range ds.Programmes {
				out = append(out, []string{p.Name, num(p.Enrolled), num(p.Completed), num(p.EmployedAfter), num(p.CompletionRate), num(p.EmploymentRate), num(p.AvgIncomeAfterGHS)})
			}
			return out
		},
	},
	"funds": {
		header: []string{"region", "allocated", "disbursed", "utilization_rate"},
		rows: func(ds *dataset.Dataset) [][]string {
			out := make([][]string, 0, len(ds.FundByRegion))
			for _, f := range ds.FundByRegion {
				out = append(out, []string{f.Region, num(f.Allocated), num(f.Disbursed), num(f.UtilizationRate)})
			}
			return out
		},
	},
}

// Tables lists the table names accepted by WriteCSV.
func Tables() []string {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func WriteJSON(w io.Writer, ds *dataset.Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ds)
}

func WriteCSV(w io.Writer, ds *dataset.Dataset, name string) error {
	t, ok := tables[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(t.header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.rows(ds)); err != nil {
		return err
	}
	return cw.Error()
}

// Save writes dataset.json and one CSV per table into dir and returns the
// paths written.
func Save(dir string, ds *dataset.Dataset) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	var written []string
	jsonPath := filepath.Join(dir, "dataset.json")
	if err := writeFile(jsonPath, func(w io.Writer) error { return WriteJSON(w, ds) }); err != nil {
		return written, err
	}
	written = append(written, jsonPath)

	for _, name := range Tables() {
		path := filepath.Join(dir, name+".csv")
		if err := writeFile(path, func(w io.Writer) error { return WriteCSV(w, ds, name) }); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
