package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/youthpulse/internal/counter"
	"github.com/san-kum/youthpulse/internal/dataset"
)

const wideLayout = 120

func whole(v float64) string { return counter.Format(v, 0) }

func percent(v float64) string { return counter.Format(v, 1) + "%" }

// columns puts two panels side by side on wide terminals and stacks them
// otherwise.
func columns(width int, left, right string) string {
	if width >= wideLayout {
		return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	}
	return lipgloss.JoinVertical(lipgloss.Left, left, right)
}

func panelWidth(width int) int {
	if width >= wideLayout {
		return width/2 - 3
	}
	return width - 4
}

func lineChart(values []float64, caption string, width, height int) string {
	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(max(width-12, 10)),
		asciigraph.Precision(0),
		asciigraph.Caption(caption))
}

func dataTable(cols []table.Column, rows []table.Row, s Styles) string {
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(s.Theme.Border).
		BorderBottom(true).
		Bold(true).
		Foreground(s.Theme.Gold)
	st.Cell = st.Cell.Foreground(s.Theme.Text)
	st.Selected = lipgloss.NewStyle()
	t.SetStyles(st)
	return t.View()
}

func regionTable(regions []dataset.Region, s Styles) string {
	cols := []table.Column{
		{Title: "Region", Width: 14},
		{Title: "Youth", Width: 9},
		{Title: "Jobs", Width: 7},
		{Title: "Match", Width: 6},
		{Title: "Unemp.", Width: 6},
	}
	rows := make([]table.Row, len(regions))
	for i, r := range regions {
		rows[i] = table.Row{
			r.Name,
			whole(r.YouthRegistered),
			whole(r.JobsMatched),
			percent(dataset.MatchRate(r)),
			percent(r.UnemploymentRate),
		}
	}
	return dataTable(cols, rows, s)
}

func overviewBody(ds *dataset.Dataset, s Styles, width int) string {
	pw := panelWidth(width)
	trends := s.BoxWithTitle("Registration Trend", s.Muted.Render("no monthly data"), pw)
	if values, labels, _ := ds.Series("registrations"); len(values) > 0 {
		caption := fmt.Sprintf("monthly registrations, %s to %s", labels[0], labels[len(labels)-1])
		trends = s.BoxWithTitle("Registration Trend", lineChart(values, caption, pw-4, 8), pw)
	}

	top, _ := ds.TopRegions("youth_registered", 6)
	regions := s.BoxWithTitle("Top Regions", regionTable(top, s), pw)

	var spark strings.Builder
	for i, name := range dataset.SeriesNames() {
		v, _, _ := ds.Series(name)
		if len(v) == 0 {
			continue
		}
		if i > 0 {
			spark.WriteString("\n")
		}
		fmt.Fprintf(&spark, "%-14s %s %s", name, s.Sparkline(v, 24, "green"), s.Value.Render(whole(v[len(v)-1])))
	}
	series := s.BoxWithTitle("Last 12 Months", spark.String(), pw)

	labelsBySector := make([]string, len(ds.EmploymentBySector))
	jobs := make([]float64, len(ds.EmploymentBySector))
	for i, e := range ds.EmploymentBySector {
		labelsBySector[i] = e.Sector
		jobs[i] = e.JobCount
	}
	sectors := s.BoxWithTitle("Jobs by Sector", s.BarRows(labelsBySector, jobs, max(pw-48, 8), "gold", whole), pw)

	return lipgloss.JoinVertical(lipgloss.Left,
		columns(width, trends, regions),
		columns(width, series, sectors))
}

func employmentBody(ds *dataset.Dataset, s Styles, width int) string {
	pw := panelWidth(width)
	chart := s.Muted.Render("no monthly data")
	if matched, _, _ := ds.Series("jobs_matched"); len(matched) > 0 {
		placed, _, _ := ds.Series("placements")
		chart = asciigraph.PlotMany([][]float64{matched, placed},
			asciigraph.Height(8),
			asciigraph.Width(max(pw-16, 10)),
			asciigraph.Precision(0),
			asciigraph.Caption("jobs matched (upper) and placements"))
	}
	jobs := s.BoxWithTitle("Jobs Matched vs Placements", chart, pw)

	critical := ds.CriticalSkills(2.0)
	names := make([]string, len(critical))
	gaps := make([]float64, len(critical))
	for i, sk := range critical {
		names[i] = sk.Name
		gaps[i] = sk.GapRatio
	}
	skills := s.BoxWithTitle("Critical Skills Gaps (demand / supply)",
		s.BarRows(names, gaps, max(pw-44, 8), "red", func(v float64) string { return counter.Format(v, 2) + "x" }), pw)

	ages := make([]string, len(ds.AgeDistribution))
	totals := make([]float64, len(ds.AgeDistribution))
	for i, a := range ds.AgeDistribution {
		ages[i] = a.AgeGroup
		totals[i] = a.Male + a.Female
	}
	age := s.BoxWithTitle("Registered Youth by Age", s.BarRows(ages, totals, max(pw-22, 8), "blue", whole), pw)

	byRate, _ := ds.TopRegions("match_rate", 6)
	rates := make([]string, len(byRate))
	vals := make([]float64, len(byRate))
	for i, r := range byRate {
		rates[i] = r.Name
		vals[i] = dataset.MatchRate(r)
	}
	match := s.BoxWithTitle("Best Match Rates", s.BarRows(rates, vals, max(pw-26, 8), "green", percent), pw)

	return lipgloss.JoinVertical(lipgloss.Left,
		columns(width, jobs, skills),
		columns(width, age, match))
}

func infrastructureBody(ds *dataset.Dataset, s Styles, width int) string {
	pw := panelWidth(width)
	var funds strings.Builder
	for i, f := range ds.FundByRegion {
		if i > 0 {
			funds.WriteString("\n")
		}
		fmt.Fprintf(&funds, "%-14s %s %s", f.Region, s.ProgressBar(f.UtilizationRate/100, 20), s.Value.Render(percent(f.UtilizationRate)))
	}
	fmt.Fprintf(&funds, "\n\n%s %s", s.Label.Render("National utilization"), s.Value.Render(percent(ds.FundUtilization())))
	fund := s.BoxWithTitle("Sports Fund Utilization", funds.String(), pw)

	top, _ := ds.TopRegions("facilities", 10)
	names := make([]string, len(top))
	counts := make([]float64, len(top))
	for i, r := range top {
		names[i] = r.Name
		counts[i] = r.FacilitiesCount
	}
	facilities := s.BoxWithTitle("Facilities by Region", s.BarRows(names, counts, max(pw-24, 8), "blue", whole), pw)

	return columns(width, fund, facilities)
}

func talentBody(ds *dataset.Dataset, s Styles, width int) string {
	pw := panelWidth(width)
	tiers, counts := ds.PipelineTiers()
	pipeline := s.BoxWithTitle("Development Pipeline", s.BarRows(tiers, counts, max(pw-26, 8), "purple", whole), pw)

	cols := []table.Column{
		{Title: "Sport", Width: 13},
		{Title: "Total", Width: 8},
		{Title: "Female", Width: 7},
		{Title: "Growth", Width: 7},
	}
	rows := make([]table.Row, 0, len(ds.SportParticipation))
	growth := make([]float64, 0, len(ds.SportParticipation))
	for _, sp := range ds.SportParticipation {
		rows = append(rows, table.Row{sp.Sport, whole(sp.Total), whole(sp.Female), "+" + percent(sp.GrowthPercent)})
		growth = append(growth, sp.GrowthPercent)
	}
	sports := s.BoxWithTitle("Sport Participation",
		dataTable(cols, rows, s)+"\n"+s.Label.Render("growth ")+s.Sparkline(growth, len(growth), "green"), pw)

	top, _ := ds.TopRegions("athletes", 8)
	regions := make([]string, len(top))
	athletes := make([]float64, len(top))
	for i, r := range top {
		regions[i] = r.Name
		athletes[i] = r.AthletesTracked
	}
	tracked := s.BoxWithTitle("Athletes by Region", s.BarRows(regions, athletes, max(pw-26, 8), "gold", whole), pw)

	return lipgloss.JoinVertical(lipgloss.Left,
		columns(width, pipeline, tracked),
		sports)
}

func neetBody(ds *dataset.Dataset, s Styles, width int) string {
	pw := panelWidth(width)
	n := ds.NEET
	summary := strings.Join([]string{
		s.Label.Render("Youth not in employment, education or training ") + s.Value.Render(whole(n.TotalNEET)),
		s.Label.Render("Youth at risk of migration                     ") + s.Value.Render(whole(n.MigrationRiskYouth)),
		s.Label.Render("Mental health screenings                       ") + s.Value.Render(whole(n.MentalHealthScreened)),
		s.Label.Render("Active mentorships                             ") + s.Value.Render(whole(n.MentorshipActive)),
		s.Label.Render("District coverage ") + s.ProgressBar(n.DistrictsCovered/n.TotalDistricts, 24),
	}, "\n")
	facts := s.BoxWithTitle("Outreach", summary, pw)

	top, _ := ds.TopRegions("unemployment", 8)
	names := make([]string, len(top))
	rates := make([]float64, len(top))
	for i, r := range top {
		names[i] = r.Name
		rates[i] = r.UnemploymentRate
	}
	unemployment := s.BoxWithTitle("Highest Youth Unemployment", s.BarRows(names, rates, max(pw-26, 8), "red", percent), pw)

	return columns(width, facts, unemployment)
}

func empowermentBody(ds *dataset.Dataset, s Styles, width int) string {
	e := ds.Empowerment
	cols := []table.Column{
		{Title: "Programme", Width: 40},
		{Title: "Enrolled", Width: 9},
		{Title: "Completed", Width: 9},
		{Title: "Employed", Width: 9},
		{Title: "Income GH₵", Width: 10},
	}
	rows := make([]table.Row, len(ds.Programmes))
	for i, p := range ds.Programmes {
		rows[i] = table.Row{p.Name, whole(p.Enrolled), percent(p.CompletionRate), percent(p.EmploymentRate), whole(p.AvgIncomeAfterGHS)}
	}
	programmes := s.BoxWithTitle("Programmes", dataTable(cols, rows, s), width-4)

	targets := strings.Join([]string{
		fmt.Sprintf("%-16s %s %s / %s", "Digital skills", s.ProgressBar(e.DigitalSkillsTrained/e.DigitalTarget, 24), whole(e.DigitalSkillsTrained), whole(e.DigitalTarget)),
		fmt.Sprintf("%-16s %s %s / %s", "Youth centres", s.ProgressBar(e.YouthCentresOperational/e.YouthCentresTarget, 24), whole(e.YouthCentresOperational), whole(e.YouthCentresTarget)),
		fmt.Sprintf("%-16s %s", "Entrepreneurs", s.Value.Render(whole(e.EntrepreneursSupported))),
		fmt.Sprintf("%-16s %s", "Funds disbursed", s.Value.Render("GH₵"+whole(e.FundingDisbursedGHS))),
		fmt.Sprintf("%-16s %s", "Mentoring pairs", s.Value.Render(whole(e.MentoringPairs))),
	}, "\n")
	progress := s.BoxWithTitle("Targets", targets, width-4)

	return lipgloss.JoinVertical(lipgloss.Left, programmes, progress)
}
