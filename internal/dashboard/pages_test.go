package dashboard_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/youthpulse/internal/dashboard"
	"github.com/san-kum/youthpulse/internal/dataset"
)

var _ = Describe("Registry", func() {
	var (
		ds  *dataset.Dataset
		reg *dashboard.Registry
	)

	BeforeEach(func() {
		ds = dataset.MustLoad()
		reg = dashboard.NewRegistry(ds)
	})

	It("lists the pages in navigation order", func() {
		Expect(reg.Names()).To(Equal([]string{
			"overview", "employment", "infrastructure", "talent", "neet", "empowerment", "ask",
		}))
		Expect(reg.Index("talent")).To(Equal(3))
		Expect(reg.Index("nope")).To(Equal(-1))
	})

	It("wraps unknown page names", func() {
		_, err := reg.Get("weather")
		Expect(err).To(MatchError(dashboard.ErrUnknownPage))
		Expect(err.Error()).To(ContainSubstring("weather"))
	})

	It("takes the headline figures from the dataset", func() {
		p, err := reg.Get("talent")
		Expect(err).NotTo(HaveOccurred())
		var national float64
		for _, k := range p.KPIs {
			if k.Title == "National+ Athletes" {
				national = k.Value
			}
		}
		Expect(national).To(Equal(ds.NationalPlusAthletes()))
	})

	DescribeTable("renders every page body",
		func(name string, width int, want string) {
			p, err := reg.Get(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.KPIs).NotTo(BeEmpty())
			body := p.Body(ds, dashboard.NewStyles(dashboard.ThemeKente), width)
			Expect(body).To(ContainSubstring(want))
		},
		Entry("overview narrow", "overview", 80, "Jobs by Sector"),
		Entry("overview wide", "overview", 160, "Greater Accra"),
		Entry("employment", "employment", 120, "Agricultural Technology"),
		Entry("infrastructure", "infrastructure", 100, "National utilization"),
		Entry("talent", "talent", 140, "international"),
		Entry("neet", "neet", 90, "North East"),
		Entry("empowerment", "empowerment", 140, "1 Million Coders Initiative"),
	)

	It("copes with a dataset without monthly trends", func() {
		sparse, err := dataset.Parse([]byte("regions:\n  - {code: GA, name: Greater Accra, youth_registered: 10, jobs_matched: 5}\n"))
		Expect(err).NotTo(HaveOccurred())
		reg := dashboard.NewRegistry(sparse)
		for _, name := range reg.Names() {
			p, _ := reg.Get(name)
			if p.Body == nil {
				continue
			}
			Expect(func() { p.Body(sparse, dashboard.NewStyles(dashboard.ThemeMono), 100) }).NotTo(Panic())
		}
	})
})

var _ = It("renders pages whose figures are negative", func() {
	ds, err := dataset.Parse([]byte(`regions:
  - {code: GA, name: Greater Accra, youth_registered: 100, jobs_matched: 40, unemployment_rate: 30, facilities_count: 5, athletes_tracked: 9}
  - {code: NR, name: Northern, youth_registered: 50, jobs_matched: -10, unemployment_rate: -4, facilities_count: -2, athletes_tracked: -1}
employment_by_sector:
  - {sector: Agriculture, job_count: 12}
  - {sector: Mining, job_count: -3}
skills_demand:
  - {name: Welding, gap_ratio: 2.5}
  - {name: Plumbing, gap_ratio: -2.1}
`))
	Expect(err).NotTo(HaveOccurred())
	reg := dashboard.NewRegistry(ds)
	for _, name := range reg.Names() {
		p, _ := reg.Get(name)
		if p.Body == nil {
			continue
		}
		Expect(func() { p.Body(ds, dashboard.NewStyles(dashboard.ThemeKente), 120) }).NotTo(Panic(), name)
	}
})

var _ = Describe("Themes", func() {
	It("falls back to kente", func() {
		Expect(dashboard.GetTheme("volta").Name).To(Equal("volta"))
		Expect(dashboard.GetTheme("neon").Name).To(Equal("kente"))
	})

	It("cycles through every theme", func() {
		name := dashboard.ThemeNames()[0]
		seen := map[string]bool{}
		for range dashboard.ThemeNames() {
			seen[name] = true
			name = dashboard.NextTheme(name).Name
		}
		Expect(seen).To(HaveLen(len(dashboard.Themes)))
		Expect(name).To(Equal("kente"))
	})

	It("resolves accent names", func() {
		t := dashboard.ThemeKente
		Expect(t.Color("red")).To(Equal(t.Red))
		Expect(t.Color("teal")).To(Equal(t.Gold))
	})
})

var _ = Describe("Styles", func() {
	s := dashboard.NewStyles(dashboard.ThemeMono)

	It("clamps progress bars", func() {
		Expect(s.ProgressBar(0.5, 10)).To(ContainSubstring("█████░░░░░"))
		Expect(s.ProgressBar(2, 4)).To(ContainSubstring("████"))
		Expect(s.ProgressBar(-1, 4)).To(ContainSubstring("░░░░"))
	})

	It("marks the direction of a trend", func() {
		Expect(s.Trend(12.4)).To(ContainSubstring("▲ +12.4%"))
		Expect(s.Trend(-3)).To(ContainSubstring("▼ -3.0%"))
	})

	It("scales bar rows to the largest value", func() {
		out := s.BarRows([]string{"a", "bb"}, []float64{5, 10}, 10, "gold", func(v float64) string { return "x" })
		lines := strings.Split(out, "\n")
		Expect(lines).To(HaveLen(2))
		Expect(strings.Count(lines[0], "█")).To(Equal(5))
		Expect(strings.Count(lines[1], "█")).To(Equal(10))
	})

	It("draws no bar for a negative value", func() {
		var out string
		Expect(func() {
			out = s.BarRows([]string{"a", "b"}, []float64{10, -2}, 20, "red", func(v float64) string { return "x" })
		}).NotTo(Panic())
		lines := strings.Split(out, "\n")
		Expect(lines).To(HaveLen(2))
		Expect(strings.Count(lines[0], "█")).To(Equal(20))
		Expect(strings.Count(lines[1], "█")).To(BeZero())
	})

	It("draws a flat sparkline for constant values", func() {
		Expect(s.Sparkline([]float64{3, 3, 3}, 3, "blue")).To(ContainSubstring("▁▁▁"))
		Expect(s.Sparkline(nil, 4, "blue")).To(Equal("────"))
	})
})
