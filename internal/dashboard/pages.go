package dashboard

import (
	"errors"
	"fmt"

	"github.com/san-kum/youthpulse/internal/dataset"
)

var ErrUnknownPage = errors.New("unknown page")

// Page is one screen of the dashboard. Body renders everything below the
// KPI row; the Ask AI page has no KPIs and no Body, the model draws it.
type Page struct {
	Name  string
	Title string
	KPIs  []KPI
	Body  func(ds *dataset.Dataset, s Styles, width int) string
}

type Registry struct {
	pages map[string]Page
	order []string
}

func NewRegistry(ds *dataset.Dataset) *Registry {
	r := &Registry{pages: make(map[string]Page)}
	o, e, n := ds.Overview, ds.Empowerment, ds.NEET

	r.add(Page{
		Name:  "overview",
		Title: "National Overview",
		KPIs: []KPI{
			kpi("Youth Registered", o.TotalYouthRegistered, "gold", trend(o.RegistrationGrowth), note("vs last quarter")),
			kpi("Jobs Matched", o.TotalJobsMatched, "green", trend(o.JobsMatchedGrowth), note("vs last quarter")),
			kpi("Facilities Monitored", o.TotalFacilities, "blue", note(fmt.Sprintf("%.0f critical", o.FacilitiesCritical))),
			kpi("Athletes Tracked", o.TotalAthletes, "purple", trend(o.AthleteGrowth)),
		},
		Body: overviewBody,
	})
	r.add(Page{
		Name:  "employment",
		Title: "Employment & Skills",
		KPIs: []KPI{
			kpi("Youth Registered", o.TotalYouthRegistered, "gold", trend(o.RegistrationGrowth)),
			kpi("Jobs Matched", o.TotalJobsMatched, "green", trend(o.JobsMatchedGrowth)),
			kpi("Match Success Rate", o.MatchSuccessRate, "blue", decimals(1), suffix("%")),
			kpi("Avg Time to Employment", o.AvgTimeToEmploymentDays, "purple", suffix(" days")),
			kpi("Active Training", o.ActiveTrainingEnrollments, "green", trend(o.TrainingGrowth)),
		},
		Body: employmentBody,
	})
	r.add(Page{
		Name:  "infrastructure",
		Title: "Sports Infrastructure",
		KPIs: []KPI{
			kpi("Facilities Monitored", o.TotalFacilities, "blue"),
			kpi("Critical Condition", o.FacilitiesCritical, "red", note(fmt.Sprintf("%.0f need repair", o.FacilitiesNeedRepair))),
			kpi("Sports Fund Budget", o.SportsFundBudgetMillions, "gold", prefix("GH₵"), suffix("M")),
			kpi("Fund Utilization", o.SportsFundUtilization, "green", decimals(1), suffix("%")),
		},
		Body: infrastructureBody,
	})
	r.add(Page{
		Name:  "talent",
		Title: "Talent Pipeline",
		KPIs: []KPI{
			kpi("Athletes Tracked", o.TotalAthletes, "gold", trend(o.AthleteGrowth)),
			kpi("Talent Alerts This Month", o.TalentAlertsThisMonth, "red"),
			kpi("National+ Athletes", ds.NationalPlusAthletes(), "green"),
			kpi("Pending Payments", o.PendingPayments, "purple"),
		},
		Body: talentBody,
	})
	r.add(Page{
		Name:  "neet",
		Title: "NEET Youth",
		KPIs: []KPI{
			kpi("Youth Reached", n.YouthReached, "gold", trend(n.ReachedGrowth)),
			kpi("NEET Rate", n.NEETRate, "red", decimals(1), suffix("%"), trend(n.NEETReduction)),
			kpi("Migration Risk", n.MigrationRiskPercent, "red", suffix("%")),
			kpi("Districts Covered", n.DistrictsCovered, "green", suffix(fmt.Sprintf(" / %.0f", n.TotalDistricts))),
			kpi("Civic Participation", n.CivicParticipation, "blue", decimals(1), suffix("%"), trend(n.CivicGrowth)),
		},
		Body: neetBody,
	})
	r.add(Page{
		Name:  "empowerment",
		Title: "Youth Empowerment",
		KPIs: []KPI{
			kpi("Active Enrollments", e.ActiveEnrollments, "gold", trend(e.EnrollmentGrowth)),
			kpi("Businesses Funded", e.BusinessesFunded, "green"),
			kpi("Digital Skills Trained", e.DigitalSkillsTrained, "blue", note(fmt.Sprintf("target %.0fK", e.DigitalTarget/1000))),
			kpi("TVET Completion Rate", e.TVETCompletionRate, "purple", decimals(1), suffix("%")),
			kpi("Youth Centres", e.YouthCentresOperational, "green", suffix(fmt.Sprintf(" / %.0f", e.YouthCentresTarget))),
		},
		Body: empowermentBody,
	})
	r.add(Page{Name: "ask", Title: "Ask AI"})

	return r
}

func (r *Registry) add(p Page) {
	r.pages[p.Name] = p
	r.order = append(r.order, p.Name)
}

func (r *Registry) Get(name string) (Page, error) {
	p, ok := r.pages[name]
	if !ok {
		return Page{}, fmt.Errorf("%w: %s", ErrUnknownPage, name)
	}
	return p, nil
}

// Names lists the pages in navigation order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Index returns the navigation position of name, or -1.
func (r *Registry) Index(name string) int {
	for i, n := range r.order {
		if n == name {
			return i
		}
	}
	return -1
}
