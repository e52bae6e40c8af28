// Package dataset holds the static YouthPulse statistics shown by the
// dashboard, together with the small sort, filter and aggregate queries the
// pages render from them.
package dataset

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed youthpulse.yaml
var embedded []byte

type OverviewKPIs struct {
	TotalYouthRegistered      float64 `yaml:"total_youth_registered" json:"total_youth_registered"`
	RegistrationGrowth        float64 `yaml:"registration_growth" json:"registration_growth"`
	TotalJobsMatched          float64 `yaml:"total_jobs_matched" json:"total_jobs_matched"`
	JobsMatchedGrowth         float64 `yaml:"jobs_matched_growth" json:"jobs_matched_growth"`
	MatchSuccessRate          float64 `yaml:"match_success_rate" json:"match_success_rate"`
	TotalFacilities           float64 `yaml:"total_facilities" json:"total_facilities"`
	FacilitiesCritical        float64 `yaml:"facilities_critical" json:"facilities_critical"`
	FacilitiesNeedRepair      float64 `yaml:"facilities_need_repair" json:"facilities_need_repair"`
	TotalAthletes             float64 `yaml:"total_athletes" json:"total_athletes"`
	AthleteGrowth             float64 `yaml:"athlete_growth" json:"athlete_growth"`
	TalentAlertsThisMonth     float64 `yaml:"talent_alerts_this_month" json:"talent_alerts_this_month"`
	PendingPayments           float64 `yaml:"pending_payments" json:"pending_payments"`
	SportsFundBudgetMillions  float64 `yaml:"sports_fund_budget_millions" json:"sports_fund_budget_millions"`
	SportsFundUtilization     float64 `yaml:"sports_fund_utilization" json:"sports_fund_utilization"`
	AvgTimeToEmploymentDays   float64 `yaml:"avg_time_to_employment_days" json:"avg_time_to_employment_days"`
	ProgrammeCompletionRate   float64 `yaml:"programme_completion_rate" json:"programme_completion_rate"`
	ActiveTrainingEnrollments float64 `yaml:"active_training_enrollments" json:"active_training_enrollments"`
	TrainingGrowth            float64 `yaml:"training_growth" json:"training_growth"`
	SkillGapTrend             string  `yaml:"skill_gap_trend" json:"skill_gap_trend"`
}

type EmpowermentKPIs struct {
	TotalProgrammes         float64 `yaml:"total_programmes" json:"total_programmes"`
	ActiveEnrollments       float64 `yaml:"active_enrollments" json:"active_enrollments"`
	EnrollmentGrowth        float64 `yaml:"enrollment_growth" json:"enrollment_growth"`
	EntrepreneursSupported  float64 `yaml:"entrepreneurs_supported" json:"entrepreneurs_supported"`
	BusinessesFunded        float64 `yaml:"businesses_funded" json:"businesses_funded"`
	FundingDisbursedGHS     float64 `yaml:"funding_disbursed_ghs" json:"funding_disbursed_ghs"`
	DigitalSkillsTrained    float64 `yaml:"digital_skills_trained" json:"digital_skills_trained"`
	DigitalTarget           float64 `yaml:"digital_target" json:"digital_target"`
	TVETEnrolled            float64 `yaml:"tvet_enrolled" json:"tvet_enrolled"`
	TVETCompletionRate      float64 `yaml:"tvet_completion_rate" json:"tvet_completion_rate"`
	YouthCentresOperational float64 `yaml:"youth_centres_operational" json:"youth_centres_operational"`
	YouthCentresTarget      float64 `yaml:"youth_centres_target" json:"youth_centres_target"`
	MentoringPairs          float64 `yaml:"mentoring_pairs" json:"mentoring_pairs"`
}

type NEETKPIs struct {
	TotalNEET            float64 `yaml:"total_neet" json:"total_neet"`
	NEETRate             float64 `yaml:"neet_rate" json:"neet_rate"`
	NEETReduction        float64 `yaml:"neet_reduction" json:"neet_reduction"`
	YouthReached         float64 `yaml:"youth_reached" json:"youth_reached"`
	ReachedGrowth        float64 `yaml:"reached_growth" json:"reached_growth"`
	MigrationRiskYouth   float64 `yaml:"migration_risk_youth" json:"migration_risk_youth"`
	MigrationRiskPercent float64 `yaml:"migration_risk_percent" json:"migration_risk_percent"`
	CivicParticipation   float64 `yaml:"civic_participation" json:"civic_participation"`
	CivicGrowth          float64 `yaml:"civic_growth" json:"civic_growth"`
	MentalHealthScreened float64 `yaml:"mental_health_screened" json:"mental_health_screened"`
	MentorshipActive     float64 `yaml:"mentorship_active" json:"mentorship_active"`
	DistrictsCovered     float64 `yaml:"districts_covered" json:"districts_covered"`
	TotalDistricts       float64 `yaml:"total_districts" json:"total_districts"`
}

type Region struct {
	Code             string  `yaml:"code" json:"code"`
	Name             string  `yaml:"name" json:"name"`
	Capital          string  `yaml:"capital" json:"capital"`
	YouthRegistered  float64 `yaml:"youth_registered" json:"youth_registered"`
	JobsMatched      float64 `yaml:"jobs_matched" json:"jobs_matched"`
	SkillGapScore    float64 `yaml:"skill_gap_score" json:"skill_gap_score"`
	FacilitiesCount  float64 `yaml:"facilities_count" json:"facilities_count"`
	AthletesTracked  float64 `yaml:"athletes_tracked" json:"athletes_tracked"`
	TopSport         string  `yaml:"top_sport" json:"top_sport"`
	UnemploymentRate float64 `yaml:"unemployment_rate" json:"unemployment_rate"`
	YouthPopulation  float64 `yaml:"youth_population" json:"youth_population"`
}

type MonthlyTrend struct {
	Month               string  `yaml:"month" json:"month"`
	Registrations       float64 `yaml:"registrations" json:"registrations"`
	JobsMatched         float64 `yaml:"jobs_matched" json:"jobs_matched"`
	Placements          float64 `yaml:"placements" json:"placements"`
	TrainingEnrollments float64 `yaml:"training_enrollments" json:"training_enrollments"`
}

type SkillDemand struct {
	Name         string  `yaml:"name" json:"name"`
	Sector       string  `yaml:"sector" json:"sector"`
	DemandCount  float64 `yaml:"demand_count" json:"demand_count"`
	SupplyCount  float64 `yaml:"supply_count" json:"supply_count"`
	GapRatio     float64 `yaml:"gap_ratio" json:"gap_ratio"`
	Trend        string  `yaml:"trend" json:"trend"`
	AvgSalaryGHS float64 `yaml:"avg_salary_ghs" json:"avg_salary_ghs"`
}

type SectorEmployment struct {
	Sector         string  `yaml:"sector" json:"sector"`
	JobCount       float64 `yaml:"job_count" json:"job_count"`
	PercentOfTotal float64 `yaml:"percent_of_total" json:"percent_of_total"`
}

type AgeGroup struct {
	AgeGroup string  `yaml:"age_group" json:"age_group"`
	Male     float64 `yaml:"male" json:"male"`
	Female   float64 `yaml:"female" json:"female"`
}

type SportParticipation struct {
	Sport         string  `yaml:"sport" json:"sport"`
	Total         float64 `yaml:"total" json:"total"`
	Male          float64 `yaml:"male" json:"male"`
	Female        float64 `yaml:"female" json:"female"`
	GrowthPercent float64 `yaml:"growth_percent" json:"growth_percent"`
}

// TalentPipeline counts athletes per development tier.
type TalentPipeline struct {
	Community     float64 `yaml:"community" json:"community"`
	District      float64 `yaml:"district" json:"district"`
	Regional      float64 `yaml:"regional" json:"regional"`
	National      float64 `yaml:"national" json:"national"`
	International float64 `yaml:"international" json:"international"`
}

type Programme struct {
	Name              string  `yaml:"name" json:"name"`
	Enrolled          float64 `yaml:"enrolled" json:"enrolled"`
	Completed         float64 `yaml:"completed" json:"completed"`
	EmployedAfter     float64 `yaml:"employed_after" json:"employed_after"`
	CompletionRate    float64 `yaml:"completion_rate" json:"completion_rate"`
	EmploymentRate    float64 `yaml:"employment_rate" json:"employment_rate"`
	AvgIncomeAfterGHS float64 `yaml:"avg_income_after_ghs" json:"avg_income_after_ghs"`
}

type RegionFund struct {
	Region          string  `yaml:"region" json:"region"`
	Allocated       float64 `yaml:"allocated" json:"allocated"`
	Disbursed       float64 `yaml:"disbursed" json:"disbursed"`
	UtilizationRate float64 `yaml:"utilization_rate" json:"utilization_rate"`
}

type Dataset struct {
	Overview           OverviewKPIs         `yaml:"overview" json:"overview"`
	Empowerment        EmpowermentKPIs      `yaml:"empowerment" json:"empowerment"`
	NEET               NEETKPIs             `yaml:"neet" json:"neet"`
	Regions            []Region             `yaml:"regions" json:"regions"`
	MonthlyTrends      []MonthlyTrend       `yaml:"monthly_trends" json:"monthly_trends"`
	SkillsDemand       []SkillDemand        `yaml:"skills_demand" json:"skills_demand"`
	EmploymentBySector []SectorEmployment   `yaml:"employment_by_sector" json:"employment_by_sector"`
	AgeDistribution    []AgeGroup           `yaml:"age_distribution" json:"age_distribution"`
	SportParticipation []SportParticipation `yaml:"sport_participation" json:"sport_participation"`
	TalentPipeline     TalentPipeline       `yaml:"talent_pipeline" json:"talent_pipeline"`
	Programmes         []Programme          `yaml:"programmes" json:"programmes"`
	FundByRegion       []RegionFund         `yaml:"fund_by_region" json:"fund_by_region"`
}

// Load parses the datasets compiled into the binary.
func Load() (*Dataset, error) {
	return Parse(embedded)
}

// LoadFile parses a dataset file with the same layout as the embedded one.
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	if len(ds.Regions) == 0 {
		return nil, ErrEmpty
	}
	return &ds, nil
}

// MustLoad is Load for callers that cannot recover from a broken build.
func MustLoad() *Dataset {
	ds, err := Load()
	if err != nil {
		panic(err)
	}
	return ds
}
