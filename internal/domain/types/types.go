// Package types contains the read shapes shared across the application.
package types

// GenomeNode is one skill in the clustered genome view.
type GenomeNode struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Cluster    int     `json:"cluster"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Popularity float64 `json:"popularity"`
	Growth     float64 `json:"growth"`
}

// GenomeLink is one co-occurrence edge between two skills.
type GenomeLink struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// Genome bundles the clustered skill map for visualization.
type Genome struct {
	Method  string       `json:"method"`
	Nodes   []GenomeNode `json:"nodes"`
	Links   []GenomeLink `json:"links"`
	Quality float64      `json:"quality"`
}

// TimelinePoint is the total popularity observed in one year.
type TimelinePoint struct {
	Year  int     `json:"year"`
	Total float64 `json:"total"`
}

// Forecast is one skill's forward projection.
type Forecast struct {
	Skill      string          `json:"skill"`
	Trend      string          `json:"trend"`
	GrowthRate float64         `json:"growth_rate"`
	Points     []ForecastPoint `json:"points"`
	Confidence string          `json:"confidence"`
	Error      string          `json:"error,omitempty"`
}

// ForecastPoint is a projected popularity value for a future year.
type ForecastPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Evolution bundles the temporal view of the skill landscape.
type Evolution struct {
	Timeline       []TimelinePoint    `json:"timeline"`
	CategoryTrends map[string]float64 `json:"category_trends"`
	Forecasts      []Forecast         `json:"forecasts"`
}

// SkillDetail is the per-skill drill-down.
type SkillDetail struct {
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	GrowthRate    float64         `json:"growth_rate"`
	Trend         string          `json:"trend"`
	Forecast      []ForecastPoint `json:"forecast"`
	Confidence    string          `json:"confidence"`
	MutationRisk  float64         `json:"mutation_risk"`
	SimilarSkills []SimilarSkill  `json:"similar_skills"`
}

// SimilarSkill pairs a related skill with its co-occurrence similarity.
type SimilarSkill struct {
	Name       string  `json:"name"`
	Similarity float64 `json:"similarity"`
}

// RankedSkill pairs a skill with a centrality-style score.
type RankedSkill struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Network bundles the relationship-graph analysis.
type Network struct {
	HubSkills             []RankedSkill       `json:"hub_skills"`
	BridgeSkills          []RankedSkill       `json:"bridge_skills"`
	Communities           map[string][]string `json:"communities"`
	Density               float64             `json:"density"`
	ClusteringCoefficient float64             `json:"clustering_coefficient"`
}

// MutationRisk is one skill's obsolescence score.
type MutationRisk struct {
	Skill string  `json:"skill"`
	Risk  float64 `json:"risk"`
	Trend string  `json:"trend"`
}

// Readiness is the workforce readiness score and its components.
type Readiness struct {
	Score              float64 `json:"score"`
	Grade              string  `json:"grade"`
	FutureCoverage     float64 `json:"future_coverage"`
	RedundancyCoverage float64 `json:"redundancy_coverage"`
	AdaptationVelocity float64 `json:"adaptation_velocity"`
}

// ROISimulation is the outcome of a reskilling what-if.
type ROISimulation struct {
	FromSkill      string  `json:"from_skill"`
	ToSkill        string  `json:"to_skill"`
	EmployeeCount  int     `json:"employee_count"`
	Investment     float64 `json:"investment"`
	Value          float64 `json:"value"`
	ROIPercent     float64 `json:"roi_pct"`
	PaybackMonths  float64 `json:"payback_months"`
	Recommendation string  `json:"recommendation"`
}

// MentorshipMatch pairs an at-risk skill with its best alternative.
type MentorshipMatch struct {
	AtRiskSkill string  `json:"at_risk_skill"`
	Alternative string  `json:"alternative"`
	Risk        float64 `json:"risk"`
	Mentees     int     `json:"mentees"`
	Mentors     int     `json:"mentors"`
	Urgency     string  `json:"urgency"`
}

// RedundancyAlert flags a skill held by too few employees.
type RedundancyAlert struct {
	Skill       string  `json:"skill"`
	Holders     int     `json:"holders"`
	Criticality float64 `json:"criticality"`
	RiskLevel   string  `json:"risk_level"`
}

// TaxonomyEvolution compares the skill taxonomy between two years.
type TaxonomyEvolution struct {
	YearA          int      `json:"year_a"`
	YearB          int      `json:"year_b"`
	Emergent       []string `json:"emergent"`
	Obsolete       []string `json:"obsolete"`
	MajorGrowth    []string `json:"major_growth"`
	MajorDecline   []string `json:"major_decline"`
	StabilityIndex float64  `json:"stability_index"`
}

// ForecastAccuracy grades a retrospective forecast against actuals.
type ForecastAccuracy struct {
	Skill string  `json:"skill"`
	Year  int     `json:"year"`
	MAPE  float64 `json:"mape"`
	Grade string  `json:"grade"`
}

// Insights is the full strategic bundle.
type Insights struct {
	MutationRisks     []MutationRisk     `json:"mutation_risks"`
	Readiness         Readiness          `json:"readiness"`
	MentorshipMatches []MentorshipMatch  `json:"mentorship_matches"`
	RedundancyAlerts  []RedundancyAlert  `json:"redundancy_alerts"`
	TaxonomyEvolution *TaxonomyEvolution `json:"taxonomy_evolution,omitempty"`
	ForecastAccuracy  []ForecastAccuracy `json:"forecast_accuracy"`
}
