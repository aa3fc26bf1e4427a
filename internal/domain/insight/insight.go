// Package insight computes the strategic score bundle: mutation risk,
// workforce readiness, reskilling ROI, mentorship matches, redundancy
// alerts, taxonomy evolution, and forecast accuracy.
//
// Every metric is a pure function of the engine outputs and the corpus:
// identical inputs always produce identical bundles.
package insight

import (
	"fmt"
	"math"
	"sort"

	"github.com/42Prague/skillgenome/internal/domain/model"
	"github.com/42Prague/skillgenome/internal/domain/trend"
	"github.com/42Prague/skillgenome/internal/domain/types"
)

// Default scoring configuration. The numeric weights come from product
// defaults and are configurable, not contracts.
const (
	defaultAlpha               = 0.4
	defaultBeta                = 0.3
	defaultGamma               = 0.3
	defaultRiskThreshold       = 0.6
	defaultSimilarTopK         = 5
	defaultTrainingCostPerHead = 15000.0
	defaultRedundancyThreshold = 2
	defaultCriticalityCutoff   = 0.5
	defaultTaxonomyShiftPct    = 50.0
)

// Readiness grade bands (score out of 100).
const (
	gradeExcellentEdge = 90.0
	gradeGoodEdge      = 75.0
	gradeFairEdge      = 60.0
)

// Engine computes the strategic bundle with fixed configuration.
type Engine struct {
	alpha, beta, gamma  float64
	marketSignal        map[string]float64
	riskThreshold       float64
	similarTopK         int
	trainingCostPerHead float64
	redundancyThreshold int
	criticalityCutoff   float64
	taxonomyShiftPct    float64
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithRiskWeights sets the mutation-risk blend weights.
func WithRiskWeights(alpha, beta, gamma float64) Option {
	return func(e *Engine) {
		if alpha >= 0 && beta >= 0 && gamma >= 0 {
			e.alpha, e.beta, e.gamma = alpha, beta, gamma
		}
	}
}

// WithMarketSignal supplies external per-skill market signals in [0,1].
func WithMarketSignal(signal map[string]float64) Option {
	return func(e *Engine) { e.marketSignal = signal }
}

// WithRiskThreshold sets the mutation-risk level above which mentorship
// matching activates.
func WithRiskThreshold(t float64) Option {
	return func(e *Engine) {
		if t > 0 && t < 1 {
			e.riskThreshold = t
		}
	}
}

// WithSimilarTopK sets how many similar skills are considered per skill.
func WithSimilarTopK(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.similarTopK = k
		}
	}
}

// WithTrainingCostPerHead sets the per-employee reskilling investment.
func WithTrainingCostPerHead(cost float64) Option {
	return func(e *Engine) {
		if cost > 0 {
			e.trainingCostPerHead = cost
		}
	}
}

// WithRedundancyThreshold sets the holder count at or below which a skill
// triggers a redundancy alert.
func WithRedundancyThreshold(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.redundancyThreshold = n
		}
	}
}

// WithCriticalityCutoff sets the criticality above which an alert is Critical.
func WithCriticalityCutoff(c float64) Option {
	return func(e *Engine) {
		if c > 0 && c < 1 {
			e.criticalityCutoff = c
		}
	}
}

// WithTaxonomyShiftPct sets the |Δ%| above which a persistent skill counts
// as major growth/decline.
func WithTaxonomyShiftPct(pct float64) Option {
	return func(e *Engine) {
		if pct > 0 {
			e.taxonomyShiftPct = pct
		}
	}
}

// New creates an Engine with default weights and thresholds.
func New(opts ...Option) *Engine {
	e := &Engine{
		alpha:               defaultAlpha,
		beta:                defaultBeta,
		gamma:               defaultGamma,
		riskThreshold:       defaultRiskThreshold,
		similarTopK:         defaultSimilarTopK,
		trainingCostPerHead: defaultTrainingCostPerHead,
		redundancyThreshold: defaultRedundancyThreshold,
		criticalityCutoff:   defaultCriticalityCutoff,
		taxonomyShiftPct:    defaultTaxonomyShiftPct,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Inputs bundles what the strategic metrics are derived from.
type Inputs struct {
	Corpus   *model.Corpus
	Trends   map[string]trend.Analysis
	Analyzer *trend.Analyzer
}

// Compute produces the full strategic bundle. Empty inputs yield an empty,
// neutral bundle rather than an error.
func (e *Engine) Compute(in Inputs) types.Insights {
	risks := e.MutationRisks(in.Corpus, in.Trends)
	out := types.Insights{
		MutationRisks:     risks,
		Readiness:         e.Readiness(in.Corpus, in.Trends),
		MentorshipMatches: e.MentorshipMatches(in.Corpus, risks),
		RedundancyAlerts:  e.RedundancyAlerts(in.Corpus, in.Trends),
		ForecastAccuracy:  e.ForecastAccuracy(in.Corpus, in.Analyzer),
	}
	if years := in.Corpus.Years; len(years) >= 2 {
		te := e.TaxonomyEvolution(in.Corpus, years[len(years)-2], years[len(years)-1])
		out.TaxonomyEvolution = &te
	}
	return out
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// MutationRisks scores every skill's obsolescence probability:
// alpha*(1-normalized growth) + beta*acquisition-velocity decline +
// gamma*external market signal, clamped to [0,1].
func (e *Engine) MutationRisks(c *model.Corpus, trends map[string]trend.Analysis) []types.MutationRisk {
	minG, maxG := math.Inf(1), math.Inf(-1)
	for _, a := range trends {
		if a.Err != nil || a.Trend == trend.TrendInsufficientData {
			continue
		}
		minG = math.Min(minG, a.GrowthRate)
		maxG = math.Max(maxG, a.GrowthRate)
	}

	normGrowth := func(g float64) float64 {
		if maxG == minG || math.IsInf(minG, 1) {
			return 0.5
		}
		return (g - minG) / (maxG - minG)
	}

	out := make([]types.MutationRisk, 0, len(c.Skills))
	for _, name := range c.SkillNames() {
		a := trends[name]
		growthTerm := 0.5 // neutral when growth is unknown
		trendClass := a.Trend
		if a.Err != nil {
			trendClass = trend.TrendInsufficientData
		} else if a.Trend != trend.TrendInsufficientData {
			growthTerm = 1 - normGrowth(a.GrowthRate)
		}

		risk := e.alpha*growthTerm +
			e.beta*velocityDecline(c.Skills[name]) +
			e.gamma*e.marketSignal[name]

		out = append(out, types.MutationRisk{
			Skill: name,
			Risk:  clamp01(risk),
			Trend: trendClass,
		})
	}
	return out
}

// velocityDecline measures how much skill acquisition slowed between the two
// most recent observed years, as a fraction in [0,1].
func velocityDecline(sk *model.Skill) float64 {
	years := make([]int, 0, len(sk.YearlyCounts))
	for y := range sk.YearlyCounts {
		years = append(years, y)
	}
	if len(years) < 2 {
		return 0
	}
	sort.Ints(years)
	prev := sk.YearlyCounts[years[len(years)-2]]
	last := sk.YearlyCounts[years[len(years)-1]]
	if prev <= 0 {
		return 0
	}
	return clamp01((prev - last) / prev)
}

// Readiness scores the workforce 0-100:
// 30% future-skill coverage + 40% critical-skill redundancy coverage +
// 30% adaptation velocity, graded into bands.
func (e *Engine) Readiness(c *model.Corpus, trends map[string]trend.Analysis) types.Readiness {
	if len(c.Skills) == 0 || len(c.Employees) == 0 {
		return types.Readiness{Grade: gradeFor(0)}
	}

	// Future skills: growing or explosive trend.
	future := make(map[string]struct{})
	for name, a := range trends {
		if a.Err == nil && (a.Trend == trend.TrendGrowing || a.Trend == trend.TrendExplosive) {
			future[name] = struct{}{}
		}
	}
	var coveredEmployees int
	for _, emp := range c.Employees {
		for s := range emp.Skills {
			if _, ok := future[s]; ok {
				coveredEmployees++
				break
			}
		}
	}
	futureCoverage := float64(coveredEmployees) / float64(len(c.Employees))

	// Critical skills: popularity above the corpus median. Redundant when
	// held by more people than the redundancy threshold.
	pops := make([]float64, 0, len(c.Skills))
	for _, sk := range c.Skills {
		pops = append(pops, sk.Popularity())
	}
	sort.Float64s(pops)
	median := pops[len(pops)/2]
	var critical, redundant int
	for _, sk := range c.Skills {
		if sk.Popularity() >= median {
			critical++
			if sk.Holders > e.redundancyThreshold {
				redundant++
			}
		}
	}
	redundancyCoverage := 0.0
	if critical > 0 {
		redundancyCoverage = float64(redundant) / float64(critical)
	}

	// Adaptation velocity: how close the latest year's acquisition volume is
	// to the busiest year on record.
	adaptVelocity := 0.0
	if len(c.Years) > 0 {
		last := c.Years[len(c.Years)-1]
		var lastTotal, maxTotal float64
		for _, y := range c.Years {
			var total float64
			for _, sk := range c.Skills {
				total += sk.YearlyCounts[y]
			}
			if y == last {
				lastTotal = total
			}
			maxTotal = math.Max(maxTotal, total)
		}
		if maxTotal > 0 {
			adaptVelocity = lastTotal / maxTotal
		}
	}

	score := 100 * (0.3*futureCoverage + 0.4*redundancyCoverage + 0.3*adaptVelocity)
	return types.Readiness{
		Score:              score,
		Grade:              gradeFor(score),
		FutureCoverage:     futureCoverage,
		RedundancyCoverage: redundancyCoverage,
		AdaptationVelocity: adaptVelocity,
	}
}

func gradeFor(score float64) string {
	switch {
	case score >= gradeExcellentEdge:
		return "excellent"
	case score >= gradeGoodEdge:
		return "good"
	case score >= gradeFairEdge:
		return "fair"
	default:
		return "at-risk"
	}
}

// TaxonomyEvolution compares the skill taxonomy between two years.
func (e *Engine) TaxonomyEvolution(c *model.Corpus, yearA, yearB int) types.TaxonomyEvolution {
	inA := c.SkillsInYear(yearA)
	inB := c.SkillsInYear(yearB)

	out := types.TaxonomyEvolution{YearA: yearA, YearB: yearB}
	union := make(map[string]struct{})
	var persistent int

	for s := range inB {
		union[s] = struct{}{}
		if _, ok := inA[s]; !ok {
			out.Emergent = append(out.Emergent, s)
		}
	}
	for s := range inA {
		union[s] = struct{}{}
		if _, ok := inB[s]; !ok {
			out.Obsolete = append(out.Obsolete, s)
			continue
		}
		persistent++
		a := c.Skills[s].YearlyCounts[yearA]
		b := c.Skills[s].YearlyCounts[yearB]
		deltaPct := (b - a) / a * 100
		if deltaPct > e.taxonomyShiftPct {
			out.MajorGrowth = append(out.MajorGrowth, s)
		} else if deltaPct < -e.taxonomyShiftPct {
			out.MajorDecline = append(out.MajorDecline, s)
		}
	}

	sort.Strings(out.Emergent)
	sort.Strings(out.Obsolete)
	sort.Strings(out.MajorGrowth)
	sort.Strings(out.MajorDecline)

	if len(union) > 0 {
		out.StabilityIndex = float64(persistent) / float64(len(union))
	}
	return out
}

// ForecastAccuracy backtests the newest observed year per skill and grades
// the mean absolute percentage error.
func (e *Engine) ForecastAccuracy(c *model.Corpus, analyzer *trend.Analyzer) []types.ForecastAccuracy {
	if analyzer == nil {
		return nil
	}
	var out []types.ForecastAccuracy
	for _, name := range c.SkillNames() {
		sk := c.Skills[name]
		years := make([]int, 0, len(sk.YearlyCounts))
		for y := range sk.YearlyCounts {
			years = append(years, y)
		}
		if len(years) < 3 {
			continue
		}
		sort.Ints(years)
		target := years[len(years)-1]
		actual := sk.YearlyCounts[target]
		if actual == 0 {
			continue
		}
		predicted, ok := analyzer.Backtest(sk.YearlyCounts, target)
		if !ok {
			continue
		}
		mape := math.Abs(actual-predicted) / actual * 100
		out = append(out, types.ForecastAccuracy{
			Skill: name,
			Year:  target,
			MAPE:  mape,
			Grade: accuracyGrade(mape),
		})
	}
	return out
}

func accuracyGrade(mape float64) string {
	switch {
	case mape < 10:
		return "excellent"
	case mape < 20:
		return "good"
	case mape < 50:
		return "fair"
	default:
		return "poor"
	}
}

// growthOf returns a skill's annualized growth rate, or 0 when undefined.
func growthOf(trends map[string]trend.Analysis, name string) float64 {
	a, ok := trends[name]
	if !ok || a.Err != nil || a.Trend == trend.TrendInsufficientData {
		return 0
	}
	return a.GrowthRate
}

// SkillError marks a per-item failure inside a batch computation.
type SkillError struct {
	Skill string
	Err   error
}

func (e *SkillError) Error() string {
	return fmt.Sprintf("skill %q: %v", e.Skill, e.Err)
}

func (e *SkillError) Unwrap() error { return e.Err }
