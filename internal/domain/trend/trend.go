// Package trend computes per-skill growth rates, trend classes, and forward
// forecasts from sparse yearly popularity series.
package trend

import (
	"fmt"
	"math"
	"sort"
)

// Trend classes. Band edges are configurable via options; the default bands
// match the classification below.
const (
	TrendExplosive        = "explosive"
	TrendGrowing          = "growing"
	TrendStable           = "stable"
	TrendDeclining        = "declining"
	TrendDying            = "dying"
	TrendInsufficientData = "insufficient_data"
)

// Confidence tiers for forecasts.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Default analysis configuration constants.
const (
	defaultForecastYears  = 3
	defaultExplosiveEdge  = 20.0
	defaultGrowingEdge    = 5.0
	defaultDecliningEdge  = -5.0
	defaultDyingEdge      = -20.0
	highConfidenceRatio   = 0.25
	mediumConfidenceRatio = 0.6
	quadraticMinPoints    = 4
)

// Bands holds the growth-rate cutoffs (percent per year) separating trend
// classes. Edges must descend so the bands are total and non-overlapping.
type Bands struct {
	Explosive float64 // growth above this is explosive
	Growing   float64 // growth above this is growing
	Declining float64 // growth below this is declining
	Dying     float64 // growth below this is dying
}

// Validate checks that the band edges descend strictly.
func (b Bands) Validate() error {
	if !(b.Explosive > b.Growing && b.Growing > b.Declining && b.Declining > b.Dying) {
		return fmt.Errorf("%w: edges must descend (explosive > growing > declining > dying)", ErrInvalidBands)
	}
	return nil
}

// Classify maps a growth rate to its trend class. The bands are total: every
// rate falls in exactly one class.
func (b Bands) Classify(growthRate float64) string {
	switch {
	case growthRate > b.Explosive:
		return TrendExplosive
	case growthRate > b.Growing:
		return TrendGrowing
	case growthRate >= b.Declining:
		return TrendStable
	case growthRate >= b.Dying:
		return TrendDeclining
	default:
		return TrendDying
	}
}

// Analysis is the derived temporal profile of one skill's series.
type Analysis struct {
	GrowthRate float64 // annualized percent change
	Trend      string
	Forecast   []Point // forward projection, values clipped to >= 0
	Confidence string
	Err        error // per-skill failure marker; other fields are zero when set
}

// Point is one (year, value) pair.
type Point struct {
	Year  int
	Value float64
}

// Analyzer computes trend analyses with fixed configuration.
type Analyzer struct {
	bands         Bands
	forecastYears int
}

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithBands overrides the default trend classification bands.
func WithBands(b Bands) Option {
	return func(a *Analyzer) {
		if b.Validate() == nil {
			a.bands = b
		}
	}
}

// WithForecastYears sets the forward forecast horizon.
func WithForecastYears(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.forecastYears = n
		}
	}
}

// NewAnalyzer creates an Analyzer with default bands and horizon.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		bands: Bands{
			Explosive: defaultExplosiveEdge,
			Growing:   defaultGrowingEdge,
			Declining: defaultDecliningEdge,
			Dying:     defaultDyingEdge,
		},
		forecastYears: defaultForecastYears,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Bands returns the analyzer's classification bands.
func (a *Analyzer) Bands() Bands { return a.bands }

// Analyze computes the full temporal profile for one yearly series.
// Fewer than two distinct years yields TrendInsufficientData rather than an
// error: the caller annotates the item instead of aborting the batch.
func (a *Analyzer) Analyze(series map[int]float64) Analysis {
	pts := sortedPoints(series)
	if len(pts) < 2 {
		return Analysis{Trend: TrendInsufficientData, Confidence: ConfidenceLow}
	}

	rate := GrowthRate(series)
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return Analysis{Err: fmt.Errorf("%w: degenerate series", ErrNumericFailure)}
	}

	forecast, confidence := a.forecast(pts)

	return Analysis{
		GrowthRate: rate,
		Trend:      a.bands.Classify(rate),
		Forecast:   forecast,
		Confidence: confidence,
	}
}

// GrowthRate returns the annualized percent growth for a yearly series: the
// least-squares slope expressed as a percentage of the series mean.
// Returns NaN when fewer than two distinct years are present.
func GrowthRate(series map[int]float64) float64 {
	pts := sortedPoints(series)
	if len(pts) < 2 {
		return math.NaN()
	}
	slope, _ := linearFit(pts)
	mean := meanValue(pts)
	if mean == 0 {
		return math.NaN()
	}
	return slope / mean * 100
}

// forecast fits a bounded-degree polynomial and projects it forward.
// Degree 2 needs at least quadraticMinPoints observations to avoid
// overfitting short series; otherwise the fit falls back to linear.
func (a *Analyzer) forecast(pts []Point) ([]Point, string) {
	degree := 1
	if len(pts) >= quadraticMinPoints {
		degree = 2
	}

	coeffs := polyFit(pts, degree)
	lastYear := pts[len(pts)-1].Year

	out := make([]Point, 0, a.forecastYears)
	for i := 1; i <= a.forecastYears; i++ {
		year := lastYear + i
		v := polyEval(coeffs, float64(year-pts[0].Year))
		out = append(out, Point{Year: year, Value: math.Max(0, v)})
	}

	return out, confidenceTier(pts, coeffs)
}

// confidenceTier grades the fit by residual RMS relative to series stddev.
func confidenceTier(pts []Point, coeffs []float64) string {
	sd := stddev(pts)
	if sd == 0 {
		// Flat series fit exactly by the polynomial.
		return ConfidenceHigh
	}
	var sumSq float64
	for _, p := range pts {
		r := p.Value - polyEval(coeffs, float64(p.Year-pts[0].Year))
		sumSq += r * r
	}
	rms := math.Sqrt(sumSq / float64(len(pts)))
	switch ratio := rms / sd; {
	case ratio < highConfidenceRatio:
		return ConfidenceHigh
	case ratio < mediumConfidenceRatio:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func sortedPoints(series map[int]float64) []Point {
	pts := make([]Point, 0, len(series))
	for y, v := range series {
		pts = append(pts, Point{Year: y, Value: v})
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].Year < pts[j].Year })
	return pts
}

func meanValue(pts []Point) float64 {
	var sum float64
	for _, p := range pts {
		sum += p.Value
	}
	return sum / float64(len(pts))
}

func stddev(pts []Point) float64 {
	mean := meanValue(pts)
	var sumSq float64
	for _, p := range pts {
		d := p.Value - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(pts)))
}

// linearFit returns slope and intercept of the least-squares line through pts.
func linearFit(pts []Point) (slope, intercept float64) {
	n := float64(len(pts))
	var sumX, sumY, sumXY, sumXX float64
	for _, p := range pts {
		x := float64(p.Year)
		sumX += x
		sumY += p.Value
		sumXY += x * p.Value
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// polyFit fits a polynomial of the given degree (1 or 2) to pts, with x
// re-based to the first year. Uses the normal equations solved by Gaussian
// elimination; the systems are at most 3x3.
func polyFit(pts []Point, degree int) []float64 {
	m := degree + 1
	x0 := pts[0].Year

	// Power sums S_k = sum(x^k) and moment vector T_k = sum(y * x^k).
	s := make([]float64, 2*degree+1)
	t := make([]float64, m)
	for _, p := range pts {
		x := float64(p.Year - x0)
		xp := 1.0
		for k := 0; k <= 2*degree; k++ {
			s[k] += xp
			if k < m {
				t[k] += p.Value * xp
			}
			xp *= x
		}
	}

	// Normal-equation matrix A[i][j] = S_{i+j}, augmented with t.
	a := make([][]float64, m)
	for i := range a {
		a[i] = make([]float64, m+1)
		for j := 0; j < m; j++ {
			a[i][j] = s[i+j]
		}
		a[i][m] = t[i]
	}

	// Gaussian elimination with partial pivoting.
	for col := 0; col < m; col++ {
		pivot := col
		for row := col + 1; row < m; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		a[col], a[pivot] = a[pivot], a[col]
		if a[col][col] == 0 {
			continue // singular; coefficient stays zero
		}
		for row := col + 1; row < m; row++ {
			f := a[row][col] / a[col][col]
			for j := col; j <= m; j++ {
				a[row][j] -= f * a[col][j]
			}
		}
	}

	coeffs := make([]float64, m)
	for i := m - 1; i >= 0; i-- {
		if a[i][i] == 0 {
			continue
		}
		v := a[i][m]
		for j := i + 1; j < m; j++ {
			v -= a[i][j] * coeffs[j]
		}
		coeffs[i] = v / a[i][i]
	}
	return coeffs
}

// polyEval evaluates the polynomial at x (coefficients low-order first).
func polyEval(coeffs []float64, x float64) float64 {
	var v, xp float64
	xp = 1
	for _, c := range coeffs {
		v += c * xp
		xp *= x
	}
	return v
}
