package trend

import "math"

// Backtest produces a retrospective forecast for a past year: the polynomial
// is fit only on observations strictly before that year and then evaluated
// at it. Returns ok=false when fewer than two earlier years exist or the
// target year has no actual value to compare against.
func (a *Analyzer) Backtest(series map[int]float64, year int) (predicted float64, ok bool) {
	if _, hasActual := series[year]; !hasActual {
		return 0, false
	}
	prior := make(map[int]float64)
	for y, v := range series {
		if y < year {
			prior[y] = v
		}
	}
	pts := sortedPoints(prior)
	if len(pts) < 2 {
		return 0, false
	}

	degree := 1
	if len(pts) >= quadraticMinPoints {
		degree = 2
	}
	coeffs := polyFit(pts, degree)
	v := polyEval(coeffs, float64(year-pts[0].Year))
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return math.Max(0, v), true
}
