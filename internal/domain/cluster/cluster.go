// Package cluster partitions skills into groups and lays them out in 2D for
// visualization. Two interchangeable strategies sit behind one interface;
// the manifold projection is assignment-independent and seeded for
// reproducibility.
package cluster

import (
	"fmt"
	"math"
	"sort"
)

// Noise is the reserved cluster id for unassignable points.
const Noise = -1

// Default clustering configuration constants.
const (
	defaultEps            = 0.35
	defaultMinPoints      = 2
	defaultTargetClusters = 4
	minViableSkills       = 3
)

// Method selects a clustering strategy. The set is closed: method strings
// from the API resolve to one of these tags, never to arbitrary dispatch.
type Method int

// Supported methods.
const (
	MethodDensity Method = iota
	MethodHierarchical
)

// String returns the wire name of the method.
func (m Method) String() string {
	switch m {
	case MethodDensity:
		return "density"
	case MethodHierarchical:
		return "hierarchical"
	default:
		return "unknown"
	}
}

// ParseMethod resolves a wire name to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "density", "":
		return MethodDensity, nil
	case "hierarchical":
		return MethodHierarchical, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Features is the per-skill input representation.
type Features struct {
	Name       string
	Popularity float64
	Growth     float64 // percent per year; NaN tolerated (treated as 0)
	Category   string
}

// Result bundles assignment, layout, and quality diagnostics.
// Assignments partition the input: every skill maps to exactly one id,
// with Noise (-1) reserved for unassignable points.
type Result struct {
	Method      Method
	Assignments map[string]int
	Coordinates map[string][2]float64
	Quality     float64 // mean silhouette over clustered points
}

// Strategy produces a cluster id per point. Implementations must return one
// id per input row, using Noise for unassignable points.
type Strategy interface {
	Fit(points [][]float64) []int
}

// Engine runs a strategy over skill features and projects the layout.
type Engine struct {
	eps            float64
	minPoints      int
	targetClusters int
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithEps sets the density neighborhood radius.
func WithEps(eps float64) Option {
	return func(e *Engine) {
		if eps > 0 {
			e.eps = eps
		}
	}
}

// WithMinPoints sets the density minimum neighborhood size.
func WithMinPoints(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.minPoints = n
		}
	}
}

// WithTargetClusters sets the agglomerative target cluster count.
func WithTargetClusters(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.targetClusters = k
		}
	}
}

// New creates an Engine with default parameters.
func New(opts ...Option) *Engine {
	e := &Engine{
		eps:            defaultEps,
		minPoints:      defaultMinPoints,
		targetClusters: defaultTargetClusters,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run clusters the skills with the selected method and computes the 2D
// layout. Fewer than minViableSkills skills yields a single trivial cluster
// rather than an error.
func (e *Engine) Run(features []Features, method Method) (Result, error) {
	ordered := make([]Features, len(features))
	copy(ordered, features)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	points := vectorize(ordered)
	coords := Project(points)

	res := Result{
		Method:      method,
		Assignments: make(map[string]int, len(ordered)),
		Coordinates: make(map[string][2]float64, len(ordered)),
	}
	for i, f := range ordered {
		res.Coordinates[f.Name] = coords[i]
	}

	if len(ordered) < minViableSkills {
		for _, f := range ordered {
			res.Assignments[f.Name] = 0
		}
		return res, nil
	}

	var strategy Strategy
	switch method {
	case MethodDensity:
		strategy = &densityStrategy{eps: e.eps, minPoints: e.minPoints}
	case MethodHierarchical:
		strategy = &agglomerativeStrategy{targetClusters: e.targetClusters}
	default:
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownMethod, method)
	}

	ids := strategy.Fit(points)
	for i, f := range ordered {
		res.Assignments[f.Name] = ids[i]
	}
	res.Quality = silhouette(points, ids)
	return res, nil
}

// vectorize maps features to numeric rows: min-max normalized popularity and
// growth plus a category dimension so same-category skills sit closer.
func vectorize(features []Features) [][]float64 {
	minPop, maxPop := math.Inf(1), math.Inf(-1)
	minGr, maxGr := math.Inf(1), math.Inf(-1)
	catIndex := make(map[string]int)
	var cats []string
	for _, f := range features {
		g := f.Growth
		if math.IsNaN(g) || math.IsInf(g, 0) {
			g = 0
		}
		minPop = math.Min(minPop, f.Popularity)
		maxPop = math.Max(maxPop, f.Popularity)
		minGr = math.Min(minGr, g)
		maxGr = math.Max(maxGr, g)
		if _, ok := catIndex[f.Category]; !ok {
			catIndex[f.Category] = 0
			cats = append(cats, f.Category)
		}
	}
	sort.Strings(cats)
	for i, c := range cats {
		catIndex[c] = i
	}

	norm := func(v, lo, hi float64) float64 {
		if hi == lo {
			return 0.5
		}
		return (v - lo) / (hi - lo)
	}

	rows := make([][]float64, len(features))
	for i, f := range features {
		g := f.Growth
		if math.IsNaN(g) || math.IsInf(g, 0) {
			g = 0
		}
		catDim := 0.5
		if len(cats) > 1 {
			catDim = float64(catIndex[f.Category]) / float64(len(cats)-1)
		}
		rows[i] = []float64{
			norm(f.Popularity, minPop, maxPop),
			norm(g, minGr, maxGr),
			catDim,
		}
	}
	return rows
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// silhouette computes the mean silhouette coefficient over non-noise points.
// Degenerate partitions (a single cluster, or none) score 0.
func silhouette(points [][]float64, ids []int) float64 {
	members := make(map[int][]int)
	for i, id := range ids {
		if id == Noise {
			continue
		}
		members[id] = append(members[id], i)
	}
	if len(members) < 2 {
		return 0
	}

	var total float64
	var counted int
	for id, idx := range members {
		for _, i := range idx {
			a := meanDistance(points, i, idx)
			b := math.Inf(1)
			for other, otherIdx := range members {
				if other == id {
					continue
				}
				if d := meanDistance(points, i, otherIdx); d < b {
					b = d
				}
			}
			if m := math.Max(a, b); m > 0 {
				total += (b - a) / m
			}
			counted++
		}
	}
	if counted == 0 {
		return 0
	}
	return total / float64(counted)
}

func meanDistance(points [][]float64, i int, idx []int) float64 {
	var sum float64
	var n int
	for _, j := range idx {
		if j == i {
			continue
		}
		sum += euclidean(points[i], points[j])
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
