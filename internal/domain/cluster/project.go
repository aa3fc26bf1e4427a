package cluster

import (
	"math"
	"math/rand"
)

// Projection constants. The seed is fixed so layouts are reproducible across
// rebuilds of the same corpus.
const (
	projectionSeed  = 42
	powerIterations = 100
)

// Project reduces feature rows to 2D coordinates for visualization via PCA:
// the rows are centered and projected onto the top two principal components,
// found by seeded power iteration with deflation. The projection is
// independent of any cluster assignment.
func Project(points [][]float64) [][2]float64 {
	n := len(points)
	out := make([][2]float64, n)
	if n == 0 {
		return out
	}
	dim := len(points[0])

	// Center the data.
	mean := make([]float64, dim)
	for _, p := range points {
		for d, v := range p {
			mean[d] += v
		}
	}
	for d := range mean {
		mean[d] /= float64(n)
	}
	centered := make([][]float64, n)
	for i, p := range points {
		row := make([]float64, dim)
		for d, v := range p {
			row[d] = v - mean[d]
		}
		centered[i] = row
	}

	// Covariance matrix (dim x dim; dim is small).
	cov := make([][]float64, dim)
	for a := range cov {
		cov[a] = make([]float64, dim)
		for b := range cov[a] {
			var sum float64
			for i := range centered {
				sum += centered[i][a] * centered[i][b]
			}
			cov[a][b] = sum / float64(n)
		}
	}

	rng := rand.New(rand.NewSource(projectionSeed))
	first := powerIterate(cov, rng)
	deflate(cov, first)
	second := powerIterate(cov, rng)

	for i, row := range centered {
		out[i] = [2]float64{dot(row, first), dot(row, second)}
	}
	return out
}

// powerIterate finds the dominant eigenvector of a symmetric matrix.
func powerIterate(m [][]float64, rng *rand.Rand) []float64 {
	dim := len(m)
	v := make([]float64, dim)
	for d := range v {
		v[d] = rng.Float64() - 0.5
	}
	normalize(v)

	for iter := 0; iter < powerIterations; iter++ {
		next := make([]float64, dim)
		for a := range m {
			for b := range m[a] {
				next[a] += m[a][b] * v[b]
			}
		}
		if norm(next) == 0 {
			return v // matrix is (numerically) zero; keep the random direction
		}
		normalize(next)
		v = next
	}
	return v
}

// deflate removes the contribution of eigenvector v from m in place.
func deflate(m [][]float64, v []float64) {
	// Rayleigh quotient gives the eigenvalue for the found direction.
	dim := len(m)
	mv := make([]float64, dim)
	for a := range m {
		for b := range m[a] {
			mv[a] += m[a][b] * v[b]
		}
	}
	lambda := dot(v, mv)
	for a := range m {
		for b := range m[a] {
			m[a][b] -= lambda * v[a] * v[b]
		}
	}
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func norm(v []float64) float64 {
	return math.Sqrt(dot(v, v))
}

func normalize(v []float64) {
	n := norm(v)
	if n == 0 {
		return
	}
	for i := range v {
		v[i] /= n
	}
}
