package cluster

import (
	"math"
	"sort"
)

// densityStrategy implements DBSCAN. Points with fewer than minPoints
// neighbors within eps and no reachable core point end up in Noise.
type densityStrategy struct {
	eps       float64
	minPoints int
}

func (s *densityStrategy) Fit(points [][]float64) []int {
	const unvisited = -2
	n := len(points)
	ids := make([]int, n)
	for i := range ids {
		ids[i] = unvisited
	}

	neighbors := func(i int) []int {
		var out []int
		for j := 0; j < n; j++ {
			if j != i && euclidean(points[i], points[j]) <= s.eps {
				out = append(out, j)
			}
		}
		return out
	}

	next := 0
	for i := 0; i < n; i++ {
		if ids[i] != unvisited {
			continue
		}
		seeds := neighbors(i)
		if len(seeds)+1 < s.minPoints {
			ids[i] = Noise
			continue
		}

		id := next
		next++
		ids[i] = id

		// Expand the cluster breadth-first over density-reachable points.
		for k := 0; k < len(seeds); k++ {
			j := seeds[k]
			if ids[j] == Noise {
				ids[j] = id // border point claimed by this cluster
			}
			if ids[j] != unvisited {
				continue
			}
			ids[j] = id
			more := neighbors(j)
			if len(more)+1 >= s.minPoints {
				seeds = append(seeds, more...)
			}
		}
	}
	return ids
}

// agglomerativeStrategy implements bottom-up hierarchical clustering with
// average linkage, merging the closest pair until targetClusters remain.
type agglomerativeStrategy struct {
	targetClusters int
}

func (s *agglomerativeStrategy) Fit(points [][]float64) []int {
	n := len(points)
	target := s.targetClusters
	if target > n {
		target = n
	}

	// Each cluster is a member index list; start with singletons.
	clusters := make([][]int, n)
	for i := range clusters {
		clusters[i] = []int{i}
	}

	avgLinkage := func(a, b []int) float64 {
		var sum float64
		for _, i := range a {
			for _, j := range b {
				sum += euclidean(points[i], points[j])
			}
		}
		return sum / float64(len(a)*len(b))
	}

	for len(clusters) > target {
		bi, bj, best := 0, 1, math.Inf(1)
		for i := 0; i < len(clusters); i++ {
			for j := i + 1; j < len(clusters); j++ {
				if d := avgLinkage(clusters[i], clusters[j]); d < best {
					bi, bj, best = i, j, d
				}
			}
		}
		clusters[bi] = append(clusters[bi], clusters[bj]...)
		clusters = append(clusters[:bj], clusters[bj+1:]...)
	}

	// Number clusters deterministically by their smallest member index.
	for _, c := range clusters {
		sort.Ints(c)
	}
	sort.Slice(clusters, func(i, j int) bool { return clusters[i][0] < clusters[j][0] })

	ids := make([]int, n)
	for id, c := range clusters {
		for _, i := range c {
			ids[i] = id
		}
	}
	return ids
}
