package graph

import (
	"fmt"
	"sort"
)

// Communities partitions the graph by greedy modularity maximization:
// starting from singletons, repeatedly merge the pair of communities with
// the largest modularity gain until no merge improves it. Disconnected
// components never merge (a cross-component merge cannot raise modularity).
// Returned keys are stable labels; member lists are lexically sorted.
func (g *Graph) Communities() map[string][]string {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return map[string][]string{}
	}

	var totalWeight float64 // sum of all edge weights (each edge once)
	strength := make(map[string]float64, len(nodes))
	for _, n := range nodes {
		for _, w := range g.adj[n] {
			strength[n] += w
			totalWeight += w
		}
	}
	totalWeight /= 2

	if totalWeight == 0 {
		// No edges: every node is its own community.
		out := make(map[string][]string, len(nodes))
		for i, n := range nodes {
			out[fmt.Sprintf("community_%d", i)] = []string{n}
		}
		return out
	}

	// community id -> members; ids start as node indexes.
	members := make(map[int][]string, len(nodes))
	commOf := make(map[string]int, len(nodes))
	for i, n := range nodes {
		members[i] = []string{n}
		commOf[n] = i
	}

	// weightBetween sums edge weights from community a to community b.
	weightBetween := func(a, b int) float64 {
		var sum float64
		for _, n := range members[a] {
			for nb, w := range g.adj[n] {
				if commOf[nb] == b {
					sum += w
				}
			}
		}
		return sum
	}
	commStrength := func(a int) float64 {
		var sum float64
		for _, n := range members[a] {
			sum += strength[n]
		}
		return sum
	}

	for {
		ids := make([]int, 0, len(members))
		for id := range members {
			ids = append(ids, id)
		}
		sort.Ints(ids)

		bestGain := 0.0
		bestA, bestB := -1, -1
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				a, b := ids[i], ids[j]
				eAB := weightBetween(a, b)
				if eAB == 0 {
					continue
				}
				// Modularity gain of merging a and b.
				gain := eAB/totalWeight - commStrength(a)*commStrength(b)/(2*totalWeight*totalWeight)
				if gain > bestGain {
					bestGain, bestA, bestB = gain, a, b
				}
			}
		}
		if bestA < 0 {
			break
		}
		for _, n := range members[bestB] {
			commOf[n] = bestA
		}
		members[bestA] = append(members[bestA], members[bestB]...)
		delete(members, bestB)
	}

	// Stable labels ordered by each community's lexically smallest member.
	type comm struct {
		first   string
		members []string
	}
	var comms []comm
	for _, m := range members {
		sort.Strings(m)
		comms = append(comms, comm{first: m[0], members: m})
	}
	sort.Slice(comms, func(i, j int) bool { return comms[i].first < comms[j].first })

	out := make(map[string][]string, len(comms))
	for i, c := range comms {
		out[fmt.Sprintf("community_%d", i)] = c.members
	}
	return out
}

// Ranked pairs a skill with a score for ordered output.
type Ranked struct {
	Name  string
	Score float64
}

// RankByScore orders score maps descending, breaking ties lexically, and
// returns at most limit entries (limit <= 0 means all).
func RankByScore(scores map[string]float64, limit int) []Ranked {
	out := make([]Ranked, 0, len(scores))
	for n, s := range scores {
		out = append(out, Ranked{Name: n, Score: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
