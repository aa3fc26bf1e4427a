// Package graph builds the skill co-occurrence graph and computes hub,
// bridge, community, and density metrics over it.
//
// The graph is modeled as adjacency lists keyed by skill name so traversal
// never mutates shared structure. All rankings break ties lexically by skill
// name for reproducible output ordering.
package graph

import (
	"container/heap"
	"math"
	"sort"
)

// Default analysis constants.
const (
	centralityIterations = 100
	centralityEpsilon    = 1e-9
)

// Graph is an undirected weighted skill graph.
type Graph struct {
	adj map[string]map[string]float64
}

// Build constructs a graph from unordered-pair co-occurrence weights.
// Zero or negative weights are skipped.
func Build(coOccurrence map[[2]string]float64) *Graph {
	g := &Graph{adj: make(map[string]map[string]float64)}
	for pair, w := range coOccurrence {
		if w <= 0 || pair[0] == pair[1] {
			continue
		}
		g.addEdge(pair[0], pair[1], w)
	}
	return g
}

// AddNode ensures a node exists even if it has no edges.
func (g *Graph) AddNode(name string) {
	if _, ok := g.adj[name]; !ok {
		g.adj[name] = make(map[string]float64)
	}
}

func (g *Graph) addEdge(a, b string, w float64) {
	g.AddNode(a)
	g.AddNode(b)
	g.adj[a][b] = w
	g.adj[b][a] = w
}

// Nodes returns all node names in lexical order.
func (g *Graph) Nodes() []string {
	names := make([]string, 0, len(g.adj))
	for n := range g.adj {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Neighbors returns the neighbor names of a node in lexical order.
func (g *Graph) Neighbors(name string) []string {
	out := make([]string, 0, len(g.adj[name]))
	for n := range g.adj[name] {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Weight returns the edge weight between two nodes (0 when absent).
func (g *Graph) Weight(a, b string) float64 {
	return g.adj[a][b]
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	var twice int
	for _, nbrs := range g.adj {
		twice += len(nbrs)
	}
	return twice / 2
}

// Density returns edges / max-possible-edges over the full graph.
func (g *Graph) Density() float64 {
	n := len(g.adj)
	if n < 2 {
		return 0
	}
	return 2 * float64(g.EdgeCount()) / float64(n*(n-1))
}

// ClusteringCoefficient returns the average local clustering coefficient
// over the full graph. Nodes with fewer than two neighbors contribute 0.
func (g *Graph) ClusteringCoefficient() float64 {
	if len(g.adj) == 0 {
		return 0
	}
	var total float64
	for _, name := range g.Nodes() {
		nbrs := g.Neighbors(name)
		k := len(nbrs)
		if k < 2 {
			continue
		}
		var closed int
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				if g.adj[nbrs[i]][nbrs[j]] > 0 {
					closed++
				}
			}
		}
		total += 2 * float64(closed) / float64(k*(k-1))
	}
	return total / float64(len(g.adj))
}

// components returns connected components, each as a lexically sorted slice,
// ordered by their smallest member.
func (g *Graph) components() [][]string {
	seen := make(map[string]struct{})
	var comps [][]string
	for _, start := range g.Nodes() {
		if _, ok := seen[start]; ok {
			continue
		}
		var comp []string
		queue := []string{start}
		seen[start] = struct{}{}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, cur)
			for _, nb := range g.Neighbors(cur) {
				if _, ok := seen[nb]; !ok {
					seen[nb] = struct{}{}
					queue = append(queue, nb)
				}
			}
		}
		sort.Strings(comp)
		comps = append(comps, comp)
	}
	return comps
}

// Centrality computes eigenvector-style centrality by iterative influence
// propagation, run independently per connected component and max-normalized
// to [0,1] over the whole graph.
func (g *Graph) Centrality() map[string]float64 {
	scores := make(map[string]float64, len(g.adj))
	for _, comp := range g.components() {
		if len(comp) == 1 {
			scores[comp[0]] = 0
			continue
		}
		cur := make(map[string]float64, len(comp))
		for _, n := range comp {
			cur[n] = 1
		}
		for iter := 0; iter < centralityIterations; iter++ {
			next := make(map[string]float64, len(comp))
			var normSq float64
			for _, n := range comp {
				var sum float64
				for nb, w := range g.adj[n] {
					sum += w * cur[nb]
				}
				next[n] = sum
				normSq += sum * sum
			}
			nrm := math.Sqrt(normSq)
			if nrm == 0 {
				break
			}
			var delta float64
			for n := range next {
				next[n] /= nrm
				delta += math.Abs(next[n] - cur[n])
			}
			cur = next
			if delta < centralityEpsilon {
				break
			}
		}
		for n, v := range cur {
			scores[n] = v
		}
	}

	var max float64
	for _, v := range scores {
		if v > max {
			max = v
		}
	}
	if max > 0 {
		for n := range scores {
			scores[n] /= max
		}
	}
	return scores
}

// Betweenness computes betweenness centrality via Brandes' shortest-path
// counting over the weighted graph. Edge distance is the inverse of the
// co-occurrence weight, so heavier edges are shorter paths.
func (g *Graph) Betweenness() map[string]float64 {
	nodes := g.Nodes()
	bc := make(map[string]float64, len(nodes))
	for _, n := range nodes {
		bc[n] = 0
	}

	for _, source := range nodes {
		// Dijkstra from source, tracking path counts and predecessors.
		dist := make(map[string]float64, len(nodes))
		sigma := make(map[string]float64, len(nodes))
		pred := make(map[string][]string, len(nodes))
		for _, n := range nodes {
			dist[n] = math.Inf(1)
		}
		dist[source] = 0
		sigma[source] = 1

		var stack []string
		pq := &nodeQueue{{name: source, dist: 0}}
		settled := make(map[string]struct{})

		for pq.Len() > 0 {
			item := heap.Pop(pq).(nodeItem)
			if _, ok := settled[item.name]; ok {
				continue
			}
			settled[item.name] = struct{}{}
			stack = append(stack, item.name)

			for _, nb := range g.Neighbors(item.name) {
				d := dist[item.name] + 1/g.adj[item.name][nb]
				switch {
				case d < dist[nb]:
					dist[nb] = d
					sigma[nb] = sigma[item.name]
					pred[nb] = []string{item.name}
					heap.Push(pq, nodeItem{name: nb, dist: d})
				case d == dist[nb]:
					sigma[nb] += sigma[item.name]
					pred[nb] = append(pred[nb], item.name)
				}
			}
		}

		// Back-propagate dependencies in reverse settle order.
		delta := make(map[string]float64, len(stack))
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range pred[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != source {
				bc[w] += delta[w]
			}
		}
	}

	// Undirected graph: every pair was counted twice.
	for n := range bc {
		bc[n] /= 2
	}
	return bc
}

// nodeItem/nodeQueue implement the Dijkstra priority queue.
type nodeItem struct {
	name string
	dist float64
}

type nodeQueue []nodeItem

func (q nodeQueue) Len() int      { return len(q) }
func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q nodeQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].name < q[j].name
}

func (q *nodeQueue) Push(x any) { *q = append(*q, x.(nodeItem)) }

func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
