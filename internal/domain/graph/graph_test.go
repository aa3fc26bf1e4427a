package graph_test

import (
	"testing"

	"github.com/42Prague/skillgenome/internal/domain/graph"
	. "github.com/smartystreets/goconvey/convey"
)

// barbell builds two triangles joined through a single bridge node:
//
//	a-b-c (triangle) - bridge - x-y-z (triangle)
func barbell() *graph.Graph {
	return graph.Build(map[[2]string]float64{
		{"a", "b"}:      3,
		{"a", "c"}:      3,
		{"b", "c"}:      3,
		{"c", "bridge"}: 1,
		{"bridge", "x"}: 1,
		{"x", "y"}:      3,
		{"x", "z"}:      3,
		{"y", "z"}:      3,
	})
}

func TestGraphMetrics(t *testing.T) {
	Convey("Given a barbell graph with a bridge node", t, func() {
		g := barbell()

		Convey("Then density counts edges over possible pairs", func() {
			// 7 nodes, 8 edges, 21 possible pairs.
			So(g.EdgeCount(), ShouldEqual, 8)
			So(g.Density(), ShouldAlmostEqual, 8.0/21.0, 1e-9)
		})

		Convey("Then the bridge has the highest betweenness", func() {
			bc := g.Betweenness()
			top := graph.RankByScore(bc, 1)
			So(top[0].Name, ShouldEqual, "bridge")
			So(top[0].Score, ShouldBeGreaterThan, 0)
		})

		Convey("Then centrality is normalized to [0,1]", func() {
			c := g.Centrality()
			So(len(c), ShouldEqual, 7)
			for _, v := range c {
				So(v, ShouldBeBetweenOrEqual, 0, 1)
			}
			best := graph.RankByScore(c, 1)
			So(best[0].Score, ShouldEqual, 1.0)
		})

		Convey("Then greedy modularity finds the two triangles", func() {
			comms := g.Communities()
			So(len(comms), ShouldBeBetweenOrEqual, 2, 3)

			sameComm := func(a, b string) bool {
				for _, members := range comms {
					var hasA, hasB bool
					for _, m := range members {
						if m == a {
							hasA = true
						}
						if m == b {
							hasB = true
						}
					}
					if hasA || hasB {
						return hasA && hasB
					}
				}
				return false
			}
			So(sameComm("a", "b"), ShouldBeTrue)
			So(sameComm("b", "c"), ShouldBeTrue)
			So(sameComm("x", "y"), ShouldBeTrue)
			So(sameComm("a", "x"), ShouldBeFalse)
		})

		Convey("Then the triangles raise the clustering coefficient", func() {
			So(g.ClusteringCoefficient(), ShouldBeGreaterThan, 0)
		})
	})

	Convey("Given a graph with disconnected components", t, func() {
		g := graph.Build(map[[2]string]float64{
			{"a", "b"}: 2,
			{"b", "c"}: 2,
			{"p", "q"}: 5,
		})

		Convey("Then each component gets centrality scores", func() {
			c := g.Centrality()
			So(len(c), ShouldEqual, 5)
			So(c["b"], ShouldBeGreaterThan, c["a"])
		})

		Convey("Then components never merge into one community", func() {
			comms := g.Communities()
			for _, members := range comms {
				var hasA, hasP bool
				for _, m := range members {
					if m == "a" || m == "b" || m == "c" {
						hasA = true
					}
					if m == "p" || m == "q" {
						hasP = true
					}
				}
				So(hasA && hasP, ShouldBeFalse)
			}
		})
	})

	Convey("Given an empty graph", t, func() {
		g := graph.Build(nil)

		Convey("Then every metric returns a neutral result without raising", func() {
			So(g.Density(), ShouldEqual, 0)
			So(g.ClusteringCoefficient(), ShouldEqual, 0)
			So(g.Centrality(), ShouldBeEmpty)
			So(g.Betweenness(), ShouldBeEmpty)
			So(g.Communities(), ShouldBeEmpty)
		})
	})
}

func TestRankByScore(t *testing.T) {
	Convey("Given tied scores", t, func() {
		ranked := graph.RankByScore(map[string]float64{
			"zeta": 1, "alpha": 1, "mid": 2,
		}, 0)

		Convey("Then ranking breaks ties lexically", func() {
			So(ranked[0].Name, ShouldEqual, "mid")
			So(ranked[1].Name, ShouldEqual, "alpha")
			So(ranked[2].Name, ShouldEqual, "zeta")
		})
	})
}
