package cluster_test

import (
	"fmt"
	"testing"

	"github.com/42Prague/skillgenome/internal/domain/cluster"
	. "github.com/smartystreets/goconvey/convey"
)

// twoBlobs returns two well-separated groups of skills.
func twoBlobs() []cluster.Features {
	var fs []cluster.Features
	for i := 0; i < 4; i++ {
		fs = append(fs, cluster.Features{
			Name:       fmt.Sprintf("hot-%d", i),
			Popularity: 90 + float64(i),
			Growth:     25 + float64(i),
			Category:   "data",
		})
	}
	for i := 0; i < 4; i++ {
		fs = append(fs, cluster.Features{
			Name:       fmt.Sprintf("cold-%d", i),
			Popularity: 5 + float64(i),
			Growth:     -22 - float64(i),
			Category:   "legacy",
		})
	}
	return fs
}

func TestEngine_Run(t *testing.T) {
	Convey("Given two well-separated skill groups", t, func() {
		features := twoBlobs()
		engine := cluster.New(cluster.WithTargetClusters(2))

		for _, method := range []cluster.Method{cluster.MethodDensity, cluster.MethodHierarchical} {
			method := method
			Convey(fmt.Sprintf("When clustering with the %s method", method), func() {
				res, err := engine.Run(features, method)
				So(err, ShouldBeNil)

				Convey("Then every skill maps to exactly one cluster id", func() {
					So(len(res.Assignments), ShouldEqual, len(features))
					for _, f := range features {
						_, ok := res.Assignments[f.Name]
						So(ok, ShouldBeTrue)
					}
				})

				Convey("And the two groups are separated", func() {
					hot := res.Assignments["hot-0"]
					cold := res.Assignments["cold-0"]
					So(hot, ShouldNotEqual, cluster.Noise)
					So(cold, ShouldNotEqual, cluster.Noise)
					So(hot, ShouldNotEqual, cold)
					for i := 1; i < 4; i++ {
						So(res.Assignments[fmt.Sprintf("hot-%d", i)], ShouldEqual, hot)
						So(res.Assignments[fmt.Sprintf("cold-%d", i)], ShouldEqual, cold)
					}
				})

				Convey("And separation quality is positive", func() {
					So(res.Quality, ShouldBeGreaterThan, 0)
				})

				Convey("And every skill has 2D coordinates", func() {
					So(len(res.Coordinates), ShouldEqual, len(features))
				})
			})
		}

		Convey("When running twice on the same input", func() {
			a, err := engine.Run(features, cluster.MethodDensity)
			So(err, ShouldBeNil)
			b, err := engine.Run(features, cluster.MethodDensity)
			So(err, ShouldBeNil)

			Convey("Then the layout is reproducible", func() {
				for name, coord := range a.Coordinates {
					So(b.Coordinates[name][0], ShouldEqual, coord[0])
					So(b.Coordinates[name][1], ShouldEqual, coord[1])
				}
			})
		})
	})

	Convey("Given fewer than three skills", t, func() {
		features := []cluster.Features{
			{Name: "go", Popularity: 10, Growth: 5, Category: "eng"},
			{Name: "sql", Popularity: 20, Growth: 1, Category: "eng"},
		}

		Convey("When clustering", func() {
			res, err := cluster.New().Run(features, cluster.MethodDensity)
			So(err, ShouldBeNil)

			Convey("Then a single trivial cluster is returned", func() {
				So(res.Assignments["go"], ShouldEqual, 0)
				So(res.Assignments["sql"], ShouldEqual, 0)
			})
		})
	})

	Convey("Given an empty skill set", t, func() {
		res, err := cluster.New().Run(nil, cluster.MethodHierarchical)

		Convey("Then the engine returns an empty result without raising", func() {
			So(err, ShouldBeNil)
			So(res.Assignments, ShouldBeEmpty)
		})
	})
}

func TestDensityNoise(t *testing.T) {
	Convey("Given a tight group and one far outlier", t, func() {
		features := twoBlobs()[:4]
		features = append(features, cluster.Features{
			Name: "cobol", Popularity: 1, Growth: -90, Category: "legacy",
		})

		Convey("When clustering with a small radius", func() {
			engine := cluster.New(cluster.WithEps(0.2), cluster.WithMinPoints(2))
			res, err := engine.Run(features, cluster.MethodDensity)
			So(err, ShouldBeNil)

			Convey("Then the outlier lands in the noise cluster", func() {
				So(res.Assignments["cobol"], ShouldEqual, cluster.Noise)
			})

			Convey("And the partition still covers every skill", func() {
				So(len(res.Assignments), ShouldEqual, len(features))
			})
		})
	})
}

func TestParseMethod(t *testing.T) {
	Convey("Given method wire names", t, func() {
		Convey("Then known names resolve", func() {
			m, err := cluster.ParseMethod("density")
			So(err, ShouldBeNil)
			So(m, ShouldEqual, cluster.MethodDensity)

			m, err = cluster.ParseMethod("hierarchical")
			So(err, ShouldBeNil)
			So(m, ShouldEqual, cluster.MethodHierarchical)
		})

		Convey("And the empty name defaults to density", func() {
			m, err := cluster.ParseMethod("")
			So(err, ShouldBeNil)
			So(m, ShouldEqual, cluster.MethodDensity)
		})

		Convey("And unknown names are rejected", func() {
			_, err := cluster.ParseMethod("kmeans")
			So(err, ShouldNotBeNil)
		})
	})
}
