package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	service "github.com/42Prague/skillgenome/internal/app"
	"github.com/42Prague/skillgenome/internal/domain/model"
	"github.com/42Prague/skillgenome/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func event(id, person, skill string, year int, t model.EventType) model.SkillEvent {
	return model.SkillEvent{
		EventID:   id,
		PersonID:  person,
		SkillName: skill,
		Category:  "engineering",
		Date:      time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC),
		Type:      t,
	}
}

func sampleEvents() []model.SkillEvent {
	var events []model.SkillEvent
	id := 0
	add := func(person, skill string, year int) {
		id++
		events = append(events, event(fmt.Sprintf("evt-%03d", id), person, skill, year, model.EventUsed))
	}
	for year := 2020; year <= 2024; year++ {
		for p := 0; p < 4; p++ {
			add(fmt.Sprintf("p%d", p), "kubernetes", year)
			add(fmt.Sprintf("p%d", p), "go", year)
		}
	}
	for year := 2020; year <= 2022; year++ {
		add("p9", "cobol", year)
	}
	return events
}

func startedService(opts ...service.Option) *service.Service {
	svc := service.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should construct", func() {
			So(svc, ShouldNotBeNil)
		})
	})

	Convey("Given a started service before any reload", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()

		Convey("Then reads return empty, not errors", func() {
			genome, err := svc.Genome(ctx, "")
			So(err, ShouldBeNil)
			So(genome.Nodes, ShouldBeEmpty)

			evolution, err := svc.Evolution(ctx)
			So(err, ShouldBeNil)
			So(evolution.Timeline, ShouldBeEmpty)

			insights, err := svc.Insights(ctx)
			So(err, ShouldBeNil)
			So(insights.MutationRisks, ShouldBeEmpty)
			So(insights.Readiness.Grade, ShouldNotBeBlank)

			network, err := svc.Network(ctx)
			So(err, ShouldBeNil)
			So(network.HubSkills, ShouldBeEmpty)
		})

		Convey("Then an unknown skill lookup fails with not found", func() {
			_, err := svc.Skill(ctx, "does not exist")
			So(err, ShouldNotBeNil)
			So(errors.Is(err, service.ErrSkillNotFound), ShouldBeTrue)
		})
	})
}

func TestService_Reload(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When reloading a valid batch", func() {
			stats, err := svc.Reload(ctx, sampleEvents())

			Convey("Then events are ingested and a snapshot published", func() {
				So(err, ShouldBeNil)
				So(stats.Accepted, ShouldEqual, len(sampleEvents()))
				So(stats.Duplicates, ShouldEqual, 0)
				So(stats.Total, ShouldEqual, len(sampleEvents()))
				So(stats.Skills, ShouldEqual, 3)
				So(stats.Employees, ShouldEqual, 5)
			})

			Convey("Then the genome view covers every skill", func() {
				genome, gerr := svc.Genome(ctx, "density")
				So(gerr, ShouldBeNil)
				So(len(genome.Nodes), ShouldEqual, 3)
				So(genome.Method, ShouldEqual, "density")

				hier, herr := svc.Genome(ctx, "hierarchical")
				So(herr, ShouldBeNil)
				So(hier.Method, ShouldEqual, "hierarchical")
				So(len(hier.Nodes), ShouldEqual, 3)
			})

			Convey("Then the evolution view spans the observed years", func() {
				evolution, eerr := svc.Evolution(ctx)
				So(eerr, ShouldBeNil)
				So(len(evolution.Timeline), ShouldEqual, 5)
				So(evolution.Timeline[0].Year, ShouldEqual, 2020)
				So(len(evolution.Forecasts), ShouldEqual, 3)
			})

			Convey("Then the skill drill-down resolves raw spellings", func() {
				detail, derr := svc.Skill(ctx, "  Kubernetes ")
				So(derr, ShouldBeNil)
				So(detail.Name, ShouldEqual, "kubernetes")
				So(detail.Category, ShouldEqual, "engineering")
				So(detail.Trend, ShouldNotBeBlank)
			})

			Convey("Then the network view includes co-held skills", func() {
				network, nerr := svc.Network(ctx)
				So(nerr, ShouldBeNil)
				So(len(network.HubSkills), ShouldBeGreaterThan, 0)
				So(network.Density, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When reloading the same batch twice", func() {
			_, err := svc.Reload(ctx, sampleEvents())
			So(err, ShouldBeNil)
			stats, err := svc.Reload(ctx, sampleEvents())

			Convey("Then the second pass drops everything as duplicate", func() {
				So(err, ShouldBeNil)
				So(stats.Accepted, ShouldEqual, 0)
				So(stats.Duplicates, ShouldEqual, len(sampleEvents()))
				So(stats.Total, ShouldEqual, len(sampleEvents()))
			})
		})

		Convey("When the batch contains a malformed event", func() {
			bad := sampleEvents()
			bad[3].Type = "forgotten"
			_, err := svc.Reload(ctx, bad)

			Convey("Then the whole batch is rejected", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, service.ErrInvalidEvent), ShouldBeTrue)
			})

			Convey("Then the corpus stays empty", func() {
				genome, gerr := svc.Genome(ctx, "")
				So(gerr, ShouldBeNil)
				So(genome.Nodes, ShouldBeEmpty)
			})
		})

		Convey("When the corpus spans a single observed year", func() {
			_, err := svc.Reload(ctx, []model.SkillEvent{
				event("one-a", "p0", "kubernetes", 2024, model.EventUsed),
				event("one-b", "p1", "go", 2024, model.EventUsed),
			})
			So(err, ShouldBeNil)

			evolution, eerr := svc.Evolution(ctx)

			Convey("Then undefined category growth is omitted, not NaN", func() {
				So(eerr, ShouldBeNil)
				So(len(evolution.Timeline), ShouldEqual, 1)
				So(evolution.CategoryTrends, ShouldBeEmpty)
			})

			Convey("Then the evolution view stays JSON-encodable", func() {
				So(eerr, ShouldBeNil)
				_, merr := json.Marshal(evolution)
				So(merr, ShouldBeNil)
			})
		})

		Convey("When the batch exceeds the configured limit", func() {
			small := startedService(service.WithMaxBatch(2))
			defer small.Stop()

			_, err := small.Reload(ctx, sampleEvents())

			Convey("Then it fails fast", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, service.ErrBatchTooLarge), ShouldBeTrue)
			})
		})
	})
}

func TestService_ConcurrentReload(t *testing.T) {
	Convey("Given a started service under concurrent reloads", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()

		// Large batch to keep the first reload busy long enough.
		var batch []model.SkillEvent
		for i := 0; i < 40; i++ {
			for year := 2018; year <= 2024; year++ {
				batch = append(batch, event(
					fmt.Sprintf("c-%d-%d", i, year),
					fmt.Sprintf("p%d", i%17),
					fmt.Sprintf("skill-%d", i%23),
					year,
					model.EventUsed,
				))
			}
		}

		Convey("When many goroutines reload simultaneously", func() {
			const attempts = 8
			results := make(chan error, attempts)
			for i := 0; i < attempts; i++ {
				go func() {
					_, err := svc.Reload(ctx, batch)
					results <- err
				}()
			}

			var succeeded, busy int
			for i := 0; i < attempts; i++ {
				switch err := <-results; {
				case err == nil:
					succeeded++
				case errors.Is(err, service.ErrBusy):
					busy++
				default:
					t.Fatalf("unexpected reload error: %v", err)
				}
			}

			Convey("Then at least one wins and losers see the busy signal", func() {
				So(succeeded, ShouldBeGreaterThanOrEqualTo, 1)
				So(succeeded+busy, ShouldEqual, attempts)
			})

			Convey("Then the snapshot reflects exactly one copy of the batch", func() {
				stats := svc.GetStats()
				So(stats["totalEvents"], ShouldEqual, len(batch))
			})
		})

		Convey("When readers race a reload", func() {
			done := make(chan struct{})
			go func() {
				defer close(done)
				_, _ = svc.Reload(ctx, batch)
			}()

			// Reads must never block or observe a partial snapshot.
			for i := 0; i < 50; i++ {
				genome, err := svc.Genome(ctx, "")
				So(err, ShouldBeNil)
				So(len(genome.Nodes) == 0 || len(genome.Nodes) == 23, ShouldBeTrue)
			}
			<-done
		})
	})
}

func TestService_GetStats(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService()
		defer svc.Stop()

		Convey("When fetching stats", func() {
			stats := svc.GetStats()

			Convey("Then baseline fields are present", func() {
				So(stats["maxBatch"], ShouldNotBeNil)
				So(stats["reloading"], ShouldEqual, false)
				So(stats["totalEvents"], ShouldEqual, 0)
			})
		})
	})
}
