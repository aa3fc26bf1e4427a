package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/42Prague/skillgenome/internal/adapters/repository"
	"github.com/42Prague/skillgenome/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleEvents(n int) []model.SkillEvent {
	out := make([]model.SkillEvent, n)
	for i := range out {
		out[i] = model.SkillEvent{
			EventID:   string(rune('a' + i)),
			PersonID:  "p1",
			SkillName: "go",
			Date:      time.Date(2024, time.January, 1+i, 0, 0, 0, 0, time.UTC),
			Type:      model.EventUsed,
		}
	}
	return out
}

func TestMemStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		store := repository.NewMemStore()

		Convey("When appending a batch", func() {
			n, err := store.Append(ctx, sampleEvents(3))
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 3)

			Convey("Then the corpus holds the batch in order", func() {
				events := store.Events(ctx)
				So(len(events), ShouldEqual, 3)
				So(store.Count(ctx), ShouldEqual, 3)
				So(events[0].EventID, ShouldEqual, "a")
			})

			Convey("And reads return copies, not the backing slice", func() {
				events := store.Events(ctx)
				events[0].EventID = "mutated"
				So(store.Events(ctx)[0].EventID, ShouldEqual, "a")
			})
		})

		Convey("When appending concurrently with reads", func() {
			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(2)
				go func() {
					defer wg.Done()
					_, _ = store.Append(ctx, sampleEvents(2))
				}()
				go func() {
					defer wg.Done()
					_ = store.Events(ctx)
				}()
			}
			wg.Wait()

			Convey("Then the corpus stays consistent", func() {
				So(store.Count(ctx), ShouldEqual, 16)
			})
		})
	})

	Convey("Given a store with a small bound", t, func() {
		store := repository.NewMemStore(repository.WithMaxEvents(4))

		Convey("When a batch would exceed the bound", func() {
			_, err := store.Append(ctx, sampleEvents(3))
			So(err, ShouldBeNil)
			_, err = store.Append(ctx, sampleEvents(3))

			Convey("Then the append fails with ErrCorpusFull and nothing is stored", func() {
				So(errors.Is(err, repository.ErrCorpusFull), ShouldBeTrue)
				So(store.Count(ctx), ShouldEqual, 3)
			})
		})
	})
}
