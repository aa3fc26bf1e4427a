package dedupe_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/42Prague/skillgenome/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a fresh deduper", t, func() {
		d := dedupe.NewInMemoryDeduper()

		Convey("When recording an ID twice", func() {
			first := d.SeenAndRecord(ctx, "ev-1")
			second := d.SeenAndRecord(ctx, "ev-1")

			Convey("Then only the second call reports it as seen", func() {
				So(first, ShouldBeFalse)
				So(second, ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When unrecording an ID", func() {
			d.SeenAndRecord(ctx, "ev-2")
			d.Unrecord(ctx, "ev-2")

			Convey("Then it can be recorded again", func() {
				So(d.SeenAndRecord(ctx, "ev-2"), ShouldBeFalse)
			})
		})
	})

	Convey("Given a bounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))

		Convey("When recording past the bound", func() {
			for i := 0; i < 5; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("ev-%d", i))
			}

			Convey("Then the oldest IDs are evicted first", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "ev-0"), ShouldBeFalse) // evicted, re-recordable
				So(d.SeenAndRecord(ctx, "ev-4"), ShouldBeTrue)  // still remembered
			})
		})
	})
}
