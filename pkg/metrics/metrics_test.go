package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewManager(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with defaults on a fresh registry", func() {
			m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then it applies the default configuration", func() {
				So(m, ShouldNotBeNil)
				So(m.namespace, ShouldEqual, "skillgenome")
				So(m.subsystem, ShouldEqual, "analytics")
				So(m.enabled, ShouldBeTrue)
				So(m.refreshInterval, ShouldEqual, defaultRefreshInterval)
			})

			Convey("Then all metrics are initialized", func() {
				So(m.eventsIngested, ShouldNotBeNil)
				So(m.corpusEvents, ShouldNotBeNil)
				So(m.rebuildDuration, ShouldNotBeNil)
				So(m.engineDuration, ShouldNotBeNil)
				So(m.httpRequests, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			buckets := []float64{1, 10, 100}
			m := NewManager(
				WithPrometheusRegistry(prometheus.NewRegistry()),
				WithNamespace("custom"),
				WithSubsystem("engine"),
				WithHistogramBuckets(buckets),
				WithMetricsEnabled(false),
				WithRefreshInterval(time.Minute),
			)

			Convey("Then the options are applied", func() {
				So(m.namespace, ShouldEqual, "custom")
				So(m.subsystem, ShouldEqual, "engine")
				So(m.histogramBuckets, ShouldResemble, buckets)
				So(m.enabled, ShouldBeFalse)
				So(m.refreshInterval, ShouldEqual, time.Minute)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		So(globalManager, ShouldNotBeNil)

		Convey("When recording ingestion metrics", func() {
			So(func() {
				RecordEventsIngested(10)
				RecordEventsDuplicate(2)
				RecordEventsRejected(1)
				UpdateCorpusEvents(42)
			}, ShouldNotPanic)
		})

		Convey("When recording rebuild metrics", func() {
			So(func() {
				RecordRebuildDuration(123.4)
				RecordRebuildFailure()
				RecordRebuildBusy()
				UpdateSnapshot(12, 300)
				RecordEngineDuration("clustering", 5.5)
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("/api/genome", "GET", "200")
				RecordHTTPRequestDuration("/api/genome", "GET", "200", 1.2)
			}, ShouldNotPanic)
		})

		Convey("When updating system metrics", func() {
			So(func() {
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(8)
			}, ShouldNotPanic)
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		Convey("When fetching it", func() {
			reg := GetRegistry()

			Convey("Then it is the registry backing the global manager", func() {
				So(reg, ShouldNotBeNil)
				So(reg, ShouldEqual, customRegistry)
			})

			Convey("Then it can be gathered without error", func() {
				families, err := reg.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}
