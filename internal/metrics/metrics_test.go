package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager()

			Convey("Then it owns a fresh registry", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Registry(), ShouldNotBeNil)
			})
		})

		Convey("When creating two managers", func() {
			Convey("Then they should not conflict", func() {
				So(func() {
					NewManager()
					NewManager()
				}, ShouldNotPanic)
			})
		})

		Convey("When creating with a custom registry and namespace", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithRegistry(registry),
				WithNamespace("test"),
				WithHistogramBuckets([]float64{0.001, 0.01}),
			)
			manager.ObserveRender("svg", 1, time.Millisecond)

			Convey("Then metrics are registered under the namespace", func() {
				So(manager.Registry(), ShouldEqual, registry)

				n, err := testutil.GatherAndCount(registry, "test_renders_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})
	})
}

func TestManagerRecording(t *testing.T) {
	Convey("Given a metrics manager", t, func() {
		manager := NewManager()

		Convey("When observing renders", func() {
			manager.ObserveRender("svg", 3, 2*time.Millisecond)
			manager.ObserveRender("svg", 5, time.Millisecond)
			manager.ObserveRender("json", 1, time.Millisecond)

			Convey("Then renders are counted per format", func() {
				So(testutil.ToFloat64(manager.renders.WithLabelValues("svg")), ShouldEqual, 2)
				So(testutil.ToFloat64(manager.renders.WithLabelValues("json")), ShouldEqual, 1)
			})

			Convey("Then the points gauge holds the last render", func() {
				So(testutil.ToFloat64(manager.points), ShouldEqual, 1)
			})
		})

		Convey("When observing skipped rows", func() {
			manager.ObserveSkipped(2)
			manager.ObserveSkipped(0)
			manager.ObserveSkipped(-1)

			Convey("Then only positive counts are added", func() {
				So(testutil.ToFloat64(manager.skippedRows), ShouldEqual, 2)
			})
		})

		Convey("When observing errors", func() {
			manager.ObserveError("cbor")

			Convey("Then errors are counted per format", func() {
				So(testutil.ToFloat64(manager.renderErrors.WithLabelValues("cbor")), ShouldEqual, 1)
			})
		})

		Convey("When scraping the handler", func() {
			manager.ObserveRender("svg", 1, time.Millisecond)

			rec := httptest.NewRecorder()
			manager.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

			body, _ := io.ReadAll(rec.Body)

			Convey("Then the exposition contains the metrics", func() {
				So(rec.Code, ShouldEqual, 200)
				So(string(body), ShouldContainSubstring, `hillchart_renders_total{format="svg"} 1`)
				So(string(body), ShouldContainSubstring, "hillchart_render_duration_seconds_bucket")
			})
		})
	})
}
