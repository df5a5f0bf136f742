// Package metrics adapts flashmap's Hooks seam to
// github.com/VictoriaMetrics/metrics, the client library the rest of this
// module's teacher lineage standardizes on for exposition. It is entirely
// optional: internal/core has no idea this package exists, and a map
// built without Builder.WithHooks pays no metrics overhead at all.
package metrics

import (
	"sync/atomic"

	"github.com/VictoriaMetrics/metrics"
)

// Recorder implements core.Hooks by feeding a private VictoriaMetrics
// registry, so a benchmark or service embedding flashmap can expose them
// under its own /metrics handler alongside its own counters without name
// collisions. VictoriaMetrics/metrics gauges are read-only callbacks over
// a value the caller updates elsewhere, so the gauge here is backed by an
// atomic field OnPublish updates directly. Recorder only implements the
// cold-path Hooks methods - core never calls a hook from OpenGuard or
// CloseGuard, so there is nothing here for a live-guard count to hook into.
type Recorder struct {
	set *metrics.Set

	publishes    *metrics.Counter
	parkEvents   *metrics.Counter
	unparkEvents *metrics.Counter
	lastResidual atomic.Uint64
}

// NewRecorder builds a Recorder scoped under prefix, e.g. "flashmap" or
// "flashmap_orders". Register the returned Set's WritePrometheus method
// with an HTTP handler to expose it.
func NewRecorder(prefix string) *Recorder {
	r := &Recorder{set: metrics.NewSet()}
	r.publishes = r.set.NewCounter(prefix + `_publishes_total`)
	r.parkEvents = r.set.NewCounter(prefix + `_writer_parks_total`)
	r.unparkEvents = r.set.NewCounter(prefix + `_writer_unparks_total`)
	r.set.NewGauge(prefix+`_last_publish_residual`, func() float64 {
		return float64(r.lastResidual.Load())
	})
	return r
}

// Set returns the underlying metrics.Set, for wiring into an HTTP
// exposition endpoint.
func (r *Recorder) Set() *metrics.Set { return r.set }

func (r *Recorder) OnPublish(residual uint64) {
	r.publishes.Inc()
	r.lastResidual.Store(residual)
}

func (r *Recorder) OnParked() { r.parkEvents.Inc() }

func (r *Recorder) OnUnparked() { r.unparkEvents.Inc() }
