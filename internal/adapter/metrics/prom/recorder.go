package prommetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mapapylife/internal/app/ports"
)

type Recorder struct {
	lookups        *prometheus.CounterVec
	lookupDuration prometheus.Histogram
	rebuilds       prometheus.Counter
	zones          prometheus.Gauge
	orphans        prometheus.Gauge
	ambiguous      prometheus.Gauge
	rebuildSeconds prometheus.Gauge
}

var (
	_ ports.LookupMetrics  = (*Recorder)(nil)
	_ ports.RebuildMetrics = (*Recorder)(nil)
)

// NewRecorder registers the zone service collectors on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mapapylife_lookups_total",
			Help: "Zone lookups by outcome",
		}, []string{"outcome"}),
		lookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mapapylife_lookup_duration_ms",
			Help:    "Zone lookup duration in milliseconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 50, 100},
		}),
		rebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mapapylife_rebuilds_total",
			Help: "Completed zone rebuilds",
		}),
		zones: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mapapylife_zones",
			Help: "Zones persisted by the last rebuild",
		}),
		orphans: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mapapylife_orphan_zones",
			Help: "Non-city zones without a city in the last rebuild",
		}),
		ambiguous: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mapapylife_ambiguous_zones",
			Help: "Zones matching more than one city in the last rebuild",
		}),
		rebuildSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mapapylife_rebuild_duration_seconds",
			Help: "Duration of the last rebuild",
		}),
	}
	reg.MustRegister(r.lookups, r.lookupDuration, r.rebuilds, r.zones, r.orphans, r.ambiguous, r.rebuildSeconds)
	return r
}

func (r *Recorder) RecordLookup(outcome ports.LookupOutcome, elapsed time.Duration) {
	r.lookups.WithLabelValues(string(outcome)).Inc()
	r.lookupDuration.Observe(float64(elapsed.Microseconds()) / 1000)
}

func (r *Recorder) RecordRebuild(s ports.RebuildStats) {
	r.rebuilds.Inc()
	r.zones.Set(float64(s.Zones))
	r.orphans.Set(float64(s.Orphans))
	r.ambiguous.Set(float64(s.Ambiguous))
	r.rebuildSeconds.Set(s.Elapsed.Seconds())
}
