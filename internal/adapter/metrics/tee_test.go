package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	metricsinmem "mapapylife/internal/adapter/metrics/inmemory"
	prommetrics "mapapylife/internal/adapter/metrics/prom"
	"mapapylife/internal/app/ports"
)

func TestTee_FansOut(t *testing.T) {
	a := metricsinmem.NewRecorder()
	b := metricsinmem.NewRecorder()
	tee := Tee{a, b, prommetrics.NewRecorder(prometheus.NewRegistry())}

	tee.RecordLookup(ports.LookupHit, time.Millisecond)
	tee.RecordRebuild(ports.RebuildStats{Zones: 3})

	for i, r := range []*metricsinmem.Recorder{a, b} {
		s := r.Snapshot()
		if s.LookupHit != 1 || s.Rebuilds != 1 {
			t.Fatalf("recorder %d missed an observation: %+v", i, s)
		}
	}
}
