package metrics

import (
	"time"

	"mapapylife/internal/app/ports"
)

// Recorder is a sink for both lookup and rebuild metrics.
type Recorder interface {
	ports.LookupMetrics
	ports.RebuildMetrics
}

// Tee fans every observation out to each recorder in order.
type Tee []Recorder

func (t Tee) RecordLookup(outcome ports.LookupOutcome, elapsed time.Duration) {
	for _, r := range t {
		r.RecordLookup(outcome, elapsed)
	}
}

func (t Tee) RecordRebuild(s ports.RebuildStats) {
	for _, r := range t {
		r.RecordRebuild(s)
	}
}
