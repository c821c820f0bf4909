package inmemory

import (
	"sync"
	"time"

	"mapapylife/internal/app/ports"
)

type RebuildSnapshot struct {
	Zones      int       `json:"zones"`
	Orphans    int       `json:"orphans"`
	Ambiguous  int       `json:"ambiguous"`
	Exceptions int       `json:"exceptions"`
	ElapsedMs  int64     `json:"elapsed_ms"`
	At         time.Time `json:"at"`
}

type Snapshot struct {
	LookupTotal     uint64           `json:"lookup_total"`
	LookupHit       uint64           `json:"lookup_hit"`
	LookupMiss      uint64           `json:"lookup_miss"`
	LookupMalformed uint64           `json:"lookup_malformed"`
	LookupAvgMicros int64            `json:"lookup_avg_us"`
	Rebuilds        uint64           `json:"rebuilds"`
	LastRebuild     *RebuildSnapshot `json:"last_rebuild,omitempty"`
}

type Recorder struct {
	mu        sync.Mutex
	byOutcome map[ports.LookupOutcome]uint64
	elapsed   time.Duration
	rebuilds  uint64
	last      *RebuildSnapshot
	now       func() time.Time
}

var (
	_ ports.LookupMetrics  = (*Recorder)(nil)
	_ ports.RebuildMetrics = (*Recorder)(nil)
)

func NewRecorder() *Recorder {
	return &Recorder{
		byOutcome: map[ports.LookupOutcome]uint64{},
		now:       time.Now,
	}
}

func (r *Recorder) RecordLookup(outcome ports.LookupOutcome, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byOutcome[outcome]++
	r.elapsed += elapsed
}

func (r *Recorder) RecordRebuild(s ports.RebuildStats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rebuilds++
	r.last = &RebuildSnapshot{
		Zones:      s.Zones,
		Orphans:    s.Orphans,
		Ambiguous:  s.Ambiguous,
		Exceptions: s.Exceptions,
		ElapsedMs:  s.Elapsed.Milliseconds(),
		At:         r.now().UTC(),
	}
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		LookupHit:       r.byOutcome[ports.LookupHit],
		LookupMiss:      r.byOutcome[ports.LookupMiss],
		LookupMalformed: r.byOutcome[ports.LookupMalformed],
		Rebuilds:        r.rebuilds,
	}
	out.LookupTotal = out.LookupHit + out.LookupMiss + out.LookupMalformed
	if out.LookupTotal > 0 {
		out.LookupAvgMicros = r.elapsed.Microseconds() / int64(out.LookupTotal)
	}
	if r.last != nil {
		last := *r.last
		out.LastRebuild = &last
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
