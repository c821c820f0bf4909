package inmemory

import (
	"testing"
	"time"

	"mapapylife/internal/app/ports"
)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.now = func() time.Time { return time.Unix(1700000000, 0) }
	r.RecordLookup(ports.LookupHit, 10*time.Microsecond)
	r.RecordLookup(ports.LookupHit, 30*time.Microsecond)
	r.RecordLookup(ports.LookupMiss, 20*time.Microsecond)
	r.RecordLookup(ports.LookupMalformed, 20*time.Microsecond)

	s := r.Snapshot()
	if s.LookupTotal != 4 {
		t.Fatalf("expected total 4, got %d", s.LookupTotal)
	}
	if s.LookupHit != 2 || s.LookupMiss != 1 || s.LookupMalformed != 1 {
		t.Fatalf("unexpected outcome counts %+v", s)
	}
	if s.LookupAvgMicros != 20 {
		t.Fatalf("expected average 20us, got %d", s.LookupAvgMicros)
	}
	if s.LastRebuild != nil {
		t.Fatalf("expected no rebuild yet")
	}
}

func TestRecorderRebuild(t *testing.T) {
	r := NewRecorder()
	r.now = func() time.Time { return time.Unix(1700000000, 0) }
	r.RecordRebuild(ports.RebuildStats{Zones: 366, Orphans: 3, Ambiguous: 1, Exceptions: 1, Elapsed: 1500 * time.Millisecond})

	s := r.Snapshot()
	if s.Rebuilds != 1 || s.LastRebuild == nil {
		t.Fatalf("expected one rebuild, got %+v", s)
	}
	if s.LastRebuild.Zones != 366 || s.LastRebuild.ElapsedMs != 1500 || !s.LastRebuild.At.Equal(time.Unix(1700000000, 0)) {
		t.Fatalf("unexpected rebuild snapshot %+v", s.LastRebuild)
	}
}
