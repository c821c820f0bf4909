package ports

import "time"

type LookupOutcome string

const (
	LookupHit       LookupOutcome = "hit"
	LookupMiss      LookupOutcome = "miss"
	LookupMalformed LookupOutcome = "malformed"
)

type LookupMetrics interface {
	RecordLookup(outcome LookupOutcome, elapsed time.Duration)
}

type RebuildStats struct {
	Zones      int
	Orphans    int
	Ambiguous  int
	Exceptions int
	Elapsed    time.Duration
}

type RebuildMetrics interface {
	RecordRebuild(stats RebuildStats)
}
