package main

import (
	"testing"

	"mapapylife/internal/app/gamesync"
)

func TestParseJob(t *testing.T) {
	job, err := parseJob([]string{"update_houses"})
	if err != nil || job != gamesync.JobHouses {
		t.Fatalf("parseJob=%q err=%v", job, err)
	}
	if _, err := parseJob(nil); err == nil {
		t.Fatalf("expected missing job to fail")
	}
	if _, err := parseJob([]string{"update_cars"}); err == nil {
		t.Fatalf("expected unknown job to fail")
	}
}
