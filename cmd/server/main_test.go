package main

import (
	"context"
	"testing"
	"time"

	"mapapylife/internal/config"
)

func TestNewRateLimiter_DisabledReturnsNil(t *testing.T) {
	lim, err := newRateLimiter(config.RateLimitConfig{Enabled: false}, nil)
	if err != nil {
		t.Fatalf("newRateLimiter error: %v", err)
	}
	if lim != nil {
		t.Fatalf("expected no limiter when disabled")
	}
}

func TestNewRateLimiter_MemoryStore(t *testing.T) {
	lim, err := newRateLimiter(config.RateLimitConfig{Enabled: true, Limit: 2, Period: time.Minute}, nil)
	if err != nil {
		t.Fatalf("newRateLimiter error: %v", err)
	}
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		lc, err := lim.Get(ctx, "203.0.113.1")
		if err != nil || lc.Reached {
			t.Fatalf("request %d should pass: %+v err=%v", i, lc, err)
		}
	}
	lc, err := lim.Get(ctx, "203.0.113.1")
	if err != nil || !lc.Reached {
		t.Fatalf("third request should be limited: %+v err=%v", lc, err)
	}
}
