package auth

import (
	"testing"
	"time"
)

func TestThrottleBlocksAfterBurst(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	th := NewThrottle(3)
	th.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !th.Allow("10.0.0.1") {
			t.Fatalf("attempt %d blocked, want allowed", i+1)
		}
	}
	if th.Allow("10.0.0.1") {
		t.Error("fourth attempt within a minute allowed")
	}
	if !th.Allow("10.0.0.2") {
		t.Error("other client blocked by a shared bucket")
	}

	now = now.Add(20 * time.Second)
	if !th.Allow("10.0.0.1") {
		t.Error("attempt after refill interval blocked")
	}
}

func TestThrottleSweepsIdleVisitors(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	th := NewThrottle(1)
	th.now = func() time.Time { return now }

	th.Allow("a")
	now = now.Add(limiterIdleTTL + time.Second)
	th.Allow("b")

	if _, ok := th.visitors["a"]; ok {
		t.Error("idle visitor was not swept")
	}
}
