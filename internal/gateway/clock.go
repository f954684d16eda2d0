package gateway

import (
	"context"
	"time"
)

// Sleeper abstracts pacing delays so tests can run the gateway and the
// orchestrator with zero real wait.
type Sleeper interface {
	// Sleep blocks for d or until the context is done.
	Sleep(ctx context.Context, d time.Duration)
}

// RealSleeper sleeps on the wall clock.
type RealSleeper struct{}

// Sleep blocks for d or until ctx is cancelled.
func (RealSleeper) Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// NopSleeper never sleeps. Used in tests.
type NopSleeper struct{}

// Sleep returns immediately.
func (NopSleeper) Sleep(context.Context, time.Duration) {}
