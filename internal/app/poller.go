package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/five82/chromaview/internal/bridge"
	"github.com/five82/chromaview/internal/logging"
	"github.com/five82/chromaview/internal/state"
)

const (
	defaultHealthInterval = 5 * time.Second
	maxBackoff            = 30 * time.Second
)

// StartHeartbeat launches a background goroutine that health-checks the
// connected server and records the outcome in the store. Failures back off
// exponentially. It returns immediately.
func StartHeartbeat(ctx context.Context, store *state.Store, b *bridge.Bridge, interval time.Duration) {
	if interval <= 0 {
		interval = defaultHealthInterval
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			failures := checkHealth(ctx, store, b)
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// checkHealth runs one health_check while connected and returns the
// consecutive failure count.
func checkHealth(ctx context.Context, store *state.Store, b *bridge.Bridge) int {
	if !store.Snapshot().Connected {
		return 0
	}
	res := bridge.Invoke[bool](ctx, b, bridge.HealthCheck, nil)
	if !res.OK() {
		store.Dispatch(state.Heartbeat{Err: errors.New(res.Err)})
		snap := store.Snapshot()
		logging.FromContext(ctx).Warn("heartbeat failed",
			zap.String("error", res.Err),
			zap.Int("consecutive_failures", snap.ConsecutiveFailures))
		return snap.ConsecutiveFailures
	}
	store.Dispatch(state.Heartbeat{})
	return 0
}

// calculateBackoff doubles base for each consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
