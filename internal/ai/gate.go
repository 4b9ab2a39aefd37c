// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"sync"
	"time"
)

// MinRequestInterval is the minimum spacing between any two calls to the
// generation service, shared by every caller in the process. It protects a
// single per-account rate limit on the remote side, at the cost of
// serializing throughput. It offers no protection against a second process.
const MinRequestInterval = 20 * time.Second

// Gate enforces the global minimum request interval. The last-request
// timestamp lives behind a mutex so concurrent callers observe a single
// serialized timeline; the clock and sleeper are injectable so tests run
// deterministically.
type Gate struct {
	mu       sync.Mutex
	last     time.Time
	interval time.Duration

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewGate creates a gate with the given minimum interval.
func NewGate(interval time.Duration) *Gate {
	if interval <= 0 {
		interval = MinRequestInterval
	}
	return &Gate{
		interval: interval,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// Wait blocks until the interval since the previous request has elapsed,
// then claims the current slot. The mutex is held across the wait so that
// back-to-back callers are spaced a full interval apart, not released in a
// burst. Returns early only if ctx is cancelled.
func (g *Gate) Wait(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.last.IsZero() {
		if elapsed := g.now().Sub(g.last); elapsed < g.interval {
			if err := g.sleep(ctx, g.interval-elapsed); err != nil {
				return err
			}
		}
	}

	g.last = g.now()
	return nil
}

// sleepCtx sleeps for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
