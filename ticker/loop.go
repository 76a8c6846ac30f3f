// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ticker/loop.go
// Summary: Single-goroutine frame loop that interleaves frames with host events.

package ticker

import (
	"context"
	"log"
	"time"
)

// Run drives the ticker at the given interval until ctx is cancelled. Closures
// received on inbox (input, resize, overlay toggles) run on the same goroutine
// between frames, so engine state only ever has one writer at a time.
func (t *Ticker) Run(ctx context.Context, interval time.Duration, inbox <-chan func()) error {
	if interval <= 0 {
		interval = time.Second / 60
	}
	frames := time.NewTicker(interval)
	defer frames.Stop()

	log.Printf("Ticker: frame loop started (interval %v)", interval)
	for {
		select {
		case <-ctx.Done():
			log.Printf("Ticker: frame loop stopped after %d frames", t.frames)
			return ctx.Err()
		case fn, ok := <-inbox:
			if !ok {
				inbox = nil
				continue
			}
			if fn != nil {
				fn()
			}
		case <-frames.C:
			t.Tick(t.clock.Now())
		}
	}
}
