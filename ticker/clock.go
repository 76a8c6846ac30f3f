// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ticker/clock.go
// Summary: Time sources for the ticker: system time and a manually advanced clock.

package ticker

import "time"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the monotonic system clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a controllable time source for tests and replays.
type ManualClock struct {
	current time.Time
}

// NewManualClock creates a manual clock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{current: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time {
	return c.current
}

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.current = t
}

// Advance moves the clock forward by d and returns the new time.
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.current = c.current.Add(d)
	return c.current
}
