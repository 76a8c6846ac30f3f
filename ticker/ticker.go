// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ticker/ticker.go
// Summary: Per-process animation clock that drives every scroll-driven component.
// Usage: The stage engine registers one ordered listener; effects and the pointer
// follower register their own.
// Notes: Elapsed time is reported as measured, never clamped or smoothed.

package ticker

import (
	"time"
)

// Listener receives the frame timestamp and the wall-clock time elapsed since
// the previous frame.
type Listener func(now time.Time, dt time.Duration)

// ListenerID identifies a registered listener for removal.
type ListenerID uint64

type listenerEntry struct {
	id      ListenerID
	fn      Listener
	removed bool
}

// Ticker invokes its listeners once per frame. It is not safe for concurrent
// use; all calls must happen on the goroutine that drives Tick (see Run).
type Ticker struct {
	clock     Clock
	listeners []*listenerEntry
	pending   []*listenerEntry
	nextID    ListenerID
	ticking   bool

	last   time.Time
	frames uint64

	timers timerQueue
}

// New creates a ticker reading time from clock. A nil clock uses the system clock.
func New(clock Clock) *Ticker {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Ticker{clock: clock}
}

// Clock returns the time source used by the ticker.
func (t *Ticker) Clock() Clock {
	return t.clock
}

// Add registers fn. A listener added while a frame is being dispatched runs
// from the next frame on.
func (t *Ticker) Add(fn Listener) ListenerID {
	t.nextID++
	entry := &listenerEntry{id: t.nextID, fn: fn}
	if t.ticking {
		t.pending = append(t.pending, entry)
	} else {
		t.listeners = append(t.listeners, entry)
	}
	return entry.id
}

// Remove unregisters a listener. Removal is immediate: a listener removed
// mid-frame is not called again, even later in the same frame.
func (t *Ticker) Remove(id ListenerID) {
	for _, e := range t.listeners {
		if e.id == id {
			e.removed = true
		}
	}
	for i, e := range t.pending {
		if e.id == id {
			t.pending = append(t.pending[:i], t.pending[i+1:]...)
			break
		}
	}
	if !t.ticking {
		t.compact()
	}
}

// Len reports the number of live listeners, including ones queued for the next frame.
func (t *Ticker) Len() int {
	n := len(t.pending)
	for _, e := range t.listeners {
		if !e.removed {
			n++
		}
	}
	return n
}

// Frames returns how many frames have been dispatched.
func (t *Ticker) Frames() uint64 {
	return t.frames
}

// Tick dispatches one frame. Due timers run first, then listeners in
// registration order. The first frame reports dt = 0.
func (t *Ticker) Tick(now time.Time) {
	var dt time.Duration
	if !t.last.IsZero() {
		dt = now.Sub(t.last)
	}
	t.last = now
	t.frames++

	t.timers.runDue(now)

	t.ticking = true
	for _, e := range t.listeners {
		if e.removed {
			continue
		}
		e.fn(now, dt)
	}
	t.ticking = false

	t.compact()
	if len(t.pending) > 0 {
		t.listeners = append(t.listeners, t.pending...)
		t.pending = nil
	}
}

func (t *Ticker) compact() {
	live := t.listeners[:0]
	for _, e := range t.listeners {
		if !e.removed {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(t.listeners); i++ {
		t.listeners[i] = nil
	}
	t.listeners = live
}

// now is the reference instant for scheduling timers: the last frame time, or
// the clock when no frame has been dispatched yet.
func (t *Ticker) now() time.Time {
	if t.last.IsZero() {
		return t.clock.Now()
	}
	return t.last
}

// DeltaRatio expresses dt as a multiple of a 60 Hz frame. Per-frame easing
// factors raised to this power stay frame-rate independent.
func DeltaRatio(dt time.Duration) float64 {
	return float64(dt) / float64(time.Second/60)
}
