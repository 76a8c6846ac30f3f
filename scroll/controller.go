// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/controller.go
// Summary: Virtual scroll controller with frame-rate independent smoothing.
// Usage: Input handlers call ApplyInput; the stage engine calls Tick once per frame.
// Notes: Suspended input is discarded, not queued.

package scroll

import (
	"log"
	"math"
	"time"
)

const (
	DefaultEase        = 0.1
	DefaultRefreshRate = 60.0

	// snapDistance is the gap below which the offset lands exactly on target.
	snapDistance = 0.01
)

// ContentSource reports the measured content and viewport heights.
type ContentSource interface {
	ContentHeight() float64
	ViewportHeight() float64
}

// Gate decides whether scrolling may resume.
type Gate interface {
	Ready() bool
}

// GateFunc adapts a function to Gate.
type GateFunc func() bool

func (f GateFunc) Ready() bool { return f() }

// Options tunes the approach curve.
type Options struct {
	// Ease is the fraction of the remaining distance covered per reference
	// frame, in (0, 1).
	Ease float64
	// RefreshRate is the reference frame rate the ease is expressed against.
	RefreshRate float64
}

// DefaultOptions returns the stock smoothing parameters.
func DefaultOptions() Options {
	return Options{Ease: DefaultEase, RefreshRate: DefaultRefreshRate}
}

// Controller owns the virtual scroll state. It starts suspended and is not
// safe for concurrent use.
type Controller struct {
	src   ContentSource
	gate  Gate
	opts  Options
	state State

	subscribers []subscriber
	nextSub     int
}

type subscriber struct {
	id int
	fn func(State)
}

// NewController creates a suspended controller measuring src.
func NewController(src ContentSource, opts Options) *Controller {
	if opts.Ease <= 0 || opts.Ease >= 1 {
		opts.Ease = DefaultEase
	}
	if opts.RefreshRate <= 0 {
		opts.RefreshRate = DefaultRefreshRate
	}
	c := &Controller{src: src, opts: opts}
	c.state.Suspended = true
	c.Resize()
	return c
}

// SetGate installs the readiness check consulted by Start.
func (c *Controller) SetGate(g Gate) {
	c.gate = g
}

// State returns a copy of the current scroll state.
func (c *Controller) State() State {
	return c.state
}

// Active reports whether input is currently honoured.
func (c *Controller) Active() bool {
	return !c.state.Suspended
}

// ApplyInput moves the target by delta rows.
func (c *Controller) ApplyInput(delta float64) {
	if c.state.Suspended {
		return
	}
	c.state.Target = clamp(c.state.Target+delta, 0, c.state.MaxOffset)
}

// ScrollTo sets the target directly. With immediate set the offset jumps there
// without easing.
func (c *Controller) ScrollTo(offset float64, immediate bool) {
	if c.state.Suspended {
		return
	}
	c.state.Target = clamp(offset, 0, c.state.MaxOffset)
	if immediate {
		c.state.Offset = c.state.Target
		c.state.Velocity = 0
	}
}

// Tick advances the offset toward the target by an exponential approach and
// publishes the result. The step depends only on elapsed time, so the offset
// converges without overshoot at any frame cadence.
func (c *Controller) Tick(dt time.Duration) {
	prev := c.state.Offset
	if !c.state.Suspended && dt > 0 {
		frames := dt.Seconds() * c.opts.RefreshRate
		factor := 1 - math.Pow(1-c.opts.Ease, frames)
		gap := c.state.Target - c.state.Offset
		next := c.state.Offset + gap*factor
		if math.Abs(c.state.Target-next) < snapDistance {
			next = c.state.Target
		}
		c.state.Offset = clamp(next, 0, c.state.MaxOffset)
	}

	delta := c.state.Offset - prev
	if dt > 0 {
		c.state.Velocity = delta / dt.Seconds()
	} else {
		c.state.Velocity = 0
	}
	if delta > 0 {
		c.state.Direction = Forward
	} else if delta < 0 {
		c.state.Direction = Backward
	}
	c.publish()
}

// Stop suspends scrolling and freezes any in-flight approach.
func (c *Controller) Stop() {
	if c.state.Suspended {
		return
	}
	c.state.Suspended = true
	c.state.Target = c.state.Offset
	c.state.Velocity = 0
	log.Printf("Scroll: stopped at offset %.2f", c.state.Offset)
}

// Start resumes scrolling. It does nothing until the gate reports ready.
func (c *Controller) Start() {
	if !c.state.Suspended {
		return
	}
	if c.gate != nil && !c.gate.Ready() {
		return
	}
	c.state.Suspended = false
	log.Printf("Scroll: started at offset %.2f", c.state.Offset)
}

// Resize recomputes MaxOffset from the content source and re-clamps. Calling
// it repeatedly without a layout change leaves the state unchanged.
func (c *Controller) Resize() {
	maxOffset := 0.0
	if c.src != nil {
		maxOffset = math.Max(0, c.src.ContentHeight()-c.src.ViewportHeight())
	}
	c.state.MaxOffset = maxOffset
	c.state.Target = clamp(c.state.Target, 0, maxOffset)
	c.state.Offset = clamp(c.state.Offset, 0, maxOffset)
}

// Reset forces the offset and target to the top and publishes immediately.
func (c *Controller) Reset() {
	c.state.Offset = 0
	c.state.Target = 0
	c.state.Velocity = 0
	c.state.Direction = Backward
	c.publish()
}

// Subscribe registers fn to receive the state after every tick. Subscribers
// are called in subscription order. The returned function unsubscribes.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.nextSub++
	id := c.nextSub
	c.subscribers = append(c.subscribers, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range c.subscribers {
			if s.id == id {
				c.subscribers = append(c.subscribers[:i:i], c.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (c *Controller) publish() {
	subs := c.subscribers
	st := c.state
	for _, s := range subs {
		s.fn(st)
	}
}
