// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: stage/pointer.go
// Summary: Explicit pointer state with an eased follower ring.
// Notes: The host is the only writer; renderers read snapshots.

package stage

import (
	"math"
	"time"

	"github.com/framegrace/scrollstage/ticker"
)

// PointerState is a snapshot of the pointer.
type PointerState struct {
	X, Y         float64
	RingX, RingY float64
	Hovering     bool
	Visible      bool
}

// Pointer tracks the pointer position and a ring that trails it.
type Pointer struct {
	state PointerState
	ease  float64
}

func newPointer(ease float64) *Pointer {
	if ease <= 0 || ease > 1 {
		ease = DefaultFollowEase
	}
	return &Pointer{ease: ease}
}

// Move records a new position. The first move places the ring directly under
// the pointer.
func (p *Pointer) Move(x, y float64) {
	p.state.X, p.state.Y = x, y
	if !p.state.Visible {
		p.state.Visible = true
		p.state.RingX, p.state.RingY = x, y
	}
}

// SetHovering marks whether the pointer is over an interactive element.
func (p *Pointer) SetHovering(h bool) {
	p.state.Hovering = h
}

// Hide marks the pointer as having left the viewport.
func (p *Pointer) Hide() {
	p.state.Visible = false
	p.state.Hovering = false
}

// State returns a snapshot.
func (p *Pointer) State() PointerState {
	return p.state
}

// step eases the ring toward the pointer by 1-(1-ease)^(dt/16.67ms).
func (p *Pointer) step(dt time.Duration) {
	if !p.state.Visible || dt <= 0 {
		return
	}
	factor := 1 - math.Pow(1-p.ease, ticker.DeltaRatio(dt))
	p.state.RingX += (p.state.X - p.state.RingX) * factor
	p.state.RingY += (p.state.Y - p.state.RingY) * factor
}
