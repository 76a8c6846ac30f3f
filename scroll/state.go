// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/state.go
// Summary: Scroll state value published to triggers, pins and presentation.

package scroll

// Direction is the sign of the most recent offset change.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// State is a snapshot of the virtual scroll position. Offset always lies in
// [0, MaxOffset].
type State struct {
	Offset    float64 // smoothed position, advanced once per tick
	Target    float64 // where input wants the offset to be
	Velocity  float64 // rows per second over the last tick
	MaxOffset float64
	Direction Direction
	Suspended bool
}

// Progress returns Offset as a fraction of MaxOffset, or 0 when nothing scrolls.
func (s State) Progress() float64 {
	if s.MaxOffset <= 0 {
		return 0
	}
	return s.Offset / s.MaxOffset
}

// AtBottom reports whether the viewport is within buffer rows of the end.
func (s State) AtBottom(buffer float64) bool {
	return s.MaxOffset-s.Offset < buffer
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
