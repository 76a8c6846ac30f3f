// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/sequence.go
// Summary: Step sequences: ordered property tweens with overlaps and delays,
// played forwards or backwards by elapsed frame time.
// Usage: Build with NewSequence, drive with Update(dt) from a Manager, read
// property values with Value when rendering.
// Notes: A Sequence satisfies trigger.Animation so toggle actions can drive it.

package effects

import "time"

// Step tweens one property from From to To. Delay is measured from the end of
// the previous step; a negative Delay overlaps it.
type Step struct {
	Property string
	From, To float64
	Delay    time.Duration
	Duration time.Duration
	Easing   EasingFunc
}

type placedStep struct {
	Step
	start time.Duration
}

// Sequence plays a list of steps on a shared local timeline. It is not safe
// for concurrent use.
type Sequence struct {
	name  string
	steps []placedStep
	total time.Duration

	pos      time.Duration
	forward  bool
	playing  bool
	paused   bool
	complete bool

	onComplete        []func()
	onReverseComplete []func()
}

// NewSequence places steps back to back, honouring each step's Delay. The
// first step starts at its own Delay (clamped at zero).
func NewSequence(name string, steps ...Step) *Sequence {
	s := &Sequence{name: name, forward: true}
	cursor := time.Duration(0)
	for _, st := range steps {
		if st.Easing == nil {
			st.Easing = EaseLinear
		}
		if st.Duration < 0 {
			st.Duration = 0
		}
		start := cursor + st.Delay
		if start < 0 {
			start = 0
		}
		s.steps = append(s.steps, placedStep{Step: st, start: start})
		cursor = start + st.Duration
		if cursor > s.total {
			s.total = cursor
		}
	}
	return s
}

// Name returns the label given at construction.
func (s *Sequence) Name() string { return s.name }

// Duration is the time from the start of the first step to the end of the last.
func (s *Sequence) Duration() time.Duration { return s.total }

// Position returns the current local time.
func (s *Sequence) Position() time.Duration { return s.pos }

// StartOf returns when the first step touching property starts.
func (s *Sequence) StartOf(property string) (time.Duration, bool) {
	for _, st := range s.steps {
		if st.Property == property {
			return st.start, true
		}
	}
	return 0, false
}

// OnComplete registers fn to run each time forward playback reaches the end.
func (s *Sequence) OnComplete(fn func()) {
	if fn != nil {
		s.onComplete = append(s.onComplete, fn)
	}
}

// OnReverseComplete registers fn to run each time reverse playback reaches the start.
func (s *Sequence) OnReverseComplete(fn func()) {
	if fn != nil {
		s.onReverseComplete = append(s.onReverseComplete, fn)
	}
}

// Play runs forwards from the current position.
func (s *Sequence) Play() {
	s.forward = true
	s.paused = false
	if s.pos >= s.total {
		s.finishForward()
		return
	}
	s.playing = true
}

// Reverse runs backwards from the current position. A running sequence that
// is still at the start finishes its reverse at once.
func (s *Sequence) Reverse() {
	wasPlaying := s.playing
	s.forward = false
	s.paused = false
	if s.pos <= 0 {
		s.playing = false
		s.complete = false
		if wasPlaying {
			for _, fn := range s.onReverseComplete {
				fn()
			}
		}
		return
	}
	s.playing = true
	s.complete = false
}

// Restart jumps to the start and plays forwards.
func (s *Sequence) Restart() {
	s.pos = 0
	s.complete = false
	s.Play()
}

// Reset jumps to the start and stops.
func (s *Sequence) Reset() {
	s.pos = 0
	s.forward = true
	s.playing = false
	s.paused = false
	s.complete = false
}

// Pause freezes playback at the current position.
func (s *Sequence) Pause() {
	if s.playing {
		s.paused = true
	}
}

// Resume continues a paused sequence in its previous direction.
func (s *Sequence) Resume() {
	s.paused = false
}

// Complete jumps to the end.
func (s *Sequence) Complete() {
	s.forward = true
	s.paused = false
	s.pos = s.total
	s.finishForward()
}

// Active reports whether the sequence is advancing.
func (s *Sequence) Active() bool {
	return s.playing && !s.paused
}

// Completed reports whether forward playback has reached the end.
func (s *Sequence) Completed() bool {
	return s.complete
}

// Update advances the local time by dt in the current direction.
func (s *Sequence) Update(dt time.Duration) {
	if !s.Active() || dt <= 0 {
		return
	}
	if s.forward {
		s.pos += dt
		if s.pos >= s.total {
			s.pos = s.total
			s.finishForward()
		}
		return
	}
	s.pos -= dt
	if s.pos <= 0 {
		s.pos = 0
		s.playing = false
		for _, fn := range s.onReverseComplete {
			fn()
		}
	}
}

func (s *Sequence) finishForward() {
	wasComplete := s.complete && !s.playing
	s.playing = false
	s.complete = true
	if wasComplete {
		return
	}
	for _, fn := range s.onComplete {
		fn()
	}
}

// Value returns property's value at the current position. Before its first
// step starts a property holds that step's From value; after a step ends it
// holds To until a later step takes over.
func (s *Sequence) Value(property string) float64 {
	v, _ := s.lookup(property)
	return v
}

// Has reports whether any step animates property.
func (s *Sequence) Has(property string) bool {
	_, ok := s.lookup(property)
	return ok
}

func (s *Sequence) lookup(property string) (float64, bool) {
	found := false
	value := 0.0
	for _, st := range s.steps {
		if st.Property != property {
			continue
		}
		if !found {
			found = true
			value = st.From
		}
		if s.pos < st.start {
			break
		}
		value = st.at(s.pos - st.start)
	}
	return value, found
}

func (st placedStep) at(elapsed time.Duration) float64 {
	if st.Duration <= 0 || elapsed >= st.Duration {
		return st.To
	}
	p := float64(elapsed) / float64(st.Duration)
	return st.From + (st.To-st.From)*st.Easing(p)
}
