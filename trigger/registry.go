// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: trigger/registry.go
// Summary: Registry of viewport triggers evaluated against the virtual scroll offset.
// Usage: Subscribe Update to the scroll controller; call RefreshAll after layout changes.
// Notes: Bounds are cached per handle and only re-read by RefreshAll.

package trigger

import (
	"log"

	"github.com/framegrace/scrollstage/scroll"
)

// Element reports a region's position in content coordinates.
type Element interface {
	Rect() (top, height float64)
}

// ElementFunc adapts a function to Element.
type ElementFunc func() (top, height float64)

func (f ElementFunc) Rect() (float64, float64) { return f() }

// Viewport reports the visible area size.
type Viewport interface {
	ViewportSize() (width, height float64)
}

// State is where the offset sits relative to a trigger's span.
type State int

const (
	Idle    State = iota // before start
	Entered              // between start and end
	Passed               // beyond end
)

func (s State) String() string {
	switch s {
	case Entered:
		return "entered"
	case Passed:
		return "passed"
	}
	return "idle"
}

// Handle identifies a registered trigger.
type Handle uint64

var (
	defaultStart = AnchorPosition{Element: AnchorTop, Viewport: AnchorBottom, raw: "top bottom"}
	defaultEnd   = AnchorPosition{Element: AnchorBottom, Viewport: AnchorTop, raw: "bottom top"}
)

// Descriptor configures a trigger. Start defaults to "top bottom" and End to
// "bottom top".
type Descriptor struct {
	ID       string
	Element  Element
	Start    Position
	End      Position
	Actions  Actions
	OnUpdate func(progress float64)
}

type entry struct {
	handle Handle
	desc   Descriptor

	start, end float64

	state     State
	direction scroll.Direction
	progress  float64
	offset    float64
	evaluated bool
	removed   bool
}

// Registry owns every trigger's state. It is not safe for concurrent use.
type Registry struct {
	viewport Viewport
	entries  []*entry
	pending  []*entry
	byHandle map[Handle]*entry
	next     Handle
	updating bool
}

// NewRegistry creates an empty registry measuring against vp.
func NewRegistry(vp Viewport) *Registry {
	return &Registry{
		viewport: vp,
		byHandle: make(map[Handle]*entry),
	}
}

// Register adds a trigger and measures its bounds. A trigger registered while
// an update is running is first evaluated on the next update.
func (r *Registry) Register(d Descriptor) Handle {
	if d.Start == nil {
		d.Start = defaultStart
	}
	if d.End == nil {
		d.End = defaultEnd
	}
	r.next++
	e := &entry{handle: r.next, desc: d}
	r.measure(e)
	r.byHandle[e.handle] = e
	if r.updating {
		r.pending = append(r.pending, e)
	} else {
		r.entries = append(r.entries, e)
	}
	return e.handle
}

// Unregister removes a trigger immediately. Unknown handles are ignored.
func (r *Registry) Unregister(h Handle) {
	e, ok := r.byHandle[h]
	if !ok {
		return
	}
	delete(r.byHandle, h)
	e.removed = true
	for i, p := range r.pending {
		if p == e {
			r.pending = append(r.pending[:i], r.pending[i+1:]...)
			break
		}
	}
	if !r.updating {
		r.compact()
	}
}

// Len returns the number of registered triggers.
func (r *Registry) Len() int {
	return len(r.byHandle)
}

// RefreshAll re-measures every trigger's bounds from current layout.
func (r *Registry) RefreshAll() {
	for _, e := range r.entries {
		if !e.removed {
			r.measure(e)
		}
	}
	for _, e := range r.pending {
		r.measure(e)
	}
	log.Printf("Trigger: refreshed %d triggers", len(r.byHandle))
}

// Update evaluates every trigger against the offset in s. It is meant to be
// subscribed to the scroll controller so all triggers see the same offset.
func (r *Registry) Update(s scroll.State) {
	r.updating = true
	for _, e := range r.entries {
		if e.removed {
			continue
		}
		r.evaluate(e, s.Offset)
	}
	r.updating = false

	r.compact()
	if len(r.pending) > 0 {
		r.entries = append(r.entries, r.pending...)
		r.pending = nil
	}
}

// Progress returns the trigger's last computed progress.
func (r *Registry) Progress(h Handle) (float64, bool) {
	e, ok := r.byHandle[h]
	if !ok {
		return 0, false
	}
	return e.progress, true
}

// State returns the trigger's state and the direction of its last evaluation.
func (r *Registry) State(h Handle) (State, scroll.Direction, bool) {
	e, ok := r.byHandle[h]
	if !ok {
		return Idle, scroll.Forward, false
	}
	return e.state, e.direction, true
}

// Bounds returns the cached start and end offsets.
func (r *Registry) Bounds(h Handle) (start, end float64, ok bool) {
	e, ok := r.byHandle[h]
	if !ok {
		return 0, 0, false
	}
	return e.start, e.end, true
}

func (r *Registry) metrics(e *entry) Metrics {
	var m Metrics
	if r.viewport != nil {
		m.ViewportWidth, m.ViewportHeight = r.viewport.ViewportSize()
	}
	if e.desc.Element != nil {
		m.ElementTop, m.ElementHeight = e.desc.Element.Rect()
	}
	return m
}

// measure keeps the previous bounds when a position fails to resolve.
func (r *Registry) measure(e *entry) {
	m := r.metrics(e)
	start, err := e.desc.Start.Resolve(m, 0)
	if err != nil {
		log.Printf("Trigger: %s start %s: %v", e.desc.ID, e.desc.Start, err)
		return
	}
	end, err := e.desc.End.Resolve(m, start)
	if err != nil {
		log.Printf("Trigger: %s end %s: %v", e.desc.ID, e.desc.End, err)
		return
	}
	if end < start {
		end = start
	}
	e.start, e.end = start, end
}

func (r *Registry) evaluate(e *entry, offset float64) {
	if e.evaluated {
		if offset > e.offset {
			e.direction = scroll.Forward
		} else if offset < e.offset {
			e.direction = scroll.Backward
		}
	}
	e.offset = offset

	var progress float64
	span := e.end - e.start
	switch {
	case span > 0:
		progress = clamp01((offset - e.start) / span)
	case offset >= e.start:
		progress = 1
	}

	next := Entered
	if offset < e.start {
		next = Idle
	} else if offset > e.end {
		next = Passed
	}

	prev := e.state
	progressChanged := !e.evaluated || progress != e.progress
	e.state = next
	e.progress = progress
	e.evaluated = true

	if next != prev {
		fireTransitions(e.desc.Actions, prev, next)
	}
	if progressChanged && e.desc.OnUpdate != nil && !e.removed {
		e.desc.OnUpdate(progress)
	}
}

// fireTransitions fires the slots crossed between two states, in crossing order.
func fireTransitions(a Actions, from, to State) {
	switch {
	case from == Idle && to == Entered:
		call(a.OnEnter)
	case from == Idle && to == Passed:
		call(a.OnEnter)
		call(a.OnLeave)
	case from == Entered && to == Passed:
		call(a.OnLeave)
	case from == Passed && to == Entered:
		call(a.OnEnterBack)
	case from == Passed && to == Idle:
		call(a.OnEnterBack)
		call(a.OnLeaveBack)
	case from == Entered && to == Idle:
		call(a.OnLeaveBack)
	}
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

func (r *Registry) compact() {
	live := r.entries[:0]
	for _, e := range r.entries {
		if !e.removed {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(r.entries); i++ {
		r.entries[i] = nil
	}
	r.entries = live
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
