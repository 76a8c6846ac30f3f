// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: lock/arbiter.go
// Summary: Token-based scroll lock arbiter shared by the preloader and overlays.
// Usage: Each overlay mints one Token and calls Acquire on open, Release on close.
// Notes: Ownership is by token identity, so double acquire or double release
// by one owner cannot unbalance the lock.

package lock

import "log"

// Scroller is the scroll surface the arbiter suspends and resumes.
type Scroller interface {
	Stop()
	Start()
	Resize()
}

// Refresher re-measures scroll-driven layout.
type Refresher interface {
	RefreshAll()
}

// PhaseReader reports whether the page has finished loading.
type PhaseReader interface {
	Ready() bool
}

// Arbiter exclusively owns the lock set. It is not safe for concurrent use.
type Arbiter struct {
	scroller  Scroller
	refresher Refresher
	phase     PhaseReader
	set       Set
}

// NewArbiter creates an arbiter with an empty lock set. refresher and phase may be nil.
func NewArbiter(s Scroller, r Refresher, p PhaseReader) *Arbiter {
	return &Arbiter{scroller: s, refresher: r, phase: p}
}

// SetPhase installs the phase reader, for wiring where the lifecycle gate is
// created after the arbiter.
func (a *Arbiter) SetPhase(p PhaseReader) {
	a.phase = p
}

// Acquire adds tok to the set. The first outstanding token stops scrolling.
func (a *Arbiter) Acquire(tok Token) {
	if tok.IsZero() {
		log.Printf("Lock: ignoring acquire of zero token")
		return
	}
	wasEmpty := a.set.Empty()
	if !a.set.Add(tok) {
		return
	}
	log.Printf("Lock: %s acquired (%d held)", tok, a.set.Len())
	if wasEmpty && a.scroller != nil {
		a.scroller.Stop()
	}
}

// Release removes tok from the set. Unknown or already released tokens are
// ignored. When the last token goes and the page is ready, scrolling resumes
// and layout is re-measured.
func (a *Arbiter) Release(tok Token) {
	if !a.set.Remove(tok) {
		return
	}
	log.Printf("Lock: %s released (%d held)", tok, a.set.Len())
	if !a.set.Empty() || !a.ready() {
		return
	}
	if a.scroller != nil {
		a.scroller.Start()
		a.scroller.Resize()
	}
	if a.refresher != nil {
		a.refresher.RefreshAll()
	}
}

// Locked reports whether any token is outstanding.
func (a *Arbiter) Locked() bool {
	return !a.set.Empty()
}

// Len returns the number of outstanding tokens.
func (a *Arbiter) Len() int {
	return a.set.Len()
}

// Holds reports whether tok is outstanding.
func (a *Arbiter) Holds(tok Token) bool {
	return a.set.Has(tok)
}

func (a *Arbiter) ready() bool {
	return a.phase == nil || a.phase.Ready()
}
