// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: lifecycle/gate.go
// Summary: Load/measure lifecycle gate: Loading -> Ready once per session,
// plus content-swap epochs that force re-measurement.
// Usage: Begin at startup, MarkLoaded when the preloader finishes,
// NotifyContentSwap whenever the top-level view changes.

package lifecycle

import (
	"log"
	"time"

	"github.com/framegrace/scrollstage/lock"
	"github.com/framegrace/scrollstage/ticker"
)

// DefaultSettleDelay lets the final paint commit before re-measuring.
const DefaultSettleDelay = 100 * time.Millisecond

// Phase is the page load phase.
type Phase int

const (
	Loading Phase = iota
	Ready
)

func (p Phase) String() string {
	if p == Ready {
		return "ready"
	}
	return "loading"
}

// Locker is the part of the lock arbiter the gate needs.
type Locker interface {
	Acquire(tok lock.Token)
	Release(tok lock.Token)
}

// Target is what the gate resets and re-measures.
type Target interface {
	Reset()
	Resize()
	RefreshAll()
}

// Scheduler runs deferred callbacks on the frame goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) *ticker.Timer
}

// Gate exclusively owns the lifecycle phase and content epoch. It is not safe
// for concurrent use.
type Gate struct {
	locker Locker
	target Target
	sched  Scheduler
	delay  time.Duration

	phase   Phase
	settled bool
	epoch   uint64
	token   lock.Token
	begun   bool

	loadSettle *ticker.Timer
	swapSettle *ticker.Timer
	onReady    []func()
}

// NewGate creates a gate in the Loading phase. A non-positive settle uses
// DefaultSettleDelay.
func NewGate(locker Locker, target Target, sched Scheduler, settle time.Duration) *Gate {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	return &Gate{
		locker: locker,
		target: target,
		sched:  sched,
		delay:  settle,
		token:  lock.NewToken("preloader"),
	}
}

// Begin enters Loading and takes the mandatory loading lock so scrolling
// starts suspended. Only the first call has an effect.
func (g *Gate) Begin() {
	if g.begun {
		return
	}
	g.begun = true
	log.Printf("Lifecycle: loading")
	if g.locker != nil {
		g.locker.Acquire(g.token)
	}
}

// MarkLoaded moves to Ready, releases the loading lock and, after the settle
// delay, resets the offset and re-measures. Only the first call has an effect.
// A gate that was never begun takes the loading lock first so the release
// always balances an acquire.
func (g *Gate) MarkLoaded() {
	if g.phase == Ready {
		return
	}
	g.Begin()
	g.phase = Ready
	log.Printf("Lifecycle: ready (epoch %d)", g.epoch)
	if g.locker != nil {
		g.locker.Release(g.token)
	}
	g.schedule(&g.loadSettle, func() {
		g.remeasure(true)
		g.settled = true
		callbacks := g.onReady
		g.onReady = nil
		for _, fn := range callbacks {
			fn()
		}
	})
}

// OnReady runs fn once the gate has settled after loading. If that already
// happened fn runs immediately.
func (g *Gate) OnReady(fn func()) {
	if fn == nil {
		return
	}
	if g.settled {
		fn()
		return
	}
	g.onReady = append(g.onReady, fn)
}

// NotifyContentSwap records a full-content swap: the offset returns to the top
// at once and layout is re-measured after the settle delay. A swap during
// Loading only bumps the epoch; the load completion re-measures anyway.
func (g *Gate) NotifyContentSwap() {
	g.epoch++
	if g.phase != Ready {
		return
	}
	log.Printf("Lifecycle: content swap (epoch %d)", g.epoch)
	if g.target != nil {
		g.target.Reset()
	}
	g.schedule(&g.swapSettle, func() { g.remeasure(false) })
}

// Phase returns the current phase.
func (g *Gate) Phase() Phase { return g.phase }

// Ready reports whether loading has completed.
func (g *Gate) Ready() bool { return g.phase == Ready }

// Settled reports whether the post-load re-measure has run.
func (g *Gate) Settled() bool { return g.settled }

// Epoch returns the number of content swaps so far.
func (g *Gate) Epoch() uint64 { return g.epoch }

// Close cancels any pending settle work.
func (g *Gate) Close() {
	for _, slot := range []**ticker.Timer{&g.loadSettle, &g.swapSettle} {
		if *slot != nil {
			(*slot).Stop()
			*slot = nil
		}
	}
}

// schedule replaces the settle pending in slot with fn. Without a scheduler
// fn runs now.
func (g *Gate) schedule(slot **ticker.Timer, fn func()) {
	if *slot != nil {
		(*slot).Stop()
		*slot = nil
	}
	if g.sched == nil {
		fn()
		return
	}
	var tm *ticker.Timer
	tm = g.sched.AfterFunc(g.delay, func() {
		if *slot != tm {
			return
		}
		*slot = nil
		fn()
	})
	*slot = tm
}

func (g *Gate) remeasure(reset bool) {
	if g.target == nil {
		return
	}
	if reset {
		g.target.Reset()
	}
	g.target.Resize()
	g.target.RefreshAll()
}
