// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: stage/engine.go
// Summary: Wires the ticker, scroll controller, trigger registry, pinned
// tracks, lock arbiter and lifecycle gate into one engine.
// Usage: New, then Begin; hosts feed input through the Run inbox and call
// RequestResize on layout changes.
// Notes: Per frame: coalesced resize, scroll tick, triggers, pins, then
// presentation subscribers. Every consumer sees the same offset in a frame.

package stage

import (
	"context"
	"log"
	"time"

	"github.com/framegrace/scrollstage/lifecycle"
	"github.com/framegrace/scrollstage/lock"
	"github.com/framegrace/scrollstage/pin"
	"github.com/framegrace/scrollstage/scroll"
	"github.com/framegrace/scrollstage/ticker"
	"github.com/framegrace/scrollstage/trigger"
)

// Engine owns every engine component. It is not safe for concurrent use; all
// calls must happen on the ticker goroutine (see Run).
type Engine struct {
	opts Options

	ticker    *ticker.Ticker
	scroll    *scroll.Controller
	triggers  *trigger.Registry
	pins      *pin.Controller
	locks     *lock.Arbiter
	lifecycle *lifecycle.Gate
	pointer   *Pointer

	frameID     ticker.ListenerID
	unsubscribe []func()
	resizeDirty bool
	closed      bool
}

// New builds an engine measuring content and vp. The engine starts in the
// loading phase holding the loading lock, so scrolling is suspended until
// the lifecycle is marked loaded.
func New(opts Options, content scroll.ContentSource, vp trigger.Viewport) *Engine {
	e := &Engine{opts: opts}
	e.ticker = ticker.New(opts.Clock)
	e.scroll = scroll.NewController(content, opts.Scroll)
	e.triggers = trigger.NewRegistry(vp)
	e.pins = pin.NewController(vp, e.ticker, opts.PinSettle)
	e.locks = lock.NewArbiter(e.scroll, e, nil)
	e.lifecycle = lifecycle.NewGate(e.locks, lifecycleTarget{e}, e.ticker, opts.LifecycleSettle)
	e.locks.SetPhase(e.lifecycle)
	e.pointer = newPointer(opts.FollowEase)

	e.scroll.SetGate(scroll.GateFunc(func() bool {
		return e.lifecycle.Ready() && !e.locks.Locked()
	}))
	e.unsubscribe = append(e.unsubscribe,
		e.scroll.Subscribe(e.triggers.Update),
		e.scroll.Subscribe(e.pins.Update),
	)
	e.frameID = e.ticker.Add(e.frame)
	e.lifecycle.Begin()
	return e
}

// Begin enters the loading phase. New already does this, so later calls
// have no effect.
func (e *Engine) Begin() {
	e.lifecycle.Begin()
}

func (e *Engine) frame(_ time.Time, dt time.Duration) {
	if e.resizeDirty {
		e.resizeDirty = false
		e.resize()
	}
	e.scroll.Tick(dt)
	e.pointer.step(dt)
}

// RequestResize marks layout dirty. However many requests arrive between two
// frames, the next frame re-measures once.
func (e *Engine) RequestResize() {
	e.resizeDirty = true
}

// ResizePending reports whether a re-measure is queued for the next frame.
func (e *Engine) ResizePending() bool {
	return e.resizeDirty
}

// resize re-measures pins first, since pinned travel adds to the content
// height the controller clamps against, then the controller and triggers.
func (e *Engine) resize() {
	e.pins.Refresh()
	e.scroll.Resize()
	e.triggers.RefreshAll()
}

// RefreshAll re-measures pinned tracks and trigger bounds against the
// current layout.
func (e *Engine) RefreshAll() {
	e.pins.Refresh()
	e.triggers.RefreshAll()
}

// OnFrame registers a presentation callback that runs after the engine has
// updated for the frame. The returned function unregisters it.
func (e *Engine) OnFrame(fn func(scroll.State)) func() {
	return e.scroll.Subscribe(fn)
}

// Run drives frames and inbox closures on the calling goroutine until ctx ends.
func (e *Engine) Run(ctx context.Context, inbox <-chan func()) error {
	return e.ticker.Run(ctx, e.opts.FrameInterval(), inbox)
}

// Close cancels pending settle work and detaches from the ticker. The engine
// must not be used afterwards.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.ticker.Remove(e.frameID)
	for _, unsub := range e.unsubscribe {
		unsub()
	}
	e.unsubscribe = nil
	e.lifecycle.Close()
	e.pins.Close()
	log.Printf("Stage: closed after %d frames", e.ticker.Frames())
}

func (e *Engine) Ticker() *ticker.Ticker { return e.ticker }
func (e *Engine) Scroll() *scroll.Controller { return e.scroll }
func (e *Engine) Triggers() *trigger.Registry { return e.triggers }
func (e *Engine) Pins() *pin.Controller { return e.pins }
func (e *Engine) Locks() *lock.Arbiter { return e.locks }
func (e *Engine) Lifecycle() *lifecycle.Gate { return e.lifecycle }
func (e *Engine) Pointer() *Pointer { return e.pointer }
func (e *Engine) Options() Options { return e.opts }

// lifecycleTarget adapts the engine to what the lifecycle gate re-measures.
type lifecycleTarget struct{ e *Engine }

func (t lifecycleTarget) Reset() { t.e.scroll.Reset() }

func (t lifecycleTarget) Resize() {
	t.e.pins.Refresh()
	t.e.scroll.Resize()
}

func (t lifecycleTarget) RefreshAll() { t.e.RefreshAll() }
