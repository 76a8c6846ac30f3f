// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pin/controller.go
// Summary: Pinned horizontal-track controller.
// Usage: Configure one region per horizontally scrolling section, subscribe
// Update to the scroll controller, call Refresh on resize.
// Notes: Deferred settle refreshes are cancelled when a region is removed.

package pin

import (
	"log"
	"time"

	"github.com/framegrace/scrollstage/scroll"
	"github.com/framegrace/scrollstage/ticker"
	"github.com/framegrace/scrollstage/trigger"
)

// DefaultSettleDelay absorbs late layout shifts after a section's assets load.
const DefaultSettleDelay = 500 * time.Millisecond

// Track reports the measured width of a section's horizontal content.
type Track interface {
	ContentWidth() float64
}

// TrackFunc adapts a function to Track.
type TrackFunc func() float64

func (f TrackFunc) ContentWidth() float64 { return f() }

// Scheduler runs deferred callbacks on the frame goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) *ticker.Timer
}

// RegionConfig describes a pinned section. Start defaults to "top top": the
// section pins when its top reaches the viewport top.
type RegionConfig struct {
	ID       string
	Section  trigger.Element
	Track    Track
	Start    trigger.Position
	OnUpdate func(Region)
}

// Handle identifies a configured region. Handles are never reused, so a
// stale handle simply stops resolving.
type Handle uint64

type region struct {
	handle Handle
	cfg    RegionConfig
	state  Region
	settle *ticker.Timer
}

// Controller owns the state of every pinned region. It is not safe for
// concurrent use.
type Controller struct {
	viewport trigger.Viewport
	sched    Scheduler
	delay    time.Duration

	regions map[Handle]*region
	order   []Handle
	next    Handle
	offset  float64
}

// NewController creates a controller. A non-positive settle uses DefaultSettleDelay.
func NewController(vp trigger.Viewport, sched Scheduler, settle time.Duration) *Controller {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	return &Controller{
		viewport: vp,
		sched:    sched,
		delay:    settle,
		regions:  make(map[Handle]*region),
	}
}

// Configure registers a pinned region, measures it and maps the last seen offset.
func (c *Controller) Configure(cfg RegionConfig) Handle {
	if cfg.Start == nil {
		cfg.Start = trigger.AnchorPosition{Element: trigger.AnchorTop, Viewport: trigger.AnchorTop}
	}
	c.next++
	r := &region{handle: c.next, cfg: cfg}
	c.regions[r.handle] = r
	c.order = append(c.order, r.handle)
	c.measure(r)
	r.state.apply(c.offset)
	log.Printf("Pin: configured %s (travel %.1f)", cfg.ID, r.state.TravelDistance)
	return r.handle
}

// Remove tears a region down synchronously and cancels its pending settle.
func (c *Controller) Remove(h Handle) {
	r, ok := c.regions[h]
	if !ok {
		return
	}
	if r.settle != nil {
		r.settle.Stop()
		r.settle = nil
	}
	delete(c.regions, h)
	for i, oh := range c.order {
		if oh == h {
			c.order = append(c.order[:i:i], c.order[i+1:]...)
			break
		}
	}
}

// Close removes every region.
func (c *Controller) Close() {
	for _, h := range append([]Handle(nil), c.order...) {
		c.Remove(h)
	}
}

// Region returns a copy of a region's state.
func (c *Controller) Region(h Handle) (Region, bool) {
	r, ok := c.regions[h]
	if !ok {
		return Region{}, false
	}
	return r.state, true
}

// Len returns the number of configured regions.
func (c *Controller) Len() int {
	return len(c.regions)
}

// Update maps the offset in s onto every region.
func (c *Controller) Update(s scroll.State) {
	c.offset = s.Offset
	for _, h := range c.order {
		r, ok := c.regions[h]
		if !ok {
			continue
		}
		r.state.apply(s.Offset)
		if r.cfg.OnUpdate != nil {
			r.cfg.OnUpdate(r.state)
		}
	}
}

// Refresh re-measures every region and re-derives progress against the new
// travel distance using the last seen offset.
func (c *Controller) Refresh() {
	for _, h := range c.order {
		if r, ok := c.regions[h]; ok {
			c.refreshRegion(r)
		}
	}
}

// AssetsLoaded schedules one deferred refresh of the region after the settle
// delay. Calling it again replaces the pending refresh.
func (c *Controller) AssetsLoaded(h Handle) {
	r, ok := c.regions[h]
	if !ok || c.sched == nil {
		return
	}
	if r.settle != nil {
		r.settle.Stop()
	}
	r.settle = c.sched.AfterFunc(c.delay, func() {
		live, ok := c.regions[h]
		if !ok {
			return
		}
		live.settle = nil
		c.refreshRegion(live)
		log.Printf("Pin: %s settled (travel %.1f)", live.cfg.ID, live.state.TravelDistance)
	})
}

func (c *Controller) refreshRegion(r *region) {
	c.measure(r)
	r.state.apply(c.offset)
}

func (c *Controller) measure(r *region) {
	var m trigger.Metrics
	if c.viewport != nil {
		m.ViewportWidth, m.ViewportHeight = c.viewport.ViewportSize()
	}
	if r.cfg.Section != nil {
		m.ElementTop, m.ElementHeight = r.cfg.Section.Rect()
	}
	start, err := r.cfg.Start.Resolve(m, 0)
	if err != nil {
		log.Printf("Pin: %s start %s: %v", r.cfg.ID, r.cfg.Start, err)
		start = m.ElementTop
	}

	track := 0.0
	if r.cfg.Track != nil {
		track = r.cfg.Track.ContentWidth()
	}
	r.state.RegionStart = start
	r.state.TrackWidth = track
	r.state.ViewportWidth = m.ViewportWidth
	r.state.TravelDistance = TravelDistance(track, m.ViewportWidth)
}
