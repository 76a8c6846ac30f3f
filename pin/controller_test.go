// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package pin

import (
	"testing"
	"time"

	"github.com/framegrace/scrollstage/scroll"
	"github.com/framegrace/scrollstage/ticker"
	"github.com/framegrace/scrollstage/trigger"
)

type fakeViewport struct{ w, h float64 }

func (v *fakeViewport) ViewportSize() (float64, float64) { return v.w, v.h }

type fakeSection struct{ top, height float64 }

func (s *fakeSection) Rect() (float64, float64) { return s.top, s.height }

func at(offset float64) scroll.State { return scroll.State{Offset: offset} }

func TestTravelDistance(t *testing.T) {
	if got := TravelDistance(2000, 800); got != 1200 {
		t.Fatalf("TravelDistance(2000, 800) = %v, want 1200", got)
	}
	if got := TravelDistance(600, 800); got != 0 {
		t.Fatalf("TravelDistance(600, 800) = %v, want 0", got)
	}
}

func newFixture(t *testing.T, track float64) (*Controller, Handle, *fakeViewport, *float64, *ticker.Ticker, *ticker.ManualClock) {
	t.Helper()
	clock := ticker.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	tk := ticker.New(clock)
	vp := &fakeViewport{w: 800, h: 600}
	width := track
	c := NewController(vp, tk, 0)
	h := c.Configure(RegionConfig{
		ID:      "gallery",
		Section: &fakeSection{top: 1000, height: 600},
		Track:   TrackFunc(func() float64 { return width }),
	})
	return c, h, vp, &width, tk, clock
}

func TestScrubMapsOffsetOneToOne(t *testing.T) {
	c, h, _, _, _, _ := newFixture(t, 2000)

	c.Update(at(500))
	r, _ := c.Region(h)
	if r.Pinned || r.Progress != 0 || r.TranslateX != 0 {
		t.Fatalf("before region: %+v", r)
	}

	c.Update(at(1600))
	r, _ = c.Region(h)
	if !r.Pinned || r.Progress != 0.5 || r.TranslateX != -600 || r.Shift != 600 {
		t.Fatalf("mid region: %+v", r)
	}

	c.Update(at(2200))
	r, _ = c.Region(h)
	if !r.Pinned || r.Progress != 1 || r.TranslateX != -1200 {
		t.Fatalf("end of region: %+v", r)
	}

	c.Update(at(3000))
	r, _ = c.Region(h)
	if r.Pinned || r.Progress != 1 || r.Shift != 1200 {
		t.Fatalf("after region: %+v", r)
	}
}

func TestZeroTravelIsNoop(t *testing.T) {
	c, h, _, _, _, _ := newFixture(t, 600)
	for _, off := range []float64{0, 1000, 1200, 5000} {
		c.Update(at(off))
		r, _ := c.Region(h)
		if r.Pinned || r.Progress != 0 || r.TranslateX != 0 {
			t.Fatalf("zero-travel region moved at %v: %+v", off, r)
		}
	}
}

func TestRefreshRederivesProgressAgainstNewTravel(t *testing.T) {
	c, h, vp, _, _, _ := newFixture(t, 2000)
	c.Update(at(2100)) // 1100 into a 1200 travel
	r, _ := c.Region(h)
	if !r.Pinned {
		t.Fatalf("expected pinned before resize: %+v", r)
	}

	vp.w = 1400 // travel shrinks to 600
	c.Refresh()
	r, _ = c.Region(h)
	if r.TravelDistance != 600 {
		t.Fatalf("TravelDistance = %v, want 600", r.TravelDistance)
	}
	if r.Progress != 1 || r.Pinned || r.TranslateX != -600 {
		t.Fatalf("progress not re-clamped against new travel: %+v", r)
	}

	c.Update(at(1300))
	r, _ = c.Region(h)
	if r.Progress != 0.5 {
		t.Fatalf("progress after next tick = %v, want 0.5", r.Progress)
	}
}

func TestAssetsLoadedRefreshesAfterSettle(t *testing.T) {
	c, h, _, width, tk, clock := newFixture(t, 2000)
	tk.Tick(clock.Now())

	c.AssetsLoaded(h)
	*width = 3000

	tk.Tick(clock.Advance(100 * time.Millisecond))
	if r, _ := c.Region(h); r.TravelDistance != 1200 {
		t.Fatalf("refreshed before settle delay: %+v", r)
	}
	tk.Tick(clock.Advance(DefaultSettleDelay))
	if r, _ := c.Region(h); r.TravelDistance != 2200 {
		t.Fatalf("TravelDistance after settle = %v, want 2200", r.TravelDistance)
	}
}

func TestRemoveCancelsPendingSettle(t *testing.T) {
	c, h, _, _, tk, clock := newFixture(t, 2000)
	tk.Tick(clock.Now())

	c.AssetsLoaded(h)
	if tk.PendingTimers() != 1 {
		t.Fatalf("PendingTimers = %d, want 1", tk.PendingTimers())
	}
	c.Remove(h)
	if tk.PendingTimers() != 0 {
		t.Fatalf("settle timer survived Remove")
	}
	tk.Tick(clock.Advance(time.Second))

	if _, ok := c.Region(h); ok {
		t.Fatalf("removed region still resolvable")
	}
	if c.Len() != 0 {
		t.Fatalf("Len = %d, want 0", c.Len())
	}
	c.AssetsLoaded(h)
	if tk.PendingTimers() != 0 {
		t.Fatalf("AssetsLoaded on a stale handle scheduled work")
	}
}

func TestCustomStartPosition(t *testing.T) {
	vp := &fakeViewport{w: 100, h: 50}
	c := NewController(vp, nil, 0)
	h := c.Configure(RegionConfig{
		Section: &fakeSection{top: 300, height: 50},
		Track:   TrackFunc(func() float64 { return 300 }),
		Start:   trigger.MustParsePosition("top 20%"),
	})
	r, _ := c.Region(h)
	if r.RegionStart != 290 {
		t.Fatalf("RegionStart = %v, want 290", r.RegionStart)
	}
}

func TestOnUpdateReceivesRegion(t *testing.T) {
	vp := &fakeViewport{w: 100, h: 50}
	c := NewController(vp, nil, 0)
	var last Region
	c.Configure(RegionConfig{
		Section:  &fakeSection{top: 0, height: 50},
		Track:    TrackFunc(func() float64 { return 300 }),
		OnUpdate: func(r Region) { last = r },
	})
	c.Update(at(100))
	if last.Progress != 0.5 {
		t.Fatalf("OnUpdate progress = %v, want 0.5", last.Progress)
	}
}
