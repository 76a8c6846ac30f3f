// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package site

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/scrollstage/config"
	"github.com/framegrace/scrollstage/internal/effects"
	"github.com/framegrace/scrollstage/stage"
)

// grid is an in-memory canvas.
type grid struct {
	w, h  int
	cells [][]rune
}

func newGrid(w, h int) *grid {
	g := &grid{w: w, h: h, cells: make([][]rune, h)}
	for y := range g.cells {
		g.cells[y] = make([]rune, w)
	}
	return g
}

func (g *grid) Size() (int, int) { return g.w, g.h }

func (g *grid) SetContent(x, y int, mainc rune, _ []rune, _ tcell.Style) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.cells[y][x] = mainc
}

func (g *grid) row(y int) string {
	return strings.TrimRight(string(g.cells[y]), " \x00")
}

func (g *grid) contains(s string) bool {
	for y := 0; y < g.h; y++ {
		if strings.Contains(string(g.cells[y]), s) {
			return true
		}
	}
	return false
}

type harness struct {
	t    *testing.T
	site *Site
	grid *grid
	now  time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWith(t, DefaultOptions())
}

func newHarnessWith(t *testing.T, opts Options) *harness {
	t.Helper()
	g := newGrid(80, 24)
	s, err := New(opts, stage.DefaultOptions(), g, 80, 24)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(s.Close)
	h := &harness{t: t, site: s, grid: g, now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	h.tick(0)
	return h
}

func (h *harness) tick(d time.Duration) {
	h.now = h.now.Add(d)
	h.site.Engine().Ticker().Tick(h.now)
}

// run advances d in 60 Hz frames.
func (h *harness) run(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += time.Second / 60 {
		h.tick(time.Second / 60)
	}
}

// load plays the preloader through and waits for the engine to settle.
func (h *harness) load() {
	h.site.Start()
	h.run(3200 * time.Millisecond)
	if !h.site.Engine().Lifecycle().Settled() {
		h.t.Fatalf("site did not settle after the preloader")
	}
}

func (h *harness) jump(offset float64) {
	h.site.Engine().Scroll().ScrollTo(offset, true)
	h.tick(time.Second / 60)
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestPreloaderHoldsScrollUntilComplete(t *testing.T) {
	h := newHarness(t)
	h.site.Start()
	h.run(1200 * time.Millisecond)
	eng := h.site.Engine()
	if eng.Scroll().Active() || eng.Lifecycle().Ready() {
		t.Fatalf("scroll released during the preloader")
	}
	if !h.grid.contains("MxS STUDIO") {
		t.Fatalf("preloader label not drawn:\n%s", h.grid.row(10))
	}

	h.run(2000 * time.Millisecond)
	if !eng.Lifecycle().Ready() || !eng.Scroll().Active() {
		t.Fatalf("preloader completion should mark the page loaded")
	}
	if !h.site.intro.Active() && !h.site.intro.Completed() {
		t.Fatalf("hero intro did not start once settled")
	}
	eng.Scroll().ApplyInput(10)
	h.run(2 * time.Second)
	if got := eng.Scroll().State().Offset; got != 10 {
		t.Fatalf("offset = %v, want 10", got)
	}
}

func TestLayoutReservesGalleryTravel(t *testing.T) {
	p := NewPage(DefaultContent(), DefaultTheme(), 80, 24)
	gallery := p.Block(BlockGallery)
	pricing := p.Block(BlockPricing)
	if gallery.Height != 24 {
		t.Fatalf("gallery height = %d, want one screen", gallery.Height)
	}
	travel := int(p.TrackWidth()) - 80
	if travel <= 0 {
		t.Fatalf("track %v should overflow an 80-column viewport", p.TrackWidth())
	}
	if got := pricing.Top - (gallery.Top + gallery.Height + blockGap); got != travel {
		t.Fatalf("spacer after gallery = %d, want %d", got, travel)
	}

	p.SetViewport(int(p.TrackWidth())+10, 24)
	gallery = p.Block(BlockGallery)
	if got := p.Block(BlockPricing).Top - (gallery.Top + gallery.Height + blockGap); got != 0 {
		t.Fatalf("a track narrower than the viewport should add no spacer, got %d", got)
	}
}

func TestGalleryPinsAndScrubsHorizontally(t *testing.T) {
	h := newHarness(t)
	h.load()
	gallery := h.site.Page().Block(BlockGallery)
	h.jump(float64(gallery.Top + 10))

	region, ok := h.site.Engine().Pins().Region(h.site.gallery)
	if !ok || !region.Pinned {
		t.Fatalf("gallery should be pinned: %+v", region)
	}
	if math.Abs(region.TranslateX+10) > 1e-9 {
		t.Fatalf("TranslateX = %v, want -10", region.TranslateX)
	}
	if row := h.grid.row(1); !strings.Contains(row, "Recent Commissions") {
		t.Fatalf("pinned header not held at the top: %q", row)
	}
}

func TestRevealFollowsToggleActions(t *testing.T) {
	h := newHarness(t)
	h.load()
	r := h.site.reveals[PillarID(0)]
	if r == nil {
		t.Fatalf("no reveal registered for the first pillar")
	}
	if op := r.seq.Value(effects.PropOpacity); op != 0 {
		t.Fatalf("pillar visible before entering: %v", op)
	}

	h.jump(10)
	h.run(1100 * time.Millisecond)
	if op := r.seq.Value(effects.PropOpacity); op != 1 {
		t.Fatalf("opacity after reveal = %v, want 1", op)
	}
	if y := r.seq.Value(effects.PropY); y != 0 {
		t.Fatalf("y after reveal = %v, want 0", y)
	}
	if !h.grid.contains("No Templates") {
		t.Fatalf("revealed pillar not drawn")
	}

	h.jump(0)
	h.run(1100 * time.Millisecond)
	if op := r.seq.Value(effects.PropOpacity); op != 0 {
		t.Fatalf("scrolling back above the start should reverse, opacity %v", op)
	}
}

func TestProcessStepsAreStaggered(t *testing.T) {
	h := newHarness(t)
	first := h.site.reveals[StepID(0)].seq
	third := h.site.reveals[StepID(2)].seq
	if third.Duration()-first.Duration() != 2*stepStagger {
		t.Fatalf("stagger = %v, want %v", third.Duration()-first.Duration(), 2*stepStagger)
	}
}

func TestOverlayLocksPageAndScrollsItself(t *testing.T) {
	h := newHarness(t)
	h.load()
	eng := h.site.Engine()

	h.site.HandleEvent(key('l'))
	if !eng.Locks().Locked() || eng.Scroll().Active() {
		t.Fatalf("legal overlay should lock page scrolling")
	}
	h.run(500 * time.Millisecond)
	if !h.grid.contains("Operational Protocols") {
		t.Fatalf("overlay title not drawn")
	}

	h.site.HandleEvent(tcell.NewEventMouse(10, 10, tcell.WheelDown, tcell.ModNone))
	h.tick(time.Second / 60)
	if off := h.site.Overlays()[0].Offset(); off == 0 {
		t.Fatalf("wheel should scroll the overlay")
	}
	if eng.Scroll().State().Target != 0 {
		t.Fatalf("wheel leaked to the page under an overlay")
	}

	h.site.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if eng.Locks().Locked() || !eng.Scroll().Active() {
		t.Fatalf("Esc should release the overlay lock at once")
	}
	if len(h.site.Overlays()) != 1 {
		t.Fatalf("closing overlay should keep drawing while it fades")
	}
	h.run(500 * time.Millisecond)
	if len(h.site.Overlays()) != 0 {
		t.Fatalf("overlay not dropped after fading out")
	}
}

func TestStackedOverlaysReleaseIndependently(t *testing.T) {
	h := newHarness(t)
	h.load()
	eng := h.site.Engine()
	h.site.OpenOverlay(OverlayLegal)
	h.site.OpenOverlay(OverlayFAQ)
	h.site.OpenOverlay(OverlayFAQ)
	if eng.Locks().Len() != 2 {
		t.Fatalf("locks = %d, want 2", eng.Locks().Len())
	}
	h.site.CloseOverlay()
	if !eng.Locks().Locked() {
		t.Fatalf("closing the FAQ should leave the legal lock held")
	}
	h.site.CloseOverlay()
	if eng.Locks().Locked() {
		t.Fatalf("all overlays closed but still locked")
	}
	if h.site.CloseOverlay() {
		t.Fatalf("CloseOverlay with nothing open should report false")
	}
}

func TestOverlayClosedWithinOneFrameIsDropped(t *testing.T) {
	h := newHarness(t)
	h.load()
	fx := h.site.Effects().Len()
	for i := 0; i < 3; i++ {
		h.site.HandleEvent(key('l'))
		h.site.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	}
	h.run(2 * time.Second)
	if n := len(h.site.Overlays()); n != 0 {
		t.Fatalf("closed overlays still held: %d", n)
	}
	if got := h.site.Effects().Len(); got != fx {
		t.Fatalf("effects = %d, want %d after open/close", got, fx)
	}
	if h.site.Engine().Locks().Locked() {
		t.Fatalf("overlay lock outlived its overlay")
	}
}

func TestOverlayScrollsBeforeFirstDraw(t *testing.T) {
	h := newHarness(t)
	h.load()
	h.site.OpenOverlay(OverlayLegal)
	h.site.HandleEvent(tcell.NewEventMouse(10, 10, tcell.WheelDown, tcell.ModNone))
	if off := h.site.Overlays()[0].Offset(); off == 0 {
		t.Fatalf("wheel before the first overlay frame should still scroll it")
	}
}

func TestSwapViewReturnsToTopAndRemounts(t *testing.T) {
	h := newHarness(t)
	h.load()
	eng := h.site.Engine()
	homeTriggers := eng.Triggers().Len()
	h.jump(30)

	if err := h.site.SwapView(ViewAbout); err != nil {
		t.Fatalf("SwapView: %v", err)
	}
	if got := eng.Scroll().State().Offset; got != 0 {
		t.Fatalf("swap should return to the top, offset %v", got)
	}
	if eng.Pins().Len() != 0 {
		t.Fatalf("about view has no pinned gallery")
	}
	want := len(DefaultContent().About) + 2
	if got := eng.Triggers().Len(); got != want {
		t.Fatalf("about triggers = %d, want %d", got, want)
	}
	h.run(200 * time.Millisecond)
	if !h.grid.contains("THE STUDIO") {
		t.Fatalf("about header not drawn after swap")
	}

	h.site.HandleEvent(key('a'))
	if h.site.Page().View() != ViewHome || eng.Pins().Len() != 1 {
		t.Fatalf("second swap should restore the home view")
	}
	if eng.Triggers().Len() != homeTriggers {
		t.Fatalf("home triggers = %d, want %d", eng.Triggers().Len(), homeTriggers)
	}
}

func TestNavFlipsAtBottom(t *testing.T) {
	h := newHarness(t)
	h.load()
	if row := h.grid.row(0); !strings.Contains(row, "SCROLL") || !strings.Contains(row, "  0%") {
		t.Fatalf("nav = %q, want scroll hint at 0%%", row)
	}
	h.site.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	h.run(3 * time.Second)
	if !h.site.AtBottom() {
		t.Fatalf("nav toggle should reach the footer, state %+v", h.site.Engine().Scroll().State())
	}
	if row := h.grid.row(0); !strings.Contains(row, "BACK TO TOP") || strings.Contains(row, "  0%") {
		t.Fatalf("nav = %q, want back-to-top with progress", row)
	}
	h.site.ToggleNav()
	h.run(3 * time.Second)
	if got := h.site.Engine().Scroll().State().Offset; got != 0 {
		t.Fatalf("back to top left offset at %v", got)
	}
}

func TestResizeEventRemeasuresNextFrame(t *testing.T) {
	h := newHarness(t)
	h.load()
	eng := h.site.Engine()
	before := eng.Scroll().State().MaxOffset
	h.site.HandleEvent(tcell.NewEventResize(60, 30))
	if !eng.ResizePending() {
		t.Fatalf("resize event should queue a re-measure")
	}
	h.tick(time.Second / 60)
	after := eng.Scroll().State().MaxOffset
	if after == before {
		t.Fatalf("MaxOffset unchanged after resize (%v)", after)
	}
	if want := h.site.Page().ContentHeight() - 30; after != want {
		t.Fatalf("MaxOffset = %v, want %v", after, want)
	}
}

func TestPointerHoverOverCards(t *testing.T) {
	h := newHarness(t)
	h.load()
	gallery := h.site.Page().Block(BlockGallery)
	h.jump(float64(gallery.Top))
	card := h.site.Page().Cards()[0]
	h.site.HandleEvent(tcell.NewEventMouse(card.X+1, cardTop+2, tcell.ButtonNone, tcell.ModNone))
	if !h.site.Engine().Pointer().State().Hovering {
		t.Fatalf("pointer over a card should hover")
	}
	h.site.HandleEvent(tcell.NewEventMouse(card.X+1, 23, tcell.ButtonNone, tcell.ModNone))
	if h.site.Engine().Pointer().State().Hovering {
		t.Fatalf("pointer below the cards should not hover")
	}
}

func TestPointerRingFollowsConfig(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		cfg := config.Config{"pointer": map[string]interface{}{"enabled": enabled}}
		h := newHarnessWith(t, OptionsFromConfig(cfg))
		h.load()
		h.site.HandleEvent(tcell.NewEventMouse(70, 20, tcell.ButtonNone, tcell.ModNone))
		h.run(time.Second)
		if got := h.grid.contains("○"); got != enabled {
			t.Fatalf("pointer.enabled=%v: ring drawn %v", enabled, got)
		}
	}
}

func TestQuitKey(t *testing.T) {
	h := newHarness(t)
	if !h.site.HandleEvent(key('j')) {
		t.Fatalf("ordinary key should not quit")
	}
	if h.site.HandleEvent(key('q')) || !h.site.Quit() {
		t.Fatalf("q should quit")
	}
}

func TestDrawsOnSimulationScreen(t *testing.T) {
	sim := tcell.NewSimulationScreen("")
	if err := sim.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer sim.Fini()
	sim.SetSize(80, 24)
	screen := NewTcellScreen(sim)
	w, hgt := screen.Size()

	s, err := New(DefaultOptions(), stage.DefaultOptions(), screen, w, hgt)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.Start()
	for i := 0; i < 200; i++ {
		now = now.Add(time.Second / 60)
		s.Engine().Ticker().Tick(now)
	}
	if r, _, _, _ := screen.GetContent(1, 0); r != 'M' {
		t.Fatalf("brand not drawn at the nav, got %q", r)
	}
}
