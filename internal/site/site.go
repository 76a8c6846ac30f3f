// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/site/site.go
// Summary: The studio site as a terminal program driven by the stage engine.
// Usage: New, then Start; feed tcell events to HandleEvent from the engine
// goroutine. Frames draw onto the screen after the engine and the effects
// manager have advanced.
// Notes: Each reveal block gets a sequence bound to a scroll trigger. Views
// are swapped by tearing every trigger, pin and sequence down before the
// new view registers its own.

package site

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/scrollstage/config"
	"github.com/framegrace/scrollstage/internal/effects"
	"github.com/framegrace/scrollstage/pin"
	"github.com/framegrace/scrollstage/stage"
	"github.com/framegrace/scrollstage/ticker"
	"github.com/framegrace/scrollstage/trigger"
)

// Options tunes the site's scroll behaviour and reveal choreography.
type Options struct {
	RevealStart   string
	RevealEnd     string
	ToggleActions string

	// RevealDistance is how many rows a block rises while it reveals.
	RevealDistance float64
	RevealDuration time.Duration

	WheelMultiplier float64
	KeyStep         float64

	// BottomBuffer is how close, in rows, the viewport must be to the end
	// before the nav offers a way back to the top.
	BottomBuffer float64

	// ShowPointer draws the cursor ring that trails the mouse.
	ShowPointer bool

	Theme   Theme
	Content Content
}

// DefaultOptions returns the stock site options.
func DefaultOptions() Options {
	return Options{
		RevealStart:     "top 80%",
		RevealEnd:       "bottom 20%",
		ToggleActions:   "play none none reverse",
		RevealDistance:  2,
		RevealDuration:  time.Second,
		WheelMultiplier: 3,
		KeyStep:         4,
		BottomBuffer:    2,
		ShowPointer:     true,
		Theme:           DefaultTheme(),
		Content:         DefaultContent(),
	}
}

// OptionsFromConfig reads the triggers, scroll, navigation, pointer and theme
// sections.
func OptionsFromConfig(cfg config.Config) Options {
	o := DefaultOptions()
	o.RevealStart = cfg.GetString("triggers", "reveal_start", o.RevealStart)
	o.RevealEnd = cfg.GetString("triggers", "reveal_end", o.RevealEnd)
	o.ToggleActions = cfg.GetString("triggers", "toggle_actions", o.ToggleActions)
	o.RevealDistance = cfg.GetFloat("triggers", "reveal_distance", o.RevealDistance)
	o.RevealDuration = cfg.GetDurationMs("triggers", "reveal_duration_ms", o.RevealDuration)
	o.WheelMultiplier = cfg.GetFloat("scroll", "wheel_multiplier", o.WheelMultiplier)
	o.KeyStep = cfg.GetFloat("scroll", "key_step", o.KeyStep)
	o.BottomBuffer = cfg.GetFloat("navigation", "bottom_buffer", o.BottomBuffer)
	o.ShowPointer = cfg.GetBool("pointer", "enabled", o.ShowPointer)
	o.Theme = ThemeFromConfig(cfg)
	return o
}

// Start positions that differ from the configured reveal start.
var (
	pricingStart = trigger.MustParsePosition("top 70%")
	aboutStart   = trigger.MustParsePosition("top 85%")
)

const stepStagger = 300 * time.Millisecond

// reveal ties one block to its sequence and trigger.
type reveal struct {
	block   string
	seq     *effects.Sequence
	trigger trigger.Handle
}

// Site owns the page, the engine and every presentation effect.
type Site struct {
	opts   Options
	screen Canvas
	engine *stage.Engine
	page   *Page
	fx     *effects.Manager

	start, end trigger.Position
	toggle     trigger.ToggleActions

	preloader *effects.Sequence
	intro     *effects.Sequence
	reveals   map[string]*reveal
	gallery   pin.Handle
	pinned    bool

	overlays []*Overlay

	frameID ticker.ListenerID
	quit    bool
	closed  bool
}

// New builds the site for a w x h viewport drawing onto screen. screen may be
// nil, in which case frames advance without drawing.
func New(opts Options, engineOpts stage.Options, screen Canvas, w, h int) (*Site, error) {
	start, err := trigger.ParsePosition(opts.RevealStart)
	if err != nil {
		return nil, fmt.Errorf("reveal start: %w", err)
	}
	end, err := trigger.ParsePosition(opts.RevealEnd)
	if err != nil {
		return nil, fmt.Errorf("reveal end: %w", err)
	}
	toggle, err := trigger.ParseToggleActions(opts.ToggleActions)
	if err != nil {
		return nil, fmt.Errorf("toggle actions: %w", err)
	}
	preloader, err := effects.Build("preloader", nil)
	if err != nil {
		return nil, fmt.Errorf("preloader: %w", err)
	}

	s := &Site{
		opts:      opts,
		screen:    screen,
		start:     start,
		end:       end,
		toggle:    toggle,
		preloader: preloader,
		reveals:   make(map[string]*reveal),
		fx:        effects.NewManager(),
	}
	s.page = NewPage(opts.Content, opts.Theme, w, h)
	s.engine = stage.New(engineOpts, s.page, s.page)
	s.fx.Attach(s.engine.Ticker())
	s.frameID = s.engine.Ticker().Add(s.frame)
	s.fx.Add(preloader)
	preloader.OnComplete(func() {
		s.engine.Lifecycle().MarkLoaded()
	})
	if err := s.mountView(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Start enters the loading phase and plays the preloader. The intro of the
// current view plays once the engine has settled.
func (s *Site) Start() {
	s.engine.Begin()
	s.preloader.Play()
	intro := s.intro
	s.engine.Lifecycle().OnReady(func() {
		if intro != nil && s.intro == intro {
			intro.Play()
		}
	})
	log.Printf("Site: started (%dx%d)", s.page.width, s.page.height)
}

func (s *Site) Engine() *stage.Engine { return s.engine }
func (s *Site) Page() *Page { return s.page }
func (s *Site) Effects() *effects.Manager { return s.fx }

// Quit reports whether the user asked to leave.
func (s *Site) Quit() bool { return s.quit }

func (s *Site) frame(_ time.Time, _ time.Duration) {
	if s.screen != nil {
		s.Draw(s.screen)
	}
}

// mountView registers the intro, reveals and pinned gallery of the page's
// current view.
func (s *Site) mountView() error {
	var introBlock string
	switch s.page.View() {
	case ViewAbout:
		introBlock = BlockAboutHeader
	default:
		introBlock = BlockHero
	}
	intro, err := effects.Build("reveal", effects.Params{
		"distance":    s.opts.RevealDistance + 1,
		"duration_ms": 1500.0,
		"easing":      "power2.out",
	})
	if err != nil {
		return fmt.Errorf("intro: %w", err)
	}
	s.intro = intro
	s.fx.Add(intro)
	s.reveals[introBlock] = &reveal{block: introBlock, seq: intro}

	for _, b := range s.page.Blocks() {
		if b.ID == introBlock || b.ID == BlockGallery {
			continue
		}
		if err := s.addReveal(b); err != nil {
			return err
		}
	}

	if b := s.page.Block(BlockGallery); b != nil {
		s.gallery = s.engine.Pins().Configure(pin.RegionConfig{
			ID:      BlockGallery,
			Section: blockElement(b),
			Track:   pin.TrackFunc(s.page.TrackWidth),
		})
		s.pinned = true
		s.engine.Pins().AssetsLoaded(s.gallery)
	}
	return nil
}

func (s *Site) addReveal(b *Block) error {
	params := effects.Params{
		"distance":    s.opts.RevealDistance,
		"duration_ms": float64(s.opts.RevealDuration / time.Millisecond),
		"easing":      "power2.out",
	}
	start := s.start
	switch {
	case b.ID == BlockPricing:
		start = pricingStart
	case s.page.View() == ViewAbout:
		start = aboutStart
		params["duration_ms"] = 800.0
	}
	for i := range s.opts.Content.Process {
		if b.ID == StepID(i) {
			params["delay_ms"] = float64(time.Duration(i) * stepStagger / time.Millisecond)
		}
	}
	seq, err := effects.Build("reveal", params)
	if err != nil {
		return fmt.Errorf("reveal %s: %w", b.ID, err)
	}
	s.fx.Add(seq)
	h := s.engine.Triggers().Register(trigger.Descriptor{
		ID:      b.ID,
		Element: blockElement(b),
		Start:   start,
		End:     s.end,
		Actions: s.toggle.Bind(seq),
	})
	s.reveals[b.ID] = &reveal{block: b.ID, seq: seq, trigger: h}
	return nil
}

// unmountView removes everything mountView registered.
func (s *Site) unmountView() {
	for id, r := range s.reveals {
		if r.trigger != 0 {
			s.engine.Triggers().Unregister(r.trigger)
		}
		s.fx.Remove(r.seq)
		delete(s.reveals, id)
	}
	if s.pinned {
		s.engine.Pins().Remove(s.gallery)
		s.pinned = false
	}
	s.intro = nil
}

// blockElement measures b at call time so re-layouts are picked up.
func blockElement(b *Block) trigger.Element {
	return trigger.ElementFunc(func() (float64, float64) {
		return float64(b.Top), float64(b.Height)
	})
}

// SwapView replaces the page content with view v: the old view is torn
// down, the new one mounted and the engine returns to the top.
func (s *Site) SwapView(v View) error {
	if v == s.page.View() {
		return nil
	}
	log.Printf("Site: swapping %s -> %s", s.page.View(), v)
	s.unmountView()
	s.page.SetView(v)
	if err := s.mountView(); err != nil {
		return err
	}
	s.engine.Lifecycle().NotifyContentSwap()
	if s.engine.Lifecycle().Ready() {
		s.intro.Play()
	} else {
		intro := s.intro
		s.engine.Lifecycle().OnReady(func() {
			if s.intro == intro {
				intro.Play()
			}
		})
	}
	return nil
}

// Resize records a new terminal size; the engine re-measures on its next frame.
func (s *Site) Resize(w, h int) {
	s.page.SetViewport(w, h)
	s.engine.RequestResize()
}

// OpenOverlay opens kind on top of any open overlays and locks page scrolling.
// An overlay of the same kind that is already open is left alone.
func (s *Site) OpenOverlay(kind OverlayKind) {
	for _, o := range s.overlays {
		if o.Kind == kind && o.open {
			return
		}
	}
	c := s.opts.Content
	t := s.opts.Theme
	var o *Overlay
	switch kind {
	case OverlayLegal:
		o = newOverlay(kind, c.LegalTitle, legalLines(c, t))
	case OverlayFAQ:
		o = newOverlay(kind, "FAQ", faqLines(c, t))
	default:
		o = newOverlay(kind, c.ArchiveTitle, archiveLines(c, t))
	}
	o.fade.OnReverseComplete(func() { s.dropOverlay(o) })
	s.overlays = append(s.overlays, o)
	s.fx.Add(o.fade)
	s.engine.Locks().Acquire(o.token)
	o.fade.Play()
	log.Printf("Site: opened %s overlay", kind)
}

// CloseOverlay releases the top open overlay's lock and fades it out.
// It reports whether an overlay was open.
func (s *Site) CloseOverlay() bool {
	o := s.topOverlay()
	if o == nil {
		return false
	}
	o.open = false
	s.engine.Locks().Release(o.token)
	// Reverse drops the overlay at once if no frame has faded it in yet.
	o.fade.Reverse()
	return true
}

func (s *Site) dropOverlay(o *Overlay) {
	for i, cur := range s.overlays {
		if cur == o {
			s.overlays = append(s.overlays[:i:i], s.overlays[i+1:]...)
			break
		}
	}
	s.fx.Remove(o.fade)
}

// topOverlay returns the most recently opened overlay that is still open.
func (s *Site) topOverlay() *Overlay {
	for i := len(s.overlays) - 1; i >= 0; i-- {
		if s.overlays[i].open {
			return s.overlays[i]
		}
	}
	return nil
}

// Overlays returns the overlays being drawn, bottom first.
func (s *Site) Overlays() []*Overlay {
	return s.overlays
}

// AtBottom reports whether the nav should offer a way back to the top.
func (s *Site) AtBottom() bool {
	return s.engine.Scroll().State().AtBottom(s.opts.BottomBuffer)
}

// ToggleNav scrolls to the top when at the bottom, otherwise to the footer.
func (s *Site) ToggleNav() {
	if s.AtBottom() {
		s.engine.Scroll().ScrollTo(0, false)
		return
	}
	if b := s.page.Block(BlockFooter); b != nil {
		s.engine.Scroll().ScrollTo(float64(b.Top), false)
	}
}

// HandleEvent applies one terminal event. It returns false once the user has
// asked to quit.
func (s *Site) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		s.Resize(w, h)
	case *tcell.EventMouse:
		s.handleMouse(ev)
	case *tcell.EventKey:
		s.handleKey(ev)
	}
	return !s.quit
}

func (s *Site) handleKey(ev *tcell.EventKey) {
	_, h := s.page.Size()
	page := float64(h - 2)
	switch ev.Key() {
	case tcell.KeyCtrlC:
		s.quit = true
	case tcell.KeyEscape:
		s.CloseOverlay()
	case tcell.KeyUp:
		s.scroll(-s.opts.KeyStep)
	case tcell.KeyDown:
		s.scroll(s.opts.KeyStep)
	case tcell.KeyPgUp:
		s.scroll(-page)
	case tcell.KeyPgDn:
		s.scroll(page)
	case tcell.KeyHome:
		s.engine.Scroll().ScrollTo(0, false)
	case tcell.KeyEnd:
		s.engine.Scroll().ScrollTo(s.engine.Scroll().State().MaxOffset, false)
	case tcell.KeyEnter:
		s.ToggleNav()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			s.quit = true
		case 'j':
			s.scroll(s.opts.KeyStep)
		case 'k':
			s.scroll(-s.opts.KeyStep)
		case ' ':
			s.scroll(page)
		case 'l':
			s.OpenOverlay(OverlayLegal)
		case 'f':
			s.OpenOverlay(OverlayFAQ)
		case 'g':
			s.OpenOverlay(OverlayArchive)
		case 'a':
			next := ViewAbout
			if s.page.View() == ViewAbout {
				next = ViewHome
			}
			if err := s.SwapView(next); err != nil {
				log.Printf("Site: swap failed: %v", err)
			}
		}
	}
}

func (s *Site) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := s.engine.Pointer()
	p.Move(float64(x), float64(y))
	p.SetHovering(s.hoveringCard(x, y))

	btn := ev.Buttons()
	switch {
	case btn&tcell.WheelUp != 0:
		s.scroll(-s.opts.WheelMultiplier)
	case btn&tcell.WheelDown != 0:
		s.scroll(s.opts.WheelMultiplier)
	case btn&tcell.Button1 != 0 && y == 0 && s.topOverlay() == nil:
		s.ToggleNav()
	}
}

// scroll routes input to the top overlay when one is open, else to the page.
func (s *Site) scroll(delta float64) {
	if o := s.topOverlay(); o != nil {
		w, h := s.page.Size()
		_, _, pw, _ := overlayPanel(w, h)
		o.Scroll(int(delta), pw-4, overlayRows(h))
		return
	}
	s.engine.Scroll().ApplyInput(delta)
}

func (s *Site) hoveringCard(x, y int) bool {
	if !s.pinned || s.topOverlay() != nil {
		return false
	}
	region, ok := s.engine.Pins().Region(s.gallery)
	if !ok {
		return false
	}
	top, bottom, visible := s.galleryRows(region)
	if !visible || y < top+cardTop || y >= bottom-2 {
		return false
	}
	_, hit := s.page.CardAt(x, region.TranslateX)
	return hit
}

// Close tears the site and its engine down. It is safe to call twice.
func (s *Site) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.unmountView()
	s.engine.Ticker().Remove(s.frameID)
	s.fx.Detach()
	s.engine.Close()
}
