// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/site/render.go
// Summary: Draws one frame of the site: blocks at the scrolled offset, the
// pinned gallery track, overlays, the nav bar, the cursor ring and the
// preloader curtain.

package site

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/scrollstage/internal/effects"
	"github.com/framegrace/scrollstage/pin"
)

const (
	// cardTop is the row within the pinned screen where cards begin.
	cardTop = 3

	overlayMarginX = 4
	overlayMarginY = 2
)

// overlayRows is how many content rows an overlay shows in an h-row viewport.
func overlayRows(h int) int {
	rows := h - 2*overlayMarginY - 4
	if rows < 1 {
		rows = 1
	}
	return rows
}

// overlayPanel returns the panel rectangle for a w x h viewport. Small
// viewports give the whole screen to the panel.
func overlayPanel(w, h int) (x0, y0, pw, ph int) {
	x0, y0 = overlayMarginX, overlayMarginY
	pw, ph = w-2*overlayMarginX, h-2*overlayMarginY
	if pw < 12 || ph < 6 {
		return 0, 0, w, h
	}
	return x0, y0, pw, ph
}

// Draw renders the current frame onto c and presents it when c supports Show.
func (s *Site) Draw(c Canvas) {
	t := s.opts.Theme
	_, h := c.Size()
	fill(c, 0, h, t.base())

	offset := s.engine.Scroll().State().Offset
	for _, b := range s.page.Blocks() {
		if b.ID == BlockGallery {
			s.drawGallery(c)
			continue
		}
		s.drawBlock(c, b, offset)
	}
	for _, o := range s.overlays {
		s.drawOverlay(c, o)
	}
	s.drawNav(c)
	s.drawPointer(c)
	s.drawPreloader(c)

	if sh, ok := c.(interface{ Show() }); ok {
		sh.Show()
	}
}

// revealState returns the row shift and opacity a block is drawn with.
func (s *Site) revealState(id string) (int, float64) {
	r, ok := s.reveals[id]
	if !ok {
		return 0, 1
	}
	return int(math.Round(r.seq.Value(effects.PropY))), r.seq.Value(effects.PropOpacity)
}

func (s *Site) drawBlock(c Canvas, b *Block, offset float64) {
	_, h := c.Size()
	top := b.Top - int(math.Round(offset))
	if top >= h || top+b.Height <= 0 {
		return
	}
	shift, opacity := s.revealState(b.ID)
	if opacity <= 0.01 {
		return
	}
	bg := s.opts.Theme.Background
	restyle := func(st tcell.Style) tcell.Style { return effects.Fade(st, bg, opacity) }
	margin := s.page.Margin()
	width := s.page.textWidth()
	for i, line := range b.Lines {
		y := top + shift + i
		if y < 0 || y >= h {
			continue
		}
		x := margin
		if line.Center {
			if pad := (width - lineWidth(line)) / 2; pad > 0 {
				x += pad
			}
		}
		drawSpans(c, x, y, line.Spans, restyle)
	}
}

// galleryRows returns the screen rows the gallery occupies at the current
// offset, held at the top while pinned.
func (s *Site) galleryRows(r pin.Region) (top, bottom int, visible bool) {
	b := s.page.Block(BlockGallery)
	if b == nil {
		return 0, 0, false
	}
	offset := s.engine.Scroll().State().Offset
	top = b.Top - int(math.Round(offset-r.Shift))
	_, h := s.page.Size()
	bottom = top + b.Height
	return top, bottom, top < h && bottom > 0
}

func (s *Site) drawGallery(c Canvas) {
	region, _ := s.engine.Pins().Region(s.gallery)
	top, bottom, visible := s.galleryRows(region)
	if !visible {
		return
	}
	t := s.opts.Theme
	drawText(c, s.page.Margin(), top+1, s.opts.Content.GalleryHeader, t.accent().Bold(true))
	if region.TravelDistance > 0 {
		x := s.page.Margin() + runewidth.StringWidth(s.opts.Content.GalleryHeader) + 2
		drawText(c, x, top+1, fmt.Sprintf("→ %d%%", int(math.Round(region.Progress*100))), t.muted())
	}

	shift := int(math.Round(region.TranslateX))
	cardBottom := bottom - 2
	for _, card := range s.page.Cards() {
		x := card.X + shift
		if card.Archive {
			s.drawArchiveCard(c, x, top+cardTop, cardBottom, card)
			continue
		}
		s.drawCard(c, x, top+cardTop, cardBottom, card)
	}
}

func (s *Site) drawCard(c Canvas, x, y0, y1 int, card CardLayout) {
	t := s.opts.Theme
	box(c, x, y0, card.Width, y1-y0, t.muted())
	inner := x + 2
	drawText(c, inner, y0+1, runewidth.Truncate(card.Card.Title, card.Width-4, "…"), t.strong())
	drawText(c, inner, y0+2, runewidth.Truncate(card.Card.Author+" / "+card.Card.Role, card.Width-4, "…"), t.muted())
	drawText(c, inner, y0+3, runewidth.Truncate(card.Card.Filename, card.Width-4, ""), t.accent())
	for i, line := range card.Code {
		y := y0 + 5 + i
		if y >= y1-1 {
			break
		}
		clip := &clipCanvas{Canvas: c, maxX: x + card.Width - 2}
		drawSpans(clip, inner, y, line, nil)
	}
}

func (s *Site) drawArchiveCard(c Canvas, x, y0, y1 int, card CardLayout) {
	t := s.opts.Theme
	box(c, x, y0, card.Width, y1-y0, t.accent())
	mid := y0 + (y1-y0)/2
	center := func(y int, text string, st tcell.Style) {
		pad := (card.Width - runewidth.StringWidth(text)) / 2
		if pad < 1 {
			pad = 1
		}
		drawText(c, x+pad, y, text, st)
	}
	center(mid-1, card.Card.Title, t.strong())
	center(mid+1, card.Card.Role+" [g]", t.accent())
}

// box draws a single-line frame of w columns by h rows.
func box(c Canvas, x, y, w, h int, st tcell.Style) {
	if w < 2 || h < 2 {
		return
	}
	for i := 1; i < w-1; i++ {
		drawText(c, x+i, y, "─", st)
		drawText(c, x+i, y+h-1, "─", st)
	}
	for j := 1; j < h-1; j++ {
		drawText(c, x, y+j, "│", st)
		drawText(c, x+w-1, y+j, "│", st)
	}
	drawText(c, x, y, "┌", st)
	drawText(c, x+w-1, y, "┐", st)
	drawText(c, x, y+h-1, "└", st)
	drawText(c, x+w-1, y+h-1, "┘", st)
}

// clipCanvas drops cells at or beyond maxX.
type clipCanvas struct {
	Canvas
	maxX int
}

func (c *clipCanvas) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	if x >= c.maxX {
		return
	}
	c.Canvas.SetContent(x, y, mainc, combc, style)
}

func (s *Site) drawOverlay(c Canvas, o *Overlay) {
	w, h := c.Size()
	t := s.opts.Theme
	opacity := o.Opacity()
	if opacity <= 0.01 {
		return
	}
	// Cells carry no alpha, so the page behind is blanked once the overlay
	// is mostly opaque.
	if opacity >= 0.5 {
		fill(c, 0, h, t.base())
	}
	panel := effects.TintStyle(t.base(), t.Muted, 0.08*opacity)

	x0, y0, pw, ph := overlayPanel(w, h)
	_, panelBg, _ := panel.Decompose()
	restyle := func(st tcell.Style) tcell.Style {
		return effects.Fade(st, t.Background, opacity).Background(panelBg)
	}
	for y := y0; y < y0+ph; y++ {
		for x := x0; x < x0+pw; x++ {
			c.SetContent(x, y, ' ', nil, panel)
		}
	}
	box(c, x0, y0, pw, ph, restyle(t.muted()))
	drawText(c, x0+2, y0+1, o.Title, restyle(t.strong()))
	drawText(c, x0+pw-len("[esc]")-2, y0+1, "[esc]", restyle(t.muted()))

	lines := o.Lines(pw - 4)
	rows := overlayRows(h)
	for i := 0; i < rows; i++ {
		idx := o.offset + i
		if idx >= len(lines) {
			break
		}
		line := lines[idx]
		x := x0 + 2
		if line.Center {
			if pad := (pw - 4 - lineWidth(line)) / 2; pad > 0 {
				x += pad
			}
		}
		drawSpans(c, x, y0+3+i, line.Spans, restyle)
	}
}

func (s *Site) drawNav(c Canvas) {
	if !s.engine.Lifecycle().Ready() {
		return
	}
	w, _ := c.Size()
	t := s.opts.Theme
	content := s.opts.Content
	drawText(c, 1, 0, content.Brand, t.strong())
	label := content.ScrollDown
	if s.AtBottom() {
		label = content.BackToTop
	}
	x := w - runewidth.StringWidth(label) - 1
	drawText(c, x, 0, label, t.muted())

	progress := fmt.Sprintf("%3d%%", int(math.Round(s.engine.Scroll().State().Progress()*100)))
	if px := x - len(progress) - 2; px > runewidth.StringWidth(content.Brand)+2 {
		drawText(c, px, 0, progress, t.muted())
	}
}

func (s *Site) drawPointer(c Canvas) {
	p := s.engine.Pointer().State()
	if !s.opts.ShowPointer || !p.Visible {
		return
	}
	t := s.opts.Theme
	ring := '○'
	if p.Hovering {
		ring = '◎'
	}
	x := int(math.Round(p.RingX))
	y := int(math.Round(p.RingY))
	drawText(c, x, y, string(ring), t.accent())
}

// drawPreloader covers the page with the curtain until it has collapsed.
func (s *Site) drawPreloader(c Canvas) {
	seq := s.preloader
	if seq.Completed() {
		return
	}
	w, h := c.Size()
	t := s.opts.Theme
	curtain := seq.Value(effects.PropCurtain)
	rows := int(math.Ceil(curtain * float64(h)))
	if rows <= 0 {
		return
	}
	fill(c, 0, rows, t.base())

	mid := h / 2
	if mid >= rows {
		return
	}
	lineW := int(math.Round(seq.Value(effects.PropLine) * float64(w/2)))
	if lineW > 0 {
		x := (w - w/2) / 2
		for i := 0; i < lineW; i++ {
			drawText(c, x+i, mid, "─", t.accent())
		}
	}
	if text := seq.Value(effects.PropText); text > 0 && mid-2 >= 0 {
		label := s.opts.Content.PreloaderText
		x := (w - runewidth.StringWidth(label)) / 2
		drawText(c, x, mid-2, label, effects.Fade(t.strong(), t.Background, text))
	}
}
