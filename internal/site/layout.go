// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/site/layout.go
// Summary: Lays the page out as a vertical stack of blocks in terminal rows.
// Usage: Page is the engine's content source and viewport. SetViewport and
// SetView mark the layout dirty; the next measurement lays it out again.
// Notes: The pinned gallery occupies one screen and is followed by a spacer
// equal to its horizontal travel, so every block below it sits lower by that
// amount.

package site

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/scrollstage/pin"
)

// View selects which page the site shows.
type View int

const (
	ViewHome View = iota
	ViewAbout
)

func (v View) String() string {
	if v == ViewAbout {
		return "about"
	}
	return "home"
}

// Block ids referenced by the site.
const (
	BlockHero        = "hero"
	BlockProcess     = "process"
	BlockGallery     = "gallery"
	BlockPricing     = "pricing"
	BlockStatus      = "status"
	BlockFooter      = "footer"
	BlockAboutHeader = "about-header"
	BlockAboutQuote  = "about-quote"
)

const (
	blockGap   = 2
	cardGap    = 3
	trackPad   = 2
	minCardW   = 28
	maxCardW   = 46
	archiveW   = 22
	cardChrome = 4
)

// Line is one laid-out row of a block.
type Line struct {
	Spans  []Span
	Center bool
}

// Block is a vertically stacked section of the page.
type Block struct {
	ID     string
	Lines  []Line
	Top    int
	Height int

	// Fill makes the block at least one viewport tall with its lines
	// centred vertically.
	Fill bool

	build func(width int) []Line
}

// CardLayout places one gallery card on the horizontal track.
type CardLayout struct {
	X, Width int
	Card     Card
	Code     [][]Span
	Archive  bool
}

// Page is the site's content model at the current viewport size.
type Page struct {
	content Content
	theme   Theme
	view    View

	width, height int
	dirty         bool

	blocks []*Block
	byID   map[string]*Block

	cards  []CardLayout
	track  int
	travel int
	total  int
}

// NewPage builds the home view for a w x h viewport.
func NewPage(content Content, theme Theme, w, h int) *Page {
	p := &Page{content: content, theme: theme, width: w, height: h}
	p.layoutCards()
	p.SetView(ViewHome)
	return p
}

// View returns the current view.
func (p *Page) View() View { return p.view }

// Content returns the page copy.
func (p *Page) Content() Content { return p.content }

// SetView replaces the blocks with those of v.
func (p *Page) SetView(v View) {
	p.view = v
	p.blocks = nil
	p.byID = make(map[string]*Block)
	if v == ViewAbout {
		p.buildAbout()
	} else {
		p.buildHome()
	}
	p.dirty = true
}

// SetViewport records a new terminal size.
func (p *Page) SetViewport(w, h int) {
	if w == p.width && h == p.height {
		return
	}
	p.width, p.height = w, h
	p.dirty = true
}

func (p *Page) ensure() {
	if p.dirty {
		p.relayout()
	}
}

// ContentHeight is the total scrollable height in rows, pinned travel included.
func (p *Page) ContentHeight() float64 {
	p.ensure()
	return float64(p.total)
}

// ViewportHeight returns the viewport height in rows.
func (p *Page) ViewportHeight() float64 {
	return float64(p.height)
}

// ViewportSize returns the viewport size in cells.
func (p *Page) ViewportSize() (float64, float64) {
	return float64(p.width), float64(p.height)
}

// Size returns the viewport size in cells.
func (p *Page) Size() (int, int) {
	return p.width, p.height
}

// Blocks returns the laid-out blocks in page order.
func (p *Page) Blocks() []*Block {
	p.ensure()
	return p.blocks
}

// Block looks up a block of the current view.
func (p *Page) Block(id string) *Block {
	p.ensure()
	return p.byID[id]
}

// Cards returns the gallery track layout.
func (p *Page) Cards() []CardLayout {
	return p.cards
}

// TrackWidth is the width of the gallery track in columns.
func (p *Page) TrackWidth() float64 {
	return float64(p.track)
}

// Margin is the left edge of block text.
func (p *Page) Margin() int {
	m := p.width / 10
	if m < 2 {
		m = 2
	}
	if m > 12 {
		m = 12
	}
	return m
}

func (p *Page) textWidth() int {
	w := p.width - 2*p.Margin()
	if w < 10 {
		w = 10
	}
	return w
}

func (p *Page) relayout() {
	p.dirty = false
	width := p.textWidth()
	p.travel = int(pin.TravelDistance(float64(p.track), float64(p.width)))

	y := 0
	for _, b := range p.blocks {
		b.Lines = b.build(width)
		if b.Fill {
			if pad := (p.height - len(b.Lines)) / 2; pad > 0 {
				b.Lines = append(make([]Line, pad), b.Lines...)
			}
		}
		b.Height = len(b.Lines)
		if b.Fill && b.Height < p.height {
			b.Height = p.height
		}
		b.Top = y
		y += b.Height + blockGap
		if b.ID == BlockGallery {
			y += p.travel
		}
	}
	p.total = y
}

func (p *Page) add(id string, fillScreen bool, build func(width int) []Line) {
	b := &Block{ID: id, Fill: fillScreen, build: build}
	p.blocks = append(p.blocks, b)
	p.byID[id] = b
}

// PillarID names the block of the i-th philosophy pillar.
func PillarID(i int) string { return "philosophy-" + strconv.Itoa(i) }

// StepID names the block of the i-th process step.
func StepID(i int) string { return "process-" + strconv.Itoa(i) }

// AboutID names the block of the i-th about section.
func AboutID(i int) string { return "about-" + strconv.Itoa(i) }

func (p *Page) buildHome() {
	c := p.content
	t := p.theme
	p.add(BlockHero, true, func(int) []Line {
		return []Line{
			centered(c.HeroLines[0], t.strong()),
			centered(c.HeroLines[1], t.strong()),
			{},
			centered(c.HeroSub, t.accent().Italic(true)),
		}
	})
	for i, pillar := range c.Philosophy {
		pillar := pillar
		p.add(PillarID(i), false, func(width int) []Line {
			title := t.strong()
			if pillar.Highlight {
				title = t.accent().Bold(true)
			}
			lines := []Line{plain(pillar.Title, title)}
			return append(lines, paragraph(pillar.Body, width, t.base())...)
		})
	}
	p.add(BlockProcess, false, func(int) []Line {
		return []Line{plain(c.ProcessTitle, t.accent().Bold(true))}
	})
	for i, step := range c.Process {
		step := step
		p.add(StepID(i), false, func(width int) []Line {
			lines := []Line{{Spans: []Span{
				{Text: step.Number + " ", Style: t.muted()},
				{Text: step.Title, Style: t.strong()},
			}}}
			return append(lines, paragraph(step.Body, width, t.base())...)
		})
	}
	p.add(BlockGallery, true, func(int) []Line {
		// Cards are drawn from the track layout; the block only reserves
		// the screen it pins.
		return nil
	})
	p.add(BlockPricing, false, func(width int) []Line {
		return p.invoiceLines(width)
	})
	p.add(BlockStatus, false, func(int) []Line {
		return []Line{
			{Spans: []Span{
				{Text: c.StatusLabel + " ", Style: t.muted()},
				{Text: c.StatusValue, Style: t.accent()},
			}, Center: true},
			centered(c.StatusQuote, t.muted().Italic(true)),
		}
	})
	p.add(BlockFooter, false, func(width int) []Line {
		return p.footerLines(width)
	})
}

func (p *Page) buildAbout() {
	c := p.content
	t := p.theme
	p.add(BlockAboutHeader, true, func(int) []Line {
		return []Line{
			centered(c.AboutTitle, t.strong()),
			{},
			centered(c.AboutSubtitle, t.accent().Italic(true)),
		}
	})
	for i, sec := range c.About {
		sec := sec
		p.add(AboutID(i), false, func(width int) []Line {
			lines := []Line{plain(sec.Title, t.accent().Bold(true))}
			for j, para := range sec.Paragraphs {
				if j > 0 {
					lines = append(lines, Line{})
				}
				lines = append(lines, paragraph(para, width, t.base())...)
			}
			return lines
		})
	}
	p.add(BlockAboutQuote, false, func(int) []Line {
		return []Line{centered(c.AboutQuote, t.muted().Italic(true))}
	})
	p.add(BlockFooter, false, func(width int) []Line {
		return p.footerLines(width)
	})
}

func (p *Page) invoiceLines(width int) []Line {
	c := p.content
	t := p.theme
	boxW := width
	if boxW > 48 {
		boxW = 48
	}
	rule := strings.Repeat("─", boxW)
	lines := []Line{
		centered(c.InvoiceHeader, t.muted()),
		centered(rule, t.muted()),
	}
	for _, item := range c.InvoiceItems {
		lines = append(lines, centered(leader(item, "0.00", boxW), t.base()))
	}
	lines = append(lines,
		centered(rule, t.muted()),
		Line{Spans: []Span{
			{Text: padRight(c.TotalLabel, boxW-runewidth.StringWidth(c.TotalValue)), Style: t.strong()},
			{Text: c.TotalValue, Style: t.accent().Bold(true)},
		}, Center: true},
		Line{},
		centered(c.InvoiceFooter, t.muted().Italic(true)),
	)
	return lines
}

func (p *Page) footerLines(width int) []Line {
	c := p.content
	t := p.theme
	lines := []Line{
		centered(c.FooterTitle, t.strong()),
		centered(c.FooterSub, t.muted()),
		{},
		centered(strings.Join(c.Links, "  ·  "), t.accent()),
		{},
	}
	legal := strings.Join(c.LegalLinks, "  ·  ")
	for _, l := range wrap(legal, width) {
		lines = append(lines, centered(l, t.muted()))
	}
	lines = append(lines, centered("[l] legal  [f] faq  [g] archive  [a] about  [q] quit", t.muted()))
	return lines
}

// layoutCards highlights every card and places them left to right, ending
// with the archive card.
func (p *Page) layoutCards() {
	t := p.theme
	x := trackPad
	p.cards = p.cards[:0]
	for _, card := range p.content.Cards {
		code := Highlight(card.Filename, card.Code, t.CodeStyle, t.muted())
		w := runewidth.StringWidth(card.Title)
		for _, line := range code {
			if lw := runewidth.StringWidth(SpansText(line)); lw > w {
				w = lw
			}
		}
		w += cardChrome
		if w < minCardW {
			w = minCardW
		}
		if w > maxCardW {
			w = maxCardW
		}
		p.cards = append(p.cards, CardLayout{X: x, Width: w, Card: card, Code: code})
		x += w + cardGap
	}
	p.cards = append(p.cards, CardLayout{
		X:       x,
		Width:   archiveW,
		Card:    Card{Title: p.content.ArchiveTitle, Role: p.content.ArchiveSub},
		Archive: true,
	})
	p.track = x + archiveW + trackPad
}

// CardAt returns the index of the card under screen column x given the
// track's current horizontal shift.
func (p *Page) CardAt(x int, translateX float64) (int, bool) {
	shift := int(translateX)
	for i, c := range p.cards {
		left := c.X + shift
		if x >= left && x < left+c.Width {
			return i, true
		}
	}
	return 0, false
}

func plain(s string, st tcell.Style) Line {
	return Line{Spans: []Span{{Text: s, Style: st}}}
}

func centered(s string, st tcell.Style) Line {
	return Line{Spans: []Span{{Text: s, Style: st}}, Center: true}
}

func paragraph(text string, width int, st tcell.Style) []Line {
	var out []Line
	for _, l := range wrap(text, width) {
		out = append(out, plain(l, st))
	}
	return out
}

// wrap breaks text into lines no wider than width columns, splitting on
// spaces and hard-breaking words that are longer than a line.
func wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	var cur strings.Builder
	curW := 0
	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curW = 0
	}
	for _, word := range strings.Fields(text) {
		ww := runewidth.StringWidth(word)
		for ww > width {
			if curW > 0 {
				flush()
			}
			head := runewidth.Truncate(word, width, "")
			lines = append(lines, head)
			word = strings.TrimPrefix(word, head)
			ww = runewidth.StringWidth(word)
		}
		if ww == 0 {
			continue
		}
		switch {
		case curW == 0:
		case curW+1+ww <= width:
			cur.WriteByte(' ')
			curW++
		default:
			flush()
		}
		cur.WriteString(word)
		curW += ww
	}
	if curW > 0 {
		flush()
	}
	return lines
}

func leader(left, right string, width int) string {
	gap := width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(".", gap) + right
}

func padRight(s string, width int) string {
	if pad := width - runewidth.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

func lineWidth(l Line) int {
	w := 0
	for _, sp := range l.Spans {
		w += runewidth.StringWidth(sp.Text)
	}
	return w
}
