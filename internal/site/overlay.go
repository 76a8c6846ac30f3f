// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/site/overlay.go
// Summary: Modal overlays (legal protocols, FAQ, archive) that hold a scroll
// lock while open and scroll their own content.
// Notes: The lock is released as soon as an overlay starts closing; the fade
// out keeps drawing until its sequence has reversed to the start.

package site

import (
	"time"

	"github.com/framegrace/scrollstage/internal/effects"
	"github.com/framegrace/scrollstage/lock"
)

// OverlayKind identifies an overlay.
type OverlayKind int

const (
	OverlayLegal OverlayKind = iota
	OverlayFAQ
	OverlayArchive
)

func (k OverlayKind) String() string {
	switch k {
	case OverlayLegal:
		return "legal"
	case OverlayFAQ:
		return "faq"
	case OverlayArchive:
		return "archive"
	default:
		return "overlay"
	}
}

const overlayFade = 400 * time.Millisecond

// Overlay is one open (or closing) modal.
type Overlay struct {
	Kind   OverlayKind
	Title  string
	token  lock.Token
	fade   *effects.Sequence
	build  func(width int) []Line
	lines  []Line
	width  int
	offset int
	open   bool
}

func newOverlay(kind OverlayKind, title string, build func(width int) []Line) *Overlay {
	return &Overlay{
		Kind:  kind,
		Title: title,
		token: lock.NewToken(kind.String()),
		fade: effects.NewSequence(kind.String()+"-fade", effects.Step{
			Property: effects.PropOpacity,
			From:     0,
			To:       1,
			Duration: overlayFade,
			Easing:   effects.EasePower2Out,
		}),
		build: build,
		open:  true,
	}
}

// Open reports whether the overlay still holds its lock.
func (o *Overlay) Open() bool { return o.open }

// Opacity is the overlay's current fade level.
func (o *Overlay) Opacity() float64 { return o.fade.Value(effects.PropOpacity) }

// Offset is the first content row shown.
func (o *Overlay) Offset() int { return o.offset }

// Lines lays the overlay out for an inner width.
func (o *Overlay) Lines(width int) []Line {
	if o.lines == nil || width != o.width {
		o.width = width
		o.lines = o.build(width)
	}
	return o.lines
}

// Scroll moves the overlay's content by delta rows, clamped so the last line
// stays reachable within visible rows of an inner width.
func (o *Overlay) Scroll(delta, width, visible int) {
	max := len(o.Lines(width)) - visible
	if max < 0 {
		max = 0
	}
	o.offset += delta
	if o.offset > max {
		o.offset = max
	}
	if o.offset < 0 {
		o.offset = 0
	}
}

func legalLines(c Content, t Theme) func(int) []Line {
	return func(width int) []Line {
		var lines []Line
		for _, proto := range c.Protocols {
			lines = append(lines, Line{Spans: []Span{
				{Text: proto.ID + "  ", Style: t.muted()},
				{Text: proto.Title, Style: t.strong()},
			}})
			for _, cl := range proto.Clauses {
				label := t.accent()
				if cl.Alert {
					label = t.alert().Bold(true)
				}
				lines = append(lines, plain(cl.Label, label))
				lines = append(lines, paragraph(cl.Text, width, t.base())...)
			}
			lines = append(lines, Line{})
		}
		return append(lines, centered(c.LegalFooter, t.muted()))
	}
}

func faqLines(c Content, t Theme) func(int) []Line {
	return func(width int) []Line {
		lines := paragraph(c.FAQSubtitle, width, t.muted().Italic(true))
		lines = append(lines, Line{})
		for _, sec := range c.FAQ {
			lines = append(lines, plain(sec.Category, t.accent().Bold(true)))
			for _, qa := range sec.Items {
				lines = append(lines, paragraph(qa.Q, width, t.strong())...)
				lines = append(lines, paragraph(qa.A, width, t.base())...)
				lines = append(lines, Line{})
			}
		}
		return append(lines, centered(c.FAQCTA, t.accent()))
	}
}

func archiveLines(c Content, t Theme) func(int) []Line {
	return func(width int) []Line {
		var lines []Line
		for _, card := range c.Archive {
			lines = append(lines, Line{Spans: []Span{
				{Text: card.Title, Style: t.strong()},
				{Text: "  " + card.Author + " / " + card.Role, Style: t.muted()},
			}})
			for _, code := range Highlight(card.Filename, card.Code, t.CodeStyle, t.muted()) {
				lines = append(lines, Line{Spans: append([]Span{{Text: "  ", Style: t.base()}}, code...)})
			}
			lines = append(lines, Line{})
		}
		return append(lines, centered(c.ArchiveEndText, t.muted()))
	}
}
