// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/site/screen.go
// Summary: Rendering surface abstraction and its tcell implementation.
// Usage: The host wraps a tcell.Screen with NewTcellScreen; tests draw onto a
// plain cell grid through Canvas.

package site

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Canvas is the part of a screen the renderer draws on.
type Canvas interface {
	Size() (int, int)
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
}

// Screen is the full terminal surface: a Canvas plus lifecycle and input.
type Screen interface {
	Canvas
	Init() error
	Fini()
	SetStyle(style tcell.Style)
	HideCursor()
	EnableMouse()
	Show()
	Sync()
	PollEvent() tcell.Event
	GetContent(x, y int) (rune, []rune, tcell.Style, int)
}

// TcellScreen adapts a tcell.Screen to Screen.
type TcellScreen struct {
	screen tcell.Screen
}

// NewTcellScreen wraps the provided screen.
func NewTcellScreen(screen tcell.Screen) *TcellScreen {
	return &TcellScreen{screen: screen}
}

func (d *TcellScreen) Init() error {
	return d.screen.Init()
}

func (d *TcellScreen) Fini() {
	d.screen.Fini()
}

func (d *TcellScreen) Size() (int, int) {
	return d.screen.Size()
}

func (d *TcellScreen) SetStyle(style tcell.Style) {
	d.screen.SetStyle(style)
}

func (d *TcellScreen) HideCursor() {
	d.screen.HideCursor()
}

// EnableMouse turns on motion reporting so the cursor ring can follow.
func (d *TcellScreen) EnableMouse() {
	d.screen.EnableMouse(tcell.MouseMotionEvents)
}

func (d *TcellScreen) Show() {
	d.screen.Show()
}

func (d *TcellScreen) Sync() {
	d.screen.Sync()
}

func (d *TcellScreen) PollEvent() tcell.Event {
	return d.screen.PollEvent()
}

func (d *TcellScreen) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	d.screen.SetContent(x, y, mainc, combc, style)
}

func (d *TcellScreen) GetContent(x, y int) (rune, []rune, tcell.Style, int) {
	return d.screen.GetContent(x, y)
}

// Underlying exposes the wrapped tcell.Screen.
func (d *TcellScreen) Underlying() tcell.Screen {
	return d.screen
}

// fill paints rows [y0, y1) across the canvas with style.
func fill(c Canvas, y0, y1 int, style tcell.Style) {
	w, h := c.Size()
	if y0 < 0 {
		y0 = 0
	}
	if y1 > h {
		y1 = h
	}
	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			c.SetContent(x, y, ' ', nil, style)
		}
	}
}

// drawText writes s at (x, y), clipping at the canvas edges, and returns the
// column after the last cell written. Wide runes take two columns.
func drawText(c Canvas, x, y int, s string, style tcell.Style) int {
	w, h := c.Size()
	if y < 0 || y >= h {
		return x + runewidth.StringWidth(s)
	}
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x >= 0 && x+rw <= w {
			c.SetContent(x, y, r, nil, style)
		}
		x += rw
	}
	return x
}

// drawSpans writes a line of spans starting at (x, y).
func drawSpans(c Canvas, x, y int, spans []Span, restyle func(tcell.Style) tcell.Style) int {
	for _, sp := range spans {
		st := sp.Style
		if restyle != nil {
			st = restyle(st)
		}
		x = drawText(c, x, y, sp.Text, st)
	}
	return x
}
