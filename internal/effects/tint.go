// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/tint.go
// Summary: Colour blending used to render sequence opacity in a terminal.
// Notes: Terminal cells have no alpha, so opacity is a blend toward the
// background colour.

package effects

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// Fade returns style with its foreground blended toward background so that
// opacity 1 is unchanged and opacity 0 is invisible.
func Fade(style tcell.Style, background tcell.Color, opacity float64) tcell.Style {
	if opacity >= 1 {
		return style
	}
	if opacity < 0 {
		opacity = 0
	}
	fg, _, _ := style.Decompose()
	if !fg.Valid() {
		fg = tcell.ColorWhite
	}
	return style.Foreground(BlendColor(fg, background, 1-opacity))
}

// TintStyle blends both colours of style toward overlay by intensity.
func TintStyle(style tcell.Style, overlay tcell.Color, intensity float64) tcell.Style {
	if intensity <= 0 {
		return style
	}
	fg, bg, _ := style.Decompose()
	if !fg.Valid() {
		fg = tcell.ColorWhite
	}
	if !bg.Valid() {
		bg = tcell.ColorBlack
	}
	return style.Foreground(BlendColor(fg, overlay, intensity)).
		Background(BlendColor(bg, overlay, intensity))
}

// BlendColor mixes overlay into base; intensity 0 keeps base, 1 yields overlay.
func BlendColor(base, overlay tcell.Color, intensity float64) tcell.Color {
	if !overlay.Valid() || intensity <= 0 {
		return base
	}
	if !base.Valid() {
		return overlay
	}
	if intensity > 1 {
		intensity = 1
	}
	br, bg, bb := base.RGB()
	or, og, ob := overlay.RGB()
	blend := func(bc, oc int32) int32 {
		return int32(float64(bc)*(1-intensity) + float64(oc)*intensity)
	}
	return tcell.NewRGBColor(blend(br, or), blend(bg, og), blend(bb, ob))
}

// ParseHexColor parses "#rrggbb".
func ParseHexColor(value string) (tcell.Color, bool) {
	if len(value) == 7 && value[0] == '#' {
		if rgb, err := strconv.ParseInt(value[1:], 16, 32); err == nil {
			return tcell.NewRGBColor(int32((rgb>>16)&0xFF), int32((rgb>>8)&0xFF), int32(rgb&0xFF)), true
		}
	}
	return tcell.ColorDefault, false
}
