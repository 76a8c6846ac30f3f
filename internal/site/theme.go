// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/site/theme.go
// Summary: Colour palette for the site, read from the "theme" config section.

package site

import (
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/scrollstage/config"
	"github.com/framegrace/scrollstage/internal/effects"
)

// Theme is the site palette.
type Theme struct {
	Background tcell.Color
	Text       tcell.Color
	Muted      tcell.Color
	Accent     tcell.Color
	Alert      tcell.Color
	CodeStyle  string
}

// DefaultTheme is the void-and-paper palette.
func DefaultTheme() Theme {
	return Theme{
		Background: tcell.NewRGBColor(0x0a, 0x0a, 0x0a),
		Text:       tcell.NewRGBColor(0xe8, 0xe4, 0xdc),
		Muted:      tcell.NewRGBColor(0x7a, 0x7a, 0x7a),
		Accent:     tcell.NewRGBColor(0xc9, 0xa3, 0x5b),
		Alert:      tcell.NewRGBColor(0xd9, 0x4f, 0x3d),
		CodeStyle:  defaultCodeStyle,
	}
}

// ThemeFromConfig overlays hex colours from cfg["theme"] on DefaultTheme.
// Unparseable values are logged and ignored.
func ThemeFromConfig(cfg config.Config) Theme {
	t := DefaultTheme()
	pick := func(key string, dst *tcell.Color) {
		raw := cfg.GetString("theme", key, "")
		if raw == "" {
			return
		}
		c, ok := effects.ParseHexColor(raw)
		if !ok {
			log.Printf("Site: ignoring theme.%s=%q", key, raw)
			return
		}
		*dst = c
	}
	pick("background", &t.Background)
	pick("text", &t.Text)
	pick("muted", &t.Muted)
	pick("accent", &t.Accent)
	pick("alert", &t.Alert)
	t.CodeStyle = cfg.GetString("theme", "code_style", t.CodeStyle)
	return t
}

func (t Theme) base() tcell.Style {
	return tcell.StyleDefault.Background(t.Background).Foreground(t.Text)
}

func (t Theme) muted() tcell.Style { return t.base().Foreground(t.Muted) }
func (t Theme) accent() tcell.Style { return t.base().Foreground(t.Accent) }
func (t Theme) alert() tcell.Style { return t.base().Foreground(t.Alert) }
func (t Theme) strong() tcell.Style { return t.base().Bold(true) }
