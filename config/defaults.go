// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the scrollstage configuration file.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("scroll", Section{
		"ease":             0.1,
		"refresh_rate":     60,
		"wheel_multiplier": 3.0,
		"key_step":         4.0,
	})
	cfg.RegisterDefaults("ticker", Section{
		"fps": 60,
	})
	cfg.RegisterDefaults("lifecycle", Section{
		"settle_delay_ms": 100,
	})
	cfg.RegisterDefaults("pin", Section{
		"settle_delay_ms": 500,
	})
	cfg.RegisterDefaults("pointer", Section{
		"follow_ease": 0.2,
		"enabled":     true,
	})
	cfg.RegisterDefaults("triggers", Section{
		"reveal_start":       "top 80%",
		"reveal_end":         "bottom 20%",
		"toggle_actions":     "play none none reverse",
		"reveal_distance":    2.0,
		"reveal_duration_ms": 1000,
	})
	cfg.RegisterDefaults("navigation", Section{
		"bottom_buffer": 2.0,
	})
	cfg.RegisterDefaults("theme", Section{
		"background": "#0a0a0a",
		"text":       "#e8e4dc",
		"muted":      "#7a7a7a",
		"accent":     "#c9a35b",
		"alert":      "#d94f3d",
		"code_style": "monokai",
	})
}
