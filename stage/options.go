// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: stage/options.go
// Summary: Engine tuning and its mapping from the config store.

package stage

import (
	"time"

	"github.com/framegrace/scrollstage/config"
	"github.com/framegrace/scrollstage/lifecycle"
	"github.com/framegrace/scrollstage/pin"
	"github.com/framegrace/scrollstage/scroll"
	"github.com/framegrace/scrollstage/ticker"
)

const (
	DefaultFPS        = 60
	DefaultFollowEase = 0.2
)

// Options tunes an Engine.
type Options struct {
	Scroll scroll.Options

	// FPS is the frame rate Run drives the ticker at.
	FPS int

	LifecycleSettle time.Duration
	PinSettle       time.Duration

	// FollowEase is the fraction of the gap the pointer ring closes per
	// 60 Hz frame.
	FollowEase float64

	// Clock overrides the time source; nil uses the system clock.
	Clock ticker.Clock
}

// DefaultOptions returns the stock engine tuning.
func DefaultOptions() Options {
	return Options{
		Scroll:          scroll.DefaultOptions(),
		FPS:             DefaultFPS,
		LifecycleSettle: lifecycle.DefaultSettleDelay,
		PinSettle:       pin.DefaultSettleDelay,
		FollowEase:      DefaultFollowEase,
	}
}

// OptionsFromConfig reads the scroll, ticker, lifecycle, pin and pointer
// sections of cfg, falling back to DefaultOptions for anything missing.
func OptionsFromConfig(cfg config.Config) Options {
	opts := DefaultOptions()
	opts.Scroll.Ease = cfg.GetFloat("scroll", "ease", opts.Scroll.Ease)
	opts.Scroll.RefreshRate = cfg.GetFloat("scroll", "refresh_rate", opts.Scroll.RefreshRate)
	opts.FPS = cfg.GetInt("ticker", "fps", opts.FPS)
	opts.LifecycleSettle = cfg.GetDurationMs("lifecycle", "settle_delay_ms", opts.LifecycleSettle)
	opts.PinSettle = cfg.GetDurationMs("pin", "settle_delay_ms", opts.PinSettle)
	opts.FollowEase = cfg.GetFloat("pointer", "follow_ease", opts.FollowEase)
	return opts
}

// FrameInterval converts FPS into the ticker interval.
func (o Options) FrameInterval() time.Duration {
	fps := o.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}
