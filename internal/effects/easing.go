// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/easing.go
// Summary: Easing curves shared by sequences and the site renderer.
// Notes: Every curve maps [0,1] onto [0,1] with f(0)=0 and f(1)=1.

package effects

import (
	"fmt"
	"math"
	"strings"
)

// EasingFunc maps progress [0,1] to eased progress [0,1].
type EasingFunc func(t float64) float64

// Common easing functions
var (
	// EaseLinear - No easing, constant speed
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseSmoothstep - Smooth S-curve
	EaseSmoothstep EasingFunc = func(t float64) float64 {
		return t * t * (3.0 - 2.0*t)
	}

	// EaseSmootherstep - Even smoother S-curve with zero derivatives at 0 and 1
	EaseSmootherstep EasingFunc = func(t float64) float64 {
		return t * t * t * (t*(t*6.0-15.0) + 10.0)
	}

	// EaseInQuad - Quadratic ease-in (slow start, accelerating)
	EaseInQuad EasingFunc = func(t float64) float64 {
		return t * t
	}

	// EaseOutQuad - Quadratic ease-out (fast start, decelerating)
	EaseOutQuad EasingFunc = func(t float64) float64 {
		return t * (2.0 - t)
	}

	// EaseInOutQuad - Quadratic ease-in-out
	EaseInOutQuad EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 2.0 * t * t
		}
		return -1.0 + (4.0-2.0*t)*t
	}

	// EaseOutCubic - Cubic ease-out
	EaseOutCubic EasingFunc = func(t float64) float64 {
		t1 := t - 1.0
		return t1*t1*t1 + 1.0
	}

	// EaseInOutCubic - Cubic ease-in-out
	EaseInOutCubic EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 4.0 * t * t * t
		}
		t1 := 2.0*t - 2.0
		return 1.0 + t1*t1*t1*0.5
	}

	// EasePower2Out is the quadratic ease-out used by section reveals.
	EasePower2Out = EaseOutQuad

	// EasePower2InOut is the quadratic ease-in-out used by the preloader line.
	EasePower2InOut = EaseInOutQuad

	// EaseExpoOut - Exponential ease-out
	EaseExpoOut EasingFunc = func(t float64) float64 {
		if t >= 1 {
			return 1
		}
		return 1 - math.Pow(2, -10*t)
	}

	// EaseExpoInOut - Exponential ease-in-out, used by the preloader curtain
	EaseExpoInOut EasingFunc = func(t float64) float64 {
		switch {
		case t <= 0:
			return 0
		case t >= 1:
			return 1
		case t < 0.5:
			return math.Pow(2, 20*t-10) / 2
		}
		return (2 - math.Pow(2, -20*t+10)) / 2
	}
)

var easingNames = map[string]EasingFunc{
	"linear":       EaseLinear,
	"none":         EaseLinear,
	"smoothstep":   EaseSmoothstep,
	"smootherstep": EaseSmootherstep,
	"quad.in":      EaseInQuad,
	"quad.out":     EaseOutQuad,
	"quad.inout":   EaseInOutQuad,
	"power2.out":   EasePower2Out,
	"power2.inout": EasePower2InOut,
	"cubic.out":    EaseOutCubic,
	"cubic.inout":  EaseInOutCubic,
	"power3.out":   EaseOutCubic,
	"power3.inout": EaseInOutCubic,
	"expo.out":     EaseExpoOut,
	"expo.inout":   EaseExpoInOut,
}

// EasingByName looks up a curve by name, case-insensitively
// ("power2.out", "expo.inOut", "smoothstep").
func EasingByName(name string) (EasingFunc, error) {
	if fn, ok := easingNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("effects: unknown easing %q", name)
}
