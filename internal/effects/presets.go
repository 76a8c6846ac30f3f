// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/presets.go
// Summary: Named sequence factories configured from JSON-style parameter maps.

package effects

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"
)

// Params configures a preset; keys mirror the config file.
type Params map[string]interface{}

// Factory builds a fresh sequence from params.
type Factory func(Params) (*Sequence, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register associates a preset ID with a factory. It panics on duplicate IDs.
func Register(id string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[id]; exists {
		panic("effects: duplicate registration for " + id)
	}
	registry[id] = factory
}

// Lookup fetches a factory by ID.
func Lookup(id string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[id]
	return f, ok
}

// Build looks up id and builds a sequence with params.
func Build(id string, params Params) (*Sequence, error) {
	f, ok := Lookup(id)
	if !ok {
		return nil, fmt.Errorf("effects: unknown preset %q", id)
	}
	seq, err := f(params)
	if err != nil {
		return nil, fmt.Errorf("effects: preset %q: %w", id, err)
	}
	return seq, nil
}

// RegisteredIDs returns the registered preset identifiers in name order.
func RegisteredIDs() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Property names used by the built-in presets.
const (
	PropOpacity = "opacity"
	PropY       = "y"
	PropLine    = "line"
	PropText    = "text"
	PropCurtain = "curtain"
)

func init() {
	// Section reveal: rises from y=distance to 0 while fading in, optionally
	// after delay_ms so sibling reveals can be staggered.
	Register("reveal", func(p Params) (*Sequence, error) {
		easing, err := p.easing("easing", EasePower2Out)
		if err != nil {
			return nil, err
		}
		duration := p.duration("duration_ms", time.Second)
		distance := p.float("distance", 50)
		delay := p.duration("delay_ms", 0)
		return NewSequence("reveal",
			Step{Property: PropY, From: distance, To: 0, Delay: delay, Duration: duration, Easing: easing},
			Step{Property: PropOpacity, From: 0, To: 1, Delay: -duration, Duration: duration, Easing: easing},
		), nil
	})

	// Preloader: progress line, then the label overlapping its tail, then the
	// curtain collapsing after a short hold.
	Register("preloader", func(p Params) (*Sequence, error) {
		line := p.duration("line_ms", 1500*time.Millisecond)
		text := p.duration("text_ms", 500*time.Millisecond)
		hold := p.duration("hold_ms", 500*time.Millisecond)
		curtain := p.duration("curtain_ms", time.Second)
		return NewSequence("preloader",
			Step{Property: PropLine, From: 0, To: 1, Duration: line, Easing: EasePower2InOut},
			Step{Property: PropText, From: 0, To: 1, Delay: -text, Duration: text, Easing: EaseLinear},
			Step{Property: PropCurtain, From: 1, To: 0, Delay: hold, Duration: curtain, Easing: EaseExpoInOut},
		), nil
	})
}

func (p Params) float(key string, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	switch v := p[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func (p Params) duration(key string, fallback time.Duration) time.Duration {
	ms := p.float(key, -1)
	if ms < 0 {
		return fallback
	}
	return time.Duration(ms * float64(time.Millisecond))
}

func (p Params) easing(key string, fallback EasingFunc) (EasingFunc, error) {
	name, ok := p[key].(string)
	if !ok || name == "" {
		return fallback, nil
	}
	return EasingByName(name)
}
