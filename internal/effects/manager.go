// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/manager.go
// Summary: Advances every registered sequence once per ticker frame.
// Usage: Attach to the stage ticker; Add sequences as sections are built.

package effects

import (
	"time"

	"github.com/framegrace/scrollstage/ticker"
)

// Manager owns a set of sequences and steps them with frame time. It is not
// safe for concurrent use.
type Manager struct {
	sequences []*Sequence
	listener  ticker.ListenerID
	ticker    *ticker.Ticker
}

func NewManager() *Manager {
	return &Manager{}
}

// Attach drives the manager from t. Attaching again moves it to the new ticker.
func (m *Manager) Attach(t *ticker.Ticker) {
	m.Detach()
	if t == nil {
		return
	}
	m.ticker = t
	m.listener = t.Add(func(_ time.Time, dt time.Duration) {
		m.Update(dt)
	})
}

// Detach stops receiving frames.
func (m *Manager) Detach() {
	if m.ticker != nil {
		m.ticker.Remove(m.listener)
		m.ticker = nil
	}
}

// Add registers seq. Adding the same sequence twice has no effect.
func (m *Manager) Add(seq *Sequence) {
	if seq == nil {
		return
	}
	for _, s := range m.sequences {
		if s == seq {
			return
		}
	}
	m.sequences = append(m.sequences, seq)
}

// Remove unregisters seq.
func (m *Manager) Remove(seq *Sequence) {
	for i, s := range m.sequences {
		if s == seq {
			m.sequences = append(m.sequences[:i:i], m.sequences[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered sequences.
func (m *Manager) Len() int {
	return len(m.sequences)
}

// Update advances every sequence by dt. Completion callbacks may add or
// remove sequences; changes apply from the next frame.
func (m *Manager) Update(dt time.Duration) {
	if m == nil {
		return
	}
	sequences := append([]*Sequence(nil), m.sequences...)
	for _, seq := range sequences {
		seq.Update(dt)
	}
}

// Active reports whether any sequence is still moving.
func (m *Manager) Active() bool {
	for _, seq := range m.sequences {
		if seq.Active() {
			return true
		}
	}
	return false
}
