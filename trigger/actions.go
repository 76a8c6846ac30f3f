// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: trigger/actions.go
// Summary: Transition slots and toggle-action bindings for triggers.
// Usage: ToggleActions order is onEnter, onLeave, onEnterBack, onLeaveBack,
// e.g. "play none none reverse".

package trigger

import (
	"fmt"
	"strings"
)

// Actions holds the four transition slots. Nil slots are no-ops.
type Actions struct {
	OnEnter     func() // progress crossed 0 going forward
	OnLeave     func() // progress crossed 1 going forward
	OnEnterBack func() // progress crossed 1 going backward
	OnLeaveBack func() // progress crossed 0 going backward
}

// Animation is anything a toggle action can drive.
type Animation interface {
	Play()
	Reverse()
	Restart()
	Reset()
	Pause()
	Resume()
	Complete()
}

// ToggleAction is one verb in a toggle-action list.
type ToggleAction int

const (
	ActionNone ToggleAction = iota
	ActionPlay
	ActionPause
	ActionResume
	ActionReverse
	ActionRestart
	ActionReset
	ActionComplete
)

var toggleActionNames = map[string]ToggleAction{
	"none":     ActionNone,
	"play":     ActionPlay,
	"pause":    ActionPause,
	"resume":   ActionResume,
	"reverse":  ActionReverse,
	"restart":  ActionRestart,
	"reset":    ActionReset,
	"complete": ActionComplete,
}

func (a ToggleAction) String() string {
	for name, v := range toggleActionNames {
		if v == a {
			return name
		}
	}
	return fmt.Sprintf("ToggleAction(%d)", int(a))
}

// ToggleActions maps the four slots, in slot order, to verbs.
type ToggleActions [4]ToggleAction

// PlayNoneNoneReverse plays on forward entry and reverses only when scrolling
// back above the start.
var PlayNoneNoneReverse = ToggleActions{ActionPlay, ActionNone, ActionNone, ActionReverse}

// ParseToggleActions parses up to four space separated verbs. Missing trailing
// verbs default to none.
func ParseToggleActions(s string) (ToggleActions, error) {
	var out ToggleActions
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 || len(fields) > 4 {
		return out, fmt.Errorf("toggle actions %q: want 1 to 4 verbs, got %d", s, len(fields))
	}
	for i, f := range fields {
		a, ok := toggleActionNames[f]
		if !ok {
			return out, fmt.Errorf("toggle actions %q: unknown verb %q", s, f)
		}
		out[i] = a
	}
	return out, nil
}

func (t ToggleActions) String() string {
	parts := make([]string, len(t))
	for i, a := range t {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}

// Bind produces the transition slots that apply t to anim.
func (t ToggleActions) Bind(anim Animation) Actions {
	return Actions{
		OnEnter:     verb(t[0], anim),
		OnLeave:     verb(t[1], anim),
		OnEnterBack: verb(t[2], anim),
		OnLeaveBack: verb(t[3], anim),
	}
}

// PlayReverse binds anim with "play none none reverse".
func PlayReverse(anim Animation) Actions {
	return PlayNoneNoneReverse.Bind(anim)
}

func verb(a ToggleAction, anim Animation) func() {
	if anim == nil {
		return nil
	}
	switch a {
	case ActionPlay:
		return anim.Play
	case ActionPause:
		return anim.Pause
	case ActionResume:
		return anim.Resume
	case ActionReverse:
		return anim.Reverse
	case ActionRestart:
		return anim.Restart
	case ActionReset:
		return anim.Reset
	case ActionComplete:
		return anim.Complete
	}
	return nil
}
