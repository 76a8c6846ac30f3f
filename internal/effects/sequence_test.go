// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package effects

import (
	"math"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/scrollstage/ticker"
	"github.com/framegrace/scrollstage/trigger"
)

var _ trigger.Animation = (*Sequence)(nil)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestEasingEndpoints(t *testing.T) {
	for name, fn := range easingNames {
		if !near(fn(0), 0) || !near(fn(1), 1) {
			t.Fatalf("%s: f(0)=%v f(1)=%v", name, fn(0), fn(1))
		}
	}
	if _, err := EasingByName("Expo.InOut"); err != nil {
		t.Fatalf("EasingByName should ignore case: %v", err)
	}
	if _, err := EasingByName("bounce"); err == nil {
		t.Fatalf("expected error for unknown easing")
	}
}

func TestPreloaderTimelineLayout(t *testing.T) {
	seq, err := Build("preloader", nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if seq.Duration() != 3*time.Second {
		t.Fatalf("Duration = %v, want 3s", seq.Duration())
	}
	if start, _ := seq.StartOf(PropText); start != time.Second {
		t.Fatalf("text starts at %v, want 1s (overlapping the line by 0.5s)", start)
	}
	if start, _ := seq.StartOf(PropCurtain); start != 2*time.Second {
		t.Fatalf("curtain starts at %v, want 2s", start)
	}
	if seq.Value(PropCurtain) != 1 || seq.Value(PropLine) != 0 {
		t.Fatalf("initial values line=%v curtain=%v", seq.Value(PropLine), seq.Value(PropCurtain))
	}
}

func TestSequencePlaysToCompletion(t *testing.T) {
	seq, _ := Build("preloader", nil)
	done := 0
	seq.OnComplete(func() { done++ })
	seq.Play()

	seq.Update(750 * time.Millisecond)
	if v := seq.Value(PropLine); !near(v, 0.5) {
		t.Fatalf("line at 0.75s = %v, want 0.5 (midpoint of in-out)", v)
	}
	seq.Update(750 * time.Millisecond)
	if seq.Value(PropLine) != 1 || seq.Value(PropText) != 1 {
		t.Fatalf("line/text should be complete at 1.5s")
	}
	seq.Update(2 * time.Second)
	if !seq.Completed() || seq.Active() || done != 1 {
		t.Fatalf("completed %v active %v done %d", seq.Completed(), seq.Active(), done)
	}
	if seq.Value(PropCurtain) != 0 {
		t.Fatalf("curtain = %v, want 0", seq.Value(PropCurtain))
	}
	seq.Play()
	if done != 1 {
		t.Fatalf("Play at the end should not re-fire completion")
	}
}

func TestReverseReturnsToStart(t *testing.T) {
	seq, _ := Build("reveal", nil)
	back := 0
	seq.OnReverseComplete(func() { back++ })
	seq.Play()
	seq.Update(400 * time.Millisecond)
	seq.Reverse()
	seq.Update(time.Second)
	if seq.Position() != 0 || back != 1 || seq.Active() {
		t.Fatalf("pos %v back %d active %v", seq.Position(), back, seq.Active())
	}
	if seq.Value(PropOpacity) != 0 || seq.Value(PropY) != 50 {
		t.Fatalf("reveal should be back at its from values")
	}
}

func TestReverseBeforeFirstUpdateCompletesAtOnce(t *testing.T) {
	seq, _ := Build("reveal", nil)
	back := 0
	seq.OnReverseComplete(func() { back++ })
	seq.Play()
	seq.Reverse()
	if back != 1 || seq.Active() {
		t.Fatalf("back %d active %v, want reverse complete without a frame", back, seq.Active())
	}
	seq.Reverse()
	seq.Update(time.Second)
	if back != 1 {
		t.Fatalf("idle sequence at start reported reverse completion again (%d)", back)
	}
}

func TestPauseResumeAndComplete(t *testing.T) {
	seq, _ := Build("reveal", nil)
	seq.Play()
	seq.Update(200 * time.Millisecond)
	seq.Pause()
	seq.Update(time.Second)
	if seq.Position() != 200*time.Millisecond {
		t.Fatalf("paused sequence moved to %v", seq.Position())
	}
	seq.Resume()
	seq.Update(100 * time.Millisecond)
	if seq.Position() != 300*time.Millisecond {
		t.Fatalf("resumed position %v", seq.Position())
	}
	seq.Complete()
	if seq.Value(PropOpacity) != 1 || !seq.Completed() {
		t.Fatalf("Complete should jump to the end")
	}
	seq.Reset()
	if seq.Position() != 0 || seq.Active() || seq.Completed() {
		t.Fatalf("Reset should stop at the start")
	}
}

func TestToggleActionsDriveSequence(t *testing.T) {
	seq, _ := Build("reveal", nil)
	actions := trigger.PlayReverse(seq)
	actions.OnEnter()
	if !seq.Active() {
		t.Fatalf("OnEnter should play")
	}
	seq.Update(2 * time.Second)
	actions.OnLeaveBack()
	seq.Update(2 * time.Second)
	if seq.Value(PropOpacity) != 0 {
		t.Fatalf("OnLeaveBack should reverse to hidden")
	}
}

func TestPresetParams(t *testing.T) {
	seq, err := Build("reveal", Params{"duration_ms": 500, "distance": 10, "easing": "linear"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	seq.Play()
	seq.Update(250 * time.Millisecond)
	if !near(seq.Value(PropY), 5) {
		t.Fatalf("y = %v, want 5", seq.Value(PropY))
	}
	if _, err := Build("reveal", Params{"easing": "wobble"}); err == nil {
		t.Fatalf("expected bad easing error")
	}
	if _, err := Build("missing", nil); err == nil {
		t.Fatalf("expected unknown preset error")
	}
}

func TestManagerFollowsTicker(t *testing.T) {
	clock := ticker.NewManualClock(time.Unix(0, 0))
	tk := ticker.New(clock)
	m := NewManager()
	m.Attach(tk)

	seq, _ := Build("reveal", nil)
	m.Add(seq)
	m.Add(seq)
	if m.Len() != 1 {
		t.Fatalf("Len = %d", m.Len())
	}
	seq.Play()
	tk.Tick(clock.Now())
	tk.Tick(clock.Advance(500 * time.Millisecond))
	if seq.Position() != 500*time.Millisecond || !m.Active() {
		t.Fatalf("position %v active %v", seq.Position(), m.Active())
	}
	m.Detach()
	tk.Tick(clock.Advance(500 * time.Millisecond))
	if seq.Position() != 500*time.Millisecond {
		t.Fatalf("detached manager still advanced")
	}
	m.Remove(seq)
	if m.Len() != 0 {
		t.Fatalf("Remove left %d", m.Len())
	}
}

func TestFadeBlendsTowardBackground(t *testing.T) {
	bg := tcell.NewRGBColor(0, 0, 0)
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(200, 100, 0))
	if Fade(style, bg, 1) != style {
		t.Fatalf("opacity 1 should not change the style")
	}
	fg, _, _ := Fade(style, bg, 0.5).Decompose()
	r, g, b := fg.RGB()
	if r != 100 || g != 50 || b != 0 {
		t.Fatalf("half fade = %d,%d,%d", r, g, b)
	}
	if c, ok := ParseHexColor("#102030"); !ok || c != tcell.NewRGBColor(0x10, 0x20, 0x30) {
		t.Fatalf("ParseHexColor = %v %v", c, ok)
	}
}
