// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/runner_test.go
// Summary: Exercises the site runner against a simulation screen.
// Usage: Executed during `go test` to guard against regressions.

package devshell_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/scrollstage/internal/devshell"
	"github.com/framegrace/scrollstage/internal/site"
	"github.com/framegrace/scrollstage/stage"
)

func defaultOptions() devshell.Options {
	return devshell.Options{
		Site:  site.DefaultOptions(),
		Stage: stage.DefaultOptions(),
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	defer devshell.SetScreenFactory(nil)

	screen := tcell.NewSimulationScreen("UTF-8")
	devshell.SetScreenFactory(func() (tcell.Screen, error) {
		return screen, nil
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- devshell.Run(context.Background(), defaultOptions())
	}()

	deadline := time.After(3 * time.Second)
	for {
		select {
		case err := <-errCh:
			if err != nil {
				t.Fatalf("run returned error: %v", err)
			}
			return
		case <-deadline:
			t.Fatal("run did not exit after q")
		case <-time.After(20 * time.Millisecond):
			// The queue only exists once Run has initialised the screen.
			_ = screen.PostEvent(tcell.NewEventResize(60, 20))
			_ = screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0))
		}
	}
}

func TestRunStopsWithContext(t *testing.T) {
	defer devshell.SetScreenFactory(nil)
	devshell.SetScreenFactory(func() (tcell.Screen, error) {
		return tcell.NewSimulationScreen("UTF-8"), nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	opts := defaultOptions()
	opts.View = site.ViewAbout
	if err := devshell.Run(ctx, opts); err != nil {
		t.Fatalf("cancelled run should exit cleanly, got %v", err)
	}
}

func TestRunReportsScreenFailure(t *testing.T) {
	defer devshell.SetScreenFactory(nil)
	devshell.SetScreenFactory(func() (tcell.Screen, error) {
		return nil, errors.New("no tty")
	})
	err := devshell.Run(context.Background(), defaultOptions())
	if err == nil || !strings.Contains(err.Error(), "no tty") {
		t.Fatalf("expected wrapped screen error, got %v", err)
	}
}

func TestRunRejectsBadTriggerOptions(t *testing.T) {
	defer devshell.SetScreenFactory(nil)
	devshell.SetScreenFactory(func() (tcell.Screen, error) {
		return tcell.NewSimulationScreen("UTF-8"), nil
	})
	opts := defaultOptions()
	opts.Site.RevealStart = "sideways 10%"
	if err := devshell.Run(context.Background(), opts); err == nil {
		t.Fatal("expected an error for an unparseable reveal start")
	}
}

func TestParseView(t *testing.T) {
	if v, err := devshell.ParseView("About"); err != nil || v != site.ViewAbout {
		t.Fatalf("ParseView(About) = %v, %v", v, err)
	}
	if v, err := devshell.ParseView(""); err != nil || v != site.ViewHome {
		t.Fatalf("ParseView(\"\") = %v, %v", v, err)
	}
	if _, err := devshell.ParseView("contact"); err == nil {
		t.Fatal("expected error for unknown view")
	}
}
