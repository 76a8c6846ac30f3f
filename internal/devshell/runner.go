// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/runner.go
// Summary: Runs the site inside a local tcell screen.
// Usage: cmd/scrollstage builds Options from the config store and calls Run.
// Notes: A poll goroutine turns tcell events into closures on the engine's
// inbox, so the site is only ever touched from the frame goroutine.

package devshell

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/scrollstage/internal/site"
	"github.com/framegrace/scrollstage/stage"
)

// Options configures Run.
type Options struct {
	Site  site.Options
	Stage stage.Options
	View  site.View
}

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by Run. Passing nil restores the default.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

// ParseView maps a view name to a site view.
func ParseView(name string) (site.View, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "home":
		return site.ViewHome, nil
	case "about":
		return site.ViewAbout, nil
	default:
		return site.ViewHome, fmt.Errorf("unknown view %q", name)
	}
}

// Run shows the site until the user quits or ctx ends. Either is a clean exit.
func Run(ctx context.Context, opts Options) error {
	tscreen, err := screenFactory()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen := site.NewTcellScreen(tscreen)
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()
	screen.EnableMouse()

	width, height := screen.Size()
	st, err := site.New(opts.Site, opts.Stage, screen, width, height)
	if err != nil {
		return fmt.Errorf("build site: %w", err)
	}
	defer st.Close()
	if opts.View != site.ViewHome {
		if err := st.SwapView(opts.View); err != nil {
			return fmt.Errorf("initial view: %w", err)
		}
	}
	st.Start()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	inbox := make(chan func(), 64)
	go pollEvents(ctx, screen, inbox, func(ev tcell.Event) {
		if _, ok := ev.(*tcell.EventResize); ok {
			screen.Sync()
		}
		if !st.HandleEvent(ev) {
			cancel()
		}
	})

	err = st.Engine().Run(ctx, inbox)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// pollEvents forwards events until the screen is finalised or ctx ends.
func pollEvents(ctx context.Context, screen site.Screen, inbox chan<- func(), handle func(tcell.Event)) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			log.Printf("Devshell: event stream closed")
			return
		}
		select {
		case inbox <- func() { handle(ev) }:
		case <-ctx.Done():
			return
		}
	}
}
