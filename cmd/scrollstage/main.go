// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/scrollstage/main.go
// Summary: Terminal host for the studio site.
// Usage: Run `scrollstage`; scroll with the wheel or arrows, `l`/`f`/`g` open
// overlays, `a` swaps views, Esc closes, `q` quits.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/term"

	"github.com/framegrace/scrollstage/config"
	"github.com/framegrace/scrollstage/internal/devshell"
	"github.com/framegrace/scrollstage/internal/site"
	"github.com/framegrace/scrollstage/stage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("scrollstage", flag.ContinueOnError)
	fps := fs.Int("fps", 0, "Frame rate (default: ticker.fps from config)")
	configPath := fs.String("config", "", "Path to the config file (default: <user config dir>/scrollstage/scrollstage.json)")
	logPath := fs.String("log", "", "Log file (default: <user config dir>/scrollstage/scrollstage.log)")
	view := fs.String("view", "home", "Initial view: home or about")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal")
	}

	initialView, err := devshell.ParseView(*view)
	if err != nil {
		return err
	}

	if *configPath != "" {
		config.UsePath(*configPath)
	}
	closeLog, err := setupLogging(*logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := config.System()
	if err := config.Err(); err != nil {
		log.Printf("Config: using defaults: %v", err)
	}
	stageOpts := stage.OptionsFromConfig(cfg)
	if *fps > 0 {
		stageOpts.FPS = *fps
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Scrollstage: starting (%d fps, view %s)", stageOpts.FPS, initialView)
	return devshell.Run(ctx, devshell.Options{
		Site:  site.OptionsFromConfig(cfg),
		Stage: stageOpts,
		View:  initialView,
	})
}

// setupLogging sends log output to a file; the terminal belongs to tcell.
func setupLogging(path string) (func(), error) {
	if path == "" {
		root, err := config.Root()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(root, "scrollstage.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return func() { _ = f.Close() }, nil
}
