// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func resetStore() {
	once = sync.Once{}
	system = nil
	loadErr = nil
	pathOverride = ""
}

func TestDefaultsWritten(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	cfg := System()
	if got := cfg.GetFloat("scroll", "ease", 0); got != 0.1 {
		t.Fatalf("expected scroll.ease 0.1, got %v", got)
	}

	path, err := systemConfigPath()
	if err != nil {
		t.Fatalf("systemConfigPath: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}

	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal config: %v", err)
	}
	if disk.Section("triggers") == nil {
		t.Fatalf("expected triggers section to be present")
	}
}

func TestSaveWritesUpdates(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	System().Section("scroll")["ease"] = 0.25
	if err := Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path, err := systemConfigPath()
	if err != nil {
		t.Fatalf("systemConfigPath: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}

	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal config: %v", err)
	}
	if got := disk.GetFloat("scroll", "ease", 0); got != 0.25 {
		t.Fatalf("expected scroll.ease 0.25, got %v", got)
	}
	if got := disk.GetFloat("scroll", "refresh_rate", 0); got != 60 {
		t.Fatalf("expected back-filled refresh_rate 60, got %v", got)
	}
}

func TestExistingFileKeepsUserValues(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)
	resetStore()

	path := filepath.Join(root, "scrollstage", systemConfigName)
	if err := writeConfig(path, Config{
		"pin": map[string]interface{}{"settle_delay_ms": 250},
	}); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := System()
	if got := cfg.GetDurationMs("pin", "settle_delay_ms", 0); got != 250*time.Millisecond {
		t.Fatalf("expected pin settle 250ms, got %v", got)
	}
	if got := cfg.GetString("triggers", "reveal_start", ""); got != "top 80%" {
		t.Fatalf("expected default reveal_start, got %q", got)
	}
	if Err() != nil {
		t.Fatalf("unexpected load error: %v", Err())
	}
}

func TestUsePathOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	path := filepath.Join(t.TempDir(), "custom.json")
	if err := writeConfig(path, Config{
		"ticker": map[string]interface{}{"fps": 30},
	}); err != nil {
		t.Fatalf("write config: %v", err)
	}
	UsePath(path)
	if got := System().GetInt("ticker", "fps", 0); got != 30 {
		t.Fatalf("expected fps 30 from override, got %d", got)
	}
}

func TestMalformedFileReportsError(t *testing.T) {
	resetStore()
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	UsePath(path)
	cfg := System()
	if Err() == nil {
		t.Fatalf("expected a parse error")
	}
	if got := cfg.GetFloat("pointer", "follow_ease", 0); got != 0.2 {
		t.Fatalf("defaults should still apply, got %v", got)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "{not json" {
		t.Fatalf("a malformed file must not be overwritten")
	}
}

func TestGetDurationMsFallback(t *testing.T) {
	cfg := Config{"lifecycle": map[string]interface{}{"settle_delay_ms": 0}}
	if got := cfg.GetDurationMs("lifecycle", "settle_delay_ms", time.Second); got != time.Second {
		t.Fatalf("zero should fall back, got %v", got)
	}
	if got := cfg.GetDurationMs("missing", "x", 5*time.Millisecond); got != 5*time.Millisecond {
		t.Fatalf("missing should fall back, got %v", got)
	}
}

func TestGetBoolAcceptsStringsAndNumbers(t *testing.T) {
	cfg := Config{"pointer": map[string]interface{}{
		"enabled": "false",
		"trail":   json.Number("1"),
	}}
	if cfg.GetBool("pointer", "enabled", true) {
		t.Fatalf("string false should parse")
	}
	if !cfg.GetBool("pointer", "trail", false) {
		t.Fatalf("non-zero number should be true")
	}
	if !cfg.GetBool("missing", "enabled", true) {
		t.Fatalf("missing section should fall back")
	}
}
