// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for scrollstage configuration.

package config

import (
	"os"
	"path/filepath"
)

// Root returns the scrollstage directory under the user config dir. The
// binary also keeps its default log file there.
func Root() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "scrollstage"), nil
}

func systemConfigPath() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, systemConfigName), nil
}
