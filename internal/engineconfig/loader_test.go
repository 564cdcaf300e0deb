// Copyright (c) 2025 The demandgraph authors
// SPDX-License-Identifier: MIT

package engineconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "logger:\n  level: debug\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Logger.Level)
	require.Equal(t, "console", cfg.Logger.Encoding, "unset fields keep their defaults")
	require.Equal(t, "stdout", cfg.Logger.Mode)
	require.Equal(t, 0, cfg.TableHint)
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: warn
  encoding: json
  mode: file
  file:
    path: /var/log/dcg/engine.log
    max_size_mb: 16
    max_backups: 3
    max_age_days: 7
    compress: true
table_hint: 1024
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.Logger.Level)
	require.Equal(t, "json", cfg.Logger.Encoding)
	require.Equal(t, "file", cfg.Logger.Mode)
	require.Equal(t, "/var/log/dcg/engine.log", cfg.Logger.File.Path)
	require.Equal(t, 16, cfg.Logger.File.MaxSize)
	require.True(t, cfg.Logger.File.Compress)
	require.Equal(t, 1024, cfg.TableHint)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "logger:\n  level: info\ntable_hint: 8\n")

	t.Setenv("DCG_LOG_LEVEL", "error")
	t.Setenv("DCG_TABLE_HINT", "256")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "error", cfg.Logger.Level)
	require.Equal(t, 256, cfg.TableHint)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
