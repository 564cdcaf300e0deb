// Copyright (c) 2025 The demandgraph authors
// SPDX-License-Identifier: MIT

// Package engineconfig holds the YAML-loadable configuration for an
// Engine: logging destination/level and node-table sizing.
package engineconfig

// FileLoggerConfig configures rotation when LoggerConfig.Mode is "file".
type FileLoggerConfig struct {
	Path       string `yaml:"path"`
	MaxSize    int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// LoggerConfig configures the engine's zap backend.
type LoggerConfig struct {
	Level    string           `yaml:"level"`    // debug|info|warn|error
	Encoding string           `yaml:"encoding"` // console|json
	Mode     string           `yaml:"mode"`     // stdout|file
	File     FileLoggerConfig `yaml:"file"`
}

// EngineConfig is the full, file-loadable engine configuration.
type EngineConfig struct {
	Logger    LoggerConfig `yaml:"logger"`
	TableHint int          `yaml:"table_hint"`
}

// DefaultEngineConfig returns sane defaults for programs that do not
// ship a config file: info-level console logging to stdout.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Logger: LoggerConfig{
			Level:    "info",
			Encoding: "console",
			Mode:     "stdout",
		},
	}
}
