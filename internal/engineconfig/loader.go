// Copyright (c) 2025 The demandgraph authors
// SPDX-License-Identifier: MIT

package engineconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads a YAML file into the given struct pointer.
func LoadYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("engineconfig: failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("engineconfig: failed to parse yaml: %w", err)
	}
	return nil
}

// Load reads an EngineConfig from path, starting from
// DefaultEngineConfig so a partial file only overrides what it sets,
// then applies the DCG_* environment overrides on top.
func Load(path string) (EngineConfig, error) {
	cfg := DefaultEngineConfig()
	if err := LoadYAML(path, &cfg); err != nil {
		return EngineConfig{}, err
	}
	cfg.applyEnv()
	return cfg, nil
}
