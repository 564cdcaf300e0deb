// Copyright (c) 2025 The demandgraph authors
// SPDX-License-Identifier: MIT

package engineconfig

import (
	"os"
	"strconv"
)

// OverrideString overrides a string field if the environment variable is set.
func OverrideString(field *string, env string) {
	if val := os.Getenv(env); val != "" {
		*field = val
	}
}

// OverrideInt overrides an int field if the environment variable is set.
func OverrideInt(field *int, env string) {
	if val := os.Getenv(env); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*field = i
		}
	}
}

// OverrideBool overrides a bool field if the environment variable is set.
func OverrideBool(field *bool, env string) {
	if val := os.Getenv(env); val != "" {
		switch val {
		case "1", "true", "TRUE", "True":
			*field = true
		case "0", "false", "FALSE", "False":
			*field = false
		}
	}
}

// applyEnv applies the DCG_* environment overrides on top of cfg.
func (cfg *EngineConfig) applyEnv() {
	OverrideString(&cfg.Logger.Level, "DCG_LOG_LEVEL")
	OverrideString(&cfg.Logger.Encoding, "DCG_LOG_ENCODING")
	OverrideString(&cfg.Logger.Mode, "DCG_LOG_MODE")
	OverrideString(&cfg.Logger.File.Path, "DCG_LOG_FILE_PATH")
	OverrideInt(&cfg.Logger.File.MaxSize, "DCG_LOG_FILE_MAX_SIZE_MB")
	OverrideInt(&cfg.Logger.File.MaxBackups, "DCG_LOG_FILE_MAX_BACKUPS")
	OverrideInt(&cfg.Logger.File.MaxAge, "DCG_LOG_FILE_MAX_AGE_DAYS")
	OverrideBool(&cfg.Logger.File.Compress, "DCG_LOG_FILE_COMPRESS")
	OverrideInt(&cfg.TableHint, "DCG_TABLE_HINT")
}
