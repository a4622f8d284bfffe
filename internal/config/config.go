// Package config provides centralized configuration management for the editor.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"time"
	"unicode/utf8"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	File    FileConfig
	Display DisplayConfig
	Pacing  PacingConfig
	Audit   AuditConfig
	Logging LoggingConfig
}

// FileConfig holds load and save settings.
type FileConfig struct {
	// Path is the CSV file loaded at startup (default: testdata.csv)
	Path string `env:"CSV_FILE" envAlt:"CSVFILE" default:"testdata.csv"`

	// Delimiter is the single-character field separator (default: ,)
	Delimiter string `env:"CSV_DELIMITER" default:","`

	// SaveDir is where relative save names are resolved (default: .)
	SaveDir string `env:"SAVE_DIR" default:"."`

	// SaveExtension is appended to save names that lack it (default: .csv)
	SaveExtension string `env:"SAVE_EXTENSION" default:".csv"`
}

// DisplayConfig holds output formatting settings.
type DisplayConfig struct {
	// Separator joins cells when the whole file is displayed (default: ,)
	Separator string `env:"DISPLAY_SEPARATOR" default:","`

	// WindowSeparator joins cells in paginated output (default: ", ")
	WindowSeparator string `env:"WINDOW_SEPARATOR" default:", "`

	// Align pads paginated columns to a common display width (default: false)
	Align bool `env:"DISPLAY_ALIGN" default:"false"`

	// Placeholder is written in place of deleted cells (default: _)
	Placeholder string `env:"DISPLAY_PLACEHOLDER" default:"_"`
}

// PacingConfig holds the cosmetic delay shown after each outcome.
type PacingConfig struct {
	// Delay is the pause after reporting an outcome (default: 2s)
	Delay time.Duration `env:"PACING_DELAY" default:"2s"`
}

// AuditConfig holds the optional edit journal settings.
type AuditConfig struct {
	// DatabaseURL selects the journal backend: postgres://... or sqlite:<path>.
	// Empty disables the journal.
	DatabaseURL string `env:"AUDIT_DATABASE_URL"`

	// Timeout bounds each journal write (default: 5s)
	Timeout time.Duration `env:"AUDIT_TIMEOUT" default:"5s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: warn)
	Level string `env:"LOG_LEVEL" default:"warn"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`

	// File receives log output; stderr when empty
	File string `env:"LOG_FILE"`
}

// Comma returns the delimiter as a rune.
// Only meaningful after Validate has accepted the config.
func (c *FileConfig) Comma() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}
