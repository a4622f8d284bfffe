package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// LookupFunc resolves an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
func Load() (*Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom is Load with an explicit variable lookup.
func LoadFrom(lookup LookupFunc) (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem(), lookup); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// loadStruct recursively populates struct fields from environment variables.
func loadStruct(v reflect.Value, lookup LookupFunc) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			if err := loadStruct(fieldVal, lookup); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}
		envAlt := field.Tag.Get("envAlt")
		defaultVal, hasDefault := field.Tag.Lookup("default")
		required := field.Tag.Get("required") == "true"

		// A variable set to the empty string still counts as set, so
		// separators like WINDOW_SEPARATOR can be cleared.
		value, ok := lookup(envName)
		if !ok && envAlt != "" {
			value, ok = lookup(envAlt)
		}

		if !ok {
			if required {
				return fmt.Errorf("required environment variable %s is not set", envName)
			}
			if !hasDefault {
				continue
			}
			value = defaultVal
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}
			field.Set(reflect.ValueOf(d))
		} else {
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer: %w", err)
			}
			field.SetInt(i)
		}

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.File.Path) == "" {
		errs = append(errs, "CSV_FILE must not be empty")
	}
	if n := utf8.RuneCountInString(c.File.Delimiter); n != 1 {
		errs = append(errs, fmt.Sprintf("CSV_DELIMITER (%q) must be exactly one character", c.File.Delimiter))
	} else if r := c.File.Comma(); r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		errs = append(errs, fmt.Sprintf("CSV_DELIMITER (%q) cannot be a quote, newline or invalid character", c.File.Delimiter))
	}
	if c.File.SaveExtension != "" && !strings.HasPrefix(c.File.SaveExtension, ".") {
		errs = append(errs, fmt.Sprintf("SAVE_EXTENSION (%q) must start with a dot", c.File.SaveExtension))
	}

	if c.Pacing.Delay < 0 {
		errs = append(errs, "PACING_DELAY must be non-negative")
	}

	if c.Audit.Timeout <= 0 {
		errs = append(errs, "AUDIT_TIMEOUT must be positive")
	}
	if u := c.Audit.DatabaseURL; u != "" && !isSupportedAuditURL(u) {
		errs = append(errs, "AUDIT_DATABASE_URL must start with postgres://, postgresql:// or sqlite:")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func isSupportedAuditURL(u string) bool {
	for _, prefix := range []string{"postgres://", "postgresql://", "sqlite:"} {
		if strings.HasPrefix(u, prefix) {
			return true
		}
	}
	return false
}

// String returns a safe string representation of the config for logging.
// The audit database URL is masked.
func (c *Config) String() string {
	audit := "[DISABLED]"
	if c.Audit.DatabaseURL != "" {
		audit = "[MASKED]"
	}

	var b strings.Builder
	b.WriteString("Config{")
	fmt.Fprintf(&b, "File: {Path: %q, Delimiter: %q, SaveDir: %q}, ", c.File.Path, c.File.Delimiter, c.File.SaveDir)
	fmt.Fprintf(&b, "Display: {Align: %v, Placeholder: %q}, ", c.Display.Align, c.Display.Placeholder)
	fmt.Fprintf(&b, "Pacing: {Delay: %s}, ", c.Pacing.Delay)
	fmt.Fprintf(&b, "Audit: {URL: %s, Timeout: %s}, ", audit, c.Audit.Timeout)
	fmt.Fprintf(&b, "Logging: {Level: %q, Format: %q}", c.Logging.Level, c.Logging.Format)
	b.WriteString("}")
	return b.String()
}
