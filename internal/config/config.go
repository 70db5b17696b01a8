// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/fakegpt-tui/internal/i18n"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete fakegpt configuration.
type Config struct {
	Backend BackendConfig `toml:"backend"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
}

// BackendConfig contains the chat backend connection settings.
type BackendConfig struct {
	// URL is the backend root, e.g. http://localhost:8000
	URL string `toml:"url"`
	// Timeout bounds each request, e.g. "60s"
	Timeout time.Duration `toml:"timeout"`
	// RateLimit is requests per second; negative disables limiting
	RateLimit float64 `toml:"rate_limit"`
	// Burst is the token bucket size
	Burst int `toml:"burst"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// Language is one of pl, en, uk
	Language string `toml:"language"`
	// Theme is one of auto, dark, light
	Theme string `toml:"theme"`
	// RevealInterval is the delay between revealed reply characters
	RevealInterval time.Duration `toml:"reveal_interval"`
}

// LogConfig contains diagnostic log settings.
type LogConfig struct {
	// Path of the log file (empty = $TMPDIR/fakegpt.log)
	Path string `toml:"path"`
	// Level is one of debug, info, warn, error
	Level string `toml:"level"`
}

// Theme names.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:       "http://localhost:8000",
			Timeout:   60 * time.Second,
			RateLimit: 5,
			Burst:     10,
		},
		UI: UIConfig{
			Language:       string(i18n.Default),
			Theme:          ThemeAuto,
			RevealInterval: 15 * time.Millisecond,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// SetDefaults fills zero values left by a partial file.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Backend.URL == "" {
		c.Backend.URL = d.Backend.URL
	}
	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = d.Backend.Timeout
	}
	if c.Backend.RateLimit == 0 {
		c.Backend.RateLimit = d.Backend.RateLimit
	}
	if c.Backend.Burst == 0 {
		c.Backend.Burst = d.Backend.Burst
	}
	if c.UI.Language == "" {
		c.UI.Language = d.UI.Language
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.RevealInterval == 0 {
		c.UI.RevealInterval = d.UI.RevealInterval
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	c.Backend.URL = strings.TrimSuffix(c.Backend.URL, "/")
	c.UI.Language = strings.ToLower(c.UI.Language)
	c.UI.Theme = strings.ToLower(c.UI.Theme)
	c.Log.Level = strings.ToLower(c.Log.Level)
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns ~/.fakegpt.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".fakegpt"), nil
}

// ConfigPath returns the default config file location.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load builds the configuration from defaults, the TOML file at path and the
// environment. An empty path means the default location, which may be
// missing; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := LoadTOML(cfg, path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes the file at path over cfg.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return ValidateErrors{{Field: strings.Join(keys, ", "), Message: "unknown key"}}
	}
	return nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not an
// error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - FAKEGPT_BACKEND_URL: overrides backend.url
//   - FAKEGPT_TIMEOUT: overrides backend.timeout ("30s" or plain seconds)
//   - FAKEGPT_LANG: overrides ui.language (BCP 47 or POSIX locale accepted)
//   - FAKEGPT_THEME: overrides ui.theme
//   - FAKEGPT_LOG: overrides log.path
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("FAKEGPT_BACKEND_URL"); u != "" {
		c.Backend.URL = u
	}

	if t := os.Getenv("FAKEGPT_TIMEOUT"); t != "" {
		if d, err := ParseDuration(t); err == nil {
			c.Backend.Timeout = d
		}
	}

	if lang := os.Getenv("FAKEGPT_LANG"); lang != "" {
		if i18n.IsSupported(strings.ToLower(lang)) {
			c.UI.Language = strings.ToLower(lang)
		} else {
			c.UI.Language = string(i18n.Match(lang))
		}
	}

	if theme := os.Getenv("FAKEGPT_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	if path := os.Getenv("FAKEGPT_LOG"); path != "" {
		c.Log.Path = path
	}
}

// ParseDuration accepts Go duration syntax or a bare number of seconds.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(s)
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	u, err := url.Parse(c.Backend.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "backend.url",
			Message: fmt.Sprintf("invalid URL '%s', must be http(s)://host[:port]", c.Backend.URL),
		})
	}

	if c.Backend.Timeout < time.Second || c.Backend.Timeout > 10*time.Minute {
		errs = append(errs, ValidationError{
			Field:   "backend.timeout",
			Message: fmt.Sprintf("timeout %v out of range (1s-10m)", c.Backend.Timeout),
		})
	}

	if c.Backend.Burst < 0 {
		errs = append(errs, ValidationError{Field: "backend.burst", Message: "must not be negative"})
	}

	if !i18n.IsSupported(c.UI.Language) {
		errs = append(errs, ValidationError{
			Field:   "ui.language",
			Message: fmt.Sprintf("unsupported language '%s', must be one of: pl, en, uk", c.UI.Language),
		})
	}

	switch c.UI.Theme {
	case ThemeAuto, ThemeDark, ThemeLight:
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}

	if c.UI.RevealInterval < time.Millisecond || c.UI.RevealInterval > time.Second {
		errs = append(errs, ValidationError{
			Field:   "ui.reveal_interval",
			Message: fmt.Sprintf("interval %v out of range (1ms-1s)", c.UI.RevealInterval),
		})
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}
