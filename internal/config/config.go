// Package config provides reading and writing of hgrep configuration.
// Supports both global (~/.hgrep/config.yaml) and local (.hgrep/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: goes back to the file that was read, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/jpl-au/hgrep/internal/options"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.hgrep/config.yaml (default).
	ScopeGlobal Scope = iota
	// ScopeLocal is directory-specific config in .hgrep/config.yaml.
	ScopeLocal
)

// Config contains the persisted default rendering options for hgrep.
// Every field is a pointer so an absent key in the YAML file means
// "inherit the built-in default" rather than "explicitly zero".
type Config struct {
	Theme           *string `yaml:"theme,omitempty"`
	TabWidth        *int    `yaml:"tab_width,omitempty"`
	Grid            *bool   `yaml:"grid,omitempty"`
	BackgroundColor *bool   `yaml:"background_color,omitempty"`
	AsciiLines      *bool   `yaml:"ascii_lines,omitempty"`
	Wrap            *string `yaml:"wrap,omitempty"`          // "char" or "never"
	ColorSupport    *string `yaml:"color_support,omitempty"` // "ansi16", "ansi256", or "true"
	MinContext      *int    `yaml:"min_context,omitempty"`
	MaxContext      *int    `yaml:"max_context,omitempty"`

	// path is the file this config was loaded from (for Save).
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
func (c *Config) Validate() error {
	if c.TabWidth != nil && *c.TabWidth < 0 {
		return fmt.Errorf("%w: tab_width must be >= 0, got %d", ErrInvalidValue, *c.TabWidth)
	}
	if c.MinContext != nil && *c.MinContext < 0 {
		return fmt.Errorf("%w: min_context must be >= 0, got %d", ErrInvalidValue, *c.MinContext)
	}
	if c.MaxContext != nil && c.MinContext != nil && *c.MaxContext < *c.MinContext {
		return fmt.Errorf("%w: max_context (%d) must be >= min_context (%d)", ErrInvalidValue, *c.MaxContext, *c.MinContext)
	}
	if c.Wrap != nil && *c.Wrap != "char" && *c.Wrap != "never" {
		return fmt.Errorf("%w: wrap must be \"char\" or \"never\", got %q", ErrInvalidValue, *c.Wrap)
	}
	if c.ColorSupport != nil && *c.ColorSupport != "ansi16" && *c.ColorSupport != "ansi256" && *c.ColorSupport != "true" {
		return fmt.Errorf("%w: color_support must be \"ansi16\", \"ansi256\", or \"true\", got %q", ErrInvalidValue, *c.ColorSupport)
	}
	return nil
}

// ApplyTo overlays the configured values onto opts, leaving fields the
// config file doesn't mention untouched (so command-line flags, applied
// afterwards, always win over either).
func (c *Config) ApplyTo(opts *options.Options) {
	if c.Theme != nil {
		opts.Theme = *c.Theme
	}
	if c.TabWidth != nil {
		opts.TabWidth = *c.TabWidth
	}
	if c.Grid != nil {
		opts.Grid = *c.Grid
	}
	if c.BackgroundColor != nil {
		opts.BackgroundColor = *c.BackgroundColor
	}
	if c.AsciiLines != nil {
		opts.AsciiLines = *c.AsciiLines
	}
	if c.Wrap != nil {
		if *c.Wrap == "never" {
			opts.TextWrap = options.WrapNever
		} else {
			opts.TextWrap = options.WrapChar
		}
	}
	if c.ColorSupport != nil {
		switch *c.ColorSupport {
		case "ansi16":
			opts.ColorSupport = options.Ansi16
		case "ansi256":
			opts.ColorSupport = options.Ansi256
		case "true":
			opts.ColorSupport = options.TrueColor
		}
	}
	if c.MinContext != nil {
		opts.MinContext = *c.MinContext
	}
	if c.MaxContext != nil {
		opts.MaxContext = *c.MaxContext
	}
}

// All returns every configured key and its current string representation,
// for the "config" command's no-argument listing.
func (c *Config) All() map[string]string {
	m := make(map[string]string)
	if c.Theme != nil {
		m["theme"] = *c.Theme
	}
	if c.TabWidth != nil {
		m["tab_width"] = fmt.Sprint(*c.TabWidth)
	}
	if c.Grid != nil {
		m["grid"] = fmt.Sprint(*c.Grid)
	}
	if c.BackgroundColor != nil {
		m["background_color"] = fmt.Sprint(*c.BackgroundColor)
	}
	if c.AsciiLines != nil {
		m["ascii_lines"] = fmt.Sprint(*c.AsciiLines)
	}
	if c.Wrap != nil {
		m["wrap"] = *c.Wrap
	}
	if c.ColorSupport != nil {
		m["color_support"] = *c.ColorSupport
	}
	if c.MinContext != nil {
		m["min_context"] = fmt.Sprint(*c.MinContext)
	}
	if c.MaxContext != nil {
		m["max_context"] = fmt.Sprint(*c.MaxContext)
	}
	return m
}

// ErrUnknownKey is returned by Get/Set for a key this config doesn't
// recognize.
var ErrUnknownKey = errors.New("unknown config key")

// Get returns the string representation of a single configured key.
func (c *Config) Get(key string) (string, error) {
	v, ok := c.All()[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return v, nil
}

// Set parses value and assigns it to the field named by key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "theme":
		c.Theme = &value
	case "tab_width":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: tab_width: %s", ErrInvalidValue, err)
		}
		c.TabWidth = &n
	case "grid":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: grid: %s", ErrInvalidValue, err)
		}
		c.Grid = &b
	case "background_color":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: background_color: %s", ErrInvalidValue, err)
		}
		c.BackgroundColor = &b
	case "ascii_lines":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: ascii_lines: %s", ErrInvalidValue, err)
		}
		c.AsciiLines = &b
	case "wrap":
		if value != "char" && value != "never" {
			return fmt.Errorf("%w: wrap must be \"char\" or \"never\", got %q", ErrInvalidValue, value)
		}
		c.Wrap = &value
	case "color_support":
		if value != "ansi16" && value != "ansi256" && value != "true" {
			return fmt.Errorf("%w: color_support must be \"ansi16\", \"ansi256\", or \"true\", got %q", ErrInvalidValue, value)
		}
		c.ColorSupport = &value
	case "min_context":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: min_context: %s", ErrInvalidValue, err)
		}
		c.MinContext = &n
	case "max_context":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: max_context: %s", ErrInvalidValue, err)
		}
		c.MaxContext = &n
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return c.Validate()
}

// LocalPath returns the path to the local (directory) config file.
func LocalPath() string {
	return filepath.Join(".hgrep", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file:
// ~/.hgrep/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hgrep", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
