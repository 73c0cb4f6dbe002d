package config

import (
	"errors"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/logging"
)

// Config holds all editor settings.
type Config struct {
	Editor  EditorConfig  `toml:"editor" yaml:"editor"`
	UI      UIConfig      `toml:"ui" yaml:"ui"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Watch   WatchConfig   `toml:"watch" yaml:"watch"`
	Keys    KeysConfig    `toml:"keys" yaml:"keys"`

	// Path is the file the config was loaded from, or "" for defaults.
	Path string `toml:"-" yaml:"-"`
}

// EditorConfig contains text area settings.
type EditorConfig struct {
	// Scrolloff is the number of lines kept visible above and below the cursor.
	Scrolloff int `toml:"scrolloff" yaml:"scrolloff"`
	// TabWidth is the number of cells a tab occupies when painted.
	TabWidth int `toml:"tab_width" yaml:"tab_width"`
}

// UIConfig contains status line colors. An empty value or "default"
// uses the terminal's own color.
type UIConfig struct {
	StatusFG string `toml:"status_fg" yaml:"status_fg"`
	StatusBG string `toml:"status_bg" yaml:"status_bg"`
}

// LoggingConfig contains log settings. An empty File disables logging.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
}

// WatchConfig controls live reload of the config file.
type WatchConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
}

// KeysConfig contains global key bindings.
type KeysConfig struct {
	// Quit exits the editor from any mode.
	Quit string `toml:"quit" yaml:"quit"`
}

// Limits for validated settings.
const (
	MinTabWidth = 1
	MaxTabWidth = 16
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			Scrolloff: 3,
			TabWidth:  4,
		},
		UI: UIConfig{
			StatusFG: "#1d2021",
			StatusBG: "#a89984",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Watch: WatchConfig{
			Enabled: true,
		},
		Keys: KeysConfig{
			Quit: "Ctrl+Q",
		},
	}
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate checks every setting and returns all failures joined.
// Each failure is a *ValidationError.
func (c *Config) Validate() error {
	var errs []error

	if c.Editor.Scrolloff < 0 {
		errs = append(errs, &ValidationError{
			Path:    "editor.scrolloff",
			Message: "must not be negative",
			Value:   c.Editor.Scrolloff,
		})
	}
	if c.Editor.TabWidth < MinTabWidth || c.Editor.TabWidth > MaxTabWidth {
		errs = append(errs, &ValidationError{
			Path:    "editor.tab_width",
			Message: "must be between 1 and 16",
			Value:   c.Editor.TabWidth,
		})
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, &ValidationError{
			Path:    "logging.level",
			Message: "must be debug, info, warn or error",
			Value:   c.Logging.Level,
		})
	}
	if _, _, err := ParseColor(c.UI.StatusFG); err != nil {
		errs = append(errs, &ValidationError{Path: "ui.status_fg", Message: err.Error(), Value: c.UI.StatusFG})
	}
	if _, _, err := ParseColor(c.UI.StatusBG); err != nil {
		errs = append(errs, &ValidationError{Path: "ui.status_bg", Message: err.Error(), Value: c.UI.StatusBG})
	}
	if _, err := key.Parse(c.Keys.Quit); err != nil {
		errs = append(errs, &ValidationError{Path: "keys.quit", Message: err.Error(), Value: c.Keys.Quit})
	}

	return errors.Join(errs...)
}

// LogLevel returns the parsed log level, defaulting to info.
func (c *Config) LogLevel() logging.Level {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}

// QuitKey returns the parsed quit binding, defaulting to Ctrl+Q.
func (c *Config) QuitKey() key.Event {
	ev, err := key.Parse(c.Keys.Quit)
	if err != nil {
		return key.NewRuneEvent('q', key.ModCtrl)
	}
	return ev
}

// StatusColors returns the parsed status line colors. ok reports whether
// each color is set; unset colors use the terminal default.
func (c *Config) StatusColors() (fg colorful.Color, fgOK bool, bg colorful.Color, bgOK bool) {
	fg, fgOK, _ = ParseColor(c.UI.StatusFG)
	bg, bgOK, _ = ParseColor(c.UI.StatusBG)
	return fg, fgOK, bg, bgOK
}

// ParseColor parses a "#rrggbb" or "#rgb" color. An empty string or
// "default" yields ok == false and no error.
func ParseColor(s string) (c colorful.Color, ok bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "default") {
		return colorful.Color{}, false, nil
	}
	c, err = colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, false, err
	}
	return c, true, nil
}
