package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables read by ApplyEnv.
const EnvPrefix = "MODAL_"

// DefaultPath returns the user's config file location,
// e.g. ~/.config/modal/config.toml. It returns "" when no config
// directory can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "modal", "config.toml")
}

// Load builds a configuration from defaults, the file at path and the
// process environment, in increasing priority. A missing file or an empty
// path leaves the defaults in place. The result is not validated.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile builds a configuration from defaults and the file at path only.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := decode(path, data, cfg); err != nil {
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// decode parses data over cfg, keeping values the file does not set.
func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	default:
		dec := toml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(cfg); err != nil {
			pe := &ParseError{Path: path, Message: err.Error(), Err: err}
			var de *toml.DecodeError
			if errors.As(err, &de) {
				pe.Line, pe.Column = de.Position()
			}
			return pe
		}
	}
	return nil
}

// envSetter applies one environment value to a config.
type envSetter func(c *Config, value string) error

// envMapping maps environment variables to the settings they override.
var envMapping = map[string]envSetter{
	EnvPrefix + "SCROLLOFF": func(c *Config, v string) error {
		return setInt(&c.Editor.Scrolloff, "editor.scrolloff", v)
	},
	EnvPrefix + "TAB_WIDTH": func(c *Config, v string) error {
		return setInt(&c.Editor.TabWidth, "editor.tab_width", v)
	},
	EnvPrefix + "LOG_LEVEL": func(c *Config, v string) error {
		c.Logging.Level = v
		return nil
	},
	EnvPrefix + "LOG_FILE": func(c *Config, v string) error {
		c.Logging.File = v
		return nil
	},
	EnvPrefix + "STATUS_FG": func(c *Config, v string) error {
		c.UI.StatusFG = v
		return nil
	},
	EnvPrefix + "STATUS_BG": func(c *Config, v string) error {
		c.UI.StatusBG = v
		return nil
	},
	EnvPrefix + "WATCH": func(c *Config, v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return &ValidationError{Path: "watch.enabled", Message: "not a boolean", Value: v}
		}
		c.Watch.Enabled = b
		return nil
	},
	EnvPrefix + "QUIT_KEY": func(c *Config, v string) error {
		c.Keys.Quit = v
		return nil
	},
}

// EnvVars returns the environment variables ApplyEnv reads.
func EnvVars() []string {
	names := make([]string, 0, len(envMapping))
	for name := range envMapping {
		names = append(names, name)
	}
	return names
}

// ApplyEnv overrides settings from environment variables found by lookup.
// Empty values are treated as set, matching os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	for name, set := range envMapping {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := set(c, v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func setInt(dst *int, path, v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return &ValidationError{Path: path, Message: "not an integer", Value: v}
	}
	*dst = n
	return nil
}
