// Package config provides the configuration system for modal.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← MODAL_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/modal/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Files ending in .yaml or .yml are read as YAML; anything else as TOML.
// A missing file is not an error. Flags are applied by the caller after
// Load returns.
//
// # Example
//
//	[editor]
//	scrolloff = 3
//	tab_width = 4
//
//	[ui]
//	status_fg = "#1d2021"
//	status_bg = "#a89984"
//
//	[logging]
//	level = "info"
//	file = "/tmp/modal.log"
//
//	[watch]
//	enabled = true
//
//	[keys]
//	quit = "Ctrl+Q"
//
// # Live Reload
//
// Watcher observes the config file with fsnotify and invokes a callback
// after changes settle. The callback runs on the watcher's goroutine; the
// application forwards it into its event queue instead of touching editor
// state directly.
package config
