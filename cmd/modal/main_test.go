package main

import (
	"testing"

	"github.com/dshills/modal/internal/config"
)

func TestFlagValuesApplyOnlySetFlags(t *testing.T) {
	f := flagValues{
		logLevel:  "debug",
		logFile:   "/tmp/modal.log",
		scrolloff: 0,
		set:       map[string]bool{"scrolloff": true, "log-file": true},
	}

	cfg := config.Default()
	f.apply(cfg)

	if cfg.Editor.Scrolloff != 0 {
		t.Errorf("scrolloff = %d, want 0", cfg.Editor.Scrolloff)
	}
	if cfg.Logging.File != "/tmp/modal.log" {
		t.Errorf("log file = %q", cfg.Logging.File)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("unset -log-level changed level to %q", cfg.Logging.Level)
	}
}
