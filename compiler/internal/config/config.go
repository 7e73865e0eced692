// Package config reads stormc settings from the environment.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/xyproto/env/v2"
)

const (
	DefaultIndent  = 2
	DefaultOutDir  = "gen/out"
	historyDefault = ".storm_history"
)

// Config is the environment-derived configuration. Command-line flags
// override individual fields.
type Config struct {
	Optimize bool   // STORM_OPTIMIZE, default true
	Indent   int    // STORM_INDENT, spaces per nesting level
	OutDir   string // STORM_OUT_DIR
	JS       string // STORM_JS, explicit JavaScript runtime
	History  string // STORM_HISTORY, REPL history file
	NoColor  bool   // NO_COLOR set to anything
}

func Load() Config {
	c := Config{
		Optimize: parseBool(env.Str("STORM_OPTIMIZE", "true"), true),
		Indent:   env.Int("STORM_INDENT", DefaultIndent),
		OutDir:   env.Str("STORM_OUT_DIR", DefaultOutDir),
		JS:       env.Str("STORM_JS"),
		History:  env.Str("STORM_HISTORY"),
		NoColor:  env.Str("NO_COLOR") != "",
	}
	if c.Indent <= 0 {
		c.Indent = DefaultIndent
	}
	if c.History == "" {
		c.History = defaultHistory()
	}
	return c
}

func parseBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}

func defaultHistory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyDefault
	}
	return filepath.Join(home, historyDefault)
}
