// Package appcfg loads the addon's own settings file. Menu definitions are
// YAML (hand-authored, one file per menu); the addon settings use HCL because
// they are operator configuration with defaults for every field.
package appcfg

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Config is the decoded postwarps.hcl.
type Config struct {
	MenuDir        string `hcl:"menu_dir,optional"`
	Database       string `hcl:"database,optional"`
	Debug          bool   `hcl:"debug,optional"`
	FetchTimeoutMS int    `hcl:"fetch_timeout_ms,optional"`
	DerivedTTLSec  int    `hcl:"derived_ttl_sec,optional"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		MenuDir:        "menus",
		Database:       "warps.db",
		FetchTimeoutMS: 2000,
		DerivedTTLSec:  600,
	}
}

// Load reads path and fills unset fields from Default. A missing file is not
// an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	var file Config
	if err := hclsimple.DecodeFile(path, nil, &file); err != nil {
		return cfg, fmt.Errorf("load %s: %w", path, err)
	}
	if file.MenuDir != "" {
		cfg.MenuDir = file.MenuDir
	}
	if file.Database != "" {
		cfg.Database = file.Database
	}
	if file.FetchTimeoutMS > 0 {
		cfg.FetchTimeoutMS = file.FetchTimeoutMS
	}
	if file.DerivedTTLSec > 0 {
		cfg.DerivedTTLSec = file.DerivedTTLSec
	}
	cfg.Debug = file.Debug
	return cfg, nil
}

// FetchTimeout bounds one dynamic data fetch.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// DerivedTTL bounds derived render metadata cache entries.
func (c Config) DerivedTTL() time.Duration {
	return time.Duration(c.DerivedTTLSec) * time.Second
}

// Logger builds the process logger. Debug gates condition-evaluation and
// per-slot diagnostics.
func (c Config) Logger() *slog.Logger {
	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
