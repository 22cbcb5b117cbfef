package appcfg

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 2*time.Second, cfg.FetchTimeout())
}

func TestLoadOverridesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "postwarps.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
menu_dir = "/srv/menus"
debug    = true
fetch_timeout_ms = 500
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/menus", cfg.MenuDir)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 500*time.Millisecond, cfg.FetchTimeout())
	// Unset fields keep their defaults.
	assert.Equal(t, Default().Database, cfg.Database)
	assert.Equal(t, Default().DerivedTTL(), cfg.DerivedTTL())
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "postwarps.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`menu_dir = `), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoggerLevel(t *testing.T) {
	ctx := context.Background()
	quiet := Config{}.Logger()
	assert.False(t, quiet.Enabled(ctx, slog.LevelDebug))
	loud := Config{Debug: true}.Logger()
	assert.True(t, loud.Enabled(ctx, slog.LevelDebug))
}
