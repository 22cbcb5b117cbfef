package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCliProvidersFromDataFlags(t *testing.T) {
	doc := `{"servers": [{"name": "lobby", "online": 12}, {"name": "creative", "online": 3}]}`
	file := filepath.Join(t.TempDir(), "servers.json")
	require.NoError(t, os.WriteFile(file, []byte(doc), 0o644))

	dataFlags = []string{"servers=" + file + ":$.servers[*]"}
	t.Cleanup(func() { dataFlags = nil })

	providers, err := cliProviders(nil)
	require.NoError(t, err)
	require.Len(t, providers, 2)
	assert.True(t, providers[0].Supports("servers"), "JSON source registered first")
	assert.False(t, providers[0].Supports("warps"))
}

func TestCliProvidersRejectsMalformedDataFlag(t *testing.T) {
	for _, bad := range []string{"servers", "servers=nofile"} {
		dataFlags = []string{bad}
		_, err := cliProviders(nil)
		assert.Error(t, err, bad)
	}
	dataFlags = nil
}
