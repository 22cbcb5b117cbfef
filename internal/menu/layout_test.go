package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLayoutIndex(t *testing.T) {
	def := mustParse(t, "m", `
kind: paged
content: w
layout:
  - "#_#"
  - "www"
items:
  "#":
    material: GLASS
  w:
    material: ENDER_PEARL
    actions: ["warp:{{.warp}}"]
`)
	idx := BuildLayoutIndex(def)

	assert.Equal(t, 3, idx.Width)
	assert.Equal(t, 2, idx.Rows)
	assert.Equal(t, 6, idx.Size())

	sym, ok := idx.Symbol(0)
	require.True(t, ok)
	assert.Equal(t, "#", sym)

	_, ok = idx.Symbol(1)
	assert.False(t, ok, "blank slot")
	_, ok = idx.Symbol(99)
	assert.False(t, ok, "out of range")
	_, ok = idx.Symbol(-1)
	assert.False(t, ok)

	assert.Equal(t, uint64(5), idx.Populated.GetCardinality())
	// Only the warp slots carry actions.
	assert.Equal(t, uint64(3), idx.Interactive.GetCardinality())
	assert.Equal(t, []uint32{3, 4, 5}, idx.Content)
	assert.Equal(t, 3, idx.PageSize())

	pos, ok := idx.ContentPosition(4)
	require.True(t, ok)
	assert.Equal(t, 1, pos)
	_, ok = idx.ContentPosition(0)
	assert.False(t, ok)
}

func TestLayoutIndexVariantActionsCountAsInteractive(t *testing.T) {
	def := mustParse(t, "m", `
layout: ["a"]
items:
  a:
    material: STONE
    icons:
      - condition: "permission:postwarps.admin"
        actions: ["command:reload"]
`)
	idx := BuildLayoutIndex(def)
	assert.True(t, idx.Interactive.Contains(0))
}
