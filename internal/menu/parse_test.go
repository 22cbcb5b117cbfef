package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, name, doc string) *Definition {
	t.Helper()
	def, err := Parse(name, []byte(doc), nil)
	require.NoError(t, err)
	return def
}

func TestParseMinimalMenu(t *testing.T) {
	def := mustParse(t, "hub", `
layout:
  - "a"
items:
  a:
    material: COMPASS
    name: "Hub"
    actions: ["warp:hub"]
`)
	assert.Equal(t, "hub", def.Name)
	assert.Equal(t, KindStatic, def.Kind)
	assert.Equal(t, "hub", def.Title, "title defaults to the menu name")
	require.Contains(t, def.Items, "a")
	assert.Equal(t, []string{"warp:hub"}, def.Items["a"].Actions)
	assert.Empty(t, def.Items["a"].Variants)
}

func TestParseIconsSequenceKeepsOrder(t *testing.T) {
	def := mustParse(t, "m", `
layout: ["a"]
items:
  a:
    material: STONE
    icons:
      - condition: "rank == vip"
        material: DIAMOND
      - condition: "rank == member"
        material: IRON_INGOT
      - material: COAL
`)
	vs := def.Items["a"].Variants
	require.Len(t, vs, 3)
	assert.Equal(t, "DIAMOND", vs[0].Material)
	assert.Equal(t, "IRON_INGOT", vs[1].Material)
	assert.Equal(t, "COAL", vs[2].Material)
	assert.True(t, vs[2].Unconditional())
}

func TestParseIconsMappingKeepsDeclarationOrder(t *testing.T) {
	def := mustParse(t, "m", `
layout: ["a"]
items:
  a:
    material: STONE
    icons:
      zebra:
        condition: "rank == vip"
        material: DIAMOND
      alpha:
        material: COAL
`)
	vs := def.Items["a"].Variants
	require.Len(t, vs, 2)
	// Document order, not key order.
	assert.Equal(t, "zebra", vs[0].Key)
	assert.Equal(t, "alpha", vs[1].Key)
	assert.Equal(t, "DIAMOND", vs[0].Material)
}

func TestParseDropsUnreachableVariants(t *testing.T) {
	def := mustParse(t, "m", `
layout: ["a"]
items:
  a:
    material: STONE
    icons:
      - material: COAL
      - condition: "rank == vip"
        material: DIAMOND
`)
	vs := def.Items["a"].Variants
	require.Len(t, vs, 1, "entries after an unconditional variant are dead")
	assert.Equal(t, "COAL", vs[0].Material)
}

func TestParseLoreShapes(t *testing.T) {
	def := mustParse(t, "m", `
layout: ["ab"]
items:
  a:
    material: STONE
    lore: "one line"
  b:
    material: STONE
    lore:
      - "first"
      - "second"
`)
	assert.Equal(t, []string{"one line"}, def.Items["a"].Lore)
	assert.Equal(t, []string{"first", "second"}, def.Items["b"].Lore)
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"no layout":          `items: {a: {material: STONE}}`,
		"orphan symbol":      "layout: ['ab']\nitems: {a: {material: STONE}}",
		"multi-rune symbol":  "layout: ['a']\nitems: {a: {material: STONE}, ab: {material: STONE}}",
		"bad icons shape":    "layout: ['a']\nitems: {a: {material: STONE, icons: 12}}",
		"bad lore shape":     "layout: ['a']\nitems: {a: {material: STONE, lore: {x: 1}}}",
		"paged sans content": "kind: paged\nlayout: ['a']\nitems: {a: {material: STONE}}",
		"not yaml":           `{{{{`,
	}
	for name, doc := range cases {
		_, err := Parse("m", []byte(doc), nil)
		assert.Error(t, err, name)
	}
}

func TestParseBlankSymbolsNeedNoItem(t *testing.T) {
	def := mustParse(t, "m", `
layout:
  - "a_ a"
items:
  a:
    material: STONE
`)
	require.NotNil(t, def)
	assert.Len(t, def.Items, 1)
}
