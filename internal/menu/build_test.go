package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postwarps/postwarps/internal/provider"
	"github.com/postwarps/postwarps/internal/value"
)

func testContext(facts map[string]value.Value) *Context {
	rc := NewContext(provider.Actor{ID: "u1", Name: "Steve"}, &Definition{Name: "m", Title: "m"}, nil)
	for k, v := range facts {
		rc.Put(k, v)
	}
	return rc
}

func baseSpec() *ItemSpec {
	return &ItemSpec{
		Symbol:   "a",
		Material: "STONE",
		Name:     "Base",
		Lore:     []string{"base line"},
		Amount:   3,
		Actions:  []string{"warp:base"},
	}
}

func TestBuildBaseOnly(t *testing.T) {
	d, actions, err := BuildItem(baseSpec(), nil, testContext(nil))
	require.NoError(t, err)
	assert.Equal(t, "STONE", d.Material)
	assert.Equal(t, "Base", d.Name)
	assert.Equal(t, []string{"base line"}, d.Lore)
	assert.Equal(t, 3, d.Amount)
	assert.Equal(t, []string{"warp:base"}, actions)
}

func TestBuildVariantOverridesFieldByField(t *testing.T) {
	glow := true
	v := &VariantSpec{
		Material: "DIAMOND",
		Lore:     []string{"override only"},
		Glow:     &glow,
	}
	d, actions, err := BuildItem(baseSpec(), v, testContext(nil))
	require.NoError(t, err)
	assert.Equal(t, "DIAMOND", d.Material)
	assert.Equal(t, "Base", d.Name, "unset variant field inherits")
	assert.Equal(t, []string{"override only"}, d.Lore, "variant lore replaces wholesale")
	assert.Equal(t, 3, d.Amount)
	assert.True(t, d.Glow)
	assert.Equal(t, []string{"warp:base"}, actions, "nil variant actions inherit")
}

func TestBuildVariantActionsReplace(t *testing.T) {
	v := &VariantSpec{Actions: []string{"command:spawn"}}
	_, actions, err := BuildItem(baseSpec(), v, testContext(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"command:spawn"}, actions)
}

func TestBuildDecorativeSlotHasNoActions(t *testing.T) {
	spec := &ItemSpec{Symbol: "#", Material: "GLASS", Name: " "}
	_, actions, err := BuildItem(spec, nil, testContext(nil))
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestBuildExpandsTemplates(t *testing.T) {
	spec := &ItemSpec{
		Symbol:   "w",
		Material: "ENDER_PEARL",
		Name:     "{{.warp}}",
		Lore:     []string{"World: {{.world}}"},
		Actions:  []string{"warp:{{.warp}}"},
	}
	rc := testContext(map[string]value.Value{
		"warp":  value.Of("hub"),
		"world": value.Of("overworld"),
	})
	d, actions, err := BuildItem(spec, nil, rc)
	require.NoError(t, err)
	assert.Equal(t, "hub", d.Name)
	assert.Equal(t, []string{"World: overworld"}, d.Lore)
	assert.Equal(t, []string{"warp:hub"}, actions)
}

func TestBuildTemplateErrorPropagates(t *testing.T) {
	spec := &ItemSpec{Symbol: "a", Material: "STONE", Name: "{{.bad"}
	_, _, err := BuildItem(spec, nil, testContext(nil))
	assert.Error(t, err)
}

func TestBuildDoesNotMutateSharedSpecs(t *testing.T) {
	spec := &ItemSpec{
		Symbol:   "a",
		Material: "STONE",
		Lore:     []string{"{{.player}}"},
	}
	rc := testContext(nil)
	d, _, err := BuildItem(spec, nil, rc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Steve"}, d.Lore)
	assert.Equal(t, []string{"{{.player}}"}, spec.Lore, "shared config must stay untouched")
}

func TestBuildDefaultsAmountToOne(t *testing.T) {
	spec := &ItemSpec{Symbol: "a", Material: "STONE"}
	d, _, err := BuildItem(spec, nil, testContext(nil))
	require.NoError(t, err)
	assert.Equal(t, 1, d.Amount)
}
