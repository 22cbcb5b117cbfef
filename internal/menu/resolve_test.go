package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postwarps/postwarps/internal/condition"
	"github.com/postwarps/postwarps/internal/provider"
	"github.com/postwarps/postwarps/internal/value"
)

func testEvaluator(caps ...string) *condition.Evaluator {
	auth := provider.StaticAuthorizer{Capabilities: map[string]bool{}}
	for _, c := range caps {
		auth.Capabilities[c] = true
	}
	return condition.New(auth, nil)
}

func TestResolveFirstMatchWins(t *testing.T) {
	variants := []VariantSpec{
		{Condition: "rank == vip", Material: "DIAMOND"},
		{Condition: "rank == member", Material: "IRON_INGOT"},
		{Material: "COAL"},
	}
	ev := testEvaluator()
	actor := provider.Actor{ID: "u1"}

	got := ResolveVariant(ev, variants, actor, condition.FactMap{"rank": value.Of("member")})
	require.NotNil(t, got)
	assert.Equal(t, "IRON_INGOT", got.Material)

	// Both conditions true: declaration order decides.
	got = ResolveVariant(ev, variants, actor, condition.FactMap{"rank": value.Of("vip")})
	require.NotNil(t, got)
	assert.Equal(t, "DIAMOND", got.Material)
}

func TestResolveUnconditionalCatchAll(t *testing.T) {
	variants := []VariantSpec{
		{Condition: "rank == vip", Material: "DIAMOND"},
		{Material: "COAL"},
	}
	got := ResolveVariant(testEvaluator(), variants, provider.Actor{}, condition.FactMap{})
	require.NotNil(t, got)
	assert.Equal(t, "COAL", got.Material)
}

func TestResolveNoMatchReturnsNil(t *testing.T) {
	variants := []VariantSpec{
		{Condition: "rank == vip", Material: "DIAMOND"},
	}
	assert.Nil(t, ResolveVariant(testEvaluator(), variants, provider.Actor{}, condition.FactMap{}))
}

func TestResolveEmptyListReturnsNil(t *testing.T) {
	assert.Nil(t, ResolveVariant(testEvaluator(), nil, provider.Actor{}, condition.FactMap{}))
}

func TestResolvePermissionVariant(t *testing.T) {
	variants := []VariantSpec{
		{Condition: "permission:postwarps.admin", Material: "COMMAND_BLOCK"},
		{Material: "BARRIER"},
	}
	got := ResolveVariant(testEvaluator("postwarps.admin"), variants, provider.Actor{}, condition.FactMap{})
	require.NotNil(t, got)
	assert.Equal(t, "COMMAND_BLOCK", got.Material)

	got = ResolveVariant(testEvaluator(), variants, provider.Actor{}, condition.FactMap{})
	require.NotNil(t, got)
	assert.Equal(t, "BARRIER", got.Material)
}
