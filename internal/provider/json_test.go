package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONProviderRows(t *testing.T) {
	p := NewJSONProvider()
	doc := []byte(`{"spawns": [
		{"warp": "hub", "world": "overworld"},
		{"warp": "end", "world": "the_end"}
	]}`)
	require.NoError(t, p.Add("spawns", doc, "$.spawns[*]"))

	assert.True(t, p.Supports("spawns"))
	assert.False(t, p.Supports("other"))

	data, err := p.Fetch(context.Background(), Actor{ID: "u1"}, "spawns")
	require.NoError(t, err)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "hub", data.Rows[0]["warp"].StrOr(""))
	assert.Equal(t, "the_end", data.Rows[1]["world"].StrOr(""))
}

func TestJSONProviderScalarResultsWrap(t *testing.T) {
	p := NewJSONProvider()
	require.NoError(t, p.Add("names", []byte(`{"names": ["a", "b"]}`), "$.names[*]"))

	data, err := p.Fetch(context.Background(), Actor{}, "names")
	require.NoError(t, err)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "a", data.Rows[0]["value"].StrOr(""))
}

func TestJSONProviderBadInput(t *testing.T) {
	p := NewJSONProvider()
	assert.Error(t, p.Add("m", []byte(`{not json`), "$.x"))
	assert.Error(t, p.Add("m", []byte(`{}`), "$[((("))
}

func TestJSONProviderHonorsContext(t *testing.T) {
	p := NewJSONProvider()
	require.NoError(t, p.Add("m", []byte(`{"x": []}`), "$.x[*]"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Fetch(ctx, Actor{}, "m")
	assert.Error(t, err)
}
