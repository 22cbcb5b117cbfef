package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromScalars(t *testing.T) {
	assert.Equal(t, String, From("hi").Kind())
	assert.Equal(t, Int, From(3).Kind())
	assert.Equal(t, Float, From(3.5).Kind())
	assert.Equal(t, Bool, From(true).Kind())
	assert.Equal(t, Absent, From(nil).Kind())
}

func TestFromNested(t *testing.T) {
	v := From(map[string]any{
		"lore":  []any{"line one", 2},
		"count": 16,
	})
	m, ok := v.Map()
	require.True(t, ok)

	l, ok := m["lore"].List()
	require.True(t, ok)
	require.Len(t, l, 2)
	assert.Equal(t, "line one", l[0].StrOr(""))
	assert.Equal(t, "2", l[1].StrOr(""))

	assert.Equal(t, int64(16), m["count"].IntOr(0))
}

func TestNumericCrossConversion(t *testing.T) {
	f, ok := From(7).Float()
	require.True(t, ok)
	assert.Equal(t, 7.0, f)

	i, ok := From("42").Int()
	require.True(t, ok)
	assert.Equal(t, int64(42), i)

	_, ok = From("not a number").Int()
	assert.False(t, ok)
}

func TestWrongTypeReturnsFalseNotPanic(t *testing.T) {
	v := From([]any{"a"})
	_, ok := v.Str()
	assert.False(t, ok)
	_, ok = v.Bool()
	assert.False(t, ok)
	_, ok = v.Map()
	assert.False(t, ok)
}

func TestTruthy(t *testing.T) {
	assert.False(t, None.Truthy())
	assert.False(t, Of("").Truthy())
	assert.False(t, Of("false").Truthy())
	assert.False(t, OfInt(0).Truthy())
	assert.True(t, Of("yes").Truthy())
	assert.True(t, OfFloat(0.1).Truthy())
	assert.True(t, From([]any{1}).Truthy())
}

func TestStringsAcceptsBareScalar(t *testing.T) {
	ss, ok := Of("single line").Strings()
	require.True(t, ok)
	assert.Equal(t, []string{"single line"}, ss)

	ss, ok = From([]any{"a", "b"}).Strings()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, ss)
}
