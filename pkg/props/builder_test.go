package props_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailpreview/pkg/props"
)

func lit(s string) *string { return &s }

func typ(name string) props.RawType { return props.RawType{{Name: name}} }

func labels(ds []props.Descriptor) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Label)
	}
	return out
}

func TestBuilder_Build_Order(t *testing.T) {
	t.Parallel()

	params := []props.RawParameter{
		{Name: "a", Required: false, Type: typ("boolean")},
		{Name: "b", Required: true, Type: typ("string")},
		{Name: "c", Required: false, Type: typ("number")},
	}

	ds, err := props.NewBuilder().Build(params)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, labels(ds))
}

func TestBuilder_Build_StableWithinRank(t *testing.T) {
	t.Parallel()

	params := []props.RawParameter{
		{Name: "flag1", Type: typ("boolean")},
		{Name: "x", Type: typ("string")},
		{Name: "req1", Required: true, Type: typ("boolean")},
		{Name: "y", Type: typ("array")},
		{Name: "req2", Required: true, Type: typ("number")},
		{Name: "flag2", Type: typ("boolean")},
		{Name: "req3", Required: true, Type: typ("object")},
	}

	ds, err := props.NewBuilder().Build(params)
	require.NoError(t, err)
	assert.Equal(t, []string{"req2", "req3", "req1", "x", "y", "flag1", "flag2"}, labels(ds))
}

func TestBuilder_Build_DropsGlobalsAndRemovedTypes(t *testing.T) {
	t.Parallel()

	params := []props.RawParameter{
		{Name: "Year", Type: typ("number"), Global: true},
		{Name: "sent", Type: props.RawType{{Name: "Time", DeclaredIn: []string{"$GOROOT/src/time"}}}},
		{Name: "name", Required: true, Type: typ("string")},
	}

	ds, err := props.NewBuilder().Build(params)
	require.NoError(t, err)
	assert.Equal(t, []props.Descriptor{{Label: "name", Kind: props.KindString, Value: ""}}, ds)
}

func TestBuilder_Build_Defaults(t *testing.T) {
	t.Parallel()

	params := []props.RawParameter{
		{Name: "name", Required: true, Type: typ("string"), Default: lit(`"Ada"`)},
		{Name: "count", Type: typ("number")},
		{Name: "show", Type: typ("boolean"), Default: lit("true")},
		{Name: "meta", Type: typ("object"), Default: lit("{a:1}")},
		{Name: "items", Type: typ("string[]")},
	}

	ds, err := props.NewBuilder().Build(params)
	require.NoError(t, err)
	require.Len(t, ds, 5)

	assert.Equal(t, props.Descriptor{Label: "name", Kind: props.KindString, Value: "Ada"}, ds[0])
	assert.Equal(t, props.Descriptor{Label: "count", Kind: props.KindNumber, Value: float64(0)}, ds[1])
	assert.Equal(t, props.Descriptor{Label: "meta", Kind: props.KindObject, Value: map[string]any{"a": float64(1)}}, ds[2])
	assert.Equal(t, props.Descriptor{Label: "items", Kind: props.KindArray, Value: []any{}}, ds[3])
	assert.Equal(t, props.Descriptor{Label: "show", Kind: props.KindBoolean, Value: true}, ds[4])

	assert.Equal(t, map[string]any{
		"name":  "Ada",
		"count": float64(0),
		"meta":  map[string]any{"a": float64(1)},
		"items": []any{},
		"show":  true,
	}, props.Defaults(ds))
}

func TestBuilder_Build_MalformedObject(t *testing.T) {
	t.Parallel()

	params := []props.RawParameter{
		{Name: "ok", Type: typ("string")},
		{Name: "broken", Type: typ("object"), Default: lit("{a:")},
	}

	ds, err := props.NewBuilder().Build(params)
	require.Error(t, err)
	assert.Nil(t, ds)
	assert.ErrorIs(t, err, props.ErrMalformedDefault)
	assert.True(t, props.IsMalformedDefaultError(err))

	var mde *props.MalformedDefaultError
	require.True(t, errors.As(err, &mde))
	assert.Equal(t, "broken", mde.Param)
	assert.Equal(t, props.KindObject, mde.Kind)
	assert.Equal(t, "{a:", mde.Literal)
}

func TestBuilder_Build_Empty(t *testing.T) {
	t.Parallel()

	ds, err := props.NewBuilder().Build(nil)
	require.NoError(t, err)
	assert.Empty(t, ds)
}

func TestBuilder_Build_ValueMatchesKind(t *testing.T) {
	t.Parallel()

	params := []props.RawParameter{
		{Name: "s1", Type: typ("string"), Default: lit("42")},
		{Name: "s2", Type: typ("string"), Default: lit("null")},
		{Name: "n1", Type: typ("number"), Default: lit("hello")},
		{Name: "n2", Type: typ("number"), Default: lit("'3.5'")},
		{Name: "b1", Type: typ("boolean"), Default: lit("yes")},
		{Name: "o1", Type: typ("object"), Default: lit("null")},
	}

	ds, err := props.NewBuilder().Build(params)
	require.NoError(t, err)

	for _, d := range ds {
		switch d.Kind {
		case props.KindString:
			assert.IsType(t, "", d.Value, d.Label)
		case props.KindNumber:
			assert.IsType(t, float64(0), d.Value, d.Label)
		case props.KindBoolean:
			assert.IsType(t, false, d.Value, d.Label)
		case props.KindObject:
			assert.IsType(t, map[string]any{}, d.Value, d.Label)
		case props.KindArray:
			assert.IsType(t, []any{}, d.Value, d.Label)
		}
	}

	values := props.Defaults(ds)
	assert.Equal(t, "42", values["s1"])
	assert.Equal(t, "", values["s2"])
	assert.Equal(t, float64(0), values["n1"])
	assert.Equal(t, 3.5, values["n2"])
	assert.Equal(t, false, values["b1"])
	assert.Equal(t, map[string]any{}, values["o1"])
}

func TestBuilder_Build_NonFiniteNumbersEncode(t *testing.T) {
	t.Parallel()

	params := []props.RawParameter{
		{Name: "up", Type: typ("number"), Default: lit("Infinity")},
		{Name: "down", Type: typ("number"), Default: lit("-Infinity")},
		{Name: "nan", Type: typ("number"), Default: lit("NaN")},
	}

	ds, err := props.NewBuilder().Build(params)
	require.NoError(t, err)
	for _, d := range ds {
		assert.Equal(t, float64(0), d.Value, d.Label)
	}

	_, err = json.Marshal(ds)
	assert.NoError(t, err)
}
