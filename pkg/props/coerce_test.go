package props_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailpreview/pkg/props"
)

func TestCoerce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		kind     props.Kind
		raw      *string
		expected any
	}{
		{name: "string absent", kind: props.KindString, raw: nil, expected: ""},
		{name: "string bare word", kind: props.KindString, raw: lit("hello"), expected: "hello"},
		{name: "string quoted", kind: props.KindString, raw: lit(`"hi there"`), expected: "hi there"},
		{name: "string single quoted", kind: props.KindString, raw: lit(`'hi'`), expected: "hi"},
		{name: "string empty literal", kind: props.KindString, raw: lit(""), expected: ""},
		{name: "number absent", kind: props.KindNumber, raw: nil, expected: float64(0)},
		{name: "number literal", kind: props.KindNumber, raw: lit("42"), expected: float64(42)},
		{name: "number negative", kind: props.KindNumber, raw: lit("-1.25"), expected: -1.25},
		{name: "number false", kind: props.KindNumber, raw: lit("false"), expected: float64(0)},
		{name: "number infinity", kind: props.KindNumber, raw: lit("Infinity"), expected: float64(0)},
		{name: "number negative infinity", kind: props.KindNumber, raw: lit("-Infinity"), expected: float64(0)},
		{name: "number quoted infinity", kind: props.KindNumber, raw: lit(`"+Inf"`), expected: float64(0)},
		{name: "number NaN", kind: props.KindNumber, raw: lit("NaN"), expected: float64(0)},
		{name: "boolean absent", kind: props.KindBoolean, raw: nil, expected: false},
		{name: "boolean true", kind: props.KindBoolean, raw: lit("true"), expected: true},
		{name: "boolean mixed case", kind: props.KindBoolean, raw: lit("True"), expected: true},
		{name: "boolean false", kind: props.KindBoolean, raw: lit("false"), expected: false},
		{name: "boolean zero", kind: props.KindBoolean, raw: lit("0"), expected: false},
		{name: "object absent", kind: props.KindObject, raw: nil, expected: map[string]any{}},
		{name: "object relaxed", kind: props.KindObject, raw: lit("{a: 1, b: 'two',}"), expected: map[string]any{"a": float64(1), "b": "two"}},
		{name: "array absent", kind: props.KindArray, raw: nil, expected: []any{}},
		{name: "array relaxed", kind: props.KindArray, raw: lit("['x', 2,]"), expected: []any{"x", float64(2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := props.Coerce(tt.kind, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCoerce_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		kind props.Kind
		raw  string
	}{
		{name: "truncated object", kind: props.KindObject, raw: "{a:"},
		{name: "array for object", kind: props.KindObject, raw: "[1, 2]"},
		{name: "truncated array", kind: props.KindArray, raw: "[1, 2"},
		{name: "object for array", kind: props.KindArray, raw: "{a: 1}"},
		{name: "bare word array", kind: props.KindArray, raw: "nope"},
		{name: "infinity inside object", kind: props.KindObject, raw: "{a: Infinity}"},
		{name: "infinity inside array", kind: props.KindArray, raw: "[1, [-Infinity]]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := props.Coerce(tt.kind, lit(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestParseLiteral(t *testing.T) {
	t.Parallel()

	assert.Equal(t, true, props.ParseLiteral("true"))
	assert.Equal(t, false, props.ParseLiteral(" FALSE "))
	assert.Nil(t, props.ParseLiteral("null"))
	assert.Nil(t, props.ParseLiteral("undefined"))
	assert.Equal(t, float64(7), props.ParseLiteral("7"))
	assert.Equal(t, "plain text", props.ParseLiteral("plain text"))
	assert.Equal(t, map[string]any{"k": "v"}, props.ParseLiteral(`{"k": "v"}`))
}
