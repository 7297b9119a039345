package props

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

var (
	errUnexpectedShape = errors.New("literal does not describe the expected shape")
	errNonFinite       = errors.New("literal contains a non-finite number")
)

// Coerce converts a default literal into a value of the given kind.
// raw is nil when the parameter has no default. Only object and array kinds
// can fail; every other kind falls back to its zero value.
func Coerce(kind Kind, raw *string) (any, error) {
	switch kind {
	case KindNumber:
		return coerceNumber(raw), nil
	case KindBoolean:
		return coerceBoolean(raw), nil
	case KindObject:
		return coerceObject(raw)
	case KindArray:
		return coerceArray(raw)
	default:
		return coerceString(raw), nil
	}
}

// ParseLiteral parses a literal leniently: keywords first, then JSON5,
// and when nothing matches the literal itself is returned as a string.
func ParseLiteral(literal string) any {
	trimmed := strings.TrimSpace(literal)
	switch strings.ToLower(trimmed) {
	case "true":
		return true
	case "false":
		return false
	case "null", "undefined":
		return nil
	case "":
		return literal
	}

	var v any
	if err := json5.Unmarshal([]byte(trimmed), &v); err == nil {
		return v
	}
	return literal
}

func coerceString(raw *string) string {
	if raw == nil {
		return ""
	}
	switch v := ParseLiteral(*raw).(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		// keep the author's text for numbers, booleans and structures
		return *raw
	}
}

func coerceNumber(raw *string) float64 {
	if raw == nil {
		return 0
	}
	switch v := ParseLiteral(*raw).(type) {
	case float64:
		if isFinite(v) {
			return v
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && isFinite(f) {
			return f
		}
	}
	return 0
}

func coerceBoolean(raw *string) bool {
	if raw == nil {
		return false
	}
	v, ok := ParseLiteral(*raw).(bool)
	return ok && v
}

func coerceObject(raw *string) (map[string]any, error) {
	v, err := parseStructured(raw)
	if err != nil {
		return nil, err
	}
	switch obj := v.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return obj, nil
	default:
		return nil, errUnexpectedShape
	}
}

func coerceArray(raw *string) ([]any, error) {
	v, err := parseStructured(raw)
	if err != nil {
		return nil, err
	}
	switch arr := v.(type) {
	case nil:
		return []any{}, nil
	case []any:
		return arr, nil
	default:
		return nil, errUnexpectedShape
	}
}

func parseStructured(raw *string) (any, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	var v any
	if err := json5.Unmarshal([]byte(strings.TrimSpace(*raw)), &v); err != nil {
		return nil, err
	}
	if !allFinite(v) {
		return nil, errNonFinite
	}
	return v, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// allFinite reports whether every number nested in v can be encoded as JSON.
func allFinite(v any) bool {
	switch t := v.(type) {
	case float64:
		return isFinite(t)
	case map[string]any:
		for _, e := range t {
			if !allFinite(e) {
				return false
			}
		}
	case []any:
		for _, e := range t {
			if !allFinite(e) {
				return false
			}
		}
	}
	return true
}
