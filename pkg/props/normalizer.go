package props

import "strings"

// InternalMarker prefixes declaration files that belong to the Go toolchain.
const InternalMarker = "$GOROOT/"

// InternalFilter reports whether a declaration file belongs to tooling internals.
type InternalFilter func(file string) bool

// IsGorootDeclaration is the default InternalFilter.
func IsGorootDeclaration(file string) bool {
	return strings.Contains(file, InternalMarker)
}

// Normalizer collapses union types into a single Kind.
type Normalizer struct {
	isInternal InternalFilter
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithInternalFilter replaces the predicate used to drop tooling-internal alternatives.
func WithInternalFilter(fn InternalFilter) NormalizerOption {
	return func(n *Normalizer) {
		if fn != nil {
			n.isInternal = fn
		}
	}
}

// NewNormalizer creates a Normalizer. By default alternatives declared under $GOROOT are dropped.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{isInternal: IsGorootDeclaration}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize returns the kind of the first alternative that survives the provenance filter.
// ok is false when every alternative was dropped.
func (n *Normalizer) Normalize(t RawType) (kind Kind, ok bool) {
	for _, alt := range t {
		if n.internal(alt) {
			continue
		}
		return Canonicalize(alt.Name), true
	}
	return "", false
}

func (n *Normalizer) internal(alt TypeDesc) bool {
	for _, file := range alt.DeclaredIn {
		if n.isInternal(file) {
			return true
		}
	}
	return false
}

// Canonicalize maps a type name to a Kind, case-insensitively.
// Unknown names fall back to KindString.
func Canonicalize(name string) Kind {
	lower := strings.ToLower(strings.TrimSpace(name))
	switch {
	case lower == "string":
		return KindString
	case lower == "number":
		return KindNumber
	case lower == "boolean":
		return KindBoolean
	case lower == "object" || strings.Contains(lower, "record"):
		return KindObject
	case lower == "array" || strings.Contains(lower, "[]") || strings.Contains(lower, "array"):
		return KindArray
	default:
		return KindString
	}
}
