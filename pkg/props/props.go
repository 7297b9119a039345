package props

import "strings"

// Kind is the coarse type of a prop value.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindObject  Kind = "object"
	KindArray   Kind = "array"
)

// TypeDesc is one alternative of a parameter type.
type TypeDesc struct {
	Name string `json:"name" yaml:"name"`
	// DeclaredIn lists the files the alternative was declared in.
	DeclaredIn []string `json:"declared_in,omitempty" yaml:"declared_in,omitempty"`
}

// RawType is a parameter type as a union of alternatives in declaration order.
// A non-union type is a single-element RawType.
type RawType []TypeDesc

// String renders the union the way it was written.
func (t RawType) String() string {
	names := make([]string, 0, len(t))
	for _, alt := range t {
		names = append(names, alt.Name)
	}
	return strings.Join(names, " | ")
}

// RawParameter is a parameter as reported by a type-analysis collaborator.
type RawParameter struct {
	Name     string  `json:"name"`
	Required bool    `json:"required"`
	Type     RawType `json:"type"`
	// Default is the literal default source text; nil when absent.
	Default *string `json:"default,omitempty"`
	// Global marks parameters provided by the rendering framework rather than the author.
	Global     bool   `json:"global,omitempty"`
	DeclaredIn string `json:"declared_in,omitempty"`
}

// Descriptor is an editable prop with its default value.
// Value's dynamic type always matches Kind.
type Descriptor struct {
	Label string `json:"label"`
	Kind  Kind   `json:"type"`
	Value any    `json:"value"`
}

// Defaults returns label to value for the given descriptors.
func Defaults(descriptors []Descriptor) map[string]any {
	values := make(map[string]any, len(descriptors))
	for _, d := range descriptors {
		values[d.Label] = d.Value
	}
	return values
}
