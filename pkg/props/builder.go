package props

import (
	"cmp"
	"slices"
)

// Builder converts raw parameters into ordered descriptors with coerced defaults.
type Builder struct {
	normalizer *Normalizer
}

// Option configures a Builder.
type Option func(*Builder)

// WithNormalizer sets the normalizer used to resolve parameter kinds.
func WithNormalizer(n *Normalizer) Option {
	return func(b *Builder) {
		if n != nil {
			b.normalizer = n
		}
	}
}

// NewBuilder creates a Builder with a default Normalizer.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{normalizer: NewNormalizer()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type resolved struct {
	param RawParameter
	kind  Kind
}

// Build drops framework globals and parameters whose type was removed entirely,
// orders the rest (required first, then non-boolean before boolean, otherwise
// declaration order) and coerces each default to its kind.
// A malformed object or array default fails the whole build.
func (b *Builder) Build(params []RawParameter) ([]Descriptor, error) {
	kept := make([]resolved, 0, len(params))
	for _, p := range params {
		if p.Global {
			continue
		}
		kind, ok := b.normalizer.Normalize(p.Type)
		if !ok {
			continue
		}
		kept = append(kept, resolved{param: p, kind: kind})
	}

	slices.SortStableFunc(kept, compareResolved)

	descriptors := make([]Descriptor, 0, len(kept))
	for _, r := range kept {
		value, err := Coerce(r.kind, r.param.Default)
		if err != nil {
			return nil, &MalformedDefaultError{
				Param:   r.param.Name,
				Kind:    r.kind,
				Literal: *r.param.Default,
				Err:     err,
			}
		}
		descriptors = append(descriptors, Descriptor{
			Label: r.param.Name,
			Kind:  r.kind,
			Value: value,
		})
	}

	return descriptors, nil
}

func compareResolved(a, b resolved) int {
	if c := cmp.Compare(rank(b.param.Required), rank(a.param.Required)); c != 0 {
		return c
	}
	return cmp.Compare(rank(a.kind == KindBoolean), rank(b.kind == KindBoolean))
}

func rank(v bool) int {
	if v {
		return 1
	}
	return 0
}
