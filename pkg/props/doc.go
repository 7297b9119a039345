// Package props turns raw template parameter declarations into editable prop descriptors.
//
// A raw parameter comes from a type-analysis collaborator and carries a name, a required
// flag, an optional default literal and a type expressed as a union of alternatives. Each
// alternative records the files it was declared in, which lets the Normalizer drop
// alternatives contributed by the toolchain itself (for example standard-library types).
//
// The Builder removes framework-global parameters, collapses every remaining type to one of
// five coarse kinds, orders parameters for display and coerces defaults into values whose
// dynamic type matches the kind.
//
// # Usage
//
//	builder := props.NewBuilder()
//	descriptors, err := builder.Build(params)
//	if errors.Is(err, props.ErrMalformedDefault) {
//	    // an object or array default could not be parsed
//	}
//
// # Kinds
//
//	string  -> string
//	number  -> float64
//	boolean -> bool
//	object  -> map[string]any
//	array   -> []any
//
// Object and array defaults are parsed with relaxed JSON5 syntax, so literals like
// {a: 1, b: 'two',} are accepted.
package props
