package props

import (
	"errors"
	"fmt"
)

var ErrMalformedDefault = errors.New("props: malformed default value")

// MalformedDefaultError reports an object or array default literal that failed to parse.
type MalformedDefaultError struct {
	Param   string
	Kind    Kind
	Literal string
	Err     error
}

func (e *MalformedDefaultError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("props: default for %q is not a valid %s literal: %s", e.Param, e.Kind, e.Literal)
	}
	return fmt.Sprintf("props: default for %q is not a valid %s literal: %s: %v", e.Param, e.Kind, e.Literal, e.Err)
}

func (e *MalformedDefaultError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedDefault}
	}
	return []error{ErrMalformedDefault, e.Err}
}

func IsMalformedDefaultError(err error) bool {
	var e *MalformedDefaultError
	return errors.As(err, &e)
}
