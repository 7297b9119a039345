package catalog

import "errors"

var (
	ErrNotFound = errors.New("catalog: no templates found")
	ErrInternal = errors.New("catalog: failed to list templates")
)
