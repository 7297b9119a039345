package analyzer

import "errors"

var (
	ErrParseTemplate      = errors.New("analyzer: failed to parse template")
	ErrInvalidDeclaration = errors.New("analyzer: invalid props declaration")

	errFlowPosition     = errors.New("flow default not found at its reported position")
	errUnterminatedFlow = errors.New("flow default has no closing bracket")
)
