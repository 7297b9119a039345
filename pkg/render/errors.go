package render

import "errors"

var (
	ErrLoadTemplate    = errors.New("render: failed to load template")
	ErrParseTemplate   = errors.New("render: failed to parse template")
	ErrExecuteTemplate = errors.New("render: failed to execute template")
)
