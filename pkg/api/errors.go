package api

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/mailpreview/pkg/catalog"
	"github.com/dmitrymomot/mailpreview/pkg/email"
	"github.com/dmitrymomot/mailpreview/pkg/file"
	"github.com/dmitrymomot/mailpreview/pkg/render"
	"github.com/dmitrymomot/mailpreview/pkg/session"
)

// HTTPError is an HTTP status code paired with a stable error key.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string {
	return e.Key
}

var (
	ErrBadRequest          = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrNotFound            = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrConflict            = HTTPError{Code: http.StatusConflict, Key: "conflict"}
	ErrUnprocessableEntity = HTTPError{Code: http.StatusUnprocessableEntity, Key: "unprocessable_entity"}
	ErrTooManyRequests     = HTTPError{Code: http.StatusTooManyRequests, Key: "too_many_requests"}
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error"}
	ErrBadGateway          = HTTPError{Code: http.StatusBadGateway, Key: "bad_gateway"}
)

// errorFor maps domain errors onto HTTP errors. Unknown errors are internal.
func errorFor(err error) HTTPError {
	var he HTTPError
	switch {
	case errors.As(err, &he):
		return he
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, session.ErrEntryNotFound),
		errors.Is(err, file.ErrFileNotFound),
		errors.Is(err, file.ErrInvalidPath):
		return ErrNotFound
	case errors.Is(err, email.ErrInvalidParams):
		return ErrBadRequest
	case errors.Is(err, session.ErrNoSelection),
		errors.Is(err, session.ErrSuperseded),
		errors.Is(err, session.ErrSendInProgress):
		return ErrConflict
	case errors.Is(err, render.ErrParseTemplate),
		errors.Is(err, render.ErrExecuteTemplate),
		errors.Is(err, session.ErrRenderFailed):
		return ErrUnprocessableEntity
	case errors.Is(err, session.ErrSendFailed):
		return ErrBadGateway
	default:
		return ErrInternalServerError
	}
}
