package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/mailpreview/pkg/logger"
)

// DefaultMaxBodySize caps JSON request bodies.
const DefaultMaxBodySize int64 = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeJSON encodes v before committing the status and answers 500 when v
// cannot be encoded.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = ErrInternalServerError.Code
		body, _ = json.Marshal(errorResponse{Error: ErrInternalServerError.Key, Code: ErrInternalServerError.Key})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// writeError responds with {"error": message, "code": key}. Client errors carry the
// underlying message; server errors only the key.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	he := errorFor(err)
	msg := he.Key
	if he.Code < http.StatusInternalServerError {
		msg = err.Error()
	} else {
		log.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Status(he.Code),
			logger.Error(err),
		)
	}
	writeJSON(w, he.Code, errorResponse{Error: msg, Code: he.Key})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}
