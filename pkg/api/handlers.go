package api

import (
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/mailpreview/pkg/email"
	"github.com/dmitrymomot/mailpreview/pkg/logger"
)

type renderRequest struct {
	Props map[string]any `json:"props"`
}

type sendResponse struct {
	Status string `json:"status"`
}

func (s *Server) listEmails(w http.ResponseWriter, r *http.Request) {
	entries, err := s.catalog.ListAll(r.Context())
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) renderEmail(w http.ResponseWriter, r *http.Request) {
	key, err := filenameParam(r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	var req renderRequest
	if err := decodeJSON(w, r, s.maxBody, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	res, err := s.engine.Render(r.Context(), key, req.Props)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) sendTest(w http.ResponseWriter, r *http.Request) {
	var req email.TestRequest
	if err := decodeJSON(w, r, s.maxBody, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	res, err := s.dispatch.SendTest(r.Context(), req)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if res.StatusCode != http.StatusOK {
		writeJSON(w, res.StatusCode, errorResponse{Error: res.Error})
		return
	}
	writeJSON(w, http.StatusOK, sendResponse{Status: "sent"})
}

// preview renders a template as a standalone page. Query parameters become string props.
func (s *Server) preview(w http.ResponseWriter, r *http.Request) {
	key, err := filenameParam(r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	props := make(map[string]any)
	for name, values := range r.URL.Query() {
		if len(values) > 0 {
			props[name] = values[0]
		}
	}

	c, err := s.engine.Component(r.Context(), key, props)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	templ.Handler(c, templ.WithErrorHandler(func(r *http.Request, err error) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.logger.WarnContext(r.Context(), "preview failed", logger.Template(key), logger.Error(err))
			writeError(w, r, s.logger, err)
		})
	})).ServeHTTP(w, r)
}

func filenameParam(r *http.Request) (string, error) {
	key, err := url.PathUnescape(chi.URLParam(r, "filename"))
	if err != nil || key == "" {
		return "", ErrNotFound
	}
	return key, nil
}
