package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/mailpreview/pkg/cache"
	"github.com/dmitrymomot/mailpreview/pkg/notifications"
	"github.com/dmitrymomot/mailpreview/pkg/session"
)

// DefaultMaxSessions is the number of hosted sessions kept before the least recently
// used is dropped.
const DefaultMaxSessions = 256

// sessions hosts RenderSessions for browser clients, keyed by client-chosen id.
type sessions struct {
	srv *Server
	lru *cache.LRU[string, *session.Session]
}

func newSessions(srv *Server) *sessions {
	return &sessions{srv: srv, lru: cache.New[string, *session.Session](srv.maxSessions)}
}

func (h *sessions) get(id string) *session.Session {
	return h.lru.GetOrCreate(id, func() *session.Session {
		srv := h.srv
		deliverers := []notifications.Deliverer{notifications.NewLogDeliverer(srv.logger)}
		if srv.events != nil {
			deliverers = append(deliverers, srv.events)
		}

		opts := []LocalSenderOption{WithSendTag(srv.tag), WithSenderLogger(srv.logger)}
		if srv.limiter != nil {
			opts = append(opts, WithRateLimit(srv.limiter, "session:"+id))
		}

		return session.New(srv.catalog, srv.engine, NewLocalSender(srv.sender, opts...),
			session.WithID(id),
			session.WithLogger(srv.logger),
			session.WithNotifier(notifications.NewMultiDeliverer(deliverers, notifications.WithMultiDelivererLogger(srv.logger))),
		)
	})
}

type sessionSnapshot struct {
	ID        string          `json:"id"`
	State     session.State   `json:"state"`
	Templates []string        `json:"templates"`
	Active    string          `json:"active,omitempty"`
	Output    *session.Output `json:"output,omitempty"`
	Busy      bool            `json:"busy"`
}

type selectRequest struct {
	Filename string `json:"filename"`
}

type sendRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
}

type sendOutcome struct {
	Outcome string `json:"outcome"`
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "session")
	if !isValidID(id) {
		writeError(w, r, s.logger, fmt.Errorf("%w: invalid session id", ErrBadRequest))
		return nil, false
	}
	return s.sessions.get(id), true
}

func snapshot(sess *session.Session) sessionSnapshot {
	snap := sessionSnapshot{
		ID:        sess.ID(),
		State:     sess.State(),
		Templates: []string{},
		Output:    sess.Output(),
		Busy:      sess.Busy(),
	}
	for _, e := range sess.Catalog() {
		snap.Templates = append(snap.Templates, e.Filename)
	}
	if a := sess.Active(); a != nil {
		snap.Active = a.Filename
	}
	return snap
}

func (s *Server) sessionSnapshot(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snapshot(sess))
}

func (s *Server) sessionLoad(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := sess.LoadCatalog(r.Context()); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot(sess))
}

// sessionSelect loads the catalog on first use, selects the template and waits for
// its default render.
func (s *Server) sessionSelect(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req selectRequest
	if err := decodeJSON(w, r, s.maxBody, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if strings.TrimSpace(req.Filename) == "" {
		writeError(w, r, s.logger, fmt.Errorf("%w: filename is required", ErrBadRequest))
		return
	}

	if sess.State() == session.StateEmpty {
		if err := sess.LoadCatalog(r.Context()); err != nil {
			writeError(w, r, s.logger, err)
			return
		}
	}

	future, err := sess.Select(r.Context(), req.Filename)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	out, err := future.AwaitContext(r.Context())
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) sessionRender(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req renderRequest
	if err := decodeJSON(w, r, s.maxBody, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	out, err := sess.Render(r.Context(), req.Props)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// sessionSend sends the session's current HTML.
func (s *Server) sessionSend(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req sendRequest
	if err := decodeJSON(w, r, s.maxBody, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	out := sess.Output()
	if out == nil {
		writeError(w, r, s.logger, fmt.Errorf("%w: nothing rendered", session.ErrNoSelection))
		return
	}

	outcome, err := sess.SendTest(r.Context(), req.To, req.Subject, out.HTML)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	status := http.StatusOK
	if outcome == session.OutcomeRateLimited {
		status = http.StatusTooManyRequests
	}
	writeJSON(w, status, sendOutcome{Outcome: outcome.String()})
}
