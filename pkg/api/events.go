package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/mailpreview/pkg/logger"
	"github.com/dmitrymomot/mailpreview/pkg/notifications"
)

const (
	// SessionIDHeader identifies the session whose notifications a client receives.
	SessionIDHeader = "X-Session-ID"
	// SessionCookie is the cookie fallback for SessionIDHeader.
	SessionCookie = "mailpreview_session"
	// SessionQueryParam is the query fallback for SessionIDHeader.
	SessionQueryParam = "session"
	// ToastSignal is the datastar signal carrying notifications.
	ToastSignal = "toast"
)

type toast struct {
	ID      string             `json:"id"`
	Type    notifications.Type `json:"type"`
	Title   string             `json:"title"`
	Message string             `json:"message"`
}

func sessionIDFrom(r *http.Request) string {
	if id := r.Header.Get(SessionIDHeader); id != "" {
		return id
	}
	if id := r.URL.Query().Get(SessionQueryParam); id != "" {
		return id
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// streamEvents pushes the session's notifications as datastar "toast" signal patches
// until the client disconnects.
func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request) {
	if s.events == nil {
		writeError(w, r, s.logger, ErrNotFound)
		return
	}

	id := sessionIDFrom(r)
	if !isValidID(id) {
		writeError(w, r, s.logger, fmt.Errorf("%w: session id is required", ErrBadRequest))
		return
	}

	sub := s.events.Subscribe(r.Context(), id)
	defer sub.Close()

	sse := datastar.NewSSE(w, r)
	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-sub.Receive():
			if !ok {
				return
			}
			n := msg.Data
			data, err := json.Marshal(map[string]any{ToastSignal: toast{
				ID:      n.ID,
				Type:    n.Type,
				Title:   n.Title,
				Message: n.Message,
			}})
			if err != nil {
				s.logger.ErrorContext(r.Context(), "failed to encode notification", logger.Error(err))
				continue
			}
			if err := sse.PatchSignals(data); err != nil {
				s.logger.DebugContext(r.Context(), "event stream closed", logger.SessionID(id), logger.Error(err))
				return
			}
		}
	}
}
