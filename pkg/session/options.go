package session

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/mailpreview/pkg/notifications"
)

// Option configures a Session.
type Option func(*Session)

// WithID sets the session identifier. A random UUID is used by default.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// WithNotifier sets where outcome reports go.
func WithNotifier(d notifications.Deliverer) Option {
	return func(s *Session) {
		if d != nil {
			s.notifier = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPrettifier overrides HTML pretty-printing of render results.
func WithPrettifier(fn func(string) string) Option {
	return func(s *Session) {
		if fn != nil {
			s.pretty = fn
		}
	}
}

// WithClock overrides the time source for Output.RenderedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}
