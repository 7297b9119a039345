package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/mailpreview/pkg/catalog"
	"github.com/dmitrymomot/mailpreview/pkg/email"
	"github.com/dmitrymomot/mailpreview/pkg/httpserver"
	"github.com/dmitrymomot/mailpreview/pkg/logger"
	"github.com/dmitrymomot/mailpreview/pkg/notifications"
	"github.com/dmitrymomot/mailpreview/pkg/ratelimiter"
	"github.com/dmitrymomot/mailpreview/pkg/render"
)

// Catalog lists templates.
type Catalog interface {
	ListAll(ctx context.Context) ([]catalog.Entry, error)
}

// Engine renders templates as text results and as components.
type Engine interface {
	Render(ctx context.Context, key string, props map[string]any) (*render.Result, error)
	Component(ctx context.Context, key string, props map[string]any) (templ.Component, error)
}

// Server serves the preview API.
type Server struct {
	catalog     Catalog
	engine      Engine
	dispatch    *LocalSender
	sender      email.EmailSender
	limiter     ratelimiter.RateLimiter
	keyFunc     ratelimiter.KeyFunc
	events      *notifications.BroadcastDeliverer
	checks      []httpserver.Check
	tag         string
	maxBody     int64
	maxSessions int
	logger      *slog.Logger
	sessions    *sessions
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLimiter rate-limits test sends. Requests are keyed by client IP unless keyFunc is given.
func WithLimiter(l ratelimiter.RateLimiter, keyFunc ratelimiter.KeyFunc) Option {
	return func(s *Server) {
		s.limiter = l
		if keyFunc != nil {
			s.keyFunc = keyFunc
		}
	}
}

// WithEvents streams session notifications from d.
func WithEvents(d *notifications.BroadcastDeliverer) Option {
	return func(s *Server) { s.events = d }
}

// WithHealthChecks adds readiness checks to /healthz.
func WithHealthChecks(checks ...httpserver.Check) Option {
	return func(s *Server) { s.checks = append(s.checks, checks...) }
}

// WithTag tags outgoing test emails.
func WithTag(tag string) Option {
	return func(s *Server) { s.tag = tag }
}

// WithMaxBodySize caps JSON request bodies.
func WithMaxBodySize(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithMaxSessions bounds the number of hosted sessions kept in memory.
func WithMaxSessions(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// NewServer creates a Server over the given collaborators.
func NewServer(cat Catalog, engine Engine, sender email.EmailSender, opts ...Option) *Server {
	s := &Server{
		catalog:     cat,
		engine:      engine,
		sender:      sender,
		keyFunc:     ratelimiter.ByClientIP,
		maxBody:     DefaultMaxBodySize,
		maxSessions: DefaultMaxSessions,
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("api"))
	s.dispatch = NewLocalSender(sender, WithSendTag(s.tag), WithSenderLogger(s.logger))
	s.sessions = newSessions(s)
	return s
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID, middleware.Recoverer, AccessLog(s.logger))

	r.Get("/healthz", httpserver.HealthCheckHandler(s.logger, s.checks...))
	r.Get("/preview/{filename}", s.preview)

	r.Route("/api", func(r chi.Router) {
		r.Get("/emails", s.listEmails)
		r.Post("/render/{filename}", s.renderEmail)

		send := http.HandlerFunc(s.sendTest)
		if s.limiter != nil {
			r.With(ratelimiter.Middleware(s.limiter, s.keyFunc,
				ratelimiter.WithErrorHandler(func(r *http.Request, err error) {
					s.logger.ErrorContext(r.Context(), "rate limiter failed", logger.Error(err))
				}),
			)).Post("/send/test", send)
		} else {
			r.Post("/send/test", send)
		}

		r.Get("/events", s.streamEvents)

		r.Route("/sessions/{session}", func(r chi.Router) {
			r.Get("/", s.sessionSnapshot)
			r.Post("/catalog", s.sessionLoad)
			r.Post("/select", s.sessionSelect)
			r.Post("/render", s.sessionRender)
			r.Post("/send", s.sessionSend)
		})
	})

	return r
}
