package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/mailpreview/pkg/email"
	"github.com/dmitrymomot/mailpreview/pkg/logger"
	"github.com/dmitrymomot/mailpreview/pkg/ratelimiter"
)

const messageSendFailed = "failed to send email"

// LocalSender dispatches test sends in-process through an email.EmailSender, reporting
// the status codes the HTTP endpoint would return.
type LocalSender struct {
	sender  email.EmailSender
	limiter ratelimiter.RateLimiter
	key     string
	tag     string
	logger  *slog.Logger
}

// LocalSenderOption configures a LocalSender.
type LocalSenderOption func(*LocalSender)

// WithRateLimit limits sends under key.
func WithRateLimit(limiter ratelimiter.RateLimiter, key string) LocalSenderOption {
	return func(s *LocalSender) {
		s.limiter = limiter
		s.key = key
	}
}

// WithSendTag tags outgoing messages.
func WithSendTag(tag string) LocalSenderOption {
	return func(s *LocalSender) { s.tag = tag }
}

// WithSenderLogger sets the logger.
func WithSenderLogger(l *slog.Logger) LocalSenderOption {
	return func(s *LocalSender) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewLocalSender wraps sender.
func NewLocalSender(sender email.EmailSender, opts ...LocalSenderOption) *LocalSender {
	s := &LocalSender{sender: sender, logger: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendTest validates req, applies the rate limit and sends. Only limiter failures are
// returned as errors; every other outcome is a status code.
func (s *LocalSender) SendTest(ctx context.Context, req email.TestRequest) (*email.TestResult, error) {
	params := email.SendEmailParams{
		SendTo:   req.To,
		Subject:  req.Subject,
		BodyHTML: req.HTML,
		Tag:      s.tag,
	}
	if err := params.Validate(); err != nil {
		return &email.TestResult{StatusCode: http.StatusBadRequest, Error: err.Error()}, nil
	}

	if s.limiter != nil {
		res, err := s.limiter.Allow(ctx, s.key)
		if err != nil {
			return nil, err
		}
		if !res.Allowed() {
			return &email.TestResult{StatusCode: http.StatusTooManyRequests, Error: ratelimiter.DefaultMessage(res)}, nil
		}
	}

	if err := s.sender.SendEmail(ctx, params); err != nil {
		s.logger.ErrorContext(ctx, "failed to send test email", logger.Error(err))
		return &email.TestResult{StatusCode: http.StatusInternalServerError, Error: messageSendFailed}, nil
	}

	s.logger.InfoContext(ctx, "test email sent", slog.String("to", req.To))
	return &email.TestResult{StatusCode: http.StatusOK}, nil
}
