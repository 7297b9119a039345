package notifications

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/mailpreview/pkg/logger"
)

// Deliverer hands a notification to one delivery channel.
type Deliverer interface {
	Deliver(ctx context.Context, n Notification) error
}

// DelivererFunc adapts a function to Deliverer.
type DelivererFunc func(ctx context.Context, n Notification) error

func (f DelivererFunc) Deliver(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

// MultiDeliverer delivers through every configured channel.
type MultiDeliverer struct {
	deliverers []Deliverer
	logger     *slog.Logger
}

// MultiDelivererOption configures a MultiDeliverer.
type MultiDelivererOption func(*MultiDeliverer)

// WithMultiDelivererLogger sets the logger for the MultiDeliverer.
func WithMultiDelivererLogger(l *slog.Logger) MultiDelivererOption {
	return func(m *MultiDeliverer) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewMultiDeliverer creates a multi-channel deliverer.
func NewMultiDeliverer(deliverers []Deliverer, opts ...MultiDelivererOption) *MultiDeliverer {
	m := &MultiDeliverer{
		deliverers: deliverers,
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Deliver is best effort: channel failures are logged and never returned.
func (m *MultiDeliverer) Deliver(ctx context.Context, n Notification) error {
	for i, d := range m.deliverers {
		if err := d.Deliver(ctx, n); err != nil {
			m.logger.LogAttrs(ctx, slog.LevelError, "failed to deliver notification",
				slog.String("notification_id", n.ID),
				logger.SessionID(n.SessionID),
				slog.Int("deliverer_index", i),
				logger.Error(err),
			)
		}
	}
	return nil
}

// LogDeliverer writes notifications to a logger, choosing the level from the type.
type LogDeliverer struct {
	logger *slog.Logger
}

// NewLogDeliverer creates a deliverer logging to l.
func NewLogDeliverer(l *slog.Logger) *LogDeliverer {
	if l == nil {
		l = logger.Discard()
	}
	return &LogDeliverer{logger: l}
}

func (d *LogDeliverer) Deliver(ctx context.Context, n Notification) error {
	level := slog.LevelInfo
	switch n.Type {
	case TypeWarning:
		level = slog.LevelWarn
	case TypeError:
		level = slog.LevelError
	}
	d.logger.LogAttrs(ctx, level, n.Title,
		slog.String("message", n.Message),
		slog.String("type", string(n.Type)),
		logger.SessionID(n.SessionID),
	)
	return nil
}

// NoOpDeliverer discards notifications.
type NoOpDeliverer struct{}

func (NoOpDeliverer) Deliver(context.Context, Notification) error {
	return nil
}
