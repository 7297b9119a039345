package notifications

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/mailpreview/pkg/broadcast"
	"github.com/dmitrymomot/mailpreview/pkg/cache"
	"github.com/dmitrymomot/mailpreview/pkg/logger"
)

// DefaultMaxSessions bounds the number of per-session broadcasters.
const DefaultMaxSessions = 1024

// BroadcastDeliverer publishes notifications to subscribers of the notification's session.
// Notifications without a session go to the shared "" channel.
type BroadcastDeliverer struct {
	sessions    *cache.LRU[string, broadcast.Broadcaster[Notification]]
	bufferSize  int
	maxSessions int
	logger      *slog.Logger
}

// BroadcastDelivererOption configures a BroadcastDeliverer.
type BroadcastDelivererOption func(*BroadcastDeliverer)

// WithBroadcastLogger sets the logger.
func WithBroadcastLogger(l *slog.Logger) BroadcastDelivererOption {
	return func(b *BroadcastDeliverer) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithMaxSessions sets how many session broadcasters are kept; the least recently
// used one is closed when the limit is exceeded.
func WithMaxSessions(limit int) BroadcastDelivererOption {
	return func(b *BroadcastDeliverer) {
		if limit > 0 {
			b.maxSessions = limit
		}
	}
}

// NewBroadcastDeliverer creates a deliverer whose subscribers buffer bufferSize notifications.
func NewBroadcastDeliverer(bufferSize int, opts ...BroadcastDelivererOption) *BroadcastDeliverer {
	d := &BroadcastDeliverer{
		bufferSize:  bufferSize,
		maxSessions: DefaultMaxSessions,
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.sessions = cache.New(d.maxSessions,
		cache.OnEvict(func(sessionID string, b broadcast.Broadcaster[Notification]) {
			if err := b.Close(); err != nil {
				d.logger.LogAttrs(context.Background(), slog.LevelError, "failed to close session broadcaster",
					logger.SessionID(sessionID),
					logger.Error(err),
				)
			}
		}),
	)
	return d
}

func (d *BroadcastDeliverer) broadcaster(sessionID string) broadcast.Broadcaster[Notification] {
	return d.sessions.GetOrCreate(sessionID, func() broadcast.Broadcaster[Notification] {
		return broadcast.NewMemoryBroadcaster[Notification](d.bufferSize)
	})
}

func (d *BroadcastDeliverer) Deliver(ctx context.Context, n Notification) error {
	return d.broadcaster(n.SessionID).Broadcast(ctx, broadcast.Message[Notification]{Data: n})
}

// Subscribe returns a subscriber for sessionID's notifications, valid until ctx is done.
func (d *BroadcastDeliverer) Subscribe(ctx context.Context, sessionID string) broadcast.Subscriber[Notification] {
	return d.broadcaster(sessionID).Subscribe(ctx)
}

// Close closes every session broadcaster.
func (d *BroadcastDeliverer) Close() error {
	d.sessions.Clear()
	return nil
}
