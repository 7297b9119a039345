package ratelimiter

import (
	"context"
	"time"
)

// Store persists token buckets.
type Store interface {
	// ConsumeTokens refills the bucket for key and takes tokens when enough are left.
	// A negative remaining count means the request was denied and nothing was taken.
	ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (remaining int, resetAt time.Time, err error)

	// Reset clears the bucket for key.
	Reset(ctx context.Context, key string) error
}
