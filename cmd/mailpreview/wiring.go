package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrymomot/mailpreview/pkg/analyzer"
	"github.com/dmitrymomot/mailpreview/pkg/api"
	"github.com/dmitrymomot/mailpreview/pkg/catalog"
	"github.com/dmitrymomot/mailpreview/pkg/email"
	"github.com/dmitrymomot/mailpreview/pkg/file"
	"github.com/dmitrymomot/mailpreview/pkg/httpserver"
	"github.com/dmitrymomot/mailpreview/pkg/notifications"
	"github.com/dmitrymomot/mailpreview/pkg/ratelimiter"
	"github.com/dmitrymomot/mailpreview/pkg/redis"
	"github.com/dmitrymomot/mailpreview/pkg/render"
	"github.com/dmitrymomot/mailpreview/pkg/session"
)

var errUnknownStorage = errors.New("unknown template storage")

func (a *app) templateStorage(ctx context.Context) (file.Storage, error) {
	switch a.cfg.Storage {
	case storageLocal, "":
		return file.NewLocalStorage(a.cfg.TemplatesDir, file.WithExtensions(catalog.DefaultExtension))
	case storageS3:
		return file.NewS3Storage(ctx, a.cfg.S3, file.WithS3Extensions(catalog.DefaultExtension))
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownStorage, a.cfg.Storage)
	}
}

// limiter builds the send rate limiter, backed by Redis when configured. The returned
// closer releases the store.
func (a *app) limiter(ctx context.Context) (ratelimiter.RateLimiter, []httpserver.Check, func(), error) {
	if !a.cfg.Redis.Enabled() {
		store := ratelimiter.NewMemoryStore()
		l, err := ratelimiter.NewBucket(store, a.cfg.RateLimit)
		if err != nil {
			_ = store.Close()
			return nil, nil, nil, err
		}
		return l, nil, func() { _ = store.Close() }, nil
	}

	client, err := redis.Connect(ctx, a.cfg.Redis)
	if err != nil {
		return nil, nil, nil, err
	}
	l, err := ratelimiter.NewBucket(ratelimiter.NewRedisStore(client), a.cfg.RateLimit)
	if err != nil {
		_ = client.Close()
		return nil, nil, nil, err
	}
	checks := []httpserver.Check{{Name: "redis", Fn: redis.Healthcheck(client)}}
	return l, checks, func() { _ = client.Close() }, nil
}

type collaborators struct {
	lister   session.Lister
	renderer session.Renderer
	sender   session.Sender
	close    func()
}

// collaborators talks to --server when set, otherwise wires storage, rendering and
// sending in-process.
func (a *app) collaborators(ctx context.Context) (*collaborators, error) {
	if a.serverURL != "" {
		c := api.NewClient(a.serverURL, api.WithClientLogger(a.logger))
		return &collaborators{lister: c, renderer: c, sender: c, close: func() {}}, nil
	}

	store, err := a.templateStorage(ctx)
	if err != nil {
		return nil, err
	}
	mailer, err := email.NewSender(a.cfg.Email)
	if err != nil {
		return nil, err
	}
	limiter, _, closeLimiter, err := a.limiter(ctx)
	if err != nil {
		return nil, err
	}

	return &collaborators{
		lister:   catalog.New(store, analyzer.New(), catalog.WithLogger(a.logger)),
		renderer: render.NewEngine(store, render.WithLogger(a.logger)),
		sender: api.NewLocalSender(mailer,
			api.WithRateLimit(limiter, "cli"),
			api.WithSendTag(a.cfg.Email.Tag),
			api.WithSenderLogger(a.logger),
		),
		close: closeLimiter,
	}, nil
}

// newSession creates a session whose notifications are printed to w.
func (a *app) newSession(c *collaborators, w io.Writer) *session.Session {
	printer := notifications.DelivererFunc(func(_ context.Context, n notifications.Notification) error {
		_, err := fmt.Fprintf(w, "%s: %s\n", n.Title, n.Message)
		return err
	})
	notifier := notifications.NewMultiDeliverer(
		[]notifications.Deliverer{printer, notifications.NewLogDeliverer(a.logger)},
		notifications.WithMultiDelivererLogger(a.logger),
	)
	return session.New(c.lister, c.renderer, c.sender,
		session.WithLogger(a.logger),
		session.WithNotifier(notifier),
	)
}
