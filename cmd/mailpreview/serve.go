package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailpreview/pkg/analyzer"
	"github.com/dmitrymomot/mailpreview/pkg/api"
	"github.com/dmitrymomot/mailpreview/pkg/catalog"
	"github.com/dmitrymomot/mailpreview/pkg/email"
	"github.com/dmitrymomot/mailpreview/pkg/httpserver"
	"github.com/dmitrymomot/mailpreview/pkg/logger"
	"github.com/dmitrymomot/mailpreview/pkg/notifications"
	"github.com/dmitrymomot/mailpreview/pkg/render"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the preview API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := a.templateStorage(ctx)
			if err != nil {
				return err
			}
			mailer, err := email.NewSender(a.cfg.Email)
			if err != nil {
				return err
			}
			limiter, checks, closeLimiter, err := a.limiter(ctx)
			if err != nil {
				return err
			}
			defer closeLimiter()

			events := notifications.NewBroadcastDeliverer(a.cfg.EventBuffer, notifications.WithBroadcastLogger(a.logger))
			defer func() {
				if err := events.Close(); err != nil {
					a.logger.WarnContext(ctx, "failed to close event streams", logger.Error(err))
				}
			}()

			srv := api.NewServer(
				catalog.New(store, analyzer.New(), catalog.WithLogger(a.logger)),
				render.NewEngine(store, render.WithLogger(a.logger)),
				mailer,
				api.WithLogger(a.logger),
				api.WithLimiter(limiter, nil),
				api.WithEvents(events),
				api.WithHealthChecks(checks...),
				api.WithTag(a.cfg.Email.Tag),
				api.WithMaxSessions(a.cfg.MaxSessions),
			)

			opts := []httpserver.Option{httpserver.WithLogger(a.logger)}
			if addr != "" {
				opts = append(opts, httpserver.WithAddr(addr))
			}
			return httpserver.NewFromConfig(a.cfg.HTTP, opts...).Run(ctx, srv.Router())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	return cmd
}
