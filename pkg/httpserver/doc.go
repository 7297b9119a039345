// Package httpserver runs an http.Handler until its context ends and then shuts
// it down gracefully.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    return err
//	}
//
// HealthCheckHandler serves liveness and readiness probes. Errors from Run wrap
// ErrStart and errors from Shutdown wrap ErrShutdown.
package httpserver
