package httpserver

import "time"

// Config is the env-driven server configuration. WriteTimeout defaults to 0
// because the event stream keeps responses open.
type Config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"0s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// NewFromConfig creates a Server from cfg. Zero values keep the defaults; opts are applied last.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	base := []Option{
		func(c *config) {
			if cfg.Addr != "" {
				c.addr = cfg.Addr
			}
			if cfg.ReadTimeout > 0 {
				c.readTimeout = cfg.ReadTimeout
			}
			if cfg.WriteTimeout > 0 {
				c.writeTimeout = cfg.WriteTimeout
			}
			if cfg.IdleTimeout > 0 {
				c.idleTimeout = cfg.IdleTimeout
			}
			if cfg.ShutdownTimeout > 0 {
				c.shutdownTimeout = cfg.ShutdownTimeout
			}
		},
	}
	return New(append(base, opts...)...)
}
