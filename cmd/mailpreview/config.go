package main

import (
	"github.com/dmitrymomot/mailpreview/pkg/email"
	"github.com/dmitrymomot/mailpreview/pkg/file"
	"github.com/dmitrymomot/mailpreview/pkg/httpserver"
	"github.com/dmitrymomot/mailpreview/pkg/ratelimiter"
	"github.com/dmitrymomot/mailpreview/pkg/redis"
)

const (
	storageLocal = "local"
	storageS3    = "s3"
)

type appConfig struct {
	Env          string `env:"APP_ENV" envDefault:"development"`
	TemplatesDir string `env:"TEMPLATES_DIR" envDefault:"./emails"`
	Storage      string `env:"TEMPLATES_STORAGE" envDefault:"local"`
	ServerURL    string `env:"MAILPREVIEW_SERVER"`
	MaxSessions  int    `env:"MAX_SESSIONS" envDefault:"256"`
	EventBuffer  int    `env:"EVENT_BUFFER" envDefault:"16"`

	HTTP      httpserver.Config
	Email     email.Config
	RateLimit ratelimiter.Config
	Redis     redis.Config
	S3        file.S3Config
}
