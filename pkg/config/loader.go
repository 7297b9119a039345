package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option configures a Load call.
type Option func(*loadOptions)

type loadOptions struct {
	envFiles []string
	prefix   string
	env      map[string]string
}

// WithEnvFiles loads the given dotenv files before parsing. Missing files are skipped.
// Variables already present in the environment win over file values.
func WithEnvFiles(files ...string) Option {
	return func(o *loadOptions) {
		o.envFiles = append(o.envFiles, files...)
	}
}

// WithPrefix prepends prefix to every env tag of the struct.
func WithPrefix(prefix string) Option {
	return func(o *loadOptions) {
		o.prefix = prefix
	}
}

// WithEnvironment parses from the given map instead of the process environment.
func WithEnvironment(vars map[string]string) Option {
	return func(o *loadOptions) {
		o.env = vars
	}
}

// Load parses environment variables into v based on its `env` struct tags.
// By default the .env file in the working directory is loaded first when it exists.
//
// Example:
//
//	type Config struct {
//		TemplatesDir string `env:"TEMPLATES_DIR" envDefault:"./emails"`
//		HTTP         httpserver.Config
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		// Handle error
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &loadOptions{envFiles: []string{".env"}}
	for _, opt := range opts {
		opt(o)
	}

	if o.env == nil {
		for _, f := range o.envFiles {
			// The file might not exist and that's ok
			_ = godotenv.Load(f)
		}
	}

	if err := env.ParseWithOptions(v, env.Options{
		Prefix:      o.prefix,
		Environment: o.env,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
