// Package config loads configuration structs from environment variables.
//
// Structs declare their variables with github.com/caarlos0/env tags. Load reads the .env
// file (via github.com/joho/godotenv) when present and then parses the environment:
//
//	type Config struct {
//	    TemplatesDir string `env:"TEMPLATES_DIR" envDefault:"./emails"`
//	    Redis        redis.Config
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// WithEnvFiles, WithPrefix and WithEnvironment adjust where values come from; the last one
// is mostly useful in tests.
package config
