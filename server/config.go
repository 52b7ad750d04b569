package server

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is read from the environment.
type Config struct {
	Addr string `env:"DERELICT_ADDR" envDefault:":8080"`
}

func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse server config: %w", err)
	}
	return cfg, nil
}
