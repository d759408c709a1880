package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds settings that may come from the environment. CLI flags win
// over these when given explicitly.
type Env struct {
	SavePath   string `env:"UPBALL_SAVE" envDefault:"~/.upball/progress.save"`
	DBPath     string `env:"UPBALL_DB" envDefault:"~/.upball/history.db"`
	LogPath    string `env:"UPBALL_LOG" envDefault:"~/.upball/upball.log"`
	LogLevel   string `env:"UPBALL_LOG_LEVEL" envDefault:"info"`
	Seed       int64  `env:"UPBALL_SEED" envDefault:"0"`
	SavesDir   string `env:"UPBALL_SAVES_DIR" envDefault:"~/.upball/saves"`
	ConfigPath string `env:"UPBALL_CONFIG"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv parses Env from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return e, err
	}
	return e, nil
}
