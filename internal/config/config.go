// Package config loads server settings from the environment, after merging
// an optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Session store backends.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

type Config struct {
	Port            string        `env:"PORT"                       envDefault:"8080"`
	DBPath          string        `env:"DB_PATH"                    envDefault:"concierge.db"`
	SessionStore    string        `env:"CONCIERGE_SESSION_STORE"    envDefault:"sqlite"`
	ResendAPIKey    string        `env:"RESEND_API_KEY"`
	From            string        `env:"CONCIERGE_FROM"             envDefault:"Concierge <onboarding@resend.dev>"`
	AdminEmail      string        `env:"CONCIERGE_ADMIN_EMAIL"      envDefault:"sfhappyhourhelp@gmail.com"`
	SendTimeout     time.Duration `env:"CONCIERGE_SEND_TIMEOUT"     envDefault:"10s"`
	TransitionDelay time.Duration `env:"CONCIERGE_TRANSITION_DELAY" envDefault:"500ms"`
	AttachPDF       bool          `env:"CONCIERGE_ATTACH_PDF"       envDefault:"true"`
	SubmitURL       string        `env:"CONCIERGE_SUBMIT_URL"` // forward survey submissions to another server's /api/submit
}

// Load reads .env (a missing file is only logged) and parses Config.
// The Resend key is not checked here; a bad or missing key surfaces as a
// send failure.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("error loading .env file", "err", err)
	}
	return Parse()
}

// Parse reads Config from the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.SessionStore {
	case StoreSQLite, StoreMemory:
	default:
		return Config{}, fmt.Errorf("CONCIERGE_SESSION_STORE must be %q or %q, got %q", StoreSQLite, StoreMemory, cfg.SessionStore)
	}
	return cfg, nil
}
