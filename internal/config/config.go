package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Prediction deadline used when LOCK_DEADLINE is unset
var DefaultDeadline = time.Date(2025, 12, 26, 12, 0, 0, 0, time.UTC)

type OAuthProvider struct {
	Key         string
	Secret      string
	CallbackURL string `validate:"required_with=Key,omitempty,url"`
}

type Config struct {
	Port           string `validate:"required,numeric"`
	DatabasePath   string `validate:"required"`
	MigrationsPath string `validate:"required"`
	FixturesPath   string
	LockPolicy     string `validate:"required,oneof=kickoff deadline"`
	LockDeadline   time.Time
	SessionLife    time.Duration `validate:"gt=0"`
	AdminUsernames []string      `validate:"dive,required"`
	Discord        OAuthProvider
	Google         OAuthProvider
}

// Load reads the environment, after loading .env if there is one
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DatabasePath:   getEnv("DATABASE_PATH", "afcon_predictor.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		FixturesPath:   os.Getenv("FIXTURES_PATH"),
		LockPolicy:     getEnv("LOCK_POLICY", "deadline"),
		LockDeadline:   DefaultDeadline,
		SessionLife:    24 * time.Hour,
		Discord: OAuthProvider{
			Key:         os.Getenv("DISCORD_KEY"),
			Secret:      os.Getenv("DISCORD_SECRET"),
			CallbackURL: os.Getenv("DISCORD_CALLBACK_URL"),
		},
		Google: OAuthProvider{
			Key:         os.Getenv("GOOGLE_KEY"),
			Secret:      os.Getenv("GOOGLE_SECRET"),
			CallbackURL: os.Getenv("GOOGLE_CALLBACK_URL"),
		},
	}

	if raw := os.Getenv("LOCK_DEADLINE"); raw != "" {
		deadline, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid LOCK_DEADLINE: %w", err)
		}
		cfg.LockDeadline = deadline.UTC()
	}

	if raw := os.Getenv("SESSION_LIFETIME"); raw != "" {
		life, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_LIFETIME: %w", err)
		}
		cfg.SessionLife = life
	}

	for _, name := range strings.Split(os.Getenv("ADMIN_USERNAMES"), ",") {
		if name = strings.TrimSpace(name); name != "" {
			cfg.AdminUsernames = append(cfg.AdminUsernames, name)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
