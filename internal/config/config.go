package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ModeConsole  = "console"
	ModeSpectate = "spectate"

	stageProd = "prod"
	stageDev  = "dev"
)

type Config struct {
	Stage         string
	Mode          string
	Port          string
	DatabaseUrl   string
	Seed          int64
	PlayerOne     string
	PlayerTwo     string
	PlayerOneName string
	PlayerTwoName string
	TurnDelay     time.Duration
}

// LoadEnvFile reads .env outside of production. A missing file is fine.
func LoadEnvFile(path string) error {
	if os.Getenv("STAGE") == stageProd {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Stage:         getenv("STAGE", stageDev),
		Mode:          strings.ToLower(getenv("MODE", ModeConsole)),
		Port:          getenv("PORT", "8000"),
		DatabaseUrl:   os.Getenv("DATABASE_URL"),
		PlayerOne:     strings.ToLower(getenv("PLAYER_ONE", "manual")),
		PlayerTwo:     strings.ToLower(getenv("PLAYER_TWO", "hunt")),
		PlayerOneName: os.Getenv("PLAYER_ONE_NAME"),
		PlayerTwoName: os.Getenv("PLAYER_TWO_NAME"),
	}

	if cfg.Stage != stageDev && cfg.Stage != stageProd {
		return Config{}, fmt.Errorf("stage must be either dev or prod, got: %s", cfg.Stage)
	}
	if cfg.Mode != ModeConsole && cfg.Mode != ModeSpectate {
		return Config{}, fmt.Errorf("mode must be either console or spectate, got: %s", cfg.Mode)
	}

	if seed := os.Getenv("SEED"); seed != "" {
		v, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SEED: %w", err)
		}
		cfg.Seed = v
	}

	if delay := os.Getenv("TURN_DELAY"); delay != "" {
		v, err := time.ParseDuration(delay)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TURN_DELAY: %w", err)
		}
		cfg.TurnDelay = v
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
