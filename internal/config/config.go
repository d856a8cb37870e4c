package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server settings.
type Config struct {
	Addr              string
	StaticDir         string
	DBDriver          string
	DBDSN             string
	HandEndDelay      time.Duration // pause before the next dealer is chosen
	MatchRestartDelay time.Duration // pause before a finished match resets
	AutoDealer        bool          // pick the next dealer automatically instead of asking
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Addr:              ":8080",
		StaticDir:         "web/static",
		DBDriver:          "sqlite3",
		DBDSN:             "./hukum.db",
		HandEndDelay:      2 * time.Second,
		MatchRestartDelay: 10 * time.Second,
		AutoDealer:        true,
	}
}

// Load reads the given .env files (default ".env") and then the HUKUM_*
// environment variables. Variables already set in the environment win over
// the files. A missing .env file is not an error.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load env file: %w", err)
		}
		log.Println("No .env file found, reading environment variables directly")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	if v := getenv("HUKUM_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := getenv("HUKUM_STATIC_DIR"); v != "" {
		cfg.StaticDir = v
	}
	if v := getenv("HUKUM_DB_DRIVER"); v != "" {
		if v != "sqlite3" && v != "pgx" {
			return Config{}, fmt.Errorf("HUKUM_DB_DRIVER: unsupported driver %q", v)
		}
		cfg.DBDriver = v
	}
	if v := getenv("HUKUM_DB_DSN"); v != "" {
		cfg.DBDSN = v
	}

	var err error
	if cfg.HandEndDelay, err = duration(getenv, "HUKUM_HAND_END_DELAY", cfg.HandEndDelay); err != nil {
		return Config{}, err
	}
	if cfg.MatchRestartDelay, err = duration(getenv, "HUKUM_MATCH_RESTART_DELAY", cfg.MatchRestartDelay); err != nil {
		return Config{}, err
	}
	if v := getenv("HUKUM_AUTO_DEALER"); v != "" {
		if cfg.AutoDealer, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("HUKUM_AUTO_DEALER: %w", err)
		}
	}
	return cfg, nil
}

func duration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: negative duration %s", key, d)
	}
	return d, nil
}
