package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// PresencePolicy controls what happens when a join/leave request fails.
// The legacy client assumed success unconditionally; "toast" surfaces
// the failure to the user instead.
type PresencePolicy string

const (
	PresenceSilent PresencePolicy = "silent"
	PresenceToast  PresencePolicy = "toast"
)

// Config holds all runtime configuration for the dashboard service
type Config struct {
	APIBase      string        // base URL of the upstream club API
	PollInterval time.Duration // ambient snapshot poll cadence
	Port         string
	LogLevel     string
	Environment  string // "" / "development" / "production"

	// Local store
	DBDriver    string // memory, sqlite, postgres
	SQLiteFile  string
	DatabaseURL string

	// Chat
	ChatHistoryLimit int
	PresenceFailure  PresencePolicy

	// NATS
	NATSURL     string
	NATSSubject string

	// ClickHouse (optional, production only)
	ClickHouseAddr     string
	ClickHouseDB       string
	ClickHouseUser     string
	ClickHousePassword string
}

// Load reads configuration from the environment, with .env support for
// local development
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIBase:            getEnv("API_BASE", "http://localhost:5000/api"),
		Port:               getEnv("PORT", "3000"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Environment:        os.Getenv("ENVIRONMENT"),
		DBDriver:           getEnv("DB_DRIVER", "memory"),
		SQLiteFile:         getEnv("SQLITE_FILE", "dev.sqlite"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		NATSURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		NATSSubject:        getEnv("NATS_SUBJECT", "play.events"),
		ClickHouseAddr:     os.Getenv("CLICKHOUSE_ADDR"),
		ClickHouseDB:       getEnv("CLICKHOUSE_DB", "default"),
		ClickHouseUser:     getEnv("CLICKHOUSE_USER", "default"),
		ClickHousePassword: os.Getenv("CLICKHOUSE_PASSWORD"),
	}

	interval, err := parsePollInterval(os.Getenv("POLL_INTERVAL"))
	if err != nil {
		return nil, err
	}
	cfg.PollInterval = interval

	limit := getEnv("CHAT_HISTORY_LIMIT", "200")
	cfg.ChatHistoryLimit, err = strconv.Atoi(limit)
	if err != nil || cfg.ChatHistoryLimit < 1 {
		return nil, fmt.Errorf("invalid CHAT_HISTORY_LIMIT: %q", limit)
	}

	switch policy := PresencePolicy(getEnv("PRESENCE_FAILURE_POLICY", string(PresenceSilent))); policy {
	case PresenceSilent, PresenceToast:
		cfg.PresenceFailure = policy
	default:
		return nil, fmt.Errorf("invalid PRESENCE_FAILURE_POLICY: %q (valid: silent, toast)", policy)
	}

	return cfg, nil
}

// parsePollInterval accepts a Go duration ("3s") or a bare millisecond
// count, matching the refresh-rate constant of the legacy client
func parsePollInterval(v string) (time.Duration, error) {
	if v == "" {
		return 3 * time.Second, nil
	}
	if d, err := time.ParseDuration(v); err == nil {
		if d <= 0 {
			return 0, fmt.Errorf("POLL_INTERVAL must be positive, got %q", v)
		}
		return d, nil
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return 0, fmt.Errorf("invalid POLL_INTERVAL: %q", v)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
