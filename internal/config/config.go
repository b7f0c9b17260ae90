package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverFile     = "file"
	StoreDriverPostgres = "postgres"

	defaultDatabaseDSN = "host=localhost user=postgres password=postgres dbname=restoran_pos port=5432 sslmode=disable"
	defaultCORSOrigins = "http://localhost:3000"
)

type Config struct {
	HTTPPort    string
	StoreDriver string // file | postgres
	DataFile    string // JSON document path for the file driver
	DatabaseDSN string
	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins string

	LogLevel  string
	LogFormat string // json | console

	NATSURL          string // empty disables order events
	NATSOrderSubject string

	LoginAttemptsPerMinute int

	// Warnings lists insecure defaults that are allowed but worth logging.
	Warnings []string
}

// Load reads the environment (and .env when present). It only fails on
// settings the server cannot run without.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		StoreDriver:            getEnv("STORE_DRIVER", StoreDriverFile),
		DataFile:               getEnv("DATA_FILE", "db.json"),
		DatabaseDSN:            getEnv("DATABASE_DSN", defaultDatabaseDSN),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		TokenTTL:               getDuration("TOKEN_TTL", 24*time.Hour),
		CORSOrigins:            getEnv("CORS_ALLOWED_ORIGINS", defaultCORSOrigins),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogFormat:              getEnv("LOG_FORMAT", "json"),
		NATSURL:                getEnv("NATS_URL", ""),
		NATSOrderSubject:       getEnv("NATS_ORDER_SUBJECT", "pos.orders.completed"),
		LoginAttemptsPerMinute: getInt("LOGIN_ATTEMPTS_PER_MINUTE", 5),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, errors.New("JWT_SECRET must be at least 32 characters")
	}
	switch cfg.StoreDriver {
	case StoreDriverFile, StoreDriverPostgres:
	default:
		return nil, errors.New("STORE_DRIVER must be \"file\" or \"postgres\"")
	}
	if cfg.LoginAttemptsPerMinute <= 0 {
		return nil, errors.New("LOGIN_ATTEMPTS_PER_MINUTE must be positive")
	}

	if cfg.StoreDriver == StoreDriverPostgres && cfg.DatabaseDSN == defaultDatabaseDSN {
		cfg.Warnings = append(cfg.Warnings, "DATABASE_DSN uses the default value, set your own Postgres connection for production")
	}
	if cfg.CORSOrigins == defaultCORSOrigins {
		cfg.Warnings = append(cfg.Warnings, "CORS_ALLOWED_ORIGINS uses the default value, set your own domain for production")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
