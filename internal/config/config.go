package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

type Config struct {
	APIBaseURL     string
	ListenAddr     string
	LogLevel       string
	RequestTimeout time.Duration

	SessionBackend string
	SessionDSN     string
	RedisURL       string

	KafkaBrokers []string
	KafkaTopic   string
}

type MockAPIConfig struct {
	ListenAddr  string
	DatabaseURL string
	SQLitePath  string
	JWTSecret   []byte
	LogLevel    string
	Seed        bool
}

func loadDotEnv() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}
}

// Load reads the storefront configuration from .env and the process environment.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		APIBaseURL:     strings.TrimRight(os.Getenv("API_BASE_URL"), "/"),
		ListenAddr:     EnvDefault("LISTEN_ADDR", "127.0.0.1:3000"),
		LogLevel:       EnvDefault("LOG_LEVEL", "info"),
		RequestTimeout: EnvDurationDefault("REQUEST_TIMEOUT", 10*time.Second),
		SessionBackend: strings.ToLower(EnvDefault("SESSION_BACKEND", BackendSQLite)),
		SessionDSN:     EnvDefault("SESSION_DSN", "storefront.db"),
		RedisURL:       os.Getenv("REDIS_URL"),
		KafkaBrokers:   CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:     EnvDefault("KAFKA_TOPIC", "storefront_events"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("missing required env %s", "API_BASE_URL")
	}
	switch c.SessionBackend {
	case BackendSQLite, BackendPostgres, BackendMemory:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("missing required env %s for session backend %q", "REDIS_URL", c.SessionBackend)
		}
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend)
	}
	return nil
}

func LoadMockAPI() *MockAPIConfig {
	loadDotEnv()

	return &MockAPIConfig{
		ListenAddr:  EnvDefault("MOCKAPI_ADDR", ":8000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  EnvDefault("MOCKAPI_DB", "mockapi.db"),
		JWTSecret:   []byte(EnvDefault("JWT_SECRET", "dev-secret")),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),
		Seed:        EnvDefault("MOCKAPI_SEED", "true") == "true",
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
