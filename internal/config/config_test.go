package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:8000/")
	t.Setenv("SESSION_BACKEND", "")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, "127.0.0.1:3000", cfg.ListenAddr)
	assert.Equal(t, BackendSQLite, cfg.SessionBackend)
	assert.Equal(t, "storefront.db", cfg.SessionDSN)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "storefront_events", cfg.KafkaTopic)
	assert.Nil(t, cfg.KafkaBrokers)
}

func TestLoad_MissingBaseURL(t *testing.T) {
	t.Setenv("API_BASE_URL", "")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "API_BASE_URL")
}

func TestValidate_SessionBackends(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		redis   string
		wantErr bool
	}{
		{name: "sqlite", backend: BackendSQLite},
		{name: "postgres", backend: BackendPostgres},
		{name: "memory", backend: BackendMemory},
		{name: "redis with url", backend: BackendRedis, redis: "redis://localhost:6379/0"},
		{name: "redis without url", backend: BackendRedis, wantErr: true},
		{name: "unknown", backend: "bolt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{APIBaseURL: "http://api", SessionBackend: tt.backend, RedisURL: tt.redis}
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("SF_INT", "42")
	t.Setenv("SF_BAD_INT", "x")
	t.Setenv("SF_DUR", "250ms")
	t.Setenv("SF_BAD_DUR", "-1s")

	assert.Equal(t, 42, EnvIntDefault("SF_INT", 1))
	assert.Equal(t, 1, EnvIntDefault("SF_BAD_INT", 1))
	assert.Equal(t, 250*time.Millisecond, EnvDurationDefault("SF_DUR", time.Second))
	assert.Equal(t, time.Second, EnvDurationDefault("SF_BAD_DUR", time.Second))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092"))
}
