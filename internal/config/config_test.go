package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultDatabaseURL, cfg.Database.URL)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 300, cfg.Cache.ReferenceTTL)
	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, cfg.Primary.Env, cfg.Observability.Environment)
	assert.Equal(t, 5*time.Second, cfg.Observability.HealthChecks.Timeout)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("WORKOUT_DATABASE_URL", "postgres://atleta:secret@db:5432/treino")
	t.Setenv("WORKOUT_PRIMARY_ENV", "production")
	t.Setenv("WORKOUT_SERVER_READ_TIMEOUT", "12")
	t.Setenv("WORKOUT_SERVER_CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("WORKOUT_OBSERVABILITY__LOGGING__LEVEL", "warn")
	t.Setenv("WORKOUT_OBSERVABILITY__HEALTH_CHECKS__TIMEOUT", "2s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://atleta:secret@db:5432/treino", cfg.Database.URL)
	assert.Equal(t, 12, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "production", cfg.Observability.Environment)
	assert.True(t, cfg.Observability.IsProduction())
	assert.Equal(t, "warn", cfg.Observability.GetLogLevel())
	assert.Equal(t, 2*time.Second, cfg.Observability.HealthChecks.Timeout)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad log level", "WORKOUT_OBSERVABILITY__LOGGING__LEVEL", "verbose"},
		{"bad notification email", "WORKOUT_INTEGRATION_NOTIFICATION_EMAIL", "not-an-email"},
		{"zero pool size", "WORKOUT_DATABASE_MAX_CONNS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "database.url", envKey("WORKOUT_DATABASE_URL"))
	assert.Equal(t, "server.read_timeout", envKey("WORKOUT_SERVER_READ_TIMEOUT"))
	assert.Equal(t, "observability.new_relic.license_key", envKey("WORKOUT_OBSERVABILITY__NEW_RELIC__LICENSE_KEY"))
}

func TestHealthCheckEnabled(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.True(t, cfg.HealthCheckEnabled("database"))
	assert.False(t, cfg.HealthCheckEnabled("kafka"))

	cfg.HealthChecks.Enabled = false
	assert.False(t, cfg.HealthCheckEnabled("database"))
}
