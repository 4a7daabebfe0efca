package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("BUS_TOPIC", "")
	t.Setenv("BUS_DRIVER", "")
	t.Setenv("GATEWAY_AUTH_ENABLED", "")
	t.Setenv("TOKEN_DURATION", "")
	t.Setenv("HTTP_CLIENT_TIMEOUT", "")
	t.Setenv("DB_MIGRATIONS_DIR", "")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "maintenance-events", cfg.Bus.Topic)
	assert.Equal(t, "nats", cfg.Bus.Driver)
	assert.Equal(t, "notification-service", cfg.Bus.Group)
	assert.False(t, cfg.Gateway.AuthEnabled)
	assert.Equal(t, time.Hour, cfg.Token.DurationValue())
	assert.Equal(t, 10*time.Second, cfg.HTTP.ClientTimeoutValue())
	assert.Equal(t, "./internal/adapter/postgres/migrations/vehicle", cfg.DB.MigrationsDir("vehicle"))
	assert.False(t, cfg.Mail.Enabled())
}

func TestNewOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("BUS_DRIVER", "mqtt")
	t.Setenv("BUS_TOPIC", "garage/events")
	t.Setenv("GATEWAY_AUTH_ENABLED", "true")
	t.Setenv("TOKEN_DURATION", "30m")
	t.Setenv("HTTP_CLIENT_TIMEOUT", "bogus")
	t.Setenv("SMTP_HOST", "smtp.local")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "garage")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "maintenance")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "mqtt", cfg.Bus.Driver)
	assert.Equal(t, "garage/events", cfg.Bus.Topic)
	assert.True(t, cfg.Gateway.AuthEnabled)
	assert.Equal(t, 30*time.Minute, cfg.Token.DurationValue())
	assert.Equal(t, 10*time.Second, cfg.HTTP.ClientTimeoutValue())
	assert.True(t, cfg.Mail.Enabled())
	assert.Equal(t, 2525, cfg.Mail.PortInt())
	assert.Equal(t, "host=db port=6543 user=garage password=secret dbname=maintenance sslmode=disable", cfg.DB.DSN())
}
