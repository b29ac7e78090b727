package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("VH_MYSQL_DSN", "user:pass@tcp(127.0.0.1:3306)/venturehub?parseTime=True")
	t.Setenv("VH_JWT_ACCESS_SECRET", "a")
	t.Setenv("VH_JWT_REFRESH_SECRET", "r")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "0.0.0.0:8080", cfg.ServerAddr())
	assert.Equal(t, 3*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 3, cfg.CounterRetry)
	assert.Equal(t, "@every 5m", cfg.ReconcileSpec)
	assert.False(t, cfg.KafkaAsync)
	assert.Equal(t, 100*time.Millisecond, cfg.KafkaBatchTimeout)
	assert.False(t, cfg.SMTPEnabled())
}

func TestLoadMissingDSN(t *testing.T) {
	t.Setenv("VH_JWT_ACCESS_SECRET", "a")
	t.Setenv("VH_JWT_REFRESH_SECRET", "r")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("VH_ENV", "production")
	t.Setenv("VH_SERVER_PORT", "9090")
	t.Setenv("VH_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("VH_SMTP_HOST", "smtp.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "0.0.0.0:9090", cfg.ServerAddr())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.SMTPEnabled())
}
