package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("RABBITMQ_HOST", "mq.internal")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.ServerPort)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "testuser", cfg.DBUser)
	assert.Equal(t, "testpass", cfg.DBPassword)
	assert.Equal(t, "testdb", cfg.DBName)
	assert.Equal(t, "cache.internal", cfg.RedisHost)
	assert.Equal(t, "6380", cfg.RedisPort)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "mq.internal", cfg.RabbitMQHost)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PAGE_LIMIT_DEFAULT", "")
	t.Setenv("PAGE_LIMIT_MAX", "")
	t.Setenv("STATS_CACHE_TTL", "")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.DefaultPageLimit)
	assert.Equal(t, 100, cfg.MaxPageLimit)
	assert.Equal(t, 30*time.Second, cfg.StatsCacheTTL)
	assert.Equal(t, 100, cfg.RateLimitPerMinute)
}

func TestLoadConfig_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("PAGE_LIMIT_DEFAULT", "ten")
	t.Setenv("PAGE_LIMIT_MAX", "-4")
	t.Setenv("STATS_CACHE_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.DefaultPageLimit)
	assert.Equal(t, 100, cfg.MaxPageLimit)
	assert.Equal(t, 30*time.Second, cfg.StatsCacheTTL)
}

func TestLoadConfig_MaxLimitNeverBelowDefault(t *testing.T) {
	t.Setenv("PAGE_LIMIT_DEFAULT", "50")
	t.Setenv("PAGE_LIMIT_MAX", "20")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.DefaultPageLimit)
	assert.Equal(t, 50, cfg.MaxPageLimit)
}
