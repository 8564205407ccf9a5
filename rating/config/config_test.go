package config_test

import (
	"testing"
	"time"

	"github.com/Astemirdum/driver-rating/rating/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	require.Zero(t, cfg.Server.APIRateLimit)
	require.Equal(t, zapcore.InfoLevel, cfg.Log.LogLevel)
	require.Empty(t, cfg.Database.URL)
	require.False(t, cfg.Kafka.Enabled())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("RATING_HTTP_PORT", "9090")
	t.Setenv("HTTP_WRITE", "1m")
	t.Setenv("DATABASE_URL", "postgres://localhost/ratings")
	t.Setenv("RATING_SEED_FIXTURES", "true")
	t.Setenv("KAFKA_ADDRS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RATING_API_RPS", "50")

	cfg, err := config.Load(config.WithWriteTimeout(time.Second))
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.Server.Port)
	require.Equal(t, time.Minute, cfg.Server.WriteTimeout)
	require.Equal(t, "postgres://localhost/ratings", cfg.Database.URL)
	require.True(t, cfg.Database.SeedFixtures)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Addrs)
	require.True(t, cfg.Kafka.Enabled())
	require.Equal(t, zapcore.DebugLevel, cfg.Log.LogLevel)
	require.Equal(t, 50.0, cfg.Server.APIRateLimit)
}

func TestLoad_Options(t *testing.T) {
	cfg, err := config.Load(
		config.WithLogLevel(zapcore.DebugLevel),
		config.WithDatabaseURL("memory://"),
	)
	require.NoError(t, err)
	require.Equal(t, zapcore.DebugLevel, cfg.Log.LogLevel)
	require.Equal(t, "memory://", cfg.Database.URL)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("HTTP_READ", "soon")
	_, err := config.Load()
	require.Error(t, err)
}
