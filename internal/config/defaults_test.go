package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults_Nil(t *testing.T) {
	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}

func TestApplyDefaults_FillsZeroValues(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Database.PoolSize)
	require.NotNil(t, cfg.Database.MaxOverflow)
	assert.Equal(t, 10, *cfg.Database.MaxOverflow)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Retry.InitialDelay)
	assert.Equal(t, 2.0, cfg.Retry.Multiplier)
	assert.Equal(t, 150, cfg.Network.LevelSeparation)
	assert.Equal(t, 150, cfg.Network.NodeSpacing)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "drugdash.network.exported", cfg.Kafka.Topic)
	assert.False(t, cfg.Kafka.Enabled)

	// Required connection parameters are never defaulted.
	assert.Empty(t, cfg.Database.User)
	assert.Empty(t, cfg.Database.Host)
	assert.Zero(t, cfg.Database.Port)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Cache:    CacheConfig{Backend: "redis", TTL: time.Minute},
		Database: DatabaseConfig{PoolSize: 2},
	}
	ApplyDefaults(cfg)

	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 2, cfg.Database.PoolSize)
}

func TestApplyDefaults_KeepsZeroOverflow(t *testing.T) {
	zero := 0
	cfg := &Config{Database: DatabaseConfig{MaxOverflow: &zero}}
	ApplyDefaults(cfg)

	require.NotNil(t, cfg.Database.MaxOverflow)
	assert.Equal(t, 0, *cfg.Database.MaxOverflow)
}

//Personal.AI order the ending
