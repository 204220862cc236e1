package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/catalog-search/internal/config"
)

type serverConfig struct {
	Log    config.Log
	HTTP   config.HTTP
	Search config.Search
	Store  config.Store
	Kafka  config.Kafka
	LLM    config.LLM
	Relay  config.Relay
}

func TestNewDefaults(t *testing.T) {
	cfg, err := config.New[serverConfig]()
	require.NoError(t, err)

	assert.Equal(t, config.LogFormatJSON, cfg.Log.Format)
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
	assert.Equal(t, uint32(8000), cfg.HTTP.Port)
	assert.Equal(t, 12, cfg.Search.BrowseLimit)
	assert.Equal(t, 32, cfg.Search.ChatLimit)
	assert.Equal(t, 100, cfg.Search.MaxLimit)
	assert.Equal(t, config.StoreDriverPostgres, cfg.Store.Driver)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "gemini-1.5-flash", cfg.LLM.Model)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, time.Second, cfg.Relay.Interval)
	assert.Equal(t, 1024, cfg.Relay.QueueSize)
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("SEARCH_CHAT_LIMIT", "16")
	t.Setenv("KAFKA_ADDRESSES", "k1:9092,k2:9092")

	cfg, err := config.New[serverConfig]()
	require.NoError(t, err)

	assert.Equal(t, config.LogFormatText, cfg.Log.Format)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.Equal(t, config.StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, 16, cfg.Search.ChatLimit)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Addresses)
	assert.True(t, cfg.Kafka.Enabled())
}

func TestNewRejectsUnknownEnum(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := config.New[serverConfig]()
	assert.Error(t, err)
}
