package db

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/catalog-search/internal/config"
)

func TestNewPgxPoolSkipsStatsWhenPingFails(t *testing.T) {
	calls := 0
	orig := recordStats
	recordStats = func(*pgxpool.Pool) error {
		calls++
		return nil
	}
	t.Cleanup(func() { recordStats = orig })

	cfg := config.Postgres{
		Host:           "127.0.0.1",
		Port:           1,
		User:           "postgres",
		DB:             "catalog",
		SSLMode:        "disable",
		MaxConns:       1,
		ConnectTimeout: time.Second,
	}

	for range 3 {
		pool, err := NewPgxPool(context.Background(), cfg)
		require.Error(t, err)
		assert.Nil(t, pool)
		assert.Contains(t, err.Error(), "ping database")
	}
	assert.Zero(t, calls)
}

func TestConnectionString(t *testing.T) {
	got := connectionString(config.Postgres{
		Host: "db", Port: 5432, User: "app", Password: "secret", DB: "catalog", SSLMode: "disable",
	})

	assert.Equal(t, "postgres://app:secret@db:5432/catalog?sslmode=disable", got)
}
