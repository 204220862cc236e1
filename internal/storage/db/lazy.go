package db

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/singleflight"

	"github.com/tuanvumaihuynh/catalog-search/internal/config"
)

// ErrClosed is returned by a LazyClient after Close.
var ErrClosed = errors.New("db client closed")

var (
	_ DB            = (*LazyClient)(nil)
	_ HealthChecker = (*LazyClient)(nil)
)

type connectFunc func(ctx context.Context) (*pgxpool.Pool, error)

// LazyClient is a process wide DB handle whose pool is created on first use.
// Concurrent first callers share a single connect attempt. A failed attempt
// leaves the slot empty so the next call tries again.
type LazyClient struct {
	connect connectFunc
	group   singleflight.Group

	mu     sync.RWMutex
	client *Client
	closed bool
}

// NewLazyClient creates a LazyClient connecting with cfg.
func NewLazyClient(cfg config.Postgres) *LazyClient {
	return newLazyClient(func(ctx context.Context) (*pgxpool.Pool, error) {
		return NewPgxPool(ctx, cfg)
	})
}

func newLazyClient(connect connectFunc) *LazyClient {
	return &LazyClient{connect: connect}
}

func (c *LazyClient) current() (*Client, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, ErrClosed
	}
	return c.client, nil
}

// Client returns the shared client, connecting if needed.
func (c *LazyClient) Client(ctx context.Context) (*Client, error) {
	if cl, err := c.current(); err != nil || cl != nil {
		return cl, err
	}

	resultChan := c.group.DoChan("connect", func() (any, error) {
		if cl, err := c.current(); err != nil || cl != nil {
			return cl, err
		}

		// The attempt is shared, so it must outlive the caller that started it.
		pool, err := c.connect(context.WithoutCancel(ctx))
		if err != nil {
			return nil, fmt.Errorf("connect: %w", err)
		}

		c.mu.Lock()
		defer c.mu.Unlock()

		if c.closed {
			pool.Close()
			return nil, ErrClosed
		}
		c.client = NewClient(pool)

		return c.client, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Client), nil
	}
}

// Close releases the pool. Later calls fail with ErrClosed.
func (c *LazyClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true

	if c.client != nil {
		c.client.Close()
		c.client = nil
	}
}

func (c *LazyClient) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	cl, err := c.Client(ctx)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return cl.Exec(ctx, sql, args...)
}

func (c *LazyClient) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	cl, err := c.Client(ctx)
	if err != nil {
		return nil, err
	}
	return cl.Query(ctx, sql, args...)
}

func (c *LazyClient) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	cl, err := c.Client(ctx)
	if err != nil {
		return errRow{err: err}
	}
	return cl.QueryRow(ctx, sql, args...)
}

func (c *LazyClient) CopyFrom(ctx context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error) {
	cl, err := c.Client(ctx)
	if err != nil {
		return 0, err
	}
	return cl.CopyFrom(ctx, table, columns, src)
}

func (c *LazyClient) WithTx(ctx context.Context, txFunc func(DB) error) error {
	cl, err := c.Client(ctx)
	if err != nil {
		return err
	}
	return cl.WithTx(ctx, txFunc)
}

func (c *LazyClient) WithReadOnlyTx(ctx context.Context, txFunc func(DB) error) error {
	cl, err := c.Client(ctx)
	if err != nil {
		return err
	}
	return cl.WithReadOnlyTx(ctx, txFunc)
}

func (c *LazyClient) IsHealthy(ctx context.Context) (bool, error) {
	cl, err := c.Client(ctx)
	if err != nil {
		return false, err
	}
	return cl.IsHealthy(ctx)
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}
