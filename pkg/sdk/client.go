package crudex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/crudex/internal/app"
	"github.com/kailas-cloud/crudex/internal/db"
	"github.com/kailas-cloud/crudex/internal/domain/page"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the crudex SDK entry point.
type Client struct {
	db  *db.DB
	svc *app.Services
	obs *observer
}

// New opens the database, waits for it, creates missing tables and wires
// the resource services. The provided context bounds the startup checks.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("crudex: database required (use WithSQLite, WithPostgres or WithDriver)")
	}

	d, err := db.Open(db.Config{
		Driver:       cfg.driver,
		DSN:          cfg.dsn,
		MaxOpenConns: cfg.maxOpenConns,
	})
	if err != nil {
		return nil, fmt.Errorf("crudex: %w", err)
	}

	if err := d.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("crudex: database not ready: %w", err)
	}

	if !cfg.skipSchema {
		if err := app.EnsureSchema(ctx, d); err != nil {
			_ = d.Close()
			return nil, fmt.Errorf("crudex: %w", err)
		}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		_ = d.Close()
		return nil, err
	}

	limits := page.Limits{Default: cfg.defaultLimit, Max: cfg.maxLimit}
	return &Client{db: d, svc: app.NewServices(d, limits), obs: obs}, nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	if c.db == nil {
		return nil
	}
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("crudex: close: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.db.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Authors returns the author operations.
func (c *Client) Authors() *Resources[Author] {
	return &Resources[Author]{svc: c.svc.Authors, obs: c.obs}
}

// Books returns the book operations scoped to one author.
func (c *Client) Books(authorID int64) *Children[Book, Author] {
	return &Children[Book, Author]{svc: c.svc.AuthorBooks, parentID: authorID, obs: c.obs}
}
