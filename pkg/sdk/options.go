package crudex

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/crudex/internal/db"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver       string
	dsn          string
	maxOpenConns int

	defaultLimit int64
	maxLimit     int64
	skipSchema   bool

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithSQLite stores data in the SQLite file at path. Foreign keys are enforced.
func WithSQLite(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = db.DriverSQLite
		c.dsn = "file:" + path + "?_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)"
		c.maxOpenConns = 1
	})
}

// WithPostgres connects to PostgreSQL through the pgx driver.
func WithPostgres(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = db.DriverPgx
		c.dsn = dsn
	})
}

// WithDriver selects any supported driver ("sqlite", "postgres", "pgx") with a raw DSN.
func WithDriver(driver, dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driver
		c.dsn = dsn
	})
}

// WithMaxOpenConns caps the connection pool.
func WithMaxOpenConns(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxOpenConns = n
	})
}

// WithPageLimits sets the default and maximum list page sizes.
// Defaults: 50 and 250.
func WithPageLimits(defaultLimit, maxLimit int64) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultLimit = defaultLimit
		c.maxLimit = maxLimit
	})
}

// WithoutSchema skips table creation on connect.
func WithoutSchema() Option {
	return optionFunc(func(c *clientConfig) {
		c.skipSchema = true
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
