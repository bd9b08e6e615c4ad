// Package db is the SQL connection pool facade shared by all repositories.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	// Registers the "pgx" database/sql driver.
	_ "github.com/jackc/pgx/v4/stdlib"
	// Registers the "postgres" database/sql driver.
	_ "github.com/lib/pq"
	// Registers the "sqlite3" database/sql driver with the embedded SQLite build.
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/kailas-cloud/crudex/internal/metrics"
)

// Driver names accepted in configuration.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

var sqlDrivers = map[string]string{
	DriverSQLite:   "sqlite3",
	DriverPostgres: "postgres",
	DriverPgx:      "pgx",
}

// SupportedDriver reports whether name is a known driver.
func SupportedDriver(name string) bool {
	_, ok := sqlDrivers[name]
	return ok
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config holds pool parameters.
type Config struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DB wraps *sql.DB with placeholder rebinding, error tagging and query metrics.
// Statements are written with '?' placeholders regardless of driver.
type DB struct {
	pool   *sql.DB
	driver string
}

// Open creates the pool. It does not wait for the server; see WaitForReady.
func Open(cfg Config) (*DB, error) {
	name, ok := sqlDrivers[cfg.Driver]
	if !ok {
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn is required")
	}

	pool, err := sql.Open(name, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	if cfg.MaxOpenConns > 0 {
		pool.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		pool.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return &DB{pool: pool, driver: cfg.Driver}, nil
}

// Driver returns the configured driver name.
func (d *DB) Driver() string { return d.driver }

// Ping checks connectivity.
func (d *DB) Ping(ctx context.Context) error {
	if err := d.pool.PingContext(ctx); err != nil {
		return &Error{Op: OpPing, Err: err}
	}
	return nil
}

// Close releases the pool.
func (d *DB) Close() error {
	return d.pool.Close() //nolint:wrapcheck // nothing to add
}

// WaitForReady polls Ping until the database responds or timeout expires.
func (d *DB) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := d.Ping(ctx); err == nil {
		return nil
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := d.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Exec runs a statement that returns no rows.
func (d *DB) Exec(ctx context.Context, op, query string, args ...any) (sql.Result, error) {
	defer metrics.ObserveQuery(op, time.Now())

	res, err := d.pool.ExecContext(ctx, d.Rebind(query), args...)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	return res, nil
}

// Query runs a statement that returns rows. The caller closes the rows.
func (d *DB) Query(ctx context.Context, op, query string, args ...any) (*sql.Rows, error) {
	defer metrics.ObserveQuery(op, time.Now())

	rows, err := d.pool.QueryContext(ctx, d.Rebind(query), args...)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	return rows, nil
}

// QueryRow runs a single-row statement and scans it into dest.
// A missing row is reported as an *Error wrapping sql.ErrNoRows.
func (d *DB) QueryRow(ctx context.Context, op, query string, args []any, dest ...any) error {
	defer metrics.ObserveQuery(op, time.Now())

	if err := d.pool.QueryRowContext(ctx, d.Rebind(query), args...).Scan(dest...); err != nil {
		return &Error{Op: op, Err: err}
	}
	return nil
}

// EnsureSchema executes DDL statements in order.
func (d *DB) EnsureSchema(ctx context.Context, stmts ...string) error {
	for _, stmt := range stmts {
		if _, err := d.Exec(ctx, OpDDL, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Rebind rewrites '?' placeholders to the driver's native form.
func (d *DB) Rebind(query string) string {
	if d.driver == DriverSQLite {
		return query
	}
	return rebindDollar(query)
}

// rebindDollar turns '?' into $1, $2, ... outside single-quoted literals.
func rebindDollar(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	quoted := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			quoted = !quoted
			b.WriteByte(c)
		case c == '?' && !quoted:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
