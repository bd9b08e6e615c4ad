package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/lib/pq"
	"github.com/ncruces/go-sqlite3"
)

// Op labels a statement kind for error context and metrics.
const (
	OpPing   = "PING"
	OpDDL    = "DDL"
	OpInsert = "INSERT"
	OpSelect = "SELECT"
	OpCount  = "COUNT"
	OpList   = "LIST"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
	OpJoin   = "JOIN"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// integrityClass is the SQLSTATE class for integrity constraint violations.
const integrityClass = "23"

// IsConstraintViolation reports whether err is a unique, foreign key, check or
// not-null violation raised by any supported driver.
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == integrityClass
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, integrityClass)
	}

	return errors.Is(err, sqlite3.CONSTRAINT)
}
