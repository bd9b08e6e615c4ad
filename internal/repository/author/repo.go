// Package author stores authors in the author table.
package author

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kailas-cloud/crudex/internal/db"
	"github.com/kailas-cloud/crudex/internal/domain"
	"github.com/kailas-cloud/crudex/internal/domain/library"
	"github.com/kailas-cloud/crudex/internal/domain/page"
	"github.com/kailas-cloud/crudex/internal/domain/query"
	"github.com/kailas-cloud/crudex/internal/usecase/resource"
)

// Compile-time check: Repo implements the persistence contract.
var _ resource.Store[library.Author] = (*Repo)(nil)

// store is the consumer interface for the SQL pool (ISP).
type store interface {
	Exec(ctx context.Context, op, query string, args ...any) (sql.Result, error)
	Query(ctx context.Context, op, query string, args ...any) (*sql.Rows, error)
	QueryRow(ctx context.Context, op, query string, args []any, dest ...any) error
}

const columns = "id_author, name, locked"

// Repo implements resource.Store for authors.
type Repo struct {
	store store
}

// New creates an author repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Insert stores a new author and returns its id.
func (r *Repo) Insert(ctx context.Context, a library.Author) (int64, error) {
	var id int64
	err := r.store.QueryRow(ctx, db.OpInsert,
		`INSERT INTO author (name, locked) VALUES (?, ?) RETURNING id_author`,
		[]any{a.Name, a.Locked}, &id)
	if err != nil {
		return 0, fmt.Errorf("insert author: %w", err)
	}
	return id, nil
}

// FetchOne returns the author with the given id.
func (r *Repo) FetchOne(ctx context.Context, id int64) (library.Author, error) {
	var a library.Author
	err := r.store.QueryRow(ctx, db.OpSelect,
		`SELECT `+columns+` FROM author WHERE id_author = ?`,
		[]any{id}, &a.ID, &a.Name, &a.Locked)
	if errors.Is(err, sql.ErrNoRows) {
		return library.Author{}, fmt.Errorf("author %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return library.Author{}, fmt.Errorf("fetch author %d: %w", id, err)
	}
	return a, nil
}

// Update rewrites every column of an existing author.
func (r *Repo) Update(ctx context.Context, a library.Author) error {
	res, err := r.store.Exec(ctx, db.OpUpdate,
		`UPDATE author SET name = ?, locked = ? WHERE id_author = ?`,
		a.Name, a.Locked, a.ID)
	if err != nil {
		return fmt.Errorf("update author %d: %w", a.ID, err)
	}
	return requireAffected(res, a.ID)
}

// Delete removes an author.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	res, err := r.store.Exec(ctx, db.OpDelete, `DELETE FROM author WHERE id_author = ?`, id)
	if err != nil {
		return fmt.Errorf("delete author %d: %w", id, err)
	}
	return requireAffected(res, id)
}

// Count returns the number of authors.
func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.store.QueryRow(ctx, db.OpCount, `SELECT COUNT(*) FROM author`, nil, &n); err != nil {
		return 0, fmt.Errorf("count authors: %w", err)
	}
	return n, nil
}

// List returns one window of authors matching f, ordered by id unless f orders.
func (r *Repo) List(ctx context.Context, w page.Window, f query.Filter) ([]library.Author, error) {
	args := append(append([]any{}, f.Args()...), w.Limit(), w.Offset())
	rows, err := r.store.Query(ctx, db.OpList, listSQL(f), args...)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	var out []library.Author
	for rows.Next() {
		var a library.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Locked); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate authors: %w", err)
	}
	return out, nil
}

func listSQL(f query.Filter) string {
	q := `SELECT ` + columns + ` FROM author`
	if w := f.Where(); w != "" {
		q += " " + w
	}
	order := f.OrderBy()
	if order == "" {
		order = "ORDER BY id_author"
	}
	return q + " " + order + " LIMIT ? OFFSET ?"
}

func requireAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("author %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
