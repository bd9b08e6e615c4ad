// Package book stores books in the book table. Every book belongs to an author.
package book

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

// Compile-time checks: Repo stores books and resolves their owner.
var (
	_ resource.Store[library.Book]         = (*Repo)(nil)
	_ resource.ParentStore[library.Author] = (*Repo)(nil)
)

// store is the consumer interface for the SQL pool (ISP).
type store interface {
	Exec(ctx context.Context, op, query string, args ...any) (sql.Result, error)
	Query(ctx context.Context, op, query string, args ...any) (*sql.Rows, error)
	QueryRow(ctx context.Context, op, query string, args []any, dest ...any) error
}

const columns = "id_book, title, pages, price, id_author"

// Repo implements resource.Store for books and resource.ParentStore for their authors.
type Repo struct {
	store store
}

// New creates a book repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Insert stores a new book and returns its id.
func (r *Repo) Insert(ctx context.Context, b library.Book) (int64, error) {
	var id int64
	err := r.store.QueryRow(ctx, db.OpInsert,
		`INSERT INTO book (title, pages, price, id_author) VALUES (?, ?, ?, ?) RETURNING id_book`,
		[]any{b.Title, b.Pages, b.Price, b.AuthorID}, &id)
	if err != nil {
		return 0, fmt.Errorf("insert book: %w", err)
	}
	return id, nil
}

// FetchOne returns the book with the given id.
func (r *Repo) FetchOne(ctx context.Context, id int64) (library.Book, error) {
	var b library.Book
	err := r.store.QueryRow(ctx, db.OpSelect,
		`SELECT `+columns+` FROM book WHERE id_book = ?`,
		[]any{id}, scanTargets(&b)...)
	if errors.Is(err, sql.ErrNoRows) {
		return library.Book{}, fmt.Errorf("book %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return library.Book{}, fmt.Errorf("fetch book %d: %w", id, err)
	}
	return b, nil
}

// FetchParent returns the author owning book childID, provided it is parentID.
// Ownership is confirmed by a single join.
func (r *Repo) FetchParent(ctx context.Context, parentID, childID int64) (library.Author, error) {
	var a library.Author
	err := r.store.QueryRow(ctx, db.OpJoin,
		`SELECT a.id_author, a.name, a.locked FROM book b
		INNER JOIN author a ON b.id_author = a.id_author
		WHERE b.id_author = ? AND b.id_book = ?`,
		[]any{parentID, childID}, &a.ID, &a.Name, &a.Locked)
	if errors.Is(err, sql.ErrNoRows) {
		return library.Author{}, fmt.Errorf("book %d of author %d: %w", childID, parentID, domain.ErrNotFound)
	}
	if err != nil {
		return library.Author{}, fmt.Errorf("fetch parent of book %d: %w", childID, err)
	}
	return a, nil
}

// Update rewrites every column of an existing book.
func (r *Repo) Update(ctx context.Context, b library.Book) error {
	res, err := r.store.Exec(ctx, db.OpUpdate,
		`UPDATE book SET title = ?, pages = ?, price = ?, id_author = ? WHERE id_book = ?`,
		b.Title, b.Pages, b.Price, b.AuthorID, b.ID)
	if err != nil {
		return fmt.Errorf("update book %d: %w", b.ID, err)
	}
	return requireAffected(res, b.ID)
}

// Delete removes a book.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	res, err := r.store.Exec(ctx, db.OpDelete, `DELETE FROM book WHERE id_book = ?`, id)
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	return requireAffected(res, id)
}

// Count returns the number of books across all authors.
func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.store.QueryRow(ctx, db.OpCount, `SELECT COUNT(*) FROM book`, nil, &n); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return n, nil
}

// List returns one window of books matching f, ordered by id unless f orders.
func (r *Repo) List(ctx context.Context, w page.Window, f query.Filter) ([]library.Book, error) {
	args := append(append([]any{}, f.Args()...), w.Limit(), w.Offset())
	rows, err := r.store.Query(ctx, db.OpList, listSQL(f), args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var out []library.Book
	for rows.Next() {
		var b library.Book
		if err := rows.Scan(scanTargets(&b)...); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return out, nil
}

func scanTargets(b *library.Book) []any {
	return []any{&b.ID, &b.Title, &b.Pages, &b.Price, &b.AuthorID}
}

func listSQL(f query.Filter) string {
	q := `SELECT ` + columns + ` FROM book`
	if w := f.Where(); w != "" {
		q += " " + w
	}
	order := f.OrderBy()
	if order == "" {
		order = "ORDER BY id_book"
	}
	return q + " " + order + " LIMIT ? OFFSET ?"
}

func requireAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("book %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
