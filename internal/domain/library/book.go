package library

import (
	"strings"

	"github.com/kailas-cloud/crudex/internal/domain"
	"github.com/kailas-cloud/crudex/internal/domain/query"
)

// Book belongs to exactly one author.
type Book struct {
	ID       int64   `json:"id_book"`
	Title    string  `json:"title"`
	Pages    int64   `json:"pages"`
	Price    float64 `json:"price"`
	AuthorID int64   `json:"id_author"`
}

// WithID returns a copy carrying id.
func (b Book) WithID(id int64) Book {
	b.ID = id
	return b
}

// WithParentID returns a copy owned by author id.
func (b Book) WithParentID(id int64) Book {
	b.AuthorID = id
	return b
}

// BookFields declares the searchable and orderable book columns.
var BookFields = query.Fields{
	Text:    []string{"title"},
	Numeric: []string{"id_book", "pages"},
	Float:   []string{"price"},
	Order:   []string{"id_book", "title", "pages", "price"},
	Parent:  "id_author",
}

// BookRules validates book mutations.
type BookRules struct{}

// CheckCreate validates a new book.
func (BookRules) CheckCreate(c Book) domain.ValidationErrors {
	return checkBook(c)
}

// CheckUpdate validates a replacement book.
func (BookRules) CheckUpdate(c, _ Book) domain.ValidationErrors {
	return checkBook(c)
}

// CheckDelete always passes.
func (BookRules) CheckDelete(Book) domain.ValidationErrors { return nil }

func checkBook(b Book) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if strings.TrimSpace(b.Title) == "" {
		errs = errs.Add("title", "is required")
	}
	if b.Pages < 0 {
		errs = errs.Add("pages", "must not be negative")
	}
	if b.Price < 0 {
		errs = errs.Add("price", "must not be negative")
	}
	return errs
}
