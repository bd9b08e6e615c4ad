// Package library defines the example entity types served by crudex:
// authors and the books they own.
package library

import (
	"strings"

	"github.com/kailas-cloud/crudex/internal/domain"
	"github.com/kailas-cloud/crudex/internal/domain/query"
)

// Author is a root resource.
type Author struct {
	ID     int64  `json:"id_author"`
	Name   string `json:"name"`
	Locked bool   `json:"locked"`
}

// WithID returns a copy carrying id.
func (a Author) WithID(id int64) Author {
	a.ID = id
	return a
}

// AuthorFields declares the searchable and orderable author columns.
var AuthorFields = query.Fields{
	Text:    []string{"name"},
	Numeric: []string{"id_author"},
	Order:   []string{"id_author", "name"},
}

// AuthorRules validates author mutations.
type AuthorRules struct{}

// CheckCreate requires a name.
func (AuthorRules) CheckCreate(c Author) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if strings.TrimSpace(c.Name) == "" {
		errs = errs.Add("name", "is required")
	}
	return errs
}

// CheckUpdate requires a name and forbids unlocking a locked author.
func (AuthorRules) CheckUpdate(c, prev Author) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if strings.TrimSpace(c.Name) == "" {
		errs = errs.Add("name", "is required")
	}
	if prev.Locked && !c.Locked {
		errs = errs.Add("locked", "cannot be cleared once set")
	}
	return errs
}

// CheckDelete forbids deleting a locked author.
func (AuthorRules) CheckDelete(prev Author) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if prev.Locked {
		errs = errs.Add("", "locked authors cannot be deleted")
	}
	return errs
}
