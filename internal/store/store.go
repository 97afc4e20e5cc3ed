// Package store defines read-only access to the royalty tables.
package store

import (
	"context"
	"errors"

	"royaltydesk/m/domain"
)

// ErrNotFound is returned when a record looked up by id does not exist.
var ErrNotFound = errors.New("record not found")

// Reader fetches records by id or by foreign key. Slices come back in the
// order the records were stored.
type Reader interface {
	AuthorByID(ctx context.Context, id int64) (domain.Author, error)
	BooksByAuthor(ctx context.Context, authorID int64) ([]domain.Book, error)
	SalesForBooks(ctx context.Context, bookIDs []int64) ([]domain.Sale, error)
	WithdrawalsByAuthor(ctx context.Context, authorID int64) ([]domain.Withdrawal, error)
}

// Store hands out a Reader whose reads all observe the same snapshot of
// the tables. The Reader must not be used after fn returns.
type Store interface {
	View(ctx context.Context, fn func(Reader) error) error
}

// Tables is a full copy of the reference data.
type Tables struct {
	Authors     []domain.Author     `yaml:"authors"`
	Books       []domain.Book       `yaml:"books"`
	Sales       []domain.Sale       `yaml:"sales"`
	Withdrawals []domain.Withdrawal `yaml:"withdrawals"`
}
