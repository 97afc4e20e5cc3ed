// Package memory serves the royalty tables from immutable in-process slices.
package memory

import (
	"context"
	"fmt"
	"slices"

	"royaltydesk/m/domain"
	"royaltydesk/m/internal/store"
)

// Store keeps its own copy of the tables and never mutates it, so it is
// safe for concurrent use without locking.
type Store struct {
	tables store.Tables
}

var (
	_ store.Store  = (*Store)(nil)
	_ store.Reader = (*Store)(nil)
)

// New validates t and returns a Store over a copy of it.
func New(t store.Tables) (*Store, error) {
	if err := store.Validate(t); err != nil {
		return nil, fmt.Errorf("invalid tables: %w", err)
	}
	return &Store{tables: store.Tables{
		Authors:     slices.Clone(t.Authors),
		Books:       slices.Clone(t.Books),
		Sales:       slices.Clone(t.Sales),
		Withdrawals: slices.Clone(t.Withdrawals),
	}}, nil
}

// View runs fn against the store itself; the tables never change.
func (s *Store) View(ctx context.Context, fn func(store.Reader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(s)
}

func (s *Store) AuthorByID(_ context.Context, id int64) (domain.Author, error) {
	for _, a := range s.tables.Authors {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.Author{}, store.ErrNotFound
}

func (s *Store) BooksByAuthor(_ context.Context, authorID int64) ([]domain.Book, error) {
	books := []domain.Book{}
	for _, b := range s.tables.Books {
		if b.AuthorID == authorID {
			books = append(books, b)
		}
	}
	return books, nil
}

func (s *Store) SalesForBooks(_ context.Context, bookIDs []int64) ([]domain.Sale, error) {
	ids := make(map[int64]struct{}, len(bookIDs))
	for _, id := range bookIDs {
		ids[id] = struct{}{}
	}
	sales := []domain.Sale{}
	for _, sale := range s.tables.Sales {
		if _, ok := ids[sale.BookID]; ok {
			sales = append(sales, sale)
		}
	}
	return sales, nil
}

func (s *Store) WithdrawalsByAuthor(_ context.Context, authorID int64) ([]domain.Withdrawal, error) {
	withdrawals := []domain.Withdrawal{}
	for _, w := range s.tables.Withdrawals {
		if w.AuthorID == authorID {
			withdrawals = append(withdrawals, w)
		}
	}
	return withdrawals, nil
}
