// Package sqlstore reads the royalty tables from a SQL database through sqlx.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"royaltydesk/m/domain"
	"royaltydesk/m/internal/store"
)

type Store struct {
	db *sqlx.DB
}

var _ store.Store = (*Store)(nil)

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// View runs fn inside one transaction so every read sees the same
// snapshot. The transaction is always rolled back; nothing is written.
func (s *Store) View(ctx context.Context, fn func(store.Reader) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin read: %w", err)
	}
	defer tx.Rollback()
	return fn(&reader{tx: tx})
}

type reader struct {
	tx *sqlx.Tx
}

func (r *reader) AuthorByID(ctx context.Context, id int64) (domain.Author, error) {
	var author domain.Author
	err := r.tx.GetContext(ctx, &author, `SELECT id, name, current_balance FROM authors WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Author{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Author{}, fmt.Errorf("get author %d: %w", id, err)
	}
	return author, nil
}

func (r *reader) BooksByAuthor(ctx context.Context, authorID int64) ([]domain.Book, error) {
	books := []domain.Book{}
	if err := r.tx.SelectContext(ctx, &books, `SELECT id, title, author_id, royalty_per_sale FROM books WHERE author_id = ? ORDER BY seq`, authorID); err != nil {
		return nil, fmt.Errorf("list books for author %d: %w", authorID, err)
	}
	return books, nil
}

func (r *reader) SalesForBooks(ctx context.Context, bookIDs []int64) ([]domain.Sale, error) {
	sales := []domain.Sale{}
	if len(bookIDs) == 0 {
		return sales, nil
	}
	query, args, err := sqlx.In(`SELECT book_id, sale_date, quantity_sold, royalty_earned FROM sales WHERE book_id IN (?) ORDER BY seq`, bookIDs)
	if err != nil {
		return nil, fmt.Errorf("prepare sales query: %w", err)
	}
	if err := r.tx.SelectContext(ctx, &sales, r.tx.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return sales, nil
}

func (r *reader) WithdrawalsByAuthor(ctx context.Context, authorID int64) ([]domain.Withdrawal, error) {
	withdrawals := []domain.Withdrawal{}
	if err := r.tx.SelectContext(ctx, &withdrawals, `SELECT author_id, amount, status, request_date FROM withdrawals WHERE author_id = ? ORDER BY id`, authorID); err != nil {
		return nil, fmt.Errorf("list withdrawals for author %d: %w", authorID, err)
	}
	return withdrawals, nil
}
