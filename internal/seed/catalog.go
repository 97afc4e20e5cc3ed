package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/jmoiron/sqlx"
	"gopkg.in/yaml.v3"

	"royaltydesk/m/internal/store"
)

//go:embed catalog.yaml
var sampleCatalog []byte

// Sample returns the built-in sample catalog.
func Sample() (store.Tables, error) {
	return Parse(bytes.NewReader(sampleCatalog))
}

// ReadFile parses a catalog file in the same YAML layout as the sample.
func ReadFile(path string) (store.Tables, error) {
	file, err := os.Open(path)
	if err != nil {
		return store.Tables{}, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer file.Close()
	return Parse(file)
}

// Parse decodes and validates a YAML catalog.
func Parse(r io.Reader) (store.Tables, error) {
	var t store.Tables
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return store.Tables{}, fmt.Errorf("decode catalog: %w", err)
	}
	if err := store.Validate(t); err != nil {
		return store.Tables{}, fmt.Errorf("invalid catalog: %w", err)
	}
	return t, nil
}

// Result reports how many rows LoadCatalog inserted.
type Result struct {
	Skipped     bool
	Authors     int
	Books       int
	Sales       int
	Withdrawals int
}

// LoadCatalog inserts t into an empty database in one transaction. Sales
// have no identity to deduplicate on, so a database that already holds
// authors is left untouched.
func LoadCatalog(ctx context.Context, db *sqlx.DB, t store.Tables) (Result, error) {
	if err := store.Validate(t); err != nil {
		return Result{}, fmt.Errorf("invalid catalog: %w", err)
	}

	var existing int
	if err := db.GetContext(ctx, &existing, `SELECT COUNT(*) FROM authors`); err != nil {
		return Result{}, fmt.Errorf("count authors: %w", err)
	}
	if existing > 0 {
		return Result{Skipped: true}, nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return Result{}, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	var res Result
	for _, a := range t.Authors {
		if _, err := tx.NamedExecContext(ctx, `INSERT INTO authors (id, name, current_balance) VALUES (:id, :name, :current_balance)`, a); err != nil {
			return Result{}, fmt.Errorf("insert author %d: %w", a.ID, err)
		}
		res.Authors++
	}
	for _, b := range t.Books {
		if _, err := tx.NamedExecContext(ctx, `INSERT INTO books (id, title, author_id, royalty_per_sale) VALUES (:id, :title, :author_id, :royalty_per_sale)`, b); err != nil {
			return Result{}, fmt.Errorf("insert book %d: %w", b.ID, err)
		}
		res.Books++
	}
	for _, s := range t.Sales {
		if _, err := tx.NamedExecContext(ctx, `INSERT INTO sales (book_id, sale_date, quantity_sold, royalty_earned) VALUES (:book_id, :sale_date, :quantity_sold, :royalty_earned)`, s); err != nil {
			return Result{}, fmt.Errorf("insert sale for book %d: %w", s.BookID, err)
		}
		res.Sales++
	}
	for _, w := range t.Withdrawals {
		if _, err := tx.NamedExecContext(ctx, `INSERT INTO withdrawals (author_id, amount, status, request_date) VALUES (:author_id, :amount, :status, :request_date)`, w); err != nil {
			return Result{}, fmt.Errorf("insert withdrawal for author %d: %w", w.AuthorID, err)
		}
		res.Withdrawals++
	}

	if err := tx.Commit(); err != nil {
		return Result{}, fmt.Errorf("commit seed: %w", err)
	}
	return res, nil
}
