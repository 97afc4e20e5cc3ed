package store

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Validate checks every record against its field rules and checks that
// ids are unique and foreign keys resolve. All problems are reported.
func Validate(t Tables) error {
	var errs []error

	authors := make(map[int64]struct{}, len(t.Authors))
	for i, a := range t.Authors {
		if err := validate.Struct(a); err != nil {
			errs = append(errs, fmt.Errorf("authors[%d]: %w", i, err))
		}
		if _, dup := authors[a.ID]; dup {
			errs = append(errs, fmt.Errorf("authors[%d]: duplicate id %d", i, a.ID))
		}
		authors[a.ID] = struct{}{}
	}

	books := make(map[int64]struct{}, len(t.Books))
	for i, b := range t.Books {
		if err := validate.Struct(b); err != nil {
			errs = append(errs, fmt.Errorf("books[%d]: %w", i, err))
		}
		if _, dup := books[b.ID]; dup {
			errs = append(errs, fmt.Errorf("books[%d]: duplicate id %d", i, b.ID))
		}
		books[b.ID] = struct{}{}
		if _, ok := authors[b.AuthorID]; !ok {
			errs = append(errs, fmt.Errorf("books[%d]: unknown author_id %d", i, b.AuthorID))
		}
	}

	for i, s := range t.Sales {
		if err := validate.Struct(s); err != nil {
			errs = append(errs, fmt.Errorf("sales[%d]: %w", i, err))
		}
		if _, ok := books[s.BookID]; !ok {
			errs = append(errs, fmt.Errorf("sales[%d]: unknown book_id %d", i, s.BookID))
		}
	}

	for i, w := range t.Withdrawals {
		if err := validate.Struct(w); err != nil {
			errs = append(errs, fmt.Errorf("withdrawals[%d]: %w", i, err))
		}
		if _, ok := authors[w.AuthorID]; !ok {
			errs = append(errs, fmt.Errorf("withdrawals[%d]: unknown author_id %d", i, w.AuthorID))
		}
	}

	return errors.Join(errs...)
}
