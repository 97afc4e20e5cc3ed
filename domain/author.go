package domain

import "github.com/shopspring/decimal"

func init() {
	// Amounts go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Author is a rights-holder receiving royalties. CurrentBalance is tracked
// on its own and is never derived from sales or withdrawals.
type Author struct {
	ID             int64           `db:"id" json:"id" yaml:"id"`
	Name           string          `db:"name" json:"name" yaml:"name" validate:"required"`
	CurrentBalance decimal.Decimal `db:"current_balance" json:"current_balance" yaml:"current_balance"`
}
