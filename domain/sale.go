package domain

import "github.com/shopspring/decimal"

// Sale is an append-only fact. RoyaltyEarned is the recorded value and is
// not recomputed from QuantitySold.
type Sale struct {
	BookID        int64           `db:"book_id" json:"book_id" yaml:"book_id"`
	SaleDate      string          `db:"sale_date" json:"sale_date" yaml:"sale_date" validate:"required,datetime=2006-01-02"`
	QuantitySold  int64           `db:"quantity_sold" json:"quantity_sold" yaml:"quantity_sold" validate:"gte=0"`
	RoyaltyEarned decimal.Decimal `db:"royalty_earned" json:"royalty_earned" yaml:"royalty_earned"`
}
