package domain

import "github.com/shopspring/decimal"

type Book struct {
	ID             int64           `db:"id" json:"id" yaml:"id"`
	Title          string          `db:"title" json:"title" yaml:"title" validate:"required"`
	AuthorID       int64           `db:"author_id" json:"author_id" yaml:"author_id"`
	RoyaltyPerSale decimal.Decimal `db:"royalty_per_sale" json:"royalty_per_sale" yaml:"royalty_per_sale" validate:"gte=0"`
}
