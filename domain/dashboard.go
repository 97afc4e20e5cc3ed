package domain

import "github.com/shopspring/decimal"

// BookSummary is a book of the author together with the royalties its
// sales have earned so far.
type BookSummary struct {
	ID             int64           `json:"id"`
	Title          string          `json:"title"`
	RoyaltyPerSale decimal.Decimal `json:"royalty_per_sale"`
	TotalRoyalty   decimal.Decimal `json:"total_royalty"`
}

type RecentSale struct {
	BookTitle     string          `json:"book_title"`
	SaleDate      string          `json:"sale_date"`
	QuantitySold  int64           `json:"quantity_sold"`
	RoyaltyEarned decimal.Decimal `json:"royalty_earned"`
}

// Dashboard is the read-only summary returned for one author.
type Dashboard struct {
	TotalEarnings  decimal.Decimal `json:"total_earnings"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	TotalBooks     int             `json:"total_books"`
	Books          []BookSummary   `json:"books"`
	RecentSales    []RecentSale    `json:"recent_sales"`
	Withdrawals    []Withdrawal    `json:"withdrawals"`
}
