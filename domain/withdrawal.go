package domain

import "github.com/shopspring/decimal"

type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "Pending"
	WithdrawalApproved WithdrawalStatus = "Approved"
	WithdrawalRejected WithdrawalStatus = "Rejected"
)

type Withdrawal struct {
	AuthorID    int64            `db:"author_id" json:"author_id" yaml:"author_id"`
	Amount      decimal.Decimal  `db:"amount" json:"amount" yaml:"amount" validate:"gt=0"`
	Status      WithdrawalStatus `db:"status" json:"status" yaml:"status" validate:"oneof=Pending Approved Rejected"`
	RequestDate string           `db:"request_date" json:"request_date" yaml:"request_date" validate:"required,datetime=2006-01-02"`
}
