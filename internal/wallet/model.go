package wallet

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	KindBonus   = "BONUS"
	KindPenalty = "PENALTY"
)

// Wallet is the derived snapshot of a user's balance and income totals.
type Wallet struct {
	ID               int             `db:"id" json:"id"`
	UserID           int             `db:"user_id" json:"user_id"`
	Balance          decimal.Decimal `db:"balance" json:"balance"`
	ReviewIncome     decimal.Decimal `db:"review_income" json:"review_income"`
	ReferIncome      decimal.Decimal `db:"refer_income" json:"refer_income"`
	ReceivedMoney    decimal.Decimal `db:"received_money" json:"received_money"`
	TransferredMoney decimal.Decimal `db:"transferred_money" json:"transferred_money"`
	WithdrawnMoney   decimal.Decimal `db:"withdrawn_money" json:"withdrawn_money"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// Adjustment is an append-only ledger entry. Rows are never updated or deleted.
type Adjustment struct {
	ID        int             `db:"id" json:"id"`
	UserID    int             `db:"user_id" json:"user_id"`
	Kind      string          `db:"kind" json:"type"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Note      string          `db:"note" json:"note"`
	CreatedBy int             `db:"created_by" json:"created_by"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// AdjustmentWithUser carries user columns for the global adjustments listing.
type AdjustmentWithUser struct {
	Adjustment
	UserName  string `db:"user_name" json:"user_name"`
	UserEmail string `db:"user_email" json:"user_email"`
}

// UserInfo is the slice of the users row the wallet overview returns.
type UserInfo struct {
	ID     int    `db:"id" json:"id"`
	Name   string `db:"name" json:"name"`
	Email  string `db:"email" json:"email"`
	Status string `db:"status" json:"status"`
}

type Overview struct {
	User   UserInfo `json:"user"`
	Wallet Wallet   `json:"wallet"`
}

type AdjustRequest struct {
	Type   string          `json:"type" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Note   string          `json:"note"`
}

type AdjustmentFilter struct {
	UserID   int // 0 means all users
	Kind     string
	Search   string
	Page     int
	PageSize int
}
