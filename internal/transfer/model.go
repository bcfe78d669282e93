package transfer

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transfer struct {
	ID         int             `db:"id" json:"id"`
	SenderID   int             `db:"sender_id" json:"sender_id"`
	ReceiverID int             `db:"receiver_id" json:"receiver_id"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	Fee        decimal.Decimal `db:"fee" json:"fee"`
	Note       string          `db:"note" json:"note,omitempty"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

type TransferWithUsers struct {
	Transfer
	SenderName    string `db:"sender_name" json:"sender_name"`
	SenderEmail   string `db:"sender_email" json:"sender_email"`
	ReceiverName  string `db:"receiver_name" json:"receiver_name"`
	ReceiverEmail string `db:"receiver_email" json:"receiver_email"`
}

type Filter struct {
	UserID   int
	Search   string
	Page     int
	PageSize int
}
