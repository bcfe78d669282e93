package review

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

type Review struct {
	ID           int             `db:"id" json:"id"`
	UserID       int             `db:"user_id" json:"user_id"`
	BusinessID   int             `db:"business_id" json:"business_id"`
	Rating       int             `db:"rating" json:"rating"`
	Content      string          `db:"content" json:"content"`
	ImageURL     string          `db:"image_url" json:"image_url,omitempty"`
	Status       string          `db:"status" json:"status"`
	RewardAmount decimal.Decimal `db:"reward_amount" json:"reward_amount"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

type ReviewWithUser struct {
	Review
	UserName     string `db:"user_name" json:"user_name"`
	UserEmail    string `db:"user_email" json:"user_email"`
	BusinessName string `db:"business_name" json:"business_name"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
}

type Filter struct {
	Status   string
	Search   string
	Page     int
	PageSize int
}
