package user

import "time"

const (
	StatusActive  = "active"
	StatusBlocked = "blocked"
)

type User struct {
	ID           int        `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Email        string     `db:"email" json:"email"`
	Phone        string     `db:"phone" json:"phone"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Status       string     `db:"status" json:"status"`
	BlockedUntil *time.Time `db:"blocked_until" json:"blocked_until,omitempty"`
	ReferCode    string     `db:"refer_code" json:"refer_code"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

type UpdateRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

type BlockRequest struct {
	// Days the block lasts. Zero means indefinite.
	Days int `json:"days" binding:"min=0"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

type Filter struct {
	Search   string
	Status   string
	Page     int
	PageSize int
}
