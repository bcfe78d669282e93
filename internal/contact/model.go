package contact

import "time"

const (
	StatusOpen     = "OPEN"
	StatusReplied  = "REPLIED"
	StatusResolved = "RESOLVED"
)

type Contact struct {
	ID        int        `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Email     string     `db:"email" json:"email"`
	Subject   string     `db:"subject" json:"subject"`
	Message   string     `db:"message" json:"message"`
	Reply     string     `db:"reply" json:"reply,omitempty"`
	Status    string     `db:"status" json:"status"`
	RepliedBy *int       `db:"replied_by" json:"replied_by,omitempty"`
	RepliedAt *time.Time `db:"replied_at" json:"replied_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

type ReplyRequest struct {
	Reply   string `json:"reply" binding:"required"`
	Resolve bool   `json:"resolve"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required,oneof=OPEN REPLIED RESOLVED"`
}

type Filter struct {
	Status   string
	Search   string
	Page     int
	PageSize int
}
