package notice

import "time"

type Notice struct {
	ID        int       `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	FilePath  string    `db:"file_path" json:"file_path,omitempty"`
	Serial    int       `db:"serial" json:"serial"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type SaveRequest struct {
	Title    string `form:"title" binding:"required"`
	Content  string `form:"content" binding:"required"`
	Serial   int    `form:"serial" binding:"min=0"`
	IsActive *bool  `form:"is_active"`
}

type ActiveRequest struct {
	IsActive bool `json:"is_active"`
}
