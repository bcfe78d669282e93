package business

import "time"

type Business struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Category    string    `db:"category" json:"category"`
	Address     string    `db:"address" json:"address"`
	Phone       string    `db:"phone" json:"phone"`
	Website     string    `db:"website" json:"website,omitempty"`
	Description string    `db:"description" json:"description,omitempty"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Image struct {
	ID         int       `db:"id" json:"id"`
	BusinessID int       `db:"business_id" json:"business_id"`
	FilePath   string    `db:"file_path" json:"file_path"`
	SortOrder  int       `db:"sort_order" json:"sort_order"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type BusinessWithImages struct {
	Business
	Images []Image `json:"images"`
}

type SaveRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

type ImageUpdateRequest struct {
	SortOrder int `json:"sort_order" binding:"min=0"`
}

type Filter struct {
	Search   string
	Page     int
	PageSize int
}
