package user

import (
	"context"
	"time"
)

type Repository interface {
	List(ctx context.Context, filter Filter) ([]User, int, error)
	FindByID(ctx context.Context, id int) (*User, error)
	Update(ctx context.Context, id int, req UpdateRequest) (*User, error)
	SetBlocked(ctx context.Context, id int, until *time.Time) (*User, error)
	SetActive(ctx context.Context, id int) (*User, error)
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
}
