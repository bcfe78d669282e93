package admin

import "context"

type Repository interface {
	Create(ctx context.Context, name, email, passwordHash, role string) (*Admin, error)
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	FindByID(ctx context.Context, id int) (*Admin, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]Admin, error)
	SetStatus(ctx context.Context, id int, status string) (*Admin, error)
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
}
