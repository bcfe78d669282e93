package review

import "context"

type Repository interface {
	List(ctx context.Context, filter Filter) ([]ReviewWithUser, int, error)
	FindByID(ctx context.Context, id int) (*Review, error)
	Approve(ctx context.Context, id int) (*Review, error)
	Reject(ctx context.Context, id int) (*Review, error)
}
