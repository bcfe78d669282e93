package withdraw

import "context"

type Repository interface {
	List(ctx context.Context, filter Filter) ([]WithdrawWithUser, int, error)
	FindByID(ctx context.Context, id int) (*Withdraw, error)
	Approve(ctx context.Context, id, decidedBy int, note string) (*Withdraw, error)
	Reject(ctx context.Context, id, decidedBy int, note string) (*Withdraw, error)
}
