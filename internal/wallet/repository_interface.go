package wallet

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	GetOrCreateWallet(ctx context.Context, userID int) (*Wallet, error)
	GetOverview(ctx context.Context, userID int) (*Overview, error)
	ApplyAdjustment(ctx context.Context, userID int, kind string, amount decimal.Decimal, note string, createdBy int) (*Wallet, *Adjustment, error)
	ListAdjustments(ctx context.Context, filter AdjustmentFilter) ([]AdjustmentWithUser, int, error)
}
