package wallet

import (
	"context"
	"errors"

	"reviewpay/internal/metrics"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrInvalidKind   = errors.New("adjustment type must be BONUS or PENALTY")
)

// AdjustmentResult is what an approved adjustment hands back to the caller.
type AdjustmentResult struct {
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	NewBalance      decimal.Decimal `json:"new_balance"`
	Wallet          *Wallet         `json:"wallet"`
	Adjustment      *Adjustment     `json:"adjustment"`
}

type Service interface {
	ApplyAdjustment(ctx context.Context, userID int, req AdjustRequest, adminID int) (*AdjustmentResult, error)
	GetOverview(ctx context.Context, userID int) (*Overview, error)
	ListAdjustments(ctx context.Context, filter AdjustmentFilter) ([]AdjustmentWithUser, int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ApplyAdjustment validates a bonus/penalty instruction and applies it.
// The operation is deliberately not idempotent: submitting the same request
// twice records two ledger entries and moves the balance twice. Deduplication,
// if needed, is the caller's job.
func (s *service) ApplyAdjustment(ctx context.Context, userID int, req AdjustRequest, adminID int) (*AdjustmentResult, error) {
	if req.Type != KindBonus && req.Type != KindPenalty {
		metrics.RecordWalletAdjustmentRejected("invalid_kind")
		return nil, ErrInvalidKind
	}
	if !req.Amount.IsPositive() {
		metrics.RecordWalletAdjustmentRejected("invalid_amount")
		return nil, ErrInvalidAmount
	}

	w, adj, err := s.repo.ApplyAdjustment(ctx, userID, req.Type, req.Amount, req.Note, adminID)
	if err != nil {
		if errors.Is(err, ErrInsufficientBalance) {
			metrics.RecordWalletAdjustmentRejected("insufficient_balance")
		}
		return nil, err
	}

	metrics.RecordWalletAdjustment(req.Type)

	delta := req.Amount
	if req.Type == KindPenalty {
		delta = req.Amount.Neg()
	}

	return &AdjustmentResult{
		PreviousBalance: w.Balance.Sub(delta),
		NewBalance:      w.Balance,
		Wallet:          w,
		Adjustment:      adj,
	}, nil
}

func (s *service) GetOverview(ctx context.Context, userID int) (*Overview, error) {
	return s.repo.GetOverview(ctx, userID)
}

func (s *service) ListAdjustments(ctx context.Context, filter AdjustmentFilter) ([]AdjustmentWithUser, int, error) {
	return s.repo.ListAdjustments(ctx, filter)
}
