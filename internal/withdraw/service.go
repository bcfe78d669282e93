package withdraw

import (
	"context"
	"errors"

	"reviewpay/internal/logger"
	"reviewpay/internal/metrics"
)

var ErrInvalidStatus = errors.New("invalid withdraw status")

// EmailSender is the slice of the email service this package needs.
type EmailSender interface {
	SendWithdrawDecision(ctx context.Context, to, name, status, amount string) error
}

// UserLookup resolves a user's contact details for decision emails.
type UserLookup interface {
	NameEmail(ctx context.Context, userID int) (name, email string, err error)
}

type Service interface {
	List(ctx context.Context, filter Filter) ([]WithdrawWithUser, int, error)
	GetByID(ctx context.Context, id int) (*Withdraw, error)
	Decide(ctx context.Context, id, decidedBy int, req StatusRequest) (*Withdraw, error)
}

type service struct {
	repo   Repository
	users  UserLookup
	emails EmailSender
}

func NewService(repo Repository, users UserLookup, emails EmailSender) Service {
	return &service{
		repo:   repo,
		users:  users,
		emails: emails,
	}
}

func (s *service) List(ctx context.Context, filter Filter) ([]WithdrawWithUser, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) GetByID(ctx context.Context, id int) (*Withdraw, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Decide(ctx context.Context, id, decidedBy int, req StatusRequest) (*Withdraw, error) {
	var (
		w   *Withdraw
		err error
	)

	switch req.Status {
	case StatusApproved:
		w, err = s.repo.Approve(ctx, id, decidedBy, req.Note)
	case StatusRejected:
		w, err = s.repo.Reject(ctx, id, decidedBy, req.Note)
	default:
		return nil, ErrInvalidStatus
	}
	if err != nil {
		return nil, err
	}

	metrics.RecordWithdrawDecision(w.Status)
	s.notify(ctx, w)
	return w, nil
}

func (s *service) notify(ctx context.Context, w *Withdraw) {
	if s.users == nil || s.emails == nil {
		return
	}

	name, email, err := s.users.NameEmail(ctx, w.UserID)
	if err != nil {
		logger.Error("failed to look up user for withdraw email", "user_id", w.UserID, "error", err)
		return
	}

	if err := s.emails.SendWithdrawDecision(ctx, email, name, w.Status, w.Amount.StringFixed(2)); err != nil {
		logger.Error("failed to queue withdraw decision email", "withdraw_id", w.ID, "error", err)
	}
}
