package user

import (
	"context"
	"time"

	"reviewpay/internal/auth"
	"reviewpay/internal/logger"
	"reviewpay/internal/metrics"
)

// EmailSender is the slice of the email service this package needs.
type EmailSender interface {
	SendPasswordReset(ctx context.Context, to, name string) error
}

type Service interface {
	List(ctx context.Context, filter Filter) ([]User, int, error)
	GetByID(ctx context.Context, id int) (*User, error)
	Update(ctx context.Context, id int, req UpdateRequest) (*User, error)
	Block(ctx context.Context, id, days int) (*User, error)
	Unblock(ctx context.Context, id int) (*User, error)
	ResetPassword(ctx context.Context, id int, password string) error
}

type service struct {
	repo   Repository
	emails EmailSender
}

func NewService(repo Repository, emails EmailSender) Service {
	return &service{
		repo:   repo,
		emails: emails,
	}
}

func (s *service) List(ctx context.Context, filter Filter) ([]User, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) GetByID(ctx context.Context, id int) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id int, req UpdateRequest) (*User, error) {
	return s.repo.Update(ctx, id, req)
}

// Block suspends the user. days == 0 blocks indefinitely, otherwise the block
// expires after that many days.
func (s *service) Block(ctx context.Context, id, days int) (*User, error) {
	var until *time.Time
	if days > 0 {
		t := time.Now().UTC().AddDate(0, 0, days)
		until = &t
	}

	u, err := s.repo.SetBlocked(ctx, id, until)
	if err != nil {
		return nil, err
	}

	metrics.RecordUserBlocked()
	logger.Info("user blocked", "user_id", id, "days", days)
	return u, nil
}

func (s *service) Unblock(ctx context.Context, id int) (*User, error) {
	return s.repo.SetActive(ctx, id)
}

func (s *service) ResetPassword(ctx context.Context, id int, password string) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}

	if s.emails != nil {
		if err := s.emails.SendPasswordReset(ctx, u.Email, u.Name); err != nil {
			logger.Error("failed to queue password reset email", "user_id", id, "error", err)
		}
	}

	return nil
}
