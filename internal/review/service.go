package review

import (
	"context"
	"errors"

	"reviewpay/internal/metrics"
)

var ErrInvalidStatus = errors.New("invalid review status")

type Service interface {
	List(ctx context.Context, filter Filter) ([]ReviewWithUser, int, error)
	GetByID(ctx context.Context, id int) (*Review, error)
	Approve(ctx context.Context, id int) (*Review, error)
	Reject(ctx context.Context, id int) (*Review, error)
	SetStatus(ctx context.Context, id int, status string) (*Review, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, filter Filter) ([]ReviewWithUser, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) GetByID(ctx context.Context, id int) (*Review, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Approve(ctx context.Context, id int) (*Review, error) {
	rev, err := s.repo.Approve(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.RecordReviewModeration(StatusApproved)
	return rev, nil
}

func (s *service) Reject(ctx context.Context, id int) (*Review, error) {
	rev, err := s.repo.Reject(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.RecordReviewModeration(StatusRejected)
	return rev, nil
}

func (s *service) SetStatus(ctx context.Context, id int, status string) (*Review, error) {
	switch status {
	case StatusApproved:
		return s.Approve(ctx, id)
	case StatusRejected:
		return s.Reject(ctx, id)
	default:
		return nil, ErrInvalidStatus
	}
}
