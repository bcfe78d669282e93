package contact

import (
	"context"

	"reviewpay/internal/logger"
)

// EmailSender is the slice of the email service this package needs.
type EmailSender interface {
	SendContactReply(ctx context.Context, to, name, subject, reply string) error
}

type Service interface {
	List(ctx context.Context, filter Filter) ([]Contact, int, error)
	GetByID(ctx context.Context, id int) (*Contact, error)
	Reply(ctx context.Context, id, adminID int, req ReplyRequest) (*Contact, error)
	SetStatus(ctx context.Context, id int, status string) (*Contact, error)
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

func (s *service) List(ctx context.Context, filter Filter) ([]Contact, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) GetByID(ctx context.Context, id int) (*Contact, error) {
	return s.repo.FindByID(ctx, id)
}

// Reply stores the reply and queues it to the sender by email. A failed queue
// push does not roll the stored reply back.
func (s *service) Reply(ctx context.Context, id, adminID int, req ReplyRequest) (*Contact, error) {
	ct, err := s.repo.SaveReply(ctx, id, req.Reply, adminID, req.Resolve)
	if err != nil {
		return nil, err
	}

	if s.emails != nil {
		if err := s.emails.SendContactReply(ctx, ct.Email, ct.Name, ct.Subject, ct.Reply); err != nil {
			logger.Error("failed to queue contact reply email", "contact_id", id, "error", err)
		}
	}

	return ct, nil
}

func (s *service) SetStatus(ctx context.Context, id int, status string) (*Contact, error) {
	return s.repo.SetStatus(ctx, id, status)
}
