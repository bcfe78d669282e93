package admin

import (
	"context"
	"errors"

	"reviewpay/internal/auth"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminInactive      = errors.New("admin account is inactive")
)

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*Admin, string, string, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, *Admin, error)
	GetByID(ctx context.Context, id int) (*Admin, error)
	Create(ctx context.Context, req CreateRequest) (*Admin, error)
	List(ctx context.Context) ([]Admin, error)
	SetStatus(ctx context.Context, id int, status string) (*Admin, error)
	ChangePassword(ctx context.Context, id int, password string) error
}

type service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{
		repo:      repo,
		jwtSecret: jwtSecret,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*Admin, string, string, error) {
	a, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(a.PasswordHash, req.Password) {
		return nil, "", "", ErrInvalidCredentials
	}

	if a.Status != StatusActive {
		return nil, "", "", ErrAdminInactive
	}

	accessToken, refreshToken, err := auth.GenerateTokens(a.ID, a.Email, a.Role, s.jwtSecret, s.jwtSecret)
	if err != nil {
		return nil, "", "", err
	}

	return a, accessToken, refreshToken, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, *Admin, error) {
	_, claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	a, err := s.repo.FindByID(ctx, claims.AdminID)
	if err != nil {
		return "", nil, ErrAdminNotFound
	}
	if a.Status != StatusActive {
		return "", nil, ErrAdminInactive
	}

	newAccessToken, err := auth.GenerateAccessToken(a.ID, a.Email, a.Role, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	return newAccessToken, a, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Admin, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Admin, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = RoleAdmin
	}

	return s.repo.Create(ctx, req.Name, req.Email, passwordHash, role)
}

func (s *service) List(ctx context.Context) ([]Admin, error) {
	return s.repo.List(ctx)
}

func (s *service) SetStatus(ctx context.Context, id int, status string) (*Admin, error) {
	return s.repo.SetStatus(ctx, id, status)
}

func (s *service) ChangePassword(ctx context.Context, id int, password string) error {
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, passwordHash)
}
