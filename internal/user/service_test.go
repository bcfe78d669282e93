package user

import (
	"context"
	"os"
	"testing"
	"time"

	"reviewpay/internal/auth"
	"reviewpay/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, filter Filter) ([]User, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]User), args.Int(1), args.Error(2)
}

func (m *MockRepository) FindByID(ctx context.Context, id int) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id int, req UpdateRequest) (*User, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) SetBlocked(ctx context.Context, id int, until *time.Time) (*User, error) {
	args := m.Called(ctx, id, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) SetActive(ctx context.Context, id int) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendPasswordReset(ctx context.Context, to, name string) error {
	args := m.Called(ctx, to, name)
	return args.Error(0)
}

func TestService_Block_Indefinite(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	repo.On("SetBlocked", mock.Anything, 5, (*time.Time)(nil)).
		Return(&User{ID: 5, Status: StatusBlocked}, nil)

	u, err := svc.Block(context.Background(), 5, 0)
	require.NoError(t, err)
	assert.Equal(t, StatusBlocked, u.Status)
	repo.AssertExpectations(t)
}

func TestService_Block_WithDays(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	repo.On("SetBlocked", mock.Anything, 5, mock.MatchedBy(func(until *time.Time) bool {
		if until == nil {
			return false
		}
		expected := time.Now().UTC().AddDate(0, 0, 7)
		diff := until.Sub(expected)
		return diff > -time.Minute && diff < time.Minute
	})).Return(&User{ID: 5, Status: StatusBlocked}, nil)

	_, err := svc.Block(context.Background(), 5, 7)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Block_UserMissing(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	repo.On("SetBlocked", mock.Anything, 99, (*time.Time)(nil)).
		Return(nil, ErrUserNotFound)

	_, err := svc.Block(context.Background(), 99, 0)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_ResetPassword(t *testing.T) {
	repo := new(MockRepository)
	emails := new(MockEmailSender)
	svc := NewService(repo, emails)

	repo.On("FindByID", mock.Anything, 5).
		Return(&User{ID: 5, Name: "Jamie", Email: "jamie@example.com"}, nil)
	repo.On("UpdatePassword", mock.Anything, 5, mock.MatchedBy(func(hash string) bool {
		return auth.CheckPassword(hash, "newpassword1")
	})).Return(nil)
	emails.On("SendPasswordReset", mock.Anything, "jamie@example.com", "Jamie").Return(nil)

	err := svc.ResetPassword(context.Background(), 5, "newpassword1")
	require.NoError(t, err)
	repo.AssertExpectations(t)
	emails.AssertExpectations(t)
}

func TestService_ResetPassword_UserMissing(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	repo.On("FindByID", mock.Anything, 99).Return(nil, ErrUserNotFound)

	err := svc.ResetPassword(context.Background(), 99, "whatever123")
	assert.ErrorIs(t, err, ErrUserNotFound)
	repo.AssertNotCalled(t, "UpdatePassword")
}

func TestService_ResetPassword_EmailFailureIsNotFatal(t *testing.T) {
	repo := new(MockRepository)
	emails := new(MockEmailSender)
	svc := NewService(repo, emails)

	repo.On("FindByID", mock.Anything, 5).
		Return(&User{ID: 5, Name: "Jamie", Email: "jamie@example.com"}, nil)
	repo.On("UpdatePassword", mock.Anything, 5, mock.Anything).Return(nil)
	emails.On("SendPasswordReset", mock.Anything, "jamie@example.com", "Jamie").Return(assert.AnError)

	err := svc.ResetPassword(context.Background(), 5, "newpassword1")
	assert.NoError(t, err)
}
