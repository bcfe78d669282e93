package withdraw

import (
	"context"
	"os"
	"testing"

	"reviewpay/internal/logger"

	"github.com/shopspring/decimal"
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

func (m *MockRepository) List(ctx context.Context, filter Filter) ([]WithdrawWithUser, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]WithdrawWithUser), args.Int(1), args.Error(2)
}

func (m *MockRepository) FindByID(ctx context.Context, id int) (*Withdraw, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Withdraw), args.Error(1)
}

func (m *MockRepository) Approve(ctx context.Context, id, decidedBy int, note string) (*Withdraw, error) {
	args := m.Called(ctx, id, decidedBy, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Withdraw), args.Error(1)
}

func (m *MockRepository) Reject(ctx context.Context, id, decidedBy int, note string) (*Withdraw, error) {
	args := m.Called(ctx, id, decidedBy, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Withdraw), args.Error(1)
}

type MockUserLookup struct {
	mock.Mock
}

func (m *MockUserLookup) NameEmail(ctx context.Context, userID int) (string, string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.String(1), args.Error(2)
}

type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendWithdrawDecision(ctx context.Context, to, name, status, amount string) error {
	args := m.Called(ctx, to, name, status, amount)
	return args.Error(0)
}

func TestService_Decide_Approve(t *testing.T) {
	repo := new(MockRepository)
	users := new(MockUserLookup)
	emails := new(MockEmailSender)
	svc := NewService(repo, users, emails)

	repo.On("Approve", mock.Anything, 1, 3, "ok").
		Return(&Withdraw{ID: 1, UserID: 20, Amount: decimal.RequireFromString("50.00"), Status: StatusApproved}, nil)
	users.On("NameEmail", mock.Anything, 20).Return("Jamie", "jamie@example.com", nil)
	emails.On("SendWithdrawDecision", mock.Anything, "jamie@example.com", "Jamie", StatusApproved, "50.00").Return(nil)

	w, err := svc.Decide(context.Background(), 1, 3, StatusRequest{Status: StatusApproved, Note: "ok"})
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, w.Status)
	repo.AssertExpectations(t)
	emails.AssertExpectations(t)
}

func TestService_Decide_Reject(t *testing.T) {
	repo := new(MockRepository)
	users := new(MockUserLookup)
	emails := new(MockEmailSender)
	svc := NewService(repo, users, emails)

	repo.On("Reject", mock.Anything, 1, 3, "").
		Return(&Withdraw{ID: 1, UserID: 20, Amount: decimal.RequireFromString("50.00"), Status: StatusRejected}, nil)
	users.On("NameEmail", mock.Anything, 20).Return("Jamie", "jamie@example.com", nil)
	emails.On("SendWithdrawDecision", mock.Anything, "jamie@example.com", "Jamie", StatusRejected, "50.00").Return(nil)

	w, err := svc.Decide(context.Background(), 1, 3, StatusRequest{Status: StatusRejected})
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, w.Status)
	repo.AssertNotCalled(t, "Approve")
}

func TestService_Decide_InvalidStatus(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil, nil)

	_, err := svc.Decide(context.Background(), 1, 3, StatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	repo.AssertNotCalled(t, "Approve")
	repo.AssertNotCalled(t, "Reject")
}

func TestService_Decide_EmailFailureIsNotFatal(t *testing.T) {
	repo := new(MockRepository)
	users := new(MockUserLookup)
	emails := new(MockEmailSender)
	svc := NewService(repo, users, emails)

	repo.On("Approve", mock.Anything, 1, 3, "").
		Return(&Withdraw{ID: 1, UserID: 20, Amount: decimal.RequireFromString("50.00"), Status: StatusApproved}, nil)
	users.On("NameEmail", mock.Anything, 20).Return("Jamie", "jamie@example.com", nil)
	emails.On("SendWithdrawDecision", mock.Anything, "jamie@example.com", "Jamie", StatusApproved, "50.00").Return(assert.AnError)

	_, err := svc.Decide(context.Background(), 1, 3, StatusRequest{Status: StatusApproved})
	assert.NoError(t, err)
}
