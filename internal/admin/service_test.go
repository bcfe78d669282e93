package admin

import (
	"context"
	"testing"

	"reviewpay/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, name, email, passwordHash, role string) (*Admin, error) {
	args := m.Called(ctx, name, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Admin), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Admin), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id int) (*Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Admin), args.Error(1)
}

func (m *MockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]Admin, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Admin), args.Error(1)
}

func (m *MockRepository) SetStatus(ctx context.Context, id int, status string) (*Admin, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Admin), args.Error(1)
}

func (m *MockRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func activeAdmin(t *testing.T, password string) *Admin {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &Admin{
		ID:           3,
		Name:         "Root",
		Email:        "root@reviewpay.com",
		PasswordHash: hash,
		Role:         RoleSuperadmin,
		Status:       StatusActive,
	}
}

func TestService_Login(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, testSecret)

	a := activeAdmin(t, "correct-horse")
	repo.On("FindByEmail", mock.Anything, a.Email).Return(a, nil)

	got, access, refresh, err := svc.Login(context.Background(), LoginRequest{Email: a.Email, Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	claims, err := auth.ValidateToken(access, testSecret)
	require.NoError(t, err)
	assert.Equal(t, a.ID, claims.AdminID)
	assert.Equal(t, RoleSuperadmin, claims.Role)
}

func TestService_Login_WrongPassword(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, testSecret)

	a := activeAdmin(t, "correct-horse")
	repo.On("FindByEmail", mock.Anything, a.Email).Return(a, nil)

	_, _, _, err := svc.Login(context.Background(), LoginRequest{Email: a.Email, Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, testSecret)

	repo.On("FindByEmail", mock.Anything, "nobody@reviewpay.com").Return(nil, ErrAdminNotFound)

	_, _, _, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@reviewpay.com", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_Inactive(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, testSecret)

	a := activeAdmin(t, "correct-horse")
	a.Status = StatusInactive
	repo.On("FindByEmail", mock.Anything, a.Email).Return(a, nil)

	_, _, _, err := svc.Login(context.Background(), LoginRequest{Email: a.Email, Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrAdminInactive)
}

func TestService_RefreshToken(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, testSecret)

	a := activeAdmin(t, "correct-horse")
	refresh, err := auth.GenerateRefreshToken(a.ID, a.Email, a.Role, testSecret)
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, a.ID).Return(a, nil)

	access, got, err := svc.RefreshToken(context.Background(), refresh)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	claims, err := auth.ValidateToken(access, testSecret)
	require.NoError(t, err)
	assert.Equal(t, a.ID, claims.AdminID)
}

func TestService_RefreshToken_AccessTokenRejected(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, testSecret)

	a := activeAdmin(t, "correct-horse")
	access, err := auth.GenerateAccessToken(a.ID, a.Email, a.Role, testSecret)
	require.NoError(t, err)

	_, _, err = svc.RefreshToken(context.Background(), access)
	assert.Error(t, err)
	repo.AssertNotCalled(t, "FindByID")
}

func TestService_Create(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, testSecret)

	repo.On("EmailExists", mock.Anything, "new@reviewpay.com").Return(false, nil)
	repo.On("Create", mock.Anything, "New Admin", "new@reviewpay.com", mock.MatchedBy(func(hash string) bool {
		return auth.CheckPassword(hash, "password123")
	}), RoleAdmin).Return(&Admin{ID: 9, Name: "New Admin", Email: "new@reviewpay.com", Role: RoleAdmin}, nil)

	a, err := svc.Create(context.Background(), CreateRequest{
		Name:     "New Admin",
		Email:    "new@reviewpay.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, a.Role)
	repo.AssertExpectations(t)
}

func TestService_Create_DuplicateEmail(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, testSecret)

	repo.On("EmailExists", mock.Anything, "dupe@reviewpay.com").Return(true, nil)

	_, err := svc.Create(context.Background(), CreateRequest{
		Name:     "Dupe",
		Email:    "dupe@reviewpay.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
	repo.AssertNotCalled(t, "Create")
}
