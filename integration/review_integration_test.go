package integration_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"reviewpay/internal/review"
	"reviewpay/internal/wallet"
	"reviewpay/internal/withdraw"
)

func createTestBusiness(t *testing.T, db *sqlx.DB, name string) int {
	var businessID int
	err := db.QueryRow(`
		INSERT INTO businesses (name, category)
		VALUES ($1, 'restaurant')
		RETURNING id
	`, name).Scan(&businessID)

	require.NoError(t, err)
	return businessID
}

func createPendingReview(t *testing.T, db *sqlx.DB, userID, businessID int, reward string) int {
	var reviewID int
	err := db.QueryRow(`
		INSERT INTO reviews (user_id, business_id, rating, content, status, reward_amount)
		VALUES ($1, $2, 5, 'Great place', 'PENDING', $3)
		RETURNING id
	`, userID, businessID, reward).Scan(&reviewID)

	require.NoError(t, err)
	return reviewID
}

func TestReviewApproveCreditsWallet_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	cleanTables(t, db, "income_events", "reviews", "businesses", "wallet_adjustments", "wallets", "admins", "users")

	reviewRepo := review.NewRepository(db)
	walletRepo := wallet.NewRepository(db)
	ctx := context.Background()

	userID := createTestUser(t, db, "reviewer@test.com", "Reviewer")
	businessID := createTestBusiness(t, db, "Cafe One")
	reviewID := createPendingReview(t, db, userID, businessID, "7.50")

	rv, err := reviewRepo.Approve(ctx, reviewID)
	require.NoError(t, err)
	require.Equal(t, review.StatusApproved, rv.Status)

	w, err := walletRepo.GetOrCreateWallet(ctx, userID)
	require.NoError(t, err)
	require.True(t, w.Balance.Equal(decimal.RequireFromString("7.50")))
	require.True(t, w.ReviewIncome.Equal(decimal.RequireFromString("7.50")))

	var events int
	err = db.Get(&events, `SELECT COUNT(*) FROM income_events WHERE user_id = $1 AND source = 'review'`, userID)
	require.NoError(t, err)
	require.Equal(t, 1, events)

	// A second approval must not pay out twice
	_, err = reviewRepo.Approve(ctx, reviewID)
	require.Equal(t, review.ErrNotPending, err)

	w, err = walletRepo.GetOrCreateWallet(ctx, userID)
	require.NoError(t, err)
	require.True(t, w.Balance.Equal(decimal.RequireFromString("7.50")))
}

func TestWithdrawApproveDebitsWallet_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	cleanTables(t, db, "withdraws", "wallet_adjustments", "wallets", "admins", "users")

	walletRepo := wallet.NewRepository(db)
	withdrawRepo := withdraw.NewRepository(db)
	ctx := context.Background()

	userID := createTestUser(t, db, "payout@test.com", "Payout User")
	adminID := createTestAdmin(t, db, "payout-admin@test.com")

	_, _, err := walletRepo.ApplyAdjustment(ctx, userID, wallet.KindBonus, decimal.NewFromInt(100), "seed", adminID)
	require.NoError(t, err)

	var withdrawID int
	err = db.QueryRow(`
		INSERT INTO withdraws (user_id, amount, method, account_number, status)
		VALUES ($1, 60, 'bank', '12345678', 'pending')
		RETURNING id
	`, userID).Scan(&withdrawID)
	require.NoError(t, err)

	wd, err := withdrawRepo.Approve(ctx, withdrawID, adminID, "ok")
	require.NoError(t, err)
	require.Equal(t, withdraw.StatusApproved, wd.Status)
	require.NotNil(t, wd.DecidedBy)
	require.Equal(t, adminID, *wd.DecidedBy)

	w, err := walletRepo.GetOrCreateWallet(ctx, userID)
	require.NoError(t, err)
	require.True(t, w.Balance.Equal(decimal.NewFromInt(40)))
	require.True(t, w.WithdrawnMoney.Equal(decimal.NewFromInt(60)))

	_, err = withdrawRepo.Approve(ctx, withdrawID, adminID, "again")
	require.Equal(t, withdraw.ErrNotPending, err)
}
