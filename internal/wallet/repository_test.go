package wallet

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func setupWalletMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func walletColumns() []string {
	return []string{"id", "user_id", "balance", "review_income", "refer_income", "received_money", "transferred_money", "withdrawn_money", "created_at", "updated_at"}
}

func walletRow(id, userID int, balance string) *sqlmock.Rows {
	return sqlmock.NewRows(walletColumns()).
		AddRow(id, userID, balance, "0", "0", "0", "0", "0", time.Now(), time.Now())
}

func expectUserExists(mock sqlmock.Sqlmock, userID int, exists bool) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(exists))
}

func TestGetOrCreateWallet_WhenNotExists(t *testing.T) {
	repo, mock, close := setupWalletMock(t)
	defer close()

	ctx := context.Background()

	expectUserExists(mock, 10, true)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM wallets WHERE user_id = $1")).
		WithArgs(10).
		WillReturnError(sql.ErrNoRows)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO wallets (user_id) VALUES ($1)")).
		WithArgs(10).
		WillReturnRows(walletRow(5, 10, "0"))

	w, err := repo.GetOrCreateWallet(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 5, w.ID)
	require.True(t, w.Balance.IsZero())
}

func TestGetOrCreateWallet_UserMissing(t *testing.T) {
	repo, mock, close := setupWalletMock(t)
	defer close()

	expectUserExists(mock, 99, false)

	_, err := repo.GetOrCreateWallet(context.Background(), 99)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestApplyAdjustment_Bonus(t *testing.T) {
	repo, mock, close := setupWalletMock(t)
	defer close()

	ctx := context.Background()
	amount := decimal.RequireFromString("10.00")

	mock.ExpectBegin()
	expectUserExists(mock, 20, true)

	mock.ExpectQuery(regexp.QuoteMeta("FROM wallets WHERE user_id = $1 FOR UPDATE")).
		WithArgs(20).
		WillReturnRows(walletRow(7, 20, "5.00"))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE wallets SET balance = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs(decimal.RequireFromString("15.00"), 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO wallet_adjustments (user_id, kind, amount, note, created_by)")).
		WithArgs(20, KindBonus, amount, "welcome", 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "kind", "amount", "note", "created_by", "created_at"}).
			AddRow(1, 20, KindBonus, "10.00", "welcome", 3, time.Now()))

	mock.ExpectCommit()

	w, adj, err := repo.ApplyAdjustment(ctx, 20, KindBonus, amount, "welcome", 3)
	require.NoError(t, err)
	require.True(t, w.Balance.Equal(decimal.RequireFromString("15.00")))
	require.Equal(t, KindBonus, adj.Kind)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyAdjustment_PenaltyBelowZero(t *testing.T) {
	repo, mock, close := setupWalletMock(t)
	defer close()

	mock.ExpectBegin()
	expectUserExists(mock, 20, true)

	mock.ExpectQuery(regexp.QuoteMeta("FROM wallets WHERE user_id = $1 FOR UPDATE")).
		WithArgs(20).
		WillReturnRows(walletRow(7, 20, "15.00"))

	mock.ExpectRollback()

	_, _, err := repo.ApplyAdjustment(context.Background(), 20, KindPenalty, decimal.RequireFromString("20.00"), "fine", 3)
	require.ErrorIs(t, err, ErrInsufficientBalance)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyAdjustment_PenaltyToExactZero(t *testing.T) {
	repo, mock, close := setupWalletMock(t)
	defer close()

	mock.ExpectBegin()
	expectUserExists(mock, 20, true)

	mock.ExpectQuery(regexp.QuoteMeta("FROM wallets WHERE user_id = $1 FOR UPDATE")).
		WithArgs(20).
		WillReturnRows(walletRow(7, 20, "15.00"))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE wallets SET balance = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs(decimal.RequireFromString("0.00"), 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO wallet_adjustments (user_id, kind, amount, note, created_by)")).
		WithArgs(20, KindPenalty, decimal.RequireFromString("15.00"), "", 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "kind", "amount", "note", "created_by", "created_at"}).
			AddRow(2, 20, KindPenalty, "15.00", "", 3, time.Now()))

	mock.ExpectCommit()

	w, _, err := repo.ApplyAdjustment(context.Background(), 20, KindPenalty, decimal.RequireFromString("15.00"), "", 3)
	require.NoError(t, err)
	require.True(t, w.Balance.IsZero())
}

func TestApplyAdjustment_UserMissing(t *testing.T) {
	repo, mock, close := setupWalletMock(t)
	defer close()

	mock.ExpectBegin()
	expectUserExists(mock, 404, false)
	mock.ExpectRollback()

	_, _, err := repo.ApplyAdjustment(context.Background(), 404, KindBonus, decimal.RequireFromString("1.00"), "", 3)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestListAdjustments_FiltersByKind(t *testing.T) {
	repo, mock, close := setupWalletMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM wallet_adjustments wa JOIN users u ON u.id = wa.user_id WHERE wa.kind = $1")).
		WithArgs(KindBonus).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY wa.created_at DESC, wa.id DESC LIMIT $2 OFFSET $3")).
		WithArgs(KindBonus, 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "kind", "amount", "note", "created_by", "created_at", "user_name", "user_email"}).
			AddRow(1, 20, KindBonus, "10.00", "welcome", 3, time.Now(), "Jamie", "jamie@example.com"))

	adjs, total, err := repo.ListAdjustments(context.Background(), AdjustmentFilter{Kind: KindBonus, Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, adjs, 1)
	require.Equal(t, "Jamie", adjs[0].UserName)
}
