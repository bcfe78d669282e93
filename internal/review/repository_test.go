package review

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

func setupReviewMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func reviewColumns() []string {
	return []string{"id", "user_id", "business_id", "rating", "content", "image_url", "status", "reward_amount", "created_at", "updated_at"}
}

func reviewRow(id, userID int, status, reward string) *sqlmock.Rows {
	return sqlmock.NewRows(reviewColumns()).
		AddRow(id, userID, 2, 5, "great", "", status, reward, time.Now(), time.Now())
}

func TestApprove_CreditsReviewerWallet(t *testing.T) {
	repo, mock, close := setupReviewMock(t)
	defer close()

	reward := decimal.RequireFromString("2.50")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM reviews WHERE id = $1 FOR UPDATE")).
		WithArgs(1).
		WillReturnRows(reviewRow(1, 20, StatusPending, "2.50"))

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE reviews")).
		WithArgs(StatusApproved, 1).
		WillReturnRows(reviewRow(1, 20, StatusApproved, "2.50"))

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO wallets (user_id)")).
		WithArgs(20).
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectExec(regexp.QuoteMeta("SET balance = balance + $1, review_income = review_income + $1")).
		WithArgs(reward, 20).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO income_events (user_id, source, amount)")).
		WithArgs(20, reward).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectCommit()

	rev, err := repo.Approve(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, StatusApproved, rev.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApprove_AlreadyModerated(t *testing.T) {
	repo, mock, close := setupReviewMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM reviews WHERE id = $1 FOR UPDATE")).
		WithArgs(1).
		WillReturnRows(reviewRow(1, 20, StatusApproved, "2.50"))
	mock.ExpectRollback()

	_, err := repo.Approve(context.Background(), 1)
	require.ErrorIs(t, err, ErrNotPending)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApprove_ZeroRewardSkipsWallet(t *testing.T) {
	repo, mock, close := setupReviewMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM reviews WHERE id = $1 FOR UPDATE")).
		WithArgs(1).
		WillReturnRows(reviewRow(1, 20, StatusPending, "0"))

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE reviews")).
		WithArgs(StatusApproved, 1).
		WillReturnRows(reviewRow(1, 20, StatusApproved, "0"))

	mock.ExpectCommit()

	rev, err := repo.Approve(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, rev.RewardAmount.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReject_Pending(t *testing.T) {
	repo, mock, close := setupReviewMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM reviews WHERE id = $1 FOR UPDATE")).
		WithArgs(1).
		WillReturnRows(reviewRow(1, 20, StatusPending, "2.50"))

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE reviews")).
		WithArgs(StatusRejected, 1).
		WillReturnRows(reviewRow(1, 20, StatusRejected, "2.50"))

	mock.ExpectCommit()

	rev, err := repo.Reject(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, StatusRejected, rev.Status)
}

func TestApprove_NotFound(t *testing.T) {
	repo, mock, close := setupReviewMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM reviews WHERE id = $1 FOR UPDATE")).
		WithArgs(404).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Approve(context.Background(), 404)
	require.ErrorIs(t, err, ErrReviewNotFound)
}
