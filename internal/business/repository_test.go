package business

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupBusinessMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func businessColumns() []string {
	return []string{"id", "name", "category", "address", "phone", "website", "description", "is_active", "created_at", "updated_at"}
}

func businessRow(id int, name string) *sqlmock.Rows {
	return sqlmock.NewRows(businessColumns()).
		AddRow(id, name, "restaurant", "12 Main St", "555-0100", "", "", true, time.Now(), time.Now())
}

func TestCreate(t *testing.T) {
	repo, mock, close := setupBusinessMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO businesses (name, category, address, phone, website, description, is_active)")).
		WithArgs("Cafe Nine", "restaurant", "12 Main St", "555-0100", "", "", true).
		WillReturnRows(businessRow(1, "Cafe Nine"))

	b, err := repo.Create(context.Background(), SaveRequest{
		Name:     "Cafe Nine",
		Category: "restaurant",
		Address:  "12 Main St",
		Phone:    "555-0100",
	})
	require.NoError(t, err)
	require.Equal(t, "Cafe Nine", b.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_ReturnsImagePaths(t *testing.T) {
	repo, mock, close := setupBusinessMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT file_path FROM business_images WHERE business_id = $1")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"file_path"}).
			AddRow("uploads/businesses/1_a.jpg").
			AddRow("uploads/businesses/1_b.jpg"))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM business_images WHERE business_id = $1")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 2))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM businesses WHERE id = $1")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectCommit()

	paths, err := repo.Delete(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, close := setupBusinessMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT file_path FROM business_images WHERE business_id = $1")).
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows([]string{"file_path"}))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM business_images WHERE business_id = $1")).
		WithArgs(404).
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM businesses WHERE id = $1")).
		WithArgs(404).
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectRollback()

	_, err := repo.Delete(context.Background(), 404)
	require.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestAddImage_BusinessMissing(t *testing.T) {
	repo, mock, close := setupBusinessMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM businesses WHERE id = $1)")).
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := repo.AddImage(context.Background(), 404, "uploads/businesses/x.jpg", 0)
	require.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestDeleteImage(t *testing.T) {
	repo, mock, close := setupBusinessMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM business_images WHERE id = $1 RETURNING file_path")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"file_path"}).AddRow("uploads/businesses/1_a.jpg"))

	path, err := repo.DeleteImage(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "uploads/businesses/1_a.jpg", path)
}
