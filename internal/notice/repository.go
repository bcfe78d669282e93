package notice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNoticeNotFound = errors.New("notice not found")

type Repository interface {
	List(ctx context.Context, activeOnly bool) ([]Notice, error)
	FindByID(ctx context.Context, id int) (*Notice, error)
	Create(ctx context.Context, req SaveRequest, filePath string) (*Notice, error)
	Update(ctx context.Context, id int, req SaveRequest, filePath *string) (*Notice, error)
	SetActive(ctx context.Context, id int, active bool) (*Notice, error)
	Delete(ctx context.Context, id int) (string, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]Notice, error) {
	query := `SELECT * FROM notices`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY serial, created_at DESC`

	notices := []Notice{}
	if err := r.db.SelectContext(ctx, &notices, query); err != nil {
		return nil, err
	}
	return notices, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Notice, error) {
	var n Notice
	err := r.db.GetContext(ctx, &n, `SELECT * FROM notices WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoticeNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *repository) Create(ctx context.Context, req SaveRequest, filePath string) (*Notice, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	query := `
		INSERT INTO notices (title, content, file_path, serial, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`

	var n Notice
	err := r.db.GetContext(ctx, &n, query, req.Title, req.Content, filePath, req.Serial, isActive)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Update replaces the stored file path only when filePath is non-nil, so an
// update without a new upload keeps the existing attachment.
func (r *repository) Update(ctx context.Context, id int, req SaveRequest, filePath *string) (*Notice, error) {
	query := `
		UPDATE notices
		SET title = $1, content = $2, serial = $3,
		    is_active = COALESCE($4, is_active),
		    file_path = COALESCE($5, file_path),
		    updated_at = NOW()
		WHERE id = $6
		RETURNING *
	`

	var n Notice
	err := r.db.GetContext(ctx, &n, query, req.Title, req.Content, req.Serial, req.IsActive, filePath, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoticeNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *repository) SetActive(ctx context.Context, id int, active bool) (*Notice, error) {
	query := `
		UPDATE notices
		SET is_active = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING *
	`

	var n Notice
	err := r.db.GetContext(ctx, &n, query, active, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoticeNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *repository) Delete(ctx context.Context, id int) (string, error) {
	var path string
	err := r.db.GetContext(ctx, &path,
		`DELETE FROM notices WHERE id = $1 RETURNING COALESCE(file_path, '')`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNoticeNotFound
		}
		return "", err
	}
	return path, nil
}
