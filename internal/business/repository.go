package business

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

var (
	ErrBusinessNotFound = errors.New("business not found")
	ErrImageNotFound    = errors.New("business image not found")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filter Filter) ([]Business, int, error) {
	where := ""
	args := []interface{}{}

	if filter.Search != "" {
		where = " WHERE (name ILIKE $1 OR category ILIKE $1 OR address ILIKE $1)"
		args = append(args, "%"+filter.Search+"%")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM businesses"+where, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
	query := fmt.Sprintf("SELECT * FROM businesses%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args))

	businesses := []Business{}
	if err := r.db.SelectContext(ctx, &businesses, query, args...); err != nil {
		return nil, 0, err
	}

	return businesses, total, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*BusinessWithImages, error) {
	var b Business
	err := r.db.GetContext(ctx, &b, `SELECT * FROM businesses WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	images := []Image{}
	err = r.db.SelectContext(ctx, &images,
		`SELECT * FROM business_images WHERE business_id = $1 ORDER BY sort_order, id`, id)
	if err != nil {
		return nil, err
	}

	return &BusinessWithImages{Business: b, Images: images}, nil
}

func (r *repository) Create(ctx context.Context, req SaveRequest) (*Business, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	query := `
		INSERT INTO businesses (name, category, address, phone, website, description, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING *
	`

	var b Business
	err := r.db.GetContext(ctx, &b, query,
		req.Name, req.Category, req.Address, req.Phone, req.Website, req.Description, isActive)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) Update(ctx context.Context, id int, req SaveRequest) (*Business, error) {
	set := []string{"name = $1", "category = $2", "address = $3", "phone = $4", "website = $5", "description = $6", "updated_at = NOW()"}
	args := []interface{}{req.Name, req.Category, req.Address, req.Phone, req.Website, req.Description}

	if req.IsActive != nil {
		args = append(args, *req.IsActive)
		set = append(set, fmt.Sprintf("is_active = $%d", len(args)))
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE businesses SET %s WHERE id = $%d RETURNING *`,
		strings.Join(set, ", "), len(args))

	var b Business
	err := r.db.GetContext(ctx, &b, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Delete removes the business and its image rows, returning the file paths
// of the deleted images so the caller can unlink them from disk.
func (r *repository) Delete(ctx context.Context, id int) ([]string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	paths := []string{}
	err = tx.SelectContext(ctx, &paths,
		`SELECT file_path FROM business_images WHERE business_id = $1`, id)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM business_images WHERE business_id = $1`, id); err != nil {
		return nil, err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM businesses WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrBusinessNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return paths, nil
}

func (r *repository) AddImage(ctx context.Context, businessID int, filePath string, sortOrder int) (*Image, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM businesses WHERE id = $1)`, businessID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrBusinessNotFound
	}

	query := `
		INSERT INTO business_images (business_id, file_path, sort_order)
		VALUES ($1, $2, $3)
		RETURNING *
	`

	var img Image
	if err := r.db.GetContext(ctx, &img, query, businessID, filePath, sortOrder); err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *repository) UpdateImage(ctx context.Context, imageID, sortOrder int) (*Image, error) {
	query := `
		UPDATE business_images
		SET sort_order = $1
		WHERE id = $2
		RETURNING *
	`

	var img Image
	err := r.db.GetContext(ctx, &img, query, sortOrder, imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	return &img, nil
}

func (r *repository) DeleteImage(ctx context.Context, imageID int) (string, error) {
	var path string
	err := r.db.GetContext(ctx, &path,
		`DELETE FROM business_images WHERE id = $1 RETURNING file_path`, imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrImageNotFound
		}
		return "", err
	}
	return path, nil
}
