package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

var ErrContactNotFound = errors.New("contact message not found")

type Repository interface {
	List(ctx context.Context, filter Filter) ([]Contact, int, error)
	FindByID(ctx context.Context, id int) (*Contact, error)
	SaveReply(ctx context.Context, id int, reply string, repliedBy int, resolve bool) (*Contact, error)
	SetStatus(ctx context.Context, id int, status string) (*Contact, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filter Filter) ([]Contact, int, error) {
	where := []string{}
	args := []interface{}{}

	if filter.Status != "" && filter.Status != "ALL" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d OR subject ILIKE $%d)", len(args), len(args), len(args)))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM contacts"+whereClause, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
	query := fmt.Sprintf("SELECT * FROM contacts%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		whereClause, len(args)-1, len(args))

	contacts := []Contact{}
	if err := r.db.SelectContext(ctx, &contacts, query, args...); err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Contact, error) {
	var ct Contact
	err := r.db.GetContext(ctx, &ct, `SELECT * FROM contacts WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &ct, nil
}

func (r *repository) SaveReply(ctx context.Context, id int, reply string, repliedBy int, resolve bool) (*Contact, error) {
	status := StatusReplied
	if resolve {
		status = StatusResolved
	}

	query := `
		UPDATE contacts
		SET reply = $1, status = $2, replied_by = $3, replied_at = NOW(), updated_at = NOW()
		WHERE id = $4
		RETURNING *
	`

	var ct Contact
	err := r.db.GetContext(ctx, &ct, query, reply, status, repliedBy, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &ct, nil
}

func (r *repository) SetStatus(ctx context.Context, id int, status string) (*Contact, error) {
	query := `
		UPDATE contacts
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING *
	`

	var ct Contact
	err := r.db.GetContext(ctx, &ct, query, status, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &ct, nil
}
