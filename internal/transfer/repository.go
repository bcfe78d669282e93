package transfer

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	List(ctx context.Context, filter Filter) ([]TransferWithUsers, int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filter Filter) ([]TransferWithUsers, int, error) {
	where := []string{}
	args := []interface{}{}

	if filter.UserID > 0 {
		args = append(args, filter.UserID)
		where = append(where, fmt.Sprintf("(t.sender_id = $%d OR t.receiver_id = $%d)", len(args), len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("(s.name ILIKE $%d OR s.email ILIKE $%d OR rc.name ILIKE $%d OR rc.email ILIKE $%d)",
			len(args), len(args), len(args), len(args)))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM transfers t
		JOIN users s ON s.id = t.sender_id
		JOIN users rc ON rc.id = t.receiver_id
		%s
	`, whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
	listQuery := fmt.Sprintf(`
		SELECT t.id, t.sender_id, t.receiver_id, t.amount, t.fee, t.note, t.created_at,
		       s.name AS sender_name, s.email AS sender_email,
		       rc.name AS receiver_name, rc.email AS receiver_email
		FROM transfers t
		JOIN users s ON s.id = t.sender_id
		JOIN users rc ON rc.id = t.receiver_id
		%s
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, len(args)-1, len(args))

	transfers := []TransferWithUsers{}
	if err := r.db.SelectContext(ctx, &transfers, listQuery, args...); err != nil {
		return nil, 0, err
	}

	return transfers, total, nil
}
