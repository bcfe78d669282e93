package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrNotPending     = errors.New("review already moderated")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filter Filter) ([]ReviewWithUser, int, error) {
	where := []string{}
	args := []interface{}{}

	if filter.Status != "" && filter.Status != "ALL" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("r.status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("(u.name ILIKE $%d OR u.email ILIKE $%d OR b.name ILIKE $%d)", len(args), len(args), len(args)))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		JOIN businesses b ON b.id = r.business_id
		%s
	`, whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
	listQuery := fmt.Sprintf(`
		SELECT r.id, r.user_id, r.business_id, r.rating, r.content, r.image_url, r.status,
		       r.reward_amount, r.created_at, r.updated_at,
		       u.name AS user_name, u.email AS user_email, b.name AS business_name
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		JOIN businesses b ON b.id = r.business_id
		%s
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, len(args)-1, len(args))

	reviews := []ReviewWithUser{}
	if err := r.db.SelectContext(ctx, &reviews, listQuery, args...); err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Review, error) {
	var rev Review
	err := r.db.GetContext(ctx, &rev, `SELECT * FROM reviews WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &rev, nil
}

// Approve marks a pending review approved and credits the reviewer's wallet
// with the reward inside one transaction. The review row is locked first so a
// double approval cannot pay out twice.
func (r *repository) Approve(ctx context.Context, id int) (*Review, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var rev Review
	err = tx.QueryRowxContext(ctx,
		`SELECT * FROM reviews WHERE id = $1 FOR UPDATE`, id,
	).StructScan(&rev)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	if rev.Status != StatusPending {
		return nil, ErrNotPending
	}

	err = tx.QueryRowxContext(ctx,
		`UPDATE reviews
		 SET status = $1, updated_at = NOW()
		 WHERE id = $2
		 RETURNING *`,
		StatusApproved, id,
	).StructScan(&rev)
	if err != nil {
		return nil, err
	}

	if rev.RewardAmount.IsPositive() {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO wallets (user_id)
			 VALUES ($1)
			 ON CONFLICT (user_id) DO NOTHING`,
			rev.UserID,
		)
		if err != nil {
			return nil, err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE wallets
			 SET balance = balance + $1, review_income = review_income + $1, updated_at = NOW()
			 WHERE user_id = $2`,
			rev.RewardAmount, rev.UserID,
		)
		if err != nil {
			return nil, err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO income_events (user_id, source, amount)
			 VALUES ($1, 'review', $2)`,
			rev.UserID, rev.RewardAmount,
		)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &rev, nil
}

func (r *repository) Reject(ctx context.Context, id int) (*Review, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var rev Review
	err = tx.QueryRowxContext(ctx,
		`SELECT * FROM reviews WHERE id = $1 FOR UPDATE`, id,
	).StructScan(&rev)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	if rev.Status != StatusPending {
		return nil, ErrNotPending
	}

	err = tx.QueryRowxContext(ctx,
		`UPDATE reviews
		 SET status = $1, updated_at = NOW()
		 WHERE id = $2
		 RETURNING *`,
		StatusRejected, id,
	).StructScan(&rev)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &rev, nil
}
