package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOrCreateWallet(ctx context.Context, userID int) (*Wallet, error) {
	exists, err := r.userExists(ctx, r.db, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	w := &Wallet{}
	err = r.db.GetContext(ctx, w, `SELECT * FROM wallets WHERE user_id = $1`, userID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	err = r.db.QueryRowxContext(ctx,
		`INSERT INTO wallets (user_id)
		 VALUES ($1)
		 RETURNING id, user_id, balance, review_income, refer_income, received_money, transferred_money, withdrawn_money, created_at, updated_at`,
		userID,
	).StructScan(w)
	if err != nil {
		return nil, err
	}

	return w, nil
}

func (r *repository) GetOverview(ctx context.Context, userID int) (*Overview, error) {
	var u UserInfo
	err := r.db.GetContext(ctx, &u,
		`SELECT id, name, email, status FROM users WHERE id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	w, err := r.GetOrCreateWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Overview{User: u, Wallet: *w}, nil
}

// ApplyAdjustment applies one BONUS/PENALTY instruction inside a single
// transaction. The wallet row is locked for the duration so two concurrent
// adjustments cannot read the same stale balance. Nothing is persisted when
// a penalty would drive the balance below zero.
func (r *repository) ApplyAdjustment(ctx context.Context, userID int, kind string, amount decimal.Decimal, note string, createdBy int) (*Wallet, *Adjustment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	exists, err := r.userExists(ctx, tx, userID)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, ErrUserNotFound
	}

	var w Wallet
	err = tx.QueryRowxContext(ctx,
		`SELECT id, user_id, balance, review_income, refer_income, received_money, transferred_money, withdrawn_money, created_at, updated_at
		 FROM wallets
		 WHERE user_id = $1
		 FOR UPDATE`,
		userID,
	).StructScan(&w)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = tx.QueryRowxContext(ctx,
				`INSERT INTO wallets (user_id)
				 VALUES ($1)
				 RETURNING id, user_id, balance, review_income, refer_income, received_money, transferred_money, withdrawn_money, created_at, updated_at`,
				userID,
			).StructScan(&w)
			if err != nil {
				return nil, nil, err
			}
		} else {
			return nil, nil, err
		}
	}

	delta := amount
	if kind == KindPenalty {
		delta = amount.Neg()
	}

	newBalance := w.Balance.Add(delta)
	if newBalance.IsNegative() {
		return nil, nil, ErrInsufficientBalance
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE wallets
		 SET balance = $1, updated_at = NOW()
		 WHERE id = $2`,
		newBalance, w.ID,
	)
	if err != nil {
		return nil, nil, err
	}

	var adj Adjustment
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO wallet_adjustments (user_id, kind, amount, note, created_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, kind, amount, note, created_by, created_at`,
		userID, kind, amount, note, createdBy,
	).StructScan(&adj)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	w.Balance = newBalance
	return &w, &adj, nil
}

func (r *repository) ListAdjustments(ctx context.Context, filter AdjustmentFilter) ([]AdjustmentWithUser, int, error) {
	where := []string{}
	args := []interface{}{}

	if filter.UserID > 0 {
		args = append(args, filter.UserID)
		where = append(where, fmt.Sprintf("wa.user_id = $%d", len(args)))
	}
	if filter.Kind != "" {
		args = append(args, filter.Kind)
		where = append(where, fmt.Sprintf("wa.kind = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("(u.name ILIKE $%d OR u.email ILIKE $%d)", len(args), len(args)))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM wallet_adjustments wa
		JOIN users u ON u.id = wa.user_id
		%s
	`, whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	args = append(args, pageSize, (page-1)*pageSize)
	listQuery := fmt.Sprintf(`
		SELECT wa.id, wa.user_id, wa.kind, wa.amount, wa.note, wa.created_by, wa.created_at,
		       u.name AS user_name, u.email AS user_email
		FROM wallet_adjustments wa
		JOIN users u ON u.id = wa.user_id
		%s
		ORDER BY wa.created_at DESC, wa.id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, len(args)-1, len(args))

	adjs := []AdjustmentWithUser{}
	if err := r.db.SelectContext(ctx, &adjs, listQuery, args...); err != nil {
		return nil, 0, err
	}

	return adjs, total, nil
}

func (r *repository) userExists(ctx context.Context, q sqlx.QueryerContext, userID int) (bool, error) {
	var exists bool
	row := q.QueryRowxContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
