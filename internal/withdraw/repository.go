package withdraw

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
	ErrWithdrawNotFound    = errors.New("withdraw request not found")
	ErrNotPending          = errors.New("withdraw request already decided")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filter Filter) ([]WithdrawWithUser, int, error) {
	where := []string{}
	args := []interface{}{}

	if filter.UserID > 0 {
		args = append(args, filter.UserID)
		where = append(where, fmt.Sprintf("w.user_id = $%d", len(args)))
	}
	if filter.Status != "" && filter.Status != "all" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("w.status = $%d", len(args)))
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
		FROM withdraws w
		JOIN users u ON u.id = w.user_id
		%s
	`, whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
	listQuery := fmt.Sprintf(`
		SELECT w.id, w.user_id, w.amount, w.method, w.account_number, w.status, w.note,
		       w.decided_by, w.decided_at, w.created_at, w.updated_at,
		       u.name AS user_name, u.email AS user_email
		FROM withdraws w
		JOIN users u ON u.id = w.user_id
		%s
		ORDER BY w.created_at DESC, w.id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, len(args)-1, len(args))

	withdraws := []WithdrawWithUser{}
	if err := r.db.SelectContext(ctx, &withdraws, listQuery, args...); err != nil {
		return nil, 0, err
	}

	return withdraws, total, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Withdraw, error) {
	var w Withdraw
	err := r.db.GetContext(ctx, &w, `SELECT * FROM withdraws WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWithdrawNotFound
		}
		return nil, err
	}
	return &w, nil
}

// Approve debits the user's wallet and marks the request approved in one
// transaction. Request and wallet rows are both locked; the wallet balance
// may not go below zero.
func (r *repository) Approve(ctx context.Context, id, decidedBy int, note string) (*Withdraw, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	w, err := r.lockPending(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	var balance decimal.Decimal
	err = tx.QueryRowxContext(ctx,
		`SELECT balance FROM wallets WHERE user_id = $1 FOR UPDATE`,
		w.UserID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInsufficientBalance
		}
		return nil, err
	}

	if balance.LessThan(w.Amount) {
		return nil, ErrInsufficientBalance
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE wallets
		 SET balance = balance - $1, withdrawn_money = withdrawn_money + $1, updated_at = NOW()
		 WHERE user_id = $2`,
		w.Amount, w.UserID,
	)
	if err != nil {
		return nil, err
	}

	w, err = r.decide(ctx, tx, id, StatusApproved, decidedBy, note)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return w, nil
}

func (r *repository) Reject(ctx context.Context, id, decidedBy int, note string) (*Withdraw, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := r.lockPending(ctx, tx, id); err != nil {
		return nil, err
	}

	w, err := r.decide(ctx, tx, id, StatusRejected, decidedBy, note)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return w, nil
}

func (r *repository) lockPending(ctx context.Context, tx *sqlx.Tx, id int) (*Withdraw, error) {
	var w Withdraw
	err := tx.QueryRowxContext(ctx,
		`SELECT * FROM withdraws WHERE id = $1 FOR UPDATE`, id,
	).StructScan(&w)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWithdrawNotFound
		}
		return nil, err
	}

	if w.Status != StatusPending {
		return nil, ErrNotPending
	}
	return &w, nil
}

type userLookup struct {
	db *sqlx.DB
}

func NewUserLookup(db *sqlx.DB) UserLookup {
	return &userLookup{db: db}
}

func (l *userLookup) NameEmail(ctx context.Context, userID int) (string, string, error) {
	var row struct {
		Name  string `db:"name"`
		Email string `db:"email"`
	}
	err := l.db.GetContext(ctx, &row, `SELECT name, email FROM users WHERE id = $1`, userID)
	if err != nil {
		return "", "", err
	}
	return row.Name, row.Email, nil
}

func (r *repository) decide(ctx context.Context, tx *sqlx.Tx, id int, status string, decidedBy int, note string) (*Withdraw, error) {
	var w Withdraw
	err := tx.QueryRowxContext(ctx,
		`UPDATE withdraws
		 SET status = $1, note = $2, decided_by = $3, decided_at = NOW(), updated_at = NOW()
		 WHERE id = $4
		 RETURNING *`,
		status, note, decidedBy, id,
	).StructScan(&w)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
