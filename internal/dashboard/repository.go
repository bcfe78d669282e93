package dashboard

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// Summary is the headline block of the admin dashboard.
type Summary struct {
	UserCounts        []StatusCount   `json:"user_status"`
	TotalBalance      decimal.Decimal `json:"total_balance"`
	TotalReviewIncome decimal.Decimal `json:"total_review_income"`
	TotalReferIncome  decimal.Decimal `json:"total_refer_income"`
	TotalWithdrawn    decimal.Decimal `json:"total_withdrawn"`
	PendingReviews    int             `json:"pending_reviews"`
	PendingWithdraws  int             `json:"pending_withdraws"`
	OpenContacts      int             `json:"open_contacts"`
}

type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}

type walletTotals struct {
	TotalBalance      decimal.Decimal `db:"total_balance"`
	TotalReviewIncome decimal.Decimal `db:"total_review_income"`
	TotalReferIncome  decimal.Decimal `db:"total_refer_income"`
	TotalWithdrawn    decimal.Decimal `db:"total_withdrawn"`
}

type Repository interface {
	MonthlyIncome(ctx context.Context, year int) (review, refer, fees []IncomeRow, err error)
	DailyIncome(ctx context.Context, yearMonth string) (review, refer []IncomeRow, err error)
	Summary(ctx context.Context) (*Summary, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) MonthlyIncome(ctx context.Context, year int) ([]IncomeRow, []IncomeRow, []IncomeRow, error) {
	review, err := r.incomeBySource(ctx, "review", `YYYY-MM`, "year", year)
	if err != nil {
		return nil, nil, nil, err
	}

	refer, err := r.incomeBySource(ctx, "refer", `YYYY-MM`, "year", year)
	if err != nil {
		return nil, nil, nil, err
	}

	fees := []IncomeRow{}
	err = r.db.SelectContext(ctx, &fees, `
		SELECT to_char(created_at, 'YYYY-MM') AS period, COALESCE(SUM(fee), 0) AS amount
		FROM transfers
		WHERE EXTRACT(YEAR FROM created_at) = $1
		GROUP BY 1
		ORDER BY 1
	`, year)
	if err != nil {
		return nil, nil, nil, err
	}

	return review, refer, fees, nil
}

func (r *repository) DailyIncome(ctx context.Context, yearMonth string) ([]IncomeRow, []IncomeRow, error) {
	review, err := r.incomeBySource(ctx, "review", `YYYY-MM-DD`, "month", yearMonth)
	if err != nil {
		return nil, nil, err
	}

	refer, err := r.incomeBySource(ctx, "refer", `YYYY-MM-DD`, "month", yearMonth)
	if err != nil {
		return nil, nil, err
	}

	return review, refer, nil
}

func (r *repository) incomeBySource(ctx context.Context, source, format, granularity string, bucket interface{}) ([]IncomeRow, error) {
	rows := []IncomeRow{}

	var query string
	switch granularity {
	case "year":
		query = `
			SELECT to_char(created_at, '` + format + `') AS period, COALESCE(SUM(amount), 0) AS amount
			FROM income_events
			WHERE source = $1 AND EXTRACT(YEAR FROM created_at) = $2
			GROUP BY 1
			ORDER BY 1
		`
	default:
		query = `
			SELECT to_char(created_at, '` + format + `') AS period, COALESCE(SUM(amount), 0) AS amount
			FROM income_events
			WHERE source = $1 AND to_char(created_at, 'YYYY-MM') = $2
			GROUP BY 1
			ORDER BY 1
		`
	}

	if err := r.db.SelectContext(ctx, &rows, query, source, bucket); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Summary(ctx context.Context) (*Summary, error) {
	counts := []StatusCount{}
	err := r.db.SelectContext(ctx, &counts, `
		SELECT status, COUNT(*) AS count
		FROM users
		GROUP BY status
		ORDER BY status
	`)
	if err != nil {
		return nil, err
	}

	var totals walletTotals
	err = r.db.GetContext(ctx, &totals, `
		SELECT COALESCE(SUM(balance), 0)        AS total_balance,
		       COALESCE(SUM(review_income), 0)  AS total_review_income,
		       COALESCE(SUM(refer_income), 0)   AS total_refer_income,
		       COALESCE(SUM(withdrawn_money), 0) AS total_withdrawn
		FROM wallets
	`)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		UserCounts:        counts,
		TotalBalance:      totals.TotalBalance,
		TotalReviewIncome: totals.TotalReviewIncome,
		TotalReferIncome:  totals.TotalReferIncome,
		TotalWithdrawn:    totals.TotalWithdrawn,
	}

	if err := r.db.GetContext(ctx, &summary.PendingReviews, `SELECT COUNT(*) FROM reviews WHERE status = 'PENDING'`); err != nil {
		return nil, err
	}
	if err := r.db.GetContext(ctx, &summary.PendingWithdraws, `SELECT COUNT(*) FROM withdraws WHERE status = 'pending'`); err != nil {
		return nil, err
	}
	if err := r.db.GetContext(ctx, &summary.OpenContacts, `SELECT COUNT(*) FROM contacts WHERE status <> 'RESOLVED'`); err != nil {
		return nil, err
	}

	return summary, nil
}
