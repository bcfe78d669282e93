package dashboard

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidMonth = errors.New("month must be in YYYY-MM format")

// IncomeRow is one sparse time-bucketed aggregate as it comes out of SQL.
// Period is "YYYY-MM" for monthly rows and "YYYY-MM-DD" for daily rows.
type IncomeRow struct {
	Period string          `db:"period"`
	Amount decimal.Decimal `db:"amount"`
}

type MonthlyPoint struct {
	Month  string          `json:"month"`
	Review decimal.Decimal `json:"review"`
	Refer  decimal.Decimal `json:"refer"`
	Fees   decimal.Decimal `json:"fees"`
}

type DailyPoint struct {
	Day    string          `json:"day"`
	Review decimal.Decimal `json:"review"`
	Refer  decimal.Decimal `json:"refer"`
}

// MergeMonthly folds sparse per-metric rows into a dense 12-point series for
// the given year. Every month appears exactly once, in order, zero-filled
// where a metric has no row. Rows whose period is not one of the twelve
// canonical keys are ignored.
func MergeMonthly(year int, review, refer, fees []IncomeRow) []MonthlyPoint {
	reviewByKey := indexRows(review)
	referByKey := indexRows(refer)
	feesByKey := indexRows(fees)

	points := make([]MonthlyPoint, 0, 12)
	for m := 1; m <= 12; m++ {
		key := fmt.Sprintf("%04d-%02d", year, m)
		points = append(points, MonthlyPoint{
			Month:  key,
			Review: reviewByKey[key],
			Refer:  referByKey[key],
			Fees:   feesByKey[key],
		})
	}
	return points
}

// MergeDaily folds sparse rows into one point per calendar day of yearMonth
// ("YYYY-MM"), zero-filled, in order. Month length follows the calendar,
// including leap-year February.
func MergeDaily(yearMonth string, review, refer []IncomeRow) ([]DailyPoint, error) {
	start, err := time.Parse("2006-01", yearMonth)
	if err != nil {
		return nil, ErrInvalidMonth
	}

	// Day 0 of the next month is the last day of this one.
	lastDay := time.Date(start.Year(), start.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()

	reviewByKey := indexRows(review)
	referByKey := indexRows(refer)

	points := make([]DailyPoint, 0, lastDay)
	for d := 1; d <= lastDay; d++ {
		key := fmt.Sprintf("%s-%02d", yearMonth, d)
		points = append(points, DailyPoint{
			Day:    key,
			Review: reviewByKey[key],
			Refer:  referByKey[key],
		})
	}
	return points, nil
}

// indexRows keys rows by period. A missing key reads back as decimal zero,
// which is exactly the fill value the dense series needs.
func indexRows(rows []IncomeRow) map[string]decimal.Decimal {
	byKey := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		byKey[row.Period] = row.Amount
	}
	return byKey
}
