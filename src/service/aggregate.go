package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"budgetwise-server/src/models"

	"github.com/shopspring/decimal"
)

// MonthlySummaryRow is one calendar-month bucket. Name is the 3-letter
// month abbreviation; rows from different years keep their own bucket
// even when the label collides across a year boundary.
type MonthlySummaryRow struct {
	Name    string          `json:"name"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

type CategorySummaryRow struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// WeeklySavingsRow labels buckets positionally ("Week 1", "Week 2", …)
// in ascending calendar order, not by the actual week-of-year number.
type WeeklySavingsRow struct {
	Name    string          `json:"name"`
	Savings decimal.Decimal `json:"savings"`
}

// Aggregator computes derived reports over a user's transaction
// history. It is stateless; every call fetches its own working set.
type Aggregator struct {
	store TransactionStore
	dir   Directory
	clock Clock
}

func NewAggregator(store TransactionStore, dir Directory, clock Clock) *Aggregator {
	return &Aggregator{store: store, dir: dir, clock: clock}
}

func (a *Aggregator) requireUser(ctx context.Context, userID int64) error {
	user, err := a.dir.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return nil
}

// typeTotals accumulates per-type amounts for one bucket. The zero
// value starts both totals at exact zero.
type typeTotals struct {
	income  decimal.Decimal
	expense decimal.Decimal
}

func (t *typeTotals) add(txType models.TransactionType, amount decimal.Decimal) {
	switch txType {
	case models.TypeIncome:
		t.income = t.income.Add(amount)
	case models.TypeExpense:
		t.expense = t.expense.Add(amount)
	}
}

// MonthlySummary buckets the last six months of transactions by
// calendar year+month and reduces each bucket into per-type totals,
// ascending by year-month.
func (a *Aggregator) MonthlySummary(ctx context.Context, userID int64) ([]MonthlySummaryRow, error) {
	if err := a.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	now := a.clock.Now()
	txs, err := a.store.FindAllByUserInDateRange(ctx, userID, now.AddDate(0, -6, 0), now)
	if err != nil {
		return nil, err
	}

	type yearMonth struct {
		year  int
		month time.Month
	}
	buckets := make(map[yearMonth]*typeTotals)
	for _, tx := range txs {
		key := yearMonth{tx.TransactionDate.Year(), tx.TransactionDate.Month()}
		if buckets[key] == nil {
			buckets[key] = &typeTotals{}
		}
		buckets[key].add(tx.Type, tx.Amount)
	}

	keys := make([]yearMonth, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	rows := make([]MonthlySummaryRow, 0, len(keys))
	for _, key := range keys {
		totals := buckets[key]
		rows = append(rows, MonthlySummaryRow{
			Name:    key.month.String()[:3],
			Income:  totals.income,
			Expense: totals.expense,
		})
	}
	return rows, nil
}

// CategorySummary totals all EXPENSE transactions per category name,
// with no date bound. Rows are sorted by name for determinism.
func (a *Aggregator) CategorySummary(ctx context.Context, userID int64) ([]CategorySummaryRow, error) {
	if err := a.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	expenses, err := a.store.FindAllByUserAndType(ctx, userID, models.TypeExpense)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	for _, tx := range expenses {
		totals[tx.CategoryName] = totals[tx.CategoryName].Add(tx.Amount)
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]CategorySummaryRow, 0, len(names))
	for _, name := range names {
		rows = append(rows, CategorySummaryRow{Name: name, Value: totals[name]})
	}
	return rows, nil
}

// WeeklySavings buckets the last four weeks of transactions by ISO
// week-of-year and reports income minus expense per bucket. Buckets
// are ordered ascending by (ISO year, week) and labeled sequentially
// in that order.
func (a *Aggregator) WeeklySavings(ctx context.Context, userID int64) ([]WeeklySavingsRow, error) {
	if err := a.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	now := a.clock.Now()
	txs, err := a.store.FindAllByUserInDateRange(ctx, userID, now.AddDate(0, 0, -28), now)
	if err != nil {
		return nil, err
	}

	type isoWeek struct {
		year int
		week int
	}
	buckets := make(map[isoWeek]*typeTotals)
	for _, tx := range txs {
		year, week := tx.TransactionDate.ISOWeek()
		key := isoWeek{year, week}
		if buckets[key] == nil {
			buckets[key] = &typeTotals{}
		}
		buckets[key].add(tx.Type, tx.Amount)
	}

	keys := make([]isoWeek, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].week < keys[j].week
	})

	rows := make([]WeeklySavingsRow, 0, len(keys))
	for i, key := range keys {
		totals := buckets[key]
		rows = append(rows, WeeklySavingsRow{
			Name:    fmt.Sprintf("Week %d", i+1),
			Savings: totals.income.Sub(totals.expense),
		})
	}
	return rows, nil
}
