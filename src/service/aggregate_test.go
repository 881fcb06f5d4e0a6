package service

import (
	"context"
	"testing"
	"time"

	"budgetwise-server/src/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func seedTransaction(t *testing.T, store *memStore, userID int64, categoryName, date, amount string, txType models.TransactionType) {
	t.Helper()
	day, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	_, err = store.Save(context.Background(), &models.Transaction{
		UserID:          userID,
		CategoryName:    categoryName,
		Amount:          decimal.RequireFromString(amount),
		Type:            txType,
		TransactionDate: day,
	})
	require.NoError(t, err)
}

func TestMonthlySummaryScenario(t *testing.T) {
	store := newMemStore()
	agg := NewAggregator(store, newTestDirectory(), fakeClock{now: testNow})

	seedTransaction(t, store, 1, "Housing", "2025-01-02", "50", models.TypeExpense)
	seedTransaction(t, store, 1, "Salary", "2025-01-10", "1000", models.TypeIncome)
	seedTransaction(t, store, 1, "Food", "2025-02-01", "30", models.TypeExpense)

	rows, err := agg.MonthlySummary(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "Jan", rows[0].Name)
	requireAmount(t, "1000", rows[0].Income)
	requireAmount(t, "50", rows[0].Expense)

	require.Equal(t, "Feb", rows[1].Name)
	requireAmount(t, "0", rows[1].Income)
	requireAmount(t, "30", rows[1].Expense)
}

func TestMonthlySummaryRowTotalsMatchWindowTotals(t *testing.T) {
	store := newMemStore()
	agg := NewAggregator(store, newTestDirectory(), fakeClock{now: testNow})

	seedTransaction(t, store, 1, "Housing", "2024-09-20", "200", models.TypeExpense)
	seedTransaction(t, store, 1, "Salary", "2024-11-01", "3000", models.TypeIncome)
	seedTransaction(t, store, 1, "Food", "2025-01-05", "75.25", models.TypeExpense)
	seedTransaction(t, store, 1, "Salary", "2025-02-10", "3000", models.TypeIncome)
	// Outside the 6-month window, must not be counted.
	seedTransaction(t, store, 1, "Housing", "2024-06-01", "999", models.TypeExpense)

	rows, err := agg.MonthlySummary(context.Background(), 1)
	require.NoError(t, err)

	rowIncome, rowExpense := decimal.Zero, decimal.Zero
	for _, row := range rows {
		rowIncome = rowIncome.Add(row.Income)
		rowExpense = rowExpense.Add(row.Expense)
	}

	windowed, err := store.FindAllByUserInDateRange(context.Background(), 1, testNow.AddDate(0, -6, 0), testNow)
	require.NoError(t, err)
	wantIncome, wantExpense := decimal.Zero, decimal.Zero
	for _, tx := range windowed {
		if tx.Type == models.TypeIncome {
			wantIncome = wantIncome.Add(tx.Amount)
		} else {
			wantExpense = wantExpense.Add(tx.Amount)
		}
	}

	require.True(t, rowIncome.Equal(wantIncome), "income %s != %s", rowIncome, wantIncome)
	require.True(t, rowExpense.Equal(wantExpense), "expense %s != %s", rowExpense, wantExpense)
}

func TestMonthlySummaryKeepsYearBoundaryBucketsDistinct(t *testing.T) {
	store := newMemStore()
	clock := fakeClock{now: time.Date(2025, time.January, 20, 12, 0, 0, 0, time.UTC)}
	agg := NewAggregator(store, newTestDirectory(), clock)

	seedTransaction(t, store, 1, "Housing", "2024-11-15", "10", models.TypeExpense)
	seedTransaction(t, store, 1, "Housing", "2024-12-15", "20", models.TypeExpense)
	seedTransaction(t, store, 1, "Housing", "2025-01-15", "30", models.TypeExpense)

	rows, err := agg.MonthlySummary(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Nov", rows[0].Name)
	require.Equal(t, "Dec", rows[1].Name)
	require.Equal(t, "Jan", rows[2].Name)
}

func TestCategorySummaryScenario(t *testing.T) {
	store := newMemStore()
	agg := NewAggregator(store, newTestDirectory(), fakeClock{now: testNow})

	seedTransaction(t, store, 1, "Housing", "2025-01-02", "50", models.TypeExpense)
	seedTransaction(t, store, 1, "Salary", "2025-01-10", "1000", models.TypeIncome)
	seedTransaction(t, store, 1, "Food", "2025-02-01", "30", models.TypeExpense)

	rows, err := agg.CategorySummary(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Sorted by category name.
	require.Equal(t, "Food", rows[0].Name)
	requireAmount(t, "30", rows[0].Value)
	require.Equal(t, "Housing", rows[1].Name)
	requireAmount(t, "50", rows[1].Value)
}

func TestCategorySummaryHasNoDateBound(t *testing.T) {
	store := newMemStore()
	agg := NewAggregator(store, newTestDirectory(), fakeClock{now: testNow})

	seedTransaction(t, store, 1, "Housing", "2020-03-01", "100", models.TypeExpense)
	seedTransaction(t, store, 1, "Housing", "2025-02-01", "40", models.TypeExpense)

	rows, err := agg.CategorySummary(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	requireAmount(t, "140", rows[0].Value)
}

func TestWeeklySavingsLabelsAreChronological(t *testing.T) {
	store := newMemStore()
	agg := NewAggregator(store, newTestDirectory(), fakeClock{now: testNow})

	// Three distinct ISO weeks inside the 4-week window. Seed them out
	// of calendar order; labels must still follow chronology.
	seedTransaction(t, store, 1, "Food", "2025-02-12", "40", models.TypeExpense)   // week of Feb 10
	seedTransaction(t, store, 1, "Salary", "2025-01-27", "500", models.TypeIncome) // week of Jan 27
	seedTransaction(t, store, 1, "Salary", "2025-02-03", "200", models.TypeIncome) // week of Feb 3
	seedTransaction(t, store, 1, "Food", "2025-02-03", "50", models.TypeExpense)

	rows, err := agg.WeeklySavings(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.Equal(t, "Week 1", rows[0].Name)
	requireAmount(t, "500", rows[0].Savings)

	require.Equal(t, "Week 2", rows[1].Name)
	requireAmount(t, "150", rows[1].Savings)

	require.Equal(t, "Week 3", rows[2].Name)
	requireAmount(t, "-40", rows[2].Savings)
}

func TestWeeklySavingsWindowExcludesOldTransactions(t *testing.T) {
	store := newMemStore()
	agg := NewAggregator(store, newTestDirectory(), fakeClock{now: testNow})

	seedTransaction(t, store, 1, "Food", "2024-12-01", "10", models.TypeExpense)
	seedTransaction(t, store, 1, "Food", "2025-02-10", "25", models.TypeExpense)

	rows, err := agg.WeeklySavings(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	requireAmount(t, "-25", rows[0].Savings)
}

func TestAggregationsRejectUnknownUser(t *testing.T) {
	store := newMemStore()
	agg := NewAggregator(store, newTestDirectory(), fakeClock{now: testNow})

	_, err := agg.MonthlySummary(context.Background(), 99)
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = agg.CategorySummary(context.Background(), 99)
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = agg.WeeklySavings(context.Background(), 99)
	require.ErrorIs(t, err, ErrUserNotFound)
}
