package service

import (
	"context"
	"fmt"
	"testing"

	"budgetwise-server/src/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSnapshotBalanceMatchesLedgerTotals(t *testing.T) {
	ledger, _ := newTestLedger()
	ctx := context.Background()

	seed := []models.TransactionRequest{
		{CategoryID: 12, Description: "salary", Amount: decimal.RequireFromString("1000"), Type: models.TypeIncome, TransactionDate: "2025-01-10"},
		{CategoryID: 10, Description: "rent", Amount: decimal.RequireFromString("350.75"), Type: models.TypeExpense, TransactionDate: "2025-01-02"},
	}
	for _, req := range seed {
		_, err := ledger.Create(ctx, 1, req)
		require.NoError(t, err)
	}

	builder := NewSummaryBuilder(ledger, staticBudgets{})
	snap, err := builder.BuildSnapshot(ctx, 1)
	require.NoError(t, err)

	income, err := ledger.TotalIncome(ctx, 1)
	require.NoError(t, err)
	expenses, err := ledger.TotalExpenses(ctx, 1)
	require.NoError(t, err)

	require.True(t, snap.Balance.Equal(income.Sub(expenses)))
	requireAmount(t, "649.25", snap.Balance)
}

func TestSnapshotIsZeroFilledForEmptyLedger(t *testing.T) {
	ledger, _ := newTestLedger()

	builder := NewSummaryBuilder(ledger, staticBudgets{})
	snap, err := builder.BuildSnapshot(context.Background(), 1)
	require.NoError(t, err)

	requireAmount(t, "0", snap.TotalIncome)
	requireAmount(t, "0", snap.TotalExpenses)
	requireAmount(t, "0", snap.Balance)
	require.Empty(t, snap.RecentTransactions)
}

func TestSnapshotLimitsRecentTransactionsToFive(t *testing.T) {
	ledger, _ := newTestLedger()
	ctx := context.Background()

	for day := 1; day <= 8; day++ {
		_, err := ledger.Create(ctx, 1, models.TransactionRequest{
			CategoryID:      11,
			Description:     fmt.Sprintf("day %d", day),
			Amount:          decimal.RequireFromString("1"),
			Type:            models.TypeExpense,
			TransactionDate: fmt.Sprintf("2025-02-%02d", day),
		})
		require.NoError(t, err)
	}

	builder := NewSummaryBuilder(ledger, staticBudgets{})
	snap, err := builder.BuildSnapshot(ctx, 1)
	require.NoError(t, err)

	require.Len(t, snap.RecentTransactions, 5)
	// Most recent first.
	require.Equal(t, "day 8", snap.RecentTransactions[0].Description)
	require.Equal(t, "day 4", snap.RecentTransactions[4].Description)
}

func TestSnapshotCarriesBudgetFeed(t *testing.T) {
	ledger, _ := newTestLedger()

	feed := []models.BudgetStatus{
		{CategoryName: "Food", Spent: decimal.RequireFromString("90"), LimitAmount: decimal.RequireFromString("100"), Status: models.BudgetStatusWarning},
	}
	builder := NewSummaryBuilder(ledger, staticBudgets{statuses: feed})

	snap, err := builder.BuildSnapshot(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, feed, snap.Budgets)
}
