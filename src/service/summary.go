package service

import (
	"context"

	"budgetwise-server/src/models"

	"github.com/shopspring/decimal"
)

// recentTransactionLimit bounds the snapshot's transaction tail.
const recentTransactionLimit = 5

// Snapshot is the composed financial picture of one user. It is
// rendered field-for-field as JSON by the summary endpoint and as a
// prose block by the chat layer; rendering is a consumer concern.
type Snapshot struct {
	TotalIncome        decimal.Decimal       `json:"total_income"`
	TotalExpenses      decimal.Decimal       `json:"total_expenses"`
	Balance            decimal.Decimal       `json:"balance"`
	Budgets            []models.BudgetStatus `json:"budgets"`
	RecentTransactions []models.Transaction  `json:"recent_transactions"`
}

// SummaryBuilder composes ledger totals, the budget-status feed and
// the most recent transactions into one snapshot.
type SummaryBuilder struct {
	ledger  *Ledger
	budgets BudgetStatusProvider
}

func NewSummaryBuilder(ledger *Ledger, budgets BudgetStatusProvider) *SummaryBuilder {
	return &SummaryBuilder{ledger: ledger, budgets: budgets}
}

func (b *SummaryBuilder) BuildSnapshot(ctx context.Context, userID int64) (*Snapshot, error) {
	income, err := b.ledger.TotalIncome(ctx, userID)
	if err != nil {
		return nil, err
	}
	expenses, err := b.ledger.TotalExpenses(ctx, userID)
	if err != nil {
		return nil, err
	}

	budgets, err := b.budgets.GetBudgetStatus(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := b.ledger.Transactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(recent) > recentTransactionLimit {
		recent = recent[:recentTransactionLimit]
	}

	return &Snapshot{
		TotalIncome:        income,
		TotalExpenses:      expenses,
		Balance:            income.Sub(expenses),
		Budgets:            budgets,
		RecentTransactions: recent,
	}, nil
}
