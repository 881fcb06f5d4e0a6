package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Budget struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name"`
	LimitAmount  decimal.Decimal `json:"limit_amount"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BudgetStatus is one row of the budget-status feed: spent is the
// current month's expense total for the budgeted category.
type BudgetStatus struct {
	CategoryName string          `json:"category_name"`
	Spent        decimal.Decimal `json:"spent"`
	LimitAmount  decimal.Decimal `json:"limit_amount"`
	Status       string          `json:"status"`
}

const (
	BudgetStatusOK      = "OK"
	BudgetStatusWarning = "WARNING"
	BudgetStatusOver    = "OVER"
)
