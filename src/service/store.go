package service

import (
	"context"
	"time"

	"budgetwise-server/src/models"
)

// TransactionStore is the durable transaction collection. Single-record
// lookups return (nil, nil) when no row matches; the services map that
// to ErrTransactionNotFound.
type TransactionStore interface {
	FindByID(ctx context.Context, id int64) (*models.Transaction, error)
	FindAllByUserOrderByDateDesc(ctx context.Context, userID int64) ([]models.Transaction, error)
	FindAllByUserInDateRange(ctx context.Context, userID int64, start, end time.Time) ([]models.Transaction, error)
	FindAllByUserAndType(ctx context.Context, userID int64, txType models.TransactionType) ([]models.Transaction, error)
	Save(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)
	Delete(ctx context.Context, tx *models.Transaction) error
}

// Directory resolves user and category identifiers. Lookups return
// (nil, nil) when the identifier is unknown.
type Directory interface {
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindCategoryByID(ctx context.Context, id int64) (*models.Category, error)
}

// BudgetStatusProvider is the budget-status feed consumed by the
// summary snapshot builder. The feed is computed elsewhere; the
// builder only composes it.
type BudgetStatusProvider interface {
	GetBudgetStatus(ctx context.Context, userID int64) ([]models.BudgetStatus, error)
}
