package db

import (
	"context"
	"errors"
	"fmt"

	"budgetwise-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// warningShare is the fraction of a budget limit at which the status
// feed flips from OK to WARNING.
var warningShare = decimal.RequireFromString("0.8")

// BudgetStore holds per-category monthly spending limits.
type BudgetStore struct {
	pool *pgxpool.Pool
}

func NewBudgetStore(pool *pgxpool.Pool) *BudgetStore {
	return &BudgetStore{pool: pool}
}

const budgetColumns = `
	b.id, b.user_id, b.category_id, c.name, b.limit_amount, b.created_at, b.updated_at
`

func (s *BudgetStore) Create(ctx context.Context, budget *models.Budget) (*models.Budget, error) {
	query := `
		INSERT INTO budgets (user_id, category_id, limit_amount)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := s.pool.QueryRow(ctx, query, budget.UserID, budget.CategoryID, budget.LimitAmount).
		Scan(&budget.ID, &budget.CreatedAt, &budget.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert budget: %w", err)
	}
	return s.GetByID(ctx, budget.UserID, budget.ID)
}

func (s *BudgetStore) GetByID(ctx context.Context, userID, budgetID int64) (*models.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE b.id = $1 AND b.user_id = $2
	`
	var b models.Budget
	err := s.pool.QueryRow(ctx, query, budgetID, userID).
		Scan(&b.ID, &b.UserID, &b.CategoryID, &b.CategoryName, &b.LimitAmount, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query budget %d: %w", budgetID, err)
	}
	return &b, nil
}

func (s *BudgetStore) GetAllForUser(ctx context.Context, userID int64) ([]models.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE b.user_id = $1
		ORDER BY c.name
	`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.CategoryName, &b.LimitAmount, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func (s *BudgetStore) Update(ctx context.Context, budget *models.Budget) (*models.Budget, error) {
	query := `
		UPDATE budgets
		SET category_id = $1, limit_amount = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
	`
	cmd, err := s.pool.Exec(ctx, query, budget.CategoryID, budget.LimitAmount, budget.ID, budget.UserID)
	if err != nil {
		return nil, fmt.Errorf("update budget %d: %w", budget.ID, err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, nil
	}
	return s.GetByID(ctx, budget.UserID, budget.ID)
}

func (s *BudgetStore) Delete(ctx context.Context, userID, budgetID int64) error {
	cmd, err := s.pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, budgetID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("budget not found")
	}
	return nil
}

// GetBudgetStatus computes, for each budgeted category, the current
// month's expense total against the limit. Status is OVER past the
// limit, WARNING at 80% of it or more, OK otherwise.
func (s *BudgetStore) GetBudgetStatus(ctx context.Context, userID int64) ([]models.BudgetStatus, error) {
	query := `
		SELECT c.name, b.limit_amount, COALESCE(SUM(t.amount), 0) AS spent
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		LEFT JOIN transactions t ON t.user_id = b.user_id
			AND t.category_id = b.category_id
			AND t.type = 'EXPENSE'
			AND date_trunc('month', t.transaction_date) = date_trunc('month', NOW())
		WHERE b.user_id = $1
		GROUP BY c.name, b.limit_amount
		ORDER BY c.name
	`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []models.BudgetStatus
	for rows.Next() {
		var bs models.BudgetStatus
		if err := rows.Scan(&bs.CategoryName, &bs.LimitAmount, &bs.Spent); err != nil {
			return nil, err
		}
		bs.Status = budgetStatusOf(bs.Spent, bs.LimitAmount)
		statuses = append(statuses, bs)
	}
	return statuses, rows.Err()
}

func budgetStatusOf(spent, limit decimal.Decimal) string {
	switch {
	case spent.GreaterThan(limit):
		return models.BudgetStatusOver
	case spent.GreaterThanOrEqual(limit.Mul(warningShare)):
		return models.BudgetStatusWarning
	default:
		return models.BudgetStatusOK
	}
}
