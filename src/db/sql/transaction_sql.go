package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"budgetwise-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `
	t.id, t.user_id, t.category_id, c.name, t.description, t.amount, t.type, t.transaction_date, t.created_at
`

// TransactionStore is the Postgres-backed transaction collection.
type TransactionStore struct {
	pool *pgxpool.Pool
}

func NewTransactionStore(pool *pgxpool.Pool) *TransactionStore {
	return &TransactionStore{pool: pool}
}

func (s *TransactionStore) FindByID(ctx context.Context, id int64) (*models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.id = $1
	`
	var tx models.Transaction
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&tx.ID, &tx.UserID, &tx.CategoryID, &tx.CategoryName,
		&tx.Description, &tx.Amount, &tx.Type, &tx.TransactionDate, &tx.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find transaction %d: %w", id, err)
	}
	return &tx, nil
}

func (s *TransactionStore) FindAllByUserOrderByDateDesc(ctx context.Context, userID int64) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1
		ORDER BY t.transaction_date DESC
	`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// FindAllByUserInDateRange returns transactions with a date in
// [start, end). A reversed range simply matches nothing.
func (s *TransactionStore) FindAllByUserInDateRange(ctx context.Context, userID int64, start, end time.Time) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.transaction_date >= $2 AND t.transaction_date < $3
		ORDER BY t.transaction_date
	`
	rows, err := s.pool.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (s *TransactionStore) FindAllByUserAndType(ctx context.Context, userID int64, txType models.TransactionType) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.type = $2
		ORDER BY t.transaction_date DESC
	`
	rows, err := s.pool.Query(ctx, query, userID, string(txType))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// Save inserts the transaction when it has no id yet, otherwise
// replaces the stored row. It returns the persisted record including
// the store-assigned id and the joined category name.
func (s *TransactionStore) Save(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	if tx.ID == 0 {
		query := `
			INSERT INTO transactions (user_id, category_id, description, amount, type, transaction_date, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW())
			RETURNING id
		`
		err := s.pool.QueryRow(ctx, query,
			tx.UserID, tx.CategoryID, tx.Description, tx.Amount, string(tx.Type), tx.TransactionDate,
		).Scan(&tx.ID)
		if err != nil {
			return nil, fmt.Errorf("insert transaction: %w", err)
		}
	} else {
		query := `
			UPDATE transactions
			SET category_id = $1, description = $2, amount = $3, type = $4, transaction_date = $5
			WHERE id = $6
		`
		if _, err := s.pool.Exec(ctx, query,
			tx.CategoryID, tx.Description, tx.Amount, string(tx.Type), tx.TransactionDate, tx.ID,
		); err != nil {
			return nil, fmt.Errorf("update transaction %d: %w", tx.ID, err)
		}
	}
	return s.FindByID(ctx, tx.ID)
}

func (s *TransactionStore) Delete(ctx context.Context, tx *models.Transaction) error {
	cmd, err := s.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, tx.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("transaction %d not found", tx.ID)
	}
	return nil
}

func scanTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.CategoryID, &tx.CategoryName,
			&tx.Description, &tx.Amount, &tx.Type, &tx.TransactionDate, &tx.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}
