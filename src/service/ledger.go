package service

import (
	"context"
	"fmt"
	"time"

	"budgetwise-server/src/models"

	"github.com/shopspring/decimal"
)

const isoDate = "2006-01-02"

// Ledger enforces the transaction business rules: ownership, category
// existence and the future-expense restriction. All reads and writes
// are scoped to the caller-supplied user id.
type Ledger struct {
	store TransactionStore
	dir   Directory
	clock Clock
}

func NewLedger(store TransactionStore, dir Directory, clock Clock) *Ledger {
	return &Ledger{store: store, dir: dir, clock: clock}
}

// Transactions returns all transactions owned by userID, most recent first.
func (l *Ledger) Transactions(ctx context.Context, userID int64) ([]models.Transaction, error) {
	if err := l.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return l.store.FindAllByUserOrderByDateDesc(ctx, userID)
}

// TransactionsInRange returns transactions with a date in [start, end).
// A reversed range yields an empty result, not an error.
func (l *Ledger) TransactionsInRange(ctx context.Context, userID int64, start, end time.Time) ([]models.Transaction, error) {
	if err := l.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return l.store.FindAllByUserInDateRange(ctx, userID, start, end)
}

func (l *Ledger) TransactionsByType(ctx context.Context, userID int64, txType models.TransactionType) ([]models.Transaction, error) {
	if err := l.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if !txType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, txType)
	}
	return l.store.FindAllByUserAndType(ctx, userID, txType)
}

// Create validates the request and persists a new transaction owned by
// userID. An explicit ISO date resolves to start of day; an absent date
// resolves to the current instant.
func (l *Ledger) Create(ctx context.Context, userID int64, req models.TransactionRequest) (*models.Transaction, error) {
	if err := l.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	category, err := l.requireCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, req.Type)
	}

	txDate, err := resolveDate(req.TransactionDate, l.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := l.checkFutureExpense(req.Type, txDate); err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		UserID:          userID,
		CategoryID:      category.ID,
		CategoryName:    category.Name,
		Description:     req.Description,
		Amount:          req.Amount,
		Type:            req.Type,
		TransactionDate: txDate,
	}
	return l.store.Save(ctx, tx)
}

// Update overwrites description, amount, type, category and date of an
// existing transaction after verifying ownership. Owner and id never
// change. The ownership check runs before any write.
func (l *Ledger) Update(ctx context.Context, txID int64, req models.TransactionRequest, userID int64) (*models.Transaction, error) {
	tx, err := l.store.FindByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, ErrTransactionNotFound
	}
	if tx.UserID != userID {
		return nil, ErrTransactionAccess
	}

	category, err := l.requireCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, req.Type)
	}

	// Absent date keeps the stored one.
	txDate, err := resolveDate(req.TransactionDate, tx.TransactionDate)
	if err != nil {
		return nil, err
	}
	// Re-checked against the request's type, not the stored one.
	if err := l.checkFutureExpense(req.Type, txDate); err != nil {
		return nil, err
	}

	tx.CategoryID = category.ID
	tx.CategoryName = category.Name
	tx.Description = req.Description
	tx.Amount = req.Amount
	tx.Type = req.Type
	tx.TransactionDate = txDate
	return l.store.Save(ctx, tx)
}

// Delete removes a transaction permanently after verifying ownership.
func (l *Ledger) Delete(ctx context.Context, txID, userID int64) error {
	tx, err := l.store.FindByID(ctx, txID)
	if err != nil {
		return err
	}
	if tx == nil {
		return ErrTransactionNotFound
	}
	if tx.UserID != userID {
		return ErrTransactionAccess
	}
	return l.store.Delete(ctx, tx)
}

// TotalIncome sums all INCOME amounts for the user, zero if none.
func (l *Ledger) TotalIncome(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return l.sumByType(ctx, userID, models.TypeIncome)
}

// TotalExpenses sums all EXPENSE amounts for the user, zero if none.
func (l *Ledger) TotalExpenses(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return l.sumByType(ctx, userID, models.TypeExpense)
}

func (l *Ledger) sumByType(ctx context.Context, userID int64, txType models.TransactionType) (decimal.Decimal, error) {
	txs, err := l.TransactionsByType(ctx, userID, txType)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return total, nil
}

func (l *Ledger) requireUser(ctx context.Context, userID int64) error {
	user, err := l.dir.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return nil
}

func (l *Ledger) requireCategory(ctx context.Context, categoryID int64) (*models.Category, error) {
	category, err := l.dir.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// checkFutureExpense rejects an EXPENSE whose date component is
// strictly after today at write time. Income has no such restriction.
func (l *Ledger) checkFutureExpense(txType models.TransactionType, txDate time.Time) error {
	if txType != models.TypeExpense {
		return nil
	}
	if dateOnly(txDate).After(dateOnly(l.clock.Now())) {
		return ErrFutureExpense
	}
	return nil
}

func resolveDate(raw string, fallback time.Time) (time.Time, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.Parse(isoDate, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return d, nil
}

// dateOnly drops the time component, normalized to UTC so that two
// dates compare by calendar day regardless of location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
