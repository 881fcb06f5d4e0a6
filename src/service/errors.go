package service

import "errors"

// Error taxonomy for the ledger core. Every value is terminal for the
// triggering call; the handlers translate them into HTTP statuses
// (not found -> 404, access -> 403, the rest -> 400).
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrTransactionAccess   = errors.New("unauthorized access to transaction")
	ErrFutureExpense       = errors.New("expenses cannot be added for future dates")
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrInvalidDate         = errors.New("invalid transaction date")
)
