package models

import "github.com/shopspring/decimal"

// TransactionRequest is the consumer-facing create/update payload.
// TransactionDate is an optional ISO date (YYYY-MM-DD); when empty the
// service resolves it (create: now, update: the stored date).
type TransactionRequest struct {
	CategoryID      int64           `json:"category_id"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	Type            TransactionType `json:"type"`
	TransactionDate string          `json:"transaction_date,omitempty"`
}
