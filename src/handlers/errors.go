package handlers

import (
	"errors"
	"net/http"

	"budgetwise-server/src/service"
)

// writeServiceError maps the core error taxonomy onto HTTP statuses:
// unknown identifiers 404, ownership violations 403, rejected business
// rules 400, anything else 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrTransactionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrTransactionAccess):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrFutureExpense),
		errors.Is(err, service.ErrInvalidType),
		errors.Is(err, service.ErrInvalidDate):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
