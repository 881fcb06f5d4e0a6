package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	cache "budgetwise-server/src/db"
	"budgetwise-server/src/models"
	"budgetwise-server/src/service"

	"github.com/go-chi/chi/v5"
)

func GetTransactions(ledger *service.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		cacheKey := cache.TransactionCacheKey(userID)
		if cached, found := cache.Cache.Get(cacheKey); found {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(cached)
			return
		}

		transactions, err := ledger.Transactions(r.Context(), userID)
		if err != nil {
			log.Printf("ERROR: Failed to get transactions for user %d: %v", userID, err)
			writeServiceError(w, err)
			return
		}
		cache.SetTransactionCache(cacheKey, transactions)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transactions)
	}
}

func GetTransactionsByDateRange(ledger *service.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		start, err := time.Parse("2006-01-02", r.URL.Query().Get("start_date"))
		if err != nil {
			log.Printf("ERROR: Invalid start_date param for user %d: %v", userID, err)
			http.Error(w, "invalid start_date", http.StatusBadRequest)
			return
		}
		end, err := time.Parse("2006-01-02", r.URL.Query().Get("end_date"))
		if err != nil {
			log.Printf("ERROR: Invalid end_date param for user %d: %v", userID, err)
			http.Error(w, "invalid end_date", http.StatusBadRequest)
			return
		}

		transactions, err := ledger.TransactionsInRange(r.Context(), userID, start, end)
		if err != nil {
			log.Printf("ERROR: Failed to get transactions by date range for user %d: %v", userID, err)
			writeServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transactions)
	}
}

func GetTransactionsByType(ledger *service.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		txType := models.TransactionType(chi.URLParam(r, "type"))

		transactions, err := ledger.TransactionsByType(r.Context(), userID, txType)
		if err != nil {
			log.Printf("ERROR: Failed to get %s transactions for user %d: %v", txType, userID, err)
			writeServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transactions)
	}
}

func GetTransactionSummary(ledger *service.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		income, err := ledger.TotalIncome(r.Context(), userID)
		if err != nil {
			log.Printf("ERROR: Failed to get total income for user %d: %v", userID, err)
			writeServiceError(w, err)
			return
		}
		expenses, err := ledger.TotalExpenses(r.Context(), userID)
		if err != nil {
			log.Printf("ERROR: Failed to get total expenses for user %d: %v", userID, err)
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"totalIncome":   income,
			"totalExpenses": expenses,
			"balance":       income.Sub(expenses),
		})
	}
}

func CreateTransaction(ledger *service.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		var req models.TransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create transaction request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		created, err := ledger.Create(r.Context(), userID, req)
		if err != nil {
			log.Printf("ERROR: Failed to create transaction for user %d: %v", userID, err)
			writeServiceError(w, err)
			return
		}
		cache.InvalidateUserCaches(userID)

		log.Printf("INFO: Created transaction id %d for user %d, type %s", created.ID, userID, created.Type)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func UpdateTransaction(ledger *service.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		txID, err := strconv.ParseInt(chi.URLParam(r, "transaction_id"), 10, 64)
		if err != nil {
			log.Printf("ERROR: Invalid transaction id param: %s", chi.URLParam(r, "transaction_id"))
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}

		var req models.TransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update transaction request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		updated, err := ledger.Update(r.Context(), txID, req, userID)
		if err != nil {
			log.Printf("ERROR: Failed to update transaction id %d for user %d: %v", txID, userID, err)
			writeServiceError(w, err)
			return
		}
		cache.InvalidateUserCaches(userID)

		log.Printf("INFO: Updated transaction id %d for user %d", updated.ID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteTransaction(ledger *service.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		txID, err := strconv.ParseInt(chi.URLParam(r, "transaction_id"), 10, 64)
		if err != nil {
			log.Printf("ERROR: Invalid transaction id param: %s", chi.URLParam(r, "transaction_id"))
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}

		if err := ledger.Delete(r.Context(), txID, userID); err != nil {
			log.Printf("ERROR: Failed to delete transaction id %d for user %d: %v", txID, userID, err)
			writeServiceError(w, err)
			return
		}
		cache.InvalidateUserCaches(userID)

		log.Printf("INFO: Deleted transaction id %d for user %d", txID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "transaction deleted"})
	}
}

func GetMonthlySummary(agg *service.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		rows, err := agg.MonthlySummary(r.Context(), userID)
		if err != nil {
			log.Printf("ERROR: Failed to get monthly summary for user %d: %v", userID, err)
			writeServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rows)
	}
}

func GetCategorySummary(agg *service.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		rows, err := agg.CategorySummary(r.Context(), userID)
		if err != nil {
			log.Printf("ERROR: Failed to get category summary for user %d: %v", userID, err)
			writeServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rows)
	}
}

func GetWeeklySavings(agg *service.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		rows, err := agg.WeeklySavings(r.Context(), userID)
		if err != nil {
			log.Printf("ERROR: Failed to get weekly savings for user %d: %v", userID, err)
			writeServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rows)
	}
}
