package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	cache "budgetwise-server/src/db"
	"budgetwise-server/src/models"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// BudgetStore is the persistence surface the budget endpoints need.
type BudgetStore interface {
	Create(ctx context.Context, budget *models.Budget) (*models.Budget, error)
	GetByID(ctx context.Context, userID, budgetID int64) (*models.Budget, error)
	GetAllForUser(ctx context.Context, userID int64) ([]models.Budget, error)
	Update(ctx context.Context, budget *models.Budget) (*models.Budget, error)
	Delete(ctx context.Context, userID, budgetID int64) error
	GetBudgetStatus(ctx context.Context, userID int64) ([]models.BudgetStatus, error)
}

type budgetRequest struct {
	CategoryID  int64           `json:"category_id"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
}

func CreateBudget(budgets BudgetStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req budgetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create budget request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		budget := &models.Budget{
			UserID:      userID,
			CategoryID:  req.CategoryID,
			LimitAmount: req.LimitAmount,
		}
		created, err := budgets.Create(r.Context(), budget)
		if err != nil {
			log.Printf("ERROR: Failed to create budget for user %d: %v", userID, err)
			http.Error(w, "failed to create budget", http.StatusInternalServerError)
			return
		}
		cache.InvalidateUserSummaryCache(userID)
		log.Printf("INFO: Created budget id %d for user %d, category %s", created.ID, userID, created.CategoryName)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetBudgetByID(budgets BudgetStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		budgetID, err := strconv.ParseInt(chi.URLParam(r, "budget_id"), 10, 64)
		if err != nil {
			log.Printf("ERROR: Invalid budget id param: %s", chi.URLParam(r, "budget_id"))
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}
		budget, err := budgets.GetByID(r.Context(), userID, budgetID)
		if err != nil {
			log.Printf("ERROR: Failed to get budget id %d for user %d: %v", budgetID, userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if budget == nil {
			http.Error(w, "budget not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(budget)
	}
}

func GetAllBudgetsForUser(budgets BudgetStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		all, err := budgets.GetAllForUser(r.Context(), userID)
		if err != nil {
			log.Printf("ERROR: Failed to get budgets for user %d: %v", userID, err)
			http.Error(w, "failed to get budgets", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(all)
	}
}

func GetBudgetStatus(budgets BudgetStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		statuses, err := budgets.GetBudgetStatus(r.Context(), userID)
		if err != nil {
			log.Printf("ERROR: Failed to get budget status for user %d: %v", userID, err)
			http.Error(w, "failed to get budget status", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(statuses)
	}
}

func UpdateBudget(budgets BudgetStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		budgetID, err := strconv.ParseInt(chi.URLParam(r, "budget_id"), 10, 64)
		if err != nil {
			log.Printf("ERROR: Invalid budget id param: %s", chi.URLParam(r, "budget_id"))
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}
		var req budgetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update budget request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		budget := &models.Budget{
			ID:          budgetID,
			UserID:      userID,
			CategoryID:  req.CategoryID,
			LimitAmount: req.LimitAmount,
		}
		updated, err := budgets.Update(r.Context(), budget)
		if err != nil {
			log.Printf("ERROR: Failed to update budget id %d for user %d: %v", budgetID, userID, err)
			http.Error(w, "failed to update budget", http.StatusInternalServerError)
			return
		}
		if updated == nil {
			http.Error(w, "budget not found", http.StatusNotFound)
			return
		}
		cache.InvalidateUserSummaryCache(userID)
		log.Printf("INFO: Updated budget id %d for user %d", updated.ID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteBudget(budgets BudgetStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		budgetID, err := strconv.ParseInt(chi.URLParam(r, "budget_id"), 10, 64)
		if err != nil {
			log.Printf("ERROR: Invalid budget id param: %s", chi.URLParam(r, "budget_id"))
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}
		if err := budgets.Delete(r.Context(), userID, budgetID); err != nil {
			log.Printf("ERROR: Failed to delete budget id %d for user %d: %v", budgetID, userID, err)
			http.Error(w, "failed to delete budget", http.StatusInternalServerError)
			return
		}
		cache.InvalidateUserSummaryCache(userID)
		log.Printf("INFO: Deleted budget id %d for user %d", budgetID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "budget deleted"})
	}
}
