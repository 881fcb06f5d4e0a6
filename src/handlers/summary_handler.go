package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	cache "budgetwise-server/src/db"
	"budgetwise-server/src/service"
)

// GetFinancialSummary serves the composed snapshot (totals, balance,
// budget status, recent transactions) consumed by the dashboard.
func GetFinancialSummary(summary *service.SummaryBuilder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		cacheKey := cache.SummaryCacheKey(userID)
		if cached, found := cache.Cache.Get(cacheKey); found {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(cached)
			return
		}

		snapshot, err := summary.BuildSnapshot(r.Context(), userID)
		if err != nil {
			log.Printf("ERROR: Failed to build summary snapshot for user %d: %v", userID, err)
			writeServiceError(w, err)
			return
		}
		cache.SetSummaryCache(cacheKey, snapshot)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snapshot)
	}
}
