package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	db "budgetwise-server/src/db/sql"
)

func GetCategories(dir *db.Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := dir.ListCategories(r.Context())
		if err != nil {
			log.Printf("ERROR: Failed to list categories: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(categories)
	}
}
