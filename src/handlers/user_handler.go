package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	db "budgetwise-server/src/db/sql"

	"github.com/go-chi/chi/v5"
)

func GetUser(dir *db.Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID := r.Context().Value("user_id").(int64)
		userID, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
		if err != nil {
			log.Printf("ERROR: Invalid user id param: %s", chi.URLParam(r, "user_id"))
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		// Users can only read their own record.
		if callerID != userID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		user, err := dir.FindUserByID(r.Context(), userID)
		if err != nil {
			log.Printf("ERROR: Failed to get user %d: %v", userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if user == nil {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(user)
	}
}
