package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"budgetwise-server/src/service"
)

func AskChat(chat *service.Chat) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.Context().Value("email").(string)

		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			log.Printf("ERROR: Failed to decode chat request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(payload.Message) == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"response": "Please provide a message."})
			return
		}

		response, err := chat.ProcessMessage(r.Context(), email, payload.Message)
		if err != nil {
			log.Printf("ERROR: Failed to process chat message for %s: %v", email, err)
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"response": response})
	}
}

func GetInsights(chat *service.Chat) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.Context().Value("email").(string)

		insights, err := chat.GenerateInsights(r.Context(), email)
		if err != nil {
			log.Printf("ERROR: Failed to generate insights for %s: %v", email, err)
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(insights))
	}
}
