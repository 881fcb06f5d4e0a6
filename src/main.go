package main

import (
	"context"
	"log"
	"net/http"

	"budgetwise-server/src/api"
	"budgetwise-server/src/config"
	"budgetwise-server/src/db"
	dbsql "budgetwise-server/src/db/sql"
	"budgetwise-server/src/llm"
	"budgetwise-server/src/service"
)

func main() {
	cfg := config.Load()

	// Connect to database
	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer pool.Close()

	db.InitCache()

	// Stores
	store := dbsql.NewTransactionStore(pool)
	dir := dbsql.NewDirectory(pool)
	budgets := dbsql.NewBudgetStore(pool)

	// Core services
	clock := service.SystemClock()
	ledger := service.NewLedger(store, dir, clock)
	agg := service.NewAggregator(store, dir, clock)
	summary := service.NewSummaryBuilder(ledger, budgets)

	// Assistant
	llmClient := llm.New(llm.Config{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	})
	if !llmClient.Configured() {
		log.Println("WARN: OPENAI_API_KEY not set, chat assistant will use fallback answers")
	}
	chat := service.NewChat(summary, dir, llmClient)

	// Router
	router := api.NewRouter(ledger, agg, summary, chat, dir, budgets)

	log.Println("API server running on port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
