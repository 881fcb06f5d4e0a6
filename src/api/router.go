package api

import (
	db "budgetwise-server/src/db/sql"
	"budgetwise-server/src/handlers"
	"budgetwise-server/src/middleware"
	"budgetwise-server/src/service"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func NewRouter(
	ledger *service.Ledger,
	agg *service.Aggregator,
	summary *service.SummaryBuilder,
	chat *service.Chat,
	dir *db.Directory,
	budgets *db.BudgetStore,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", handlers.Login(dir))
		r.Post("/register", handlers.Register(dir))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware).Group(func(r chi.Router) {
			// User
			r.Get("/user/{user_id}", handlers.GetUser(dir))

			// Categories
			r.Get("/categories", handlers.GetCategories(dir))

			// Transactions
			r.Get("/transactions", handlers.GetTransactions(ledger))
			r.Get("/transactions/date-range", handlers.GetTransactionsByDateRange(ledger))
			r.Get("/transactions/type/{type}", handlers.GetTransactionsByType(ledger))
			r.Get("/transactions/summary", handlers.GetTransactionSummary(ledger))
			r.Get("/transactions/monthly-summary", handlers.GetMonthlySummary(agg))
			r.Get("/transactions/category-summary", handlers.GetCategorySummary(agg))
			r.Get("/transactions/weekly-savings", handlers.GetWeeklySavings(agg))
			r.Post("/transactions", handlers.CreateTransaction(ledger))
			r.Put("/transactions/{transaction_id}", handlers.UpdateTransaction(ledger))
			r.Delete("/transactions/{transaction_id}", handlers.DeleteTransaction(ledger))

			// Dashboard snapshot
			r.Get("/summary", handlers.GetFinancialSummary(summary))

			// Budgets
			r.Post("/budgets", handlers.CreateBudget(budgets))
			r.Get("/budgets", handlers.GetAllBudgetsForUser(budgets))
			r.Get("/budgets/status", handlers.GetBudgetStatus(budgets))
			r.Get("/budgets/{budget_id}", handlers.GetBudgetByID(budgets))
			r.Put("/budgets/{budget_id}", handlers.UpdateBudget(budgets))
			r.Delete("/budgets/{budget_id}", handlers.DeleteBudget(budgets))

			// Chat assistant
			r.Post("/chat/ask", handlers.AskChat(chat))
			r.Get("/chat/insights", handlers.GetInsights(chat))
		})
	})

	return r
}
