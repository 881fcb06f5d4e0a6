package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"budgetwise-server/src/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestChat(llm LLMClient) (*Chat, *Ledger) {
	ledger, _ := newTestLedger()
	builder := NewSummaryBuilder(ledger, staticBudgets{})
	return NewChat(builder, newTestDirectory(), llm), ledger
}

func TestProcessMessageReturnsLLMAnswer(t *testing.T) {
	chat, _ := newTestChat(fakeLLM{response: "You spent most on rent."})

	answer, err := chat.ProcessMessage(context.Background(), "ada@example.com", "Where does my money go?")
	require.NoError(t, err)
	require.Equal(t, "You spent most on rent.", answer)
}

func TestProcessMessageUnknownUser(t *testing.T) {
	chat, _ := newTestChat(fakeLLM{response: "irrelevant"})

	_, err := chat.ProcessMessage(context.Background(), "ghost@example.com", "hello")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestProcessMessageFallsBackOnLLMFailure(t *testing.T) {
	chat, ledger := newTestChat(fakeLLM{err: errors.New("connection refused")})
	ctx := context.Background()

	_, err := ledger.Create(ctx, 1, models.TransactionRequest{
		CategoryID: 12, Description: "salary", Amount: decimal.RequireFromString("1000"),
		Type: models.TypeIncome, TransactionDate: "2025-01-10",
	})
	require.NoError(t, err)
	_, err = ledger.Create(ctx, 1, models.TransactionRequest{
		CategoryID: 10, Description: "rent", Amount: decimal.RequireFromString("80"),
		Type: models.TypeExpense, TransactionDate: "2025-01-02",
	})
	require.NoError(t, err)

	answer, err := chat.ProcessMessage(ctx, "ada@example.com", "What is my balance?")
	require.NoError(t, err)
	require.Contains(t, answer, "Your current balance is 920")
	require.Contains(t, answer, "(AI request failed")
}

func TestGenerateInsightsStripsMarkdownFences(t *testing.T) {
	chat, _ := newTestChat(fakeLLM{response: "```json\n[{\"type\":\"Spending Alert\"}]\n```"})

	insights, err := chat.GenerateInsights(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, `[{"type":"Spending Alert"}]`, insights)
}

func TestGenerateInsightsPropagatesLLMError(t *testing.T) {
	chat, _ := newTestChat(fakeLLM{err: errors.New("unconfigured")})

	_, err := chat.GenerateInsights(context.Background(), "ada@example.com")
	require.Error(t, err)
}

func TestRenderFinancialContext(t *testing.T) {
	snap := &Snapshot{
		TotalIncome:   decimal.RequireFromString("1000"),
		TotalExpenses: decimal.RequireFromString("80"),
		Balance:       decimal.RequireFromString("920"),
		Budgets: []models.BudgetStatus{
			{CategoryName: "Food", Spent: decimal.RequireFromString("30"), LimitAmount: decimal.RequireFromString("100"), Status: models.BudgetStatusOK},
		},
		RecentTransactions: []models.Transaction{
			{Description: "rent", Amount: decimal.RequireFromString("80"), Type: models.TypeExpense},
		},
	}

	text := renderFinancialContext(snap)
	require.Contains(t, text, "- Total Income: 1000")
	require.Contains(t, text, "- Total Expenses: 80")
	require.Contains(t, text, "- Current Balance: 920")
	require.Contains(t, text, "* Food: 30/100 (Status: OK)")
	require.Contains(t, text, "rent - 80 (EXPENSE)")
}

func TestRenderFinancialContextWithoutBudgets(t *testing.T) {
	snap := &Snapshot{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		Balance:       decimal.Zero,
	}

	text := renderFinancialContext(snap)
	require.Contains(t, text, "- Budgets: None set for this month.")
	require.False(t, strings.Contains(text, "Recent Transactions"))
}
