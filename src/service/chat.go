package service

import (
	"context"
	"fmt"
	"strings"
)

// LLMClient is the outbound chat-completion boundary.
type LLMClient interface {
	ChatResponse(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

const advisorPrompt = "You are BudgetWise AI, a helpful and friendly financial advisor. " +
	"You have access to the user's financial data below. " +
	"Answer the user's questions based ONLY on this data. " +
	"If the user asks about something not in the data, say you don't know but can help with their balance, expenses, or budgets. " +
	"Keep your answers concise and supportive.\n\n" +
	"User Financial Data:\n"

const insightsPrompt = "You are an AI financial analyst. Analyze the user's financial data below and provide 4-6 short, actionable insights. " +
	"Return the response strictly as a valid JSON array of objects. Do not include markdown formatting. " +
	"Each object must have the following fields:\n" +
	"- type: One of ['Spending Alert', 'Savings Opportunity', 'Positive Trend', 'Investment Tip', 'Goal Progress', 'Smart Suggestion']\n" +
	"- title: A short, catchy title (max 5 words)\n" +
	"- description: A clear 1-2 sentence explanation\n" +
	"- sentiment: One of ['positive', 'negative', 'neutral'] (used for UI coloring)\n\n" +
	"User Data:\n"

// Chat feeds the snapshot to the LLM and degrades to a rule-based
// answer when the call fails or no API key is configured.
type Chat struct {
	summary *SummaryBuilder
	dir     Directory
	llm     LLMClient
}

func NewChat(summary *SummaryBuilder, dir Directory, llm LLMClient) *Chat {
	return &Chat{summary: summary, dir: dir, llm: llm}
}

// ProcessMessage answers a free-text question about the user's
// finances. The user is identified by email, as carried in the token.
func (c *Chat) ProcessMessage(ctx context.Context, email, message string) (string, error) {
	snap, err := c.snapshotByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	response, err := c.llm.ChatResponse(ctx, advisorPrompt+renderFinancialContext(snap), message)
	if err != nil {
		return fmt.Sprintf("%s\n\n(AI request failed: %v)", fallbackAnswer(message, snap), err), nil
	}
	return response, nil
}

// GenerateInsights returns a JSON array of insight objects as produced
// by the model, with any markdown code fences stripped.
func (c *Chat) GenerateInsights(ctx context.Context, email string) (string, error) {
	snap, err := c.snapshotByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	response, err := c.llm.ChatResponse(ctx, insightsPrompt+renderFinancialContext(snap), "Generate financial insights JSON.")
	if err != nil {
		return "", fmt.Errorf("generate insights: %w", err)
	}

	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.ReplaceAll(response, "```", "")
	return strings.TrimSpace(response), nil
}

func (c *Chat) snapshotByEmail(ctx context.Context, email string) (*Snapshot, error) {
	user, err := c.dir.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return c.summary.BuildSnapshot(ctx, user.ID)
}

// renderFinancialContext flattens the snapshot into the newline-
// delimited block the prompts embed.
func renderFinancialContext(snap *Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "- Total Income: %s\n", snap.TotalIncome)
	fmt.Fprintf(&sb, "- Total Expenses: %s\n", snap.TotalExpenses)
	fmt.Fprintf(&sb, "- Current Balance: %s\n", snap.Balance)

	if len(snap.Budgets) > 0 {
		sb.WriteString("- Budgets:\n")
		for _, b := range snap.Budgets {
			fmt.Fprintf(&sb, "  * %s: %s/%s (Status: %s)\n", b.CategoryName, b.Spent, b.LimitAmount, b.Status)
		}
	} else {
		sb.WriteString("- Budgets: None set for this month.\n")
	}

	if len(snap.RecentTransactions) > 0 {
		sb.WriteString("- Recent Transactions:\n")
		for _, tx := range snap.RecentTransactions {
			fmt.Fprintf(&sb, "  * %s: %s - %s (%s)\n",
				tx.TransactionDate.Format(isoDate), tx.Description, tx.Amount, tx.Type)
		}
	}
	return sb.String()
}

// fallbackAnswer is the rule-based reply used when the LLM is
// unavailable.
func fallbackAnswer(message string, snap *Snapshot) string {
	if strings.Contains(strings.ToLower(message), "balance") {
		return fmt.Sprintf("Your current balance is %s", snap.Balance)
	}
	return "I'm having trouble connecting to my brain right now. Please check your API key."
}
