package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ErrUnconfigured is returned when no API key was provided at
// construction. Callers treat it like any other failed call.
var ErrUnconfigured = errors.New("llm: api key not configured")

// Config is the explicit LLM configuration value. An empty APIKey is
// the unconfigured signal; there is no placeholder sentinel.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

func (c Config) IsConfigured() bool {
	return c.APIKey != ""
}

// Client talks to any OpenAI-compatible chat-completion endpoint
// (OpenAI, OpenRouter, a local gateway) selected via Config.BaseURL.
type Client struct {
	cfg Config
	api *openai.Client
}

func New(cfg Config) *Client {
	if !cfg.IsConfigured() {
		return &Client{cfg: cfg}
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	return &Client{cfg: cfg, api: openai.NewClientWithConfig(oc)}
}

// Configured reports whether an API key was supplied.
func (c *Client) Configured() bool {
	return c.api != nil
}

func (c *Client) ChatResponse(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if c.api == nil {
		return "", ErrUnconfigured
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("llm: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
