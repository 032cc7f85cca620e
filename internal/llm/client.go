package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Generator turns a prompt into free text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client talks to Ollama through its OpenAI-compatible chat completions API.
type Client struct {
	api        *openai.Client
	baseURL    string
	model      string
	maxRetries int
}

// Compile-time check: Client satisfies Generator.
var _ Generator = (*Client)(nil)

// NewClient creates a Client for the given Ollama base URL and model.
// The /v1 suffix is added when baseURL does not already carry it.
func NewClient(baseURL, model string, timeout time.Duration, maxRetries int) *Client {
	base := strings.TrimRight(baseURL, "/")
	if !strings.HasSuffix(base, "/v1") {
		base += "/v1"
	}

	// Ollama ignores the bearer token but go-openai always sends one.
	cfg := openai.DefaultConfig("ollama")
	cfg.BaseURL = base
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Client{
		api:        openai.NewClientWithConfig(cfg),
		baseURL:    base,
		model:      model,
		maxRetries: maxRetries,
	}
}

// Model returns the model identifier sent with every request.
func (c *Client) Model() string {
	return c.model
}

// Generate sends the prompt as a single user message and returns the first
// choice's content. Transport errors and 5xx responses are retried with
// exponential backoff.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	var lastErr error
	for attempt := range c.maxRetries + 1 {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(1<<uint(attempt-1)) * time.Second):
			}
		}

		resp, err := c.api.CreateChatCompletion(ctx, req)
		if err == nil {
			if len(resp.Choices) == 0 {
				return "", fmt.Errorf("llm: %s returned no choices", c.model)
			}
			return resp.Choices[0].Message.Content, nil
		}
		lastErr = fmt.Errorf("llm: chat completion: %w", err)
		if ctx.Err() != nil || !retryable(err) {
			break
		}
	}
	return "", lastErr
}

// retryable reports whether err is a server-side failure or a transport error.
func retryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode >= 500
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode >= 500
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
