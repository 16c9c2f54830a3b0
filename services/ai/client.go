// Package ai turns a free-text request plus the user's rating history into a
// bounded list of movie suggestions via a chat-completion API, with a
// deterministic keyword fallback when the model is unavailable or its reply
// is unparseable.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

const defaultAPIURL = "https://api.openai.com/v1/chat/completions"

const systemMessage = "You are a movie recommendation expert. Provide exactly 3 movie recommendations based on the user's request and their rating history."

// Client calls a chat-completion API with bearer-token auth.
type Client struct {
	apiKey string
	apiURL string
	httpc  *http.Client
}

// NewClient builds a chat-completion client. An empty apiURL uses the OpenAI
// endpoint; a nil httpc falls back to a default with a timeout.
func NewClient(apiKey, apiURL string, httpc *http.Client) *Client {
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	if httpc == nil {
		httpc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		apiKey: strings.TrimSpace(apiKey),
		apiURL: apiURL,
		httpc:  httpc,
	}
}

func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete sends the prompt and returns the first choice's message content.
// Network errors, 429s and 5xx responses are retried with backoff; other
// failures abort immediately.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	if !c.IsConfigured() {
		return "", errors.New("ai: api key not configured")
	}

	body, err := json.Marshal(chatRequest{
		Model: "gpt-3.5-turbo",
		Messages: []chatMessage{
			{Role: "system", Content: systemMessage},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   200,
	})
	if err != nil {
		return "", fmt.Errorf("ai: marshal request: %w", err)
	}

	var content string
	err = retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("ai: create request: %w", err))
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+c.apiKey)

			resp, err := c.httpc.Do(req)
			if err != nil {
				return fmt.Errorf("ai: request: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return fmt.Errorf("ai: api error: status %d", resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				raw, _ := io.ReadAll(resp.Body)
				return retry.Unrecoverable(fmt.Errorf("ai: api error %d: %s", resp.StatusCode, string(raw)))
			}

			var parsed chatResponse
			if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
				return retry.Unrecoverable(fmt.Errorf("ai: decode response: %w", err))
			}
			if len(parsed.Choices) == 0 {
				return retry.Unrecoverable(errors.New("ai: empty response"))
			}
			content = parsed.Choices[0].Message.Content
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", err
	}
	return content, nil
}
