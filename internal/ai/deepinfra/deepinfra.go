// Package deepinfra talks to the DeepInfra OpenAI-compatible chat endpoint.
package deepinfra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"modelmux/internal/ai"
)

const (
	// Model is pinned; DeepInfra serves it without an account when the
	// request looks like it came from their web playground.
	Model = "openai/gpt-oss-120b"

	defaultURL = "https://api.deepinfra.com/v1/openai/chat/completions"
)

type Client struct {
	URL    string
	APIKey string
	http   *http.Client
}

func New(url, apiKey string) *Client {
	if url == "" {
		url = defaultURL
	}
	return &Client{URL: url, APIKey: apiKey, http: &http.Client{Timeout: 20 * time.Second}}
}

func (c *Client) Name() string { return "deepinfra" }

func (c *Client) Complete(ctx context.Context, history []ai.Message) (string, error) {
	payload := map[string]any{
		"model":    Model,
		"messages": history,
		"stream":   false,
	}
	b, _ := json.Marshal(payload)
	req, _ := http.NewRequestWithContext(ctx, "POST", c.URL, bytes.NewReader(b))

	// Header set mimics the DeepInfra web playground; without it the
	// anonymous endpoint rejects the request.
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://deepinfra.com")
	req.Header.Set("Referer", "https://deepinfra.com/")
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("X-Deepinfra-Source", "web-pag")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &ai.Error{Provider: "deepinfra", Op: "complete", Err: fmt.Errorf("%w: %v", ai.ErrUnavailable, err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", &ai.Error{Provider: "deepinfra", Op: "complete", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &ai.Error{Provider: "deepinfra", Op: "complete", Err: err}
	}
	if len(out.Choices) == 0 {
		return "", &ai.Error{Provider: "deepinfra", Op: "complete", Err: ai.ErrNoChoices}
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
