// Package gpt4free talks to a local gpt4free interference server, which
// exposes the usual OpenAI chat completion API.
package gpt4free

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

const Model = "gpt-4o-mini"

type Client struct {
	BaseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:1337"
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), http: &http.Client{Timeout: 20 * time.Second}}
}

func (c *Client) Name() string { return "gpt4free" }

func (c *Client) Complete(ctx context.Context, history []ai.Message) (string, error) {
	payload := map[string]any{
		"model":    Model,
		"messages": history,
		"stream":   false,
	}
	b, _ := json.Marshal(payload)
	req, _ := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/v1/chat/completions", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &ai.Error{Provider: "gpt4free", Op: "complete", Err: fmt.Errorf("%w: %v", ai.ErrUnavailable, err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", &ai.Error{Provider: "gpt4free", Op: "complete", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &ai.Error{Provider: "gpt4free", Op: "complete", Err: err}
	}
	if len(out.Choices) == 0 {
		return "", &ai.Error{Provider: "gpt4free", Op: "complete", Err: ai.ErrNoChoices}
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
