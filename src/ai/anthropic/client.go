package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/ai/core"
)

const apiURL = "https://api.anthropic.com/v1/messages"

func init() {
	core.RegisterProvider("anthropic", func(cfg core.FactoryConfig) (core.Client, error) {
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("anthropic: API key required")
		}
		return New(cfg.APIKey, cfg.Model, cfg.MaxTokens), nil
	}, "claude", "hosted")
}

// Client talks to the Anthropic Messages API.
type Client struct {
	apiKey     string
	model      string
	maxTokens  int
	httpClient *http.Client
}

func New(apiKey, model string, maxTokens int) *Client {
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	if maxTokens <= 0 {
		maxTokens = 16000
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		maxTokens:  maxTokens,
		httpClient: &http.Client{Timeout: 300 * time.Second},
	}
}

func (c *Client) Respond(ctx context.Context, input string, opts core.Options) (core.Reply, error) {
	model := opts.Model
	if model == "" {
		model = c.model
	}
	system := opts.SystemPrompt
	if system == "" {
		system = "You are an expert software development assistant."
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}

	reqBody := map[string]any{
		"model":      model,
		"max_tokens": maxTokens,
		"system":     system,
		"messages": []map[string]string{
			{"role": "user", "content": input},
		},
	}
	b, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewBuffer(b))
	if err != nil {
		return core.Reply{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return core.Reply{}, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.Reply{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return core.Reply{}, fmt.Errorf("anthropic API error: %s", string(body))
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		Usage struct {
			InputTokens  int `json:"input_tokens"`
			OutputTokens int `json:"output_tokens"`
		} `json:"usage"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return core.Reply{}, err
	}

	var text string
	for _, block := range result.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return core.Reply{}, fmt.Errorf("anthropic: no text in response")
	}
	return core.Reply{
		Text:   text,
		Tokens: result.Usage.InputTokens + result.Usage.OutputTokens,
	}, nil
}
