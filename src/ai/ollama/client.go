package ollama

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

func init() {
	core.RegisterProvider("ollama", func(cfg core.FactoryConfig) (core.Client, error) {
		return New(cfg.BaseURL, cfg.Model), nil
	}, "local")
}

// Client talks to a local ollama server.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func New(baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.2:3b"
	}
	return &Client{
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *Client) Respond(ctx context.Context, input string, opts core.Options) (core.Reply, error) {
	model := opts.Model
	if model == "" {
		model = c.model
	}
	system := opts.SystemPrompt
	if system == "" {
		system = "You are a helpful assistant. Be concise and accurate."
	}

	reqBody := map[string]any{
		"model":  model,
		"stream": false,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": input},
		},
	}
	body, err := c.post(ctx, "/api/chat", reqBody)
	if err != nil {
		return core.Reply{}, err
	}

	var result struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		PromptEvalCount int `json:"prompt_eval_count"`
		EvalCount       int `json:"eval_count"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return core.Reply{}, err
	}
	return core.Reply{
		Text:   result.Message.Content,
		Tokens: result.PromptEvalCount + result.EvalCount,
	}, nil
}

// Embed computes an embedding vector for the text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	reqBody := map[string]any{
		"model":  c.model,
		"prompt": text,
	}
	body, err := c.post(ctx, "/api/embeddings", reqBody)
	if err != nil {
		return nil, err
	}

	var result struct {
		Embedding []float32 `json:"embedding"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	if len(result.Embedding) == 0 {
		return nil, fmt.Errorf("ollama: empty embedding")
	}
	return result.Embedding, nil
}

func (c *Client) post(ctx context.Context, path string, reqBody map[string]any) ([]byte, error) {
	b, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewBuffer(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama API error: %s", string(body))
	}
	return body, nil
}
