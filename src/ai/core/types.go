package core

import "context"

// Options controls model behavior; fields are optional per provider.
type Options struct {
	Model        string
	SystemPrompt string
	MaxTokens    int
	Temperature  float64
}

// Reply is a completed model response.
type Reply struct {
	Text   string
	Tokens int
}

// Client is a provider-agnostic interface for model execution.
type Client interface {
	Respond(ctx context.Context, input string, opts Options) (Reply, error)
}
