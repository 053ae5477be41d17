// Exercises the classifier, selector and cache without the HTTP layer.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/ai/ollama"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/cache"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/classifier"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/mcp"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/selector"
)

var (
	taskFlag    = flag.String("task", "Refactor the payment module and add tests", "Task text to route")
	typeFlag    = flag.String("type", "", "Agent type hint")
	projectFlag = flag.String("project", "smoketest", "Project id for cache keys")
	ollamaFlag  = flag.String("ollama", "", "Ollama base URL for the semantic path (empty = keyword only)")
	embedFlag   = flag.String("embed-model", "nomic-embed-text", "Embedding model name")
)

func main() {
	flag.Parse()

	tiered, err := cache.New(cache.Config{
		ResponseCapacity:  100,
		ResponseTTL:       time.Hour,
		EmbeddingCapacity: 1000,
		AgentCapacity:     100,
		AgentTTL:          time.Hour,
	}, nil)
	if err != nil {
		log.Fatalf("cache: %v", err)
	}

	cls := classifier.New(classifier.Config{})
	route := cls.Classify(*taskFlag)
	fmt.Printf("route: %s\n", route)

	var embedder selector.Embedder
	if *ollamaFlag != "" {
		embedder = ollama.New(*ollamaFlag, *embedFlag)
	}
	sel := selector.New(embedder, nil, tiered)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	agent, ok := sel.Select(ctx, *taskFlag, *typeFlag, *projectFlag)
	if !ok {
		log.Fatalf("no agent resolved")
	}
	fmt.Printf("agent: %s (%s)\n", agent.Name, agent.Type)

	rec := mcp.New(embedder, nil, mcp.Config{})
	result := rec.Recommend(ctx, "api service", []string{"go", "mysql"}, []string{"testing"})
	for _, r := range result.Essential {
		fmt.Printf("essential tool: %s\n", r.Tool.Name)
	}
	for _, r := range result.Recommended {
		fmt.Printf("recommended tool: %s (%.2f)\n", r.Tool.Name, r.Distance)
	}

	stats := tiered.Stats()
	fmt.Printf("cache: agents=%d/%d redis=%v\n", stats.Agent.Size, stats.Agent.Capacity, stats.RedisConnected)
}
