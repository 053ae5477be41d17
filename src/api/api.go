// File: src/api/api.go

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/microcosm-cc/bluemonday"

	_ "github.com/Dan-MapMAchina/ai-dev-infrastructure/src/ai/anthropic"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/ai/core"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/ai/ollama"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/api/config"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/api/data"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/api/handlers"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/api/webserver"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/cache"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/classifier"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/mcp"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/repo"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/selector"
)

func main() {
	cfg := config.Load()

	// Database is optional: without it the service runs in lite mode on
	// the built-in agents, with no recording.
	db, err := data.ConnectMySQL(cfg.MySQLDSN)
	liteMode := err != nil
	if liteMode {
		log.Printf("lite mode: database unavailable (%v)", err)
	} else {
		data.Seed(db)
	}

	// Redis backing is optional too; the cache probes it once.
	var backing cache.Backing
	if cfg.RedisURL != "" {
		backing = cache.NewRedisBacking(data.MustRedis(cfg.RedisURL))
	}
	tiered, err := cache.New(cache.Config{
		ResponseCapacity:  cfg.ResponseCapacity,
		ResponseTTL:       cfg.ResponseTTL,
		EmbeddingCapacity: cfg.EmbeddingCapacity,
		AgentCapacity:     cfg.AgentCapacity,
		AgentTTL:          cfg.AgentTTL,
	}, backing)
	if err != nil {
		log.Fatalf("cache: %v", err)
	}

	embedder := ollama.New(cfg.OllamaURL, cfg.EmbedModel)

	local, err := core.NewClient(core.FactoryConfig{
		Provider: "ollama",
		BaseURL:  cfg.OllamaURL,
		Model:    cfg.OllamaModel,
	})
	if err != nil {
		log.Fatalf("ollama: %v", err)
	}

	var hosted core.Client
	if cfg.AnthropicKey != "" {
		hosted, err = core.NewClient(core.FactoryConfig{
			Provider: "anthropic",
			APIKey:   cfg.AnthropicKey,
			Model:    cfg.AnthropicModel,
		})
		if err != nil {
			log.Printf("anthropic client disabled: %v", err)
		}
	} else {
		log.Printf("anthropic client disabled: no API key")
	}

	deps := handlers.Deps{
		Cfg:   cfg,
		DB:    db,
		Cache: tiered,
		Classifier: classifier.New(classifier.Config{
			ComplexThreshold: cfg.ComplexThreshold,
			SimpleThreshold:  cfg.SimpleThreshold,
			LengthThreshold:  cfg.LengthThreshold,
		}),
		Local:     local,
		Hosted:    hosted,
		Embedder:  embedder,
		Sanitizer: bluemonday.StrictPolicy(),
		LiteMode:  liteMode,
	}

	var agentRepo selector.Repository
	var toolRegistry mcp.Registry
	if !liteMode {
		agents := repo.NewAgents(db)
		tools := repo.NewTools(db)
		deps.Agents = agents
		deps.Tools = tools
		deps.History = repo.NewHistory(db)
		agentRepo = agents
		toolRegistry = tools
	}
	deps.Selector = selector.New(embedder, agentRepo, tiered)
	deps.Recommender = mcp.New(embedder, toolRegistry, mcp.Config{
		DistanceThreshold: cfg.RecommendedDistanceThreshold,
		MaxRecommended:    cfg.RecommendedMaxCount,
	})

	router := webserver.New(deps)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	stats := tiered.Stats()
	log.Printf("ai-dev API listening on %s (mode: %s, redis: %v)", cfg.Port, mode(liteMode), stats.RedisConnected)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	if err := httpSrv.Shutdown(shutCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func mode(lite bool) string {
	if lite {
		return "lite"
	}
	return "full"
}
