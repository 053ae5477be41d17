package selector

import (
	"context"
	"sort"
	"strings"

	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/api/types"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/cache"
)

// Embedder turns text into a fixed-length vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Candidate pairs an agent with its distance to the task embedding.
type Candidate struct {
	Agent    types.Agent
	Distance float64
}

// Repository is a nearest-neighbor query over stored agents.
type Repository interface {
	FindCandidates(ctx context.Context, embedding []float32, typeFilter string) ([]Candidate, error)
}

// Selector resolves the best agent for a task. The semantic path ranks
// repository candidates by embedding distance; any dependency failure
// falls back to keyword matching over the built-in agents.
type Selector struct {
	embedder Embedder
	repo     Repository
	cache    *cache.Tiered
	fallback []types.Agent
}

func New(embedder Embedder, repo Repository, c *cache.Tiered) *Selector {
	return &Selector{
		embedder: embedder,
		repo:     repo,
		cache:    c,
		fallback: DefaultAgents,
	}
}

// Select returns the best agent for the task, or false when even the
// fallback produced nothing. It never returns an error: unavailable
// dependencies degrade to the keyword path.
func (s *Selector) Select(ctx context.Context, task, typeHint, projectID string) (types.Agent, bool) {
	if s.cache != nil {
		if agent, ok := s.cache.GetAgent(ctx, task, projectID); ok {
			return agent, true
		}
	}

	if agent, ok := s.semantic(ctx, task, typeHint); ok {
		if s.cache != nil {
			s.cache.PutAgent(ctx, task, projectID, agent, cache.DefaultTTL)
		}
		return agent, true
	}

	return s.keyword(task, typeHint)
}

func (s *Selector) semantic(ctx context.Context, task, typeHint string) (types.Agent, bool) {
	if s.embedder == nil || s.repo == nil {
		return types.Agent{}, false
	}
	embedding, err := s.fetchEmbedding(ctx, task)
	if err != nil {
		return types.Agent{}, false
	}
	candidates, err := s.repo.FindCandidates(ctx, embedding, typeHint)
	if err != nil || len(candidates) == 0 {
		return types.Agent{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		ra, rb := successRate(a.Agent), successRate(b.Agent)
		if ra != rb {
			return ra > rb
		}
		return a.Agent.RoutingPriority > b.Agent.RoutingPriority
	})
	return candidates[0].Agent, true
}

func (s *Selector) fetchEmbedding(ctx context.Context, task string) ([]float32, error) {
	if s.cache != nil {
		if vec, ok := s.cache.GetEmbedding(ctx, task); ok {
			return vec, nil
		}
	}
	vec, err := s.embedder.Embed(ctx, task)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.PutEmbedding(ctx, task, vec)
	}
	return vec, nil
}

// Missing rates order last.
func successRate(a types.Agent) float64 {
	if a.SuccessRate == nil {
		return -1
	}
	return *a.SuccessRate
}

// Keyword groups scanned in priority order on the fallback path.
var keywordGroups = []struct {
	agentType string
	keywords  []string
}{
	{"code_review", []string{"review", "security", "vulnerability"}},
	{"refactoring", []string{"refactor", "clean", "improve structure"}},
	{"testing", []string{"test", "coverage", "unit test"}},
	{"architecture", []string{"architect", "design", "scale"}},
	{"debugging", []string{"bug", "debug", "fix", "error"}},
}

func (s *Selector) keyword(task, typeHint string) (types.Agent, bool) {
	if typeHint != "" {
		for _, agent := range s.fallback {
			if agent.Type == typeHint {
				return agent, true
			}
		}
	}

	lower := strings.ToLower(task)
	for _, group := range keywordGroups {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				if agent, ok := s.byType(group.agentType); ok {
					return agent, true
				}
			}
		}
	}

	// Default to the review specialist.
	return s.byType("code_review")
}

func (s *Selector) byType(agentType string) (types.Agent, bool) {
	for _, agent := range s.fallback {
		if agent.Type == agentType {
			return agent, true
		}
	}
	return types.Agent{}, false
}
