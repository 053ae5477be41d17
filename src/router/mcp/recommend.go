package mcp

import (
	"context"
	"sort"
	"strings"

	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/api/types"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/selector"
)

// Candidate pairs a registry tool with its distance to the search text.
type Candidate struct {
	Tool     types.Tool
	Distance float64
}

// Registry is a nearest-neighbor query over the tool registry.
type Registry interface {
	FindCandidates(ctx context.Context, embedding []float32) ([]Candidate, error)
}

// Recommendation is a classified tool pick.
type Recommendation struct {
	Tool     types.Tool `json:"tool"`
	Distance float64    `json:"distance"`
	Reason   string     `json:"reason"`
}

type Result struct {
	Essential   []Recommendation `json:"essential"`
	Recommended []Recommendation `json:"recommended"`
}

// Tools every project profile gets regardless of distance.
var alwaysEssential = map[string]bool{
	"filesystem": true,
	"github":     true,
	"memory":     true,
}

type Config struct {
	DistanceThreshold float64
	MaxRecommended    int
}

// Recommender ranks registry tools for a project profile, mirroring the
// agent selector's semantic path.
type Recommender struct {
	embedder  selector.Embedder
	registry  Registry
	threshold float64
	maxCount  int
}

func New(embedder selector.Embedder, registry Registry, cfg Config) *Recommender {
	r := &Recommender{
		embedder:  embedder,
		registry:  registry,
		threshold: cfg.DistanceThreshold,
		maxCount:  cfg.MaxRecommended,
	}
	if r.threshold <= 0 {
		r.threshold = 0.5
	}
	if r.maxCount <= 0 {
		r.maxCount = 5
	}
	return r
}

// Recommend splits registry tools into essential and recommended picks for
// a project. Dependency failures degrade to the essential-only rule set.
func (r *Recommender) Recommend(ctx context.Context, projectType string, techStack, requirements []string) Result {
	candidates := r.rank(ctx, projectType, techStack, requirements)

	var out Result
	for _, c := range candidates {
		switch {
		case isEssential(c.Tool, techStack, requirements):
			out.Essential = append(out.Essential, Recommendation{
				Tool:     c.Tool,
				Distance: c.Distance,
				Reason:   "Essential for your tech stack",
			})
		case c.Distance < r.threshold:
			if len(out.Recommended) < r.maxCount {
				out.Recommended = append(out.Recommended, Recommendation{
					Tool:     c.Tool,
					Distance: c.Distance,
					Reason:   "Recommended based on project type",
				})
			}
		}
	}
	return out
}

// rank orders registry candidates by ascending distance. Without a working
// embedder or registry it falls back to keyword scoring over capabilities,
// so essential tools still surface.
func (r *Recommender) rank(ctx context.Context, projectType string, techStack, requirements []string) []Candidate {
	searchText := projectType + " " + strings.Join(techStack, " ") + " " + strings.Join(requirements, " ")

	if r.embedder != nil && r.registry != nil {
		if embedding, err := r.embedder.Embed(ctx, searchText); err == nil {
			if candidates, err := r.registry.FindCandidates(ctx, embedding); err == nil && len(candidates) > 0 {
				sort.SliceStable(candidates, func(i, j int) bool {
					return candidates[i].Distance < candidates[j].Distance
				})
				return candidates
			}
		}
	}
	return keywordRank(searchText)
}

// keywordRank scores built-in registry entries by capability overlap with
// the search text; distance is 1 minus the matched fraction.
func keywordRank(searchText string) []Candidate {
	lower := strings.ToLower(searchText)
	candidates := make([]Candidate, 0, len(BuiltinTools))
	for _, tool := range BuiltinTools {
		matched := 0
		for _, capability := range tool.Capabilities {
			if strings.Contains(lower, strings.ToLower(capability)) {
				matched++
			}
		}
		dist := 1.0
		if len(tool.Capabilities) > 0 {
			dist = 1.0 - float64(matched)/float64(len(tool.Capabilities))
		}
		candidates = append(candidates, Candidate{Tool: tool, Distance: dist})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Distance < candidates[j].Distance
	})
	return candidates
}

func isEssential(tool types.Tool, techStack, requirements []string) bool {
	if alwaysEssential[tool.Name] {
		return true
	}

	stack := lowerAll(techStack)
	reqs := lowerAll(requirements)

	switch tool.Name {
	case "postgresql":
		return containsAny(stack, "postgres", "sql")
	case "slack":
		return containsAny(reqs, "team", "collaboration")
	case "puppeteer":
		return containsAny(reqs, "testing", "e2e")
	case "brave-search":
		return containsAny(reqs, "research")
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

func containsAny(items []string, subs ...string) bool {
	for _, item := range items {
		for _, sub := range subs {
			if strings.Contains(item, sub) {
				return true
			}
		}
	}
	return false
}
