package classifier

import "strings"

// Route is the execution backend chosen for a task.
type Route string

const (
	RouteLocalModel      Route = "local-model"
	RouteHostedModel     Route = "hosted-model"
	RouteAnalyticsEngine Route = "analytics-engine"
)

// Trigger phrases that send a task straight to the analytics engine.
var analyticsKeywords = []string{
	"sql", "database", "query data", "analyze database",
	"schema", "migration", "aggregate", "join",
}

var complexKeywords = []string{
	"develop", "build", "create", "implement", "refactor",
	"architect", "design", "analyze", "debug", "optimize",
	"review code", "write code", "fix bug", "improve",
}

var simpleKeywords = []string{
	"summarize", "summary", "tldr", "brief", "short",
	"classify", "category", "what is", "define", "explain simply",
	"translate", "extract", "convert", "format", "list",
}

// Config holds the scoring thresholds. Zero values fall back to defaults.
type Config struct {
	ComplexThreshold int
	SimpleThreshold  int
	LengthThreshold  int
}

type Classifier struct {
	complexThreshold int
	simpleThreshold  int
	lengthThreshold  int
}

// New builds a classifier with the single-signal thresholds: one keyword
// hit decides the route, and tasks under 15 words default to the local model.
func New(cfg Config) *Classifier {
	c := &Classifier{
		complexThreshold: cfg.ComplexThreshold,
		simpleThreshold:  cfg.SimpleThreshold,
		lengthThreshold:  cfg.LengthThreshold,
	}
	if c.complexThreshold <= 0 {
		c.complexThreshold = 1
	}
	if c.simpleThreshold <= 0 {
		c.simpleThreshold = 1
	}
	if c.lengthThreshold <= 0 {
		c.lengthThreshold = 15
	}
	return c
}

// Classify picks a route for a task. Rules apply in order: analytics
// triggers, complex vocabulary, simple vocabulary, then length.
func (c *Classifier) Classify(text string) Route {
	lower := strings.ToLower(text)

	for _, kw := range analyticsKeywords {
		if strings.Contains(lower, kw) {
			return RouteAnalyticsEngine
		}
	}

	if countMatches(lower, complexKeywords) >= c.complexThreshold {
		return RouteHostedModel
	}

	if countMatches(lower, simpleKeywords) >= c.simpleThreshold {
		return RouteLocalModel
	}

	if len(strings.Fields(text)) < c.lengthThreshold {
		return RouteLocalModel
	}
	return RouteHostedModel
}

func countMatches(lower string, vocab []string) int {
	n := 0
	for _, kw := range vocab {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}
