package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyScenarios(t *testing.T) {
	c := New(Config{})

	tests := []struct {
		text string
		want Route
	}{
		{"Summarize this document tldr", RouteLocalModel},
		{"Refactor and architect the payment module", RouteHostedModel},
		{"Write SQL to join orders and users", RouteAnalyticsEngine},
		{"Hello", RouteLocalModel},
		{"Translate this sentence to French", RouteLocalModel},
		{"What is the database schema for users", RouteAnalyticsEngine},
		{"Debug the race condition in the worker pool", RouteHostedModel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Classify(tt.text), "text: %q", tt.text)
	}
}

func TestClassifyEmptyText(t *testing.T) {
	c := New(Config{})
	// Zero words is below any length threshold.
	assert.Equal(t, RouteLocalModel, c.Classify(""))
}

func TestClassifyAnalyticsWinsOverComplex(t *testing.T) {
	c := New(Config{})
	// "implement" is complex vocabulary but the analytics trigger is checked first.
	assert.Equal(t, RouteAnalyticsEngine, c.Classify("Implement the database migration"))
}

func TestClassifyGraphNotAnalyticsTrigger(t *testing.T) {
	c := New(Config{})
	// "graph" is not an analytics trigger: as a substring it would fire
	// on "paragraph" and misroute plain prose.
	assert.Equal(t, RouteLocalModel, c.Classify("Summarize this paragraph"))
}

func TestClassifyCaseInsensitive(t *testing.T) {
	c := New(Config{})
	assert.Equal(t, RouteHostedModel, c.Classify("REFACTOR THE BILLING LAYER"))
}

func TestClassifyLengthFallback(t *testing.T) {
	c := New(Config{LengthThreshold: 5})

	assert.Equal(t, RouteLocalModel, c.Classify("just a few words"))
	assert.Equal(t, RouteHostedModel, c.Classify("this one on the other hand has plenty of words in it"))
}

func TestClassifyStricterThreshold(t *testing.T) {
	c := New(Config{ComplexThreshold: 2})

	// A single complex keyword no longer routes to the hosted model.
	assert.Equal(t, RouteLocalModel, c.Classify("Debug this"))
	assert.Equal(t, RouteHostedModel, c.Classify("Debug and optimize the scheduler"))
}
