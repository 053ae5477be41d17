package selector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/api/types"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/cache"
)

type fakeEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	return f.vec, f.err
}

type fakeRepo struct {
	candidates []Candidate
	err        error
	calls      int
	lastFilter string
}

func (f *fakeRepo) FindCandidates(ctx context.Context, embedding []float32, typeFilter string) ([]Candidate, error) {
	f.calls++
	f.lastFilter = typeFilter
	return f.candidates, f.err
}

func testCache(t *testing.T) *cache.Tiered {
	t.Helper()
	c, err := cache.New(cache.Config{
		ResponseCapacity:  8,
		ResponseTTL:       time.Hour,
		EmbeddingCapacity: 8,
		AgentCapacity:     8,
		AgentTTL:          time.Hour,
	}, nil)
	require.NoError(t, err)
	return c
}

func rateOf(v float64) *float64 { return &v }

func TestKeywordPathSecurityTask(t *testing.T) {
	s := New(nil, nil, nil)

	agent, ok := s.Select(context.Background(), "Find security vulnerabilities", "", "")
	require.True(t, ok)
	assert.Equal(t, "code_review", agent.Type)
}

func TestKeywordPathPriorityOrder(t *testing.T) {
	s := New(nil, nil, nil)

	tests := []struct {
		task     string
		wantType string
	}{
		{"review this pull request", "code_review"},
		{"clean up the billing module", "refactoring"},
		{"add unit test coverage", "testing"},
		{"how should this scale", "architecture"},
		{"there is a bug in the scheduler", "debugging"},
		{"hello there", "code_review"}, // default
	}
	for _, tt := range tests {
		agent, ok := s.Select(context.Background(), tt.task, "", "")
		require.True(t, ok, "task: %q", tt.task)
		assert.Equal(t, tt.wantType, agent.Type, "task: %q", tt.task)
	}
}

func TestKeywordPathTypeHint(t *testing.T) {
	s := New(nil, nil, nil)

	agent, ok := s.Select(context.Background(), "anything at all", "architecture", "")
	require.True(t, ok)
	assert.Equal(t, "Software Architect", agent.Name)
}

func TestSemanticOrdering(t *testing.T) {
	repo := &fakeRepo{candidates: []Candidate{
		{Agent: types.Agent{ID: 1, Name: "far", SuccessRate: rateOf(0.99)}, Distance: 0.9},
		{Agent: types.Agent{ID: 2, Name: "near", SuccessRate: rateOf(0.5)}, Distance: 0.1},
	}}
	s := New(&fakeEmbedder{vec: []float32{1}}, repo, nil)

	agent, ok := s.Select(context.Background(), "some task", "", "")
	require.True(t, ok)
	assert.Equal(t, "near", agent.Name, "lowest distance wins")
}

func TestSemanticTieBreaks(t *testing.T) {
	// Equal distance: higher success rate wins; nil rate orders last.
	repo := &fakeRepo{candidates: []Candidate{
		{Agent: types.Agent{ID: 1, Name: "norate"}, Distance: 0.2},
		{Agent: types.Agent{ID: 2, Name: "better", SuccessRate: rateOf(0.9)}, Distance: 0.2},
		{Agent: types.Agent{ID: 3, Name: "worse", SuccessRate: rateOf(0.4)}, Distance: 0.2},
	}}
	s := New(&fakeEmbedder{vec: []float32{1}}, repo, nil)

	agent, ok := s.Select(context.Background(), "some task", "", "")
	require.True(t, ok)
	assert.Equal(t, "better", agent.Name)

	// Equal distance and rate: routing priority decides.
	repo.candidates = []Candidate{
		{Agent: types.Agent{ID: 1, Name: "low", SuccessRate: rateOf(0.8), RoutingPriority: 1}, Distance: 0.2},
		{Agent: types.Agent{ID: 2, Name: "high", SuccessRate: rateOf(0.8), RoutingPriority: 5}, Distance: 0.2},
	}
	agent, ok = s.Select(context.Background(), "another task", "", "")
	require.True(t, ok)
	assert.Equal(t, "high", agent.Name)
}

func TestSemanticPassesTypeFilter(t *testing.T) {
	repo := &fakeRepo{candidates: []Candidate{
		{Agent: types.Agent{ID: 1, Type: "testing"}, Distance: 0.1},
	}}
	s := New(&fakeEmbedder{vec: []float32{1}}, repo, nil)

	_, ok := s.Select(context.Background(), "some task", "testing", "")
	require.True(t, ok)
	assert.Equal(t, "testing", repo.lastFilter)
}

func TestEmbedderErrorFallsBackToKeywords(t *testing.T) {
	repo := &fakeRepo{candidates: []Candidate{
		{Agent: types.Agent{ID: 1, Name: "semantic"}, Distance: 0.1},
	}}
	s := New(&fakeEmbedder{err: errors.New("embedding service down")}, repo, nil)

	agent, ok := s.Select(context.Background(), "refactor this mess", "", "")
	require.True(t, ok)
	assert.Equal(t, "refactoring", agent.Type)
	assert.Zero(t, repo.calls, "repository must not be queried without an embedding")
}

func TestRepoErrorFallsBackToKeywords(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db gone")}
	s := New(&fakeEmbedder{vec: []float32{1}}, repo, nil)

	agent, ok := s.Select(context.Background(), "write a unit test", "", "")
	require.True(t, ok)
	assert.Equal(t, "testing", agent.Type)
}

func TestEmptyRepoFallsBackToKeywords(t *testing.T) {
	s := New(&fakeEmbedder{vec: []float32{1}}, &fakeRepo{}, nil)

	agent, ok := s.Select(context.Background(), "debug the crash", "", "")
	require.True(t, ok)
	assert.Equal(t, "debugging", agent.Type)
}

func TestSelectionCached(t *testing.T) {
	repo := &fakeRepo{candidates: []Candidate{
		{Agent: types.Agent{ID: 42, Name: "picked"}, Distance: 0.1},
	}}
	s := New(&fakeEmbedder{vec: []float32{1}}, repo, testCache(t))

	first, ok := s.Select(context.Background(), "some task", "", "p1")
	require.True(t, ok)
	second, ok := s.Select(context.Background(), "some task", "", "p1")
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.calls, "second select must come from the cache")
}

func TestEmbeddingCachedAcrossSelections(t *testing.T) {
	embedder := &fakeEmbedder{vec: []float32{1}}
	repo := &fakeRepo{candidates: []Candidate{
		{Agent: types.Agent{ID: 1, Name: "a"}, Distance: 0.1},
	}}
	s := New(embedder, repo, testCache(t))

	// Different projects miss the selection cache but share the embedding.
	_, ok := s.Select(context.Background(), "same task", "", "p1")
	require.True(t, ok)
	_, ok = s.Select(context.Background(), "same task", "", "p2")
	require.True(t, ok)

	assert.Equal(t, 1, embedder.calls)
}
