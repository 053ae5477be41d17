package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/ai/core"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/cache"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/classifier"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/mcp"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/selector"
)

type fakeClient struct {
	reply core.Reply
	err   error
	calls int
}

func (f *fakeClient) Respond(ctx context.Context, input string, opts core.Options) (core.Reply, error) {
	f.calls++
	return f.reply, f.err
}

func liteDeps(t *testing.T, local core.Client) Deps {
	t.Helper()
	tiered, err := cache.New(cache.Config{
		ResponseCapacity:  16,
		ResponseTTL:       time.Hour,
		EmbeddingCapacity: 16,
		AgentCapacity:     16,
		AgentTTL:          time.Hour,
	}, nil)
	require.NoError(t, err)

	return Deps{
		Cache:       tiered,
		Classifier:  classifier.New(classifier.Config{}),
		Selector:    selector.New(nil, nil, tiered),
		Recommender: mcp.New(nil, nil, mcp.Config{}),
		Local:       local,
		Sanitizer:   bluemonday.StrictPolicy(),
		LiteMode:    true,
	}
}

func perform(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRouteQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.POST("/route-query", Route{Deps: liteDeps(t, &fakeClient{})}.RouteQuery)

	w := perform(g, "POST", "/route-query", gin.H{"query": "Refactor and architect the payment module"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hosted-model", decode(t, w)["route"])

	w = perform(g, "POST", "/route-query", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExecuteTaskLocal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	local := &fakeClient{reply: core.Reply{Text: "done", Tokens: 5}}
	g := gin.New()
	g.POST("/execute-task", Route{Deps: liteDeps(t, local)}.ExecuteTask)

	w := perform(g, "POST", "/execute-task", gin.H{"task": "Summarize this document tldr"})
	require.Equal(t, http.StatusOK, w.Code)

	out := decode(t, w)
	assert.Equal(t, "local-model", out["route"])
	assert.Equal(t, "done", out["result"])
	assert.NotEmpty(t, out["agent"])
}

func TestExecuteTaskCached(t *testing.T) {
	gin.SetMode(gin.TestMode)
	local := &fakeClient{reply: core.Reply{Text: "done", Tokens: 5}}
	g := gin.New()
	g.POST("/execute-task", Route{Deps: liteDeps(t, local)}.ExecuteTask)

	body := gin.H{"task": "Summarize this document tldr", "project_id": "p1"}
	w := perform(g, "POST", "/execute-task", body)
	require.Equal(t, http.StatusOK, w.Code)

	w = perform(g, "POST", "/execute-task", body)
	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Equal(t, true, out["cached"])
	assert.Equal(t, 1, local.calls, "second call must hit the response cache")
}

func TestExecuteTaskNoCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	local := &fakeClient{reply: core.Reply{Text: "done"}}
	g := gin.New()
	g.POST("/execute-task", Route{Deps: liteDeps(t, local)}.ExecuteTask)

	body := gin.H{"task": "Summarize this document tldr", "no_cache": true}
	perform(g, "POST", "/execute-task", body)
	perform(g, "POST", "/execute-task", body)
	assert.Equal(t, 2, local.calls)
}

func TestExecuteTaskBackendDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	local := &fakeClient{err: context.DeadlineExceeded}
	g := gin.New()
	g.POST("/execute-task", Route{Deps: liteDeps(t, local)}.ExecuteTask)

	w := perform(g, "POST", "/execute-task", gin.H{"task": "Summarize this document tldr"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestListAgentsLiteMode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.GET("/agents", AgentsHandler{Deps: liteDeps(t, &fakeClient{})}.List)

	w := perform(g, "GET", "/agents", nil)
	require.Equal(t, http.StatusOK, w.Code)

	out := decode(t, w)
	assert.Equal(t, true, out["lite_mode"])
	assert.Len(t, out["agents"], 5)
}

func TestRecommendTools(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.POST("/recommend-tools", ToolsHandler{Deps: liteDeps(t, &fakeClient{})}.Recommend)

	w := perform(g, "POST", "/recommend-tools", gin.H{
		"project_type": "web app",
		"tech_stack":   []string{"postgres", "go"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result mcp.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	found := false
	for _, rec := range result.Essential {
		if rec.Tool.Name == "postgresql" {
			found = true
		}
	}
	assert.True(t, found, "postgresql must be essential for a postgres stack")
}

func TestTruncateRuneBoundary(t *testing.T) {
	s := strings.Repeat("a", 3999) + "é" // 'é' occupies bytes 3999-4000
	got := truncate(s, 4000)
	assert.Equal(t, strings.Repeat("a", 3999), got)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "ok", truncate("ok", 4000))
}

func TestCacheStatsAndHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := liteDeps(t, &fakeClient{})
	g := gin.New()
	g.GET("/cache/stats", CacheHandler{Deps: deps}.Stats)
	g.GET("/health", CacheHandler{Deps: deps}.Health)

	w := perform(g, "GET", "/cache/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Equal(t, false, out["redis_connected"])

	w = perform(g, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "lite", decode(t, w)["mode"])
}
