package handlers

import (
	"log"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/ai/core"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/api/types"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/cache"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/classifier"
)

type Route struct {
	Deps
}

type reqRouteQuery struct {
	Query string `json:"query" binding:"required"`
}

// RouteQuery classifies a query without executing it.
func (h Route) RouteQuery(c *gin.Context) {
	var req reqRouteQuery
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	start := time.Now()
	route := h.Classifier.Classify(req.Query)
	if h.History != nil {
		h.History.LogRouting(c.Request.Context(), h.sanitize(req.Query), string(route), time.Since(start))
	}

	c.JSON(http.StatusOK, gin.H{
		"route": route,
		"query": req.Query,
	})
}

type reqExecuteTask struct {
	Task      string `json:"task" binding:"required"`
	ProjectID string `json:"project_id"`
	AgentType string `json:"agent_type"`
	NoCache   bool   `json:"no_cache"`
}

// ExecuteTask classifies a task, resolves an agent, runs the routed model
// and records the execution. Cached results short-circuit the whole path.
func (h Route) ExecuteTask(c *gin.Context) {
	var req reqExecuteTask
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	ctx := c.Request.Context()
	qctx := map[string]any{"project_id": req.ProjectID}

	if !req.NoCache {
		if cached, ok := h.Cache.GetResponse(ctx, req.Task, qctx); ok {
			out := make(gin.H, len(cached)+1)
			for k, v := range cached {
				out[k] = v
			}
			out["cached"] = true
			c.JSON(http.StatusOK, out)
			return
		}
	}

	start := time.Now()
	route := h.Classifier.Classify(req.Task)
	if h.History != nil {
		h.History.LogRouting(ctx, h.sanitize(req.Task), string(route), time.Since(start))
	}

	agent, _ := h.Selector.Select(ctx, req.Task, req.AgentType, req.ProjectID)

	client, opts := h.clientFor(route, agent)
	if client == nil {
		c.JSON(http.StatusOK, gin.H{
			"route":  route,
			"agent":  agent.Name,
			"result": "",
			"error":  "no execution backend configured for route " + string(route),
		})
		return
	}

	reply, err := client.Respond(ctx, req.Task, opts)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"route": route,
			"agent": agent.Name,
			"error": err.Error(),
		})
		return
	}
	elapsed := time.Since(start)

	if h.History != nil && agent.ID > 0 {
		err := h.History.Record(ctx, types.AgentExecution{
			AgentID:   agent.ID,
			ProjectID: req.ProjectID,
			Task:      truncate(h.sanitize(req.Task), 4000),
			Output:    truncate(reply.Text, 65535),
			TimeMs:    elapsed.Milliseconds(),
			Tokens:    reply.Tokens,
			Success:   true,
		})
		if err != nil {
			log.Printf("execute: record agent %d: %v", agent.ID, err)
		}
	}

	result := gin.H{
		"route":      route,
		"agent":      agent.Name,
		"agent_type": agent.Type,
		"result":     reply.Text,
		"metrics": gin.H{
			"tokens":  reply.Tokens,
			"time_ms": elapsed.Milliseconds(),
		},
	}
	if !req.NoCache {
		h.Cache.PutResponse(ctx, req.Task, qctx, result, cache.DefaultTTL)
	}
	c.JSON(http.StatusOK, result)
}

// clientFor maps a route to an execution client. The analytics engine is an
// external collaborator; without one the hosted model handles those tasks.
func (h Route) clientFor(route classifier.Route, agent types.Agent) (core.Client, core.Options) {
	opts := core.Options{SystemPrompt: agent.SystemPrompt}
	switch route {
	case classifier.RouteLocalModel:
		return h.Local, opts
	case classifier.RouteHostedModel, classifier.RouteAnalyticsEngine:
		if h.Hosted != nil {
			return h.Hosted, opts
		}
		return h.Local, opts
	}
	return h.Local, opts
}

// truncate cuts s to at most n bytes on a rune boundary.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
