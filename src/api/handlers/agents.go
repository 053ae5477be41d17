package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/api/types"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/selector"
)

type AgentsHandler struct {
	Deps
}

// List returns every registered agent, best success rate first. Lite mode
// serves the built-in personas.
func (h AgentsHandler) List(c *gin.Context) {
	if h.Agents != nil {
		agents, err := h.Agents.List(c.Request.Context())
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"agents": agents})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"agents": selector.DefaultAgents, "lite_mode": true})
}

func (h AgentsHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid agent id"})
		return
	}

	if h.Agents != nil {
		agent, err := h.Agents.Get(c.Request.Context(), uint32(id))
		if err == nil {
			c.JSON(http.StatusOK, agent)
			return
		}
	}

	for _, agent := range selector.DefaultAgents {
		if uint64(agent.ID) == id {
			c.JSON(http.StatusOK, gin.H{
				"id": agent.ID, "name": agent.Name, "type": agent.Type,
				"purpose": agent.Purpose, "system_prompt": agent.SystemPrompt,
				"success_rate": agent.SuccessRate, "lite_mode": true,
			})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"err": "agent not found"})
}

type reqCreateAgent struct {
	Name         string `json:"name" binding:"required"`
	Type         string `json:"type" binding:"required"`
	Purpose      string `json:"purpose" binding:"required"`
	SystemPrompt string `json:"system_prompt" binding:"required"`
	Priority     int    `json:"routing_priority"`
}

// Create registers a new agent and embeds its purpose for semantic lookup.
func (h AgentsHandler) Create(c *gin.Context) {
	if h.Agents == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": "agent repository unavailable in lite mode"})
		return
	}
	var req reqCreateAgent
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	agent := types.Agent{
		Name:            req.Name,
		Type:            req.Type,
		Purpose:         req.Purpose,
		SystemPrompt:    req.SystemPrompt,
		RoutingPriority: req.Priority,
	}
	if h.Embedder != nil {
		if vec, err := h.Embedder.Embed(c.Request.Context(), req.Purpose+" "+req.SystemPrompt); err == nil {
			agent.Embedding = vec
		}
	}

	if err := h.Agents.Create(c.Request.Context(), &agent); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, agent)
}
