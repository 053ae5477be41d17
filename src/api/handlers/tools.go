package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/api/types"
)

type ToolsHandler struct {
	Deps
}

type reqRecommend struct {
	ProjectType  string   `json:"project_type" binding:"required"`
	TechStack    []string `json:"tech_stack"`
	Requirements []string `json:"requirements"`
}

// Recommend ranks registry tools for a project profile.
func (h ToolsHandler) Recommend(c *gin.Context) {
	var req reqRecommend
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	result := h.Recommender.Recommend(c.Request.Context(), req.ProjectType, req.TechStack, req.Requirements)
	c.JSON(http.StatusOK, result)
}

var defaultProjectTools = []types.ProjectTool{
	{ToolName: "filesystem", Category: "mcp_server", Active: true},
	{ToolName: "github", Category: "mcp_server", Active: true},
}

// ProjectTools lists the tools enabled for a project.
func (h ToolsHandler) ProjectTools(c *gin.Context) {
	projectID := c.Param("id")
	if h.Tools != nil {
		tools, err := h.Tools.ProjectTools(c.Request.Context(), projectID)
		if err == nil && len(tools) > 0 {
			c.JSON(http.StatusOK, gin.H{"project_id": projectID, "tools": tools})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"project_id": projectID, "tools": defaultProjectTools, "lite_mode": h.Tools == nil})
}

type reqAddTool struct {
	Name   string `json:"name" binding:"required"`
	Reason string `json:"reason"`
}

// AddProjectTool enables a tool for a project.
func (h ToolsHandler) AddProjectTool(c *gin.Context) {
	if h.Tools == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": "tool stack unavailable in lite mode"})
		return
	}
	var req reqAddTool
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if err := h.Tools.AddProjectTool(c.Request.Context(), c.Param("id"), req.Name, req.Reason); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
