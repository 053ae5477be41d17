package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/api/types"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/mcp"
)

// minReliability filters flaky registry entries out of recommendations.
const minReliability = 0.8

// Tools implements mcp.Registry on gorm/MySQL.
type Tools struct {
	db *gorm.DB
}

func NewTools(db *gorm.DB) *Tools {
	return &Tools{db: db}
}

func (r *Tools) FindCandidates(ctx context.Context, embedding []float32) ([]mcp.Candidate, error) {
	var tools []types.Tool
	err := r.db.WithContext(ctx).
		Where("reliability > ?", minReliability).
		Find(&tools).Error
	if err != nil {
		return nil, err
	}

	candidates := make([]mcp.Candidate, 0, len(tools))
	for _, tool := range tools {
		if len(tool.Embedding) == 0 {
			continue
		}
		candidates = append(candidates, mcp.Candidate{
			Tool:     tool,
			Distance: Euclidean(embedding, tool.Embedding),
		})
	}
	return candidates, nil
}

// ProjectTools lists the tools enabled for a project, most used first.
func (r *Tools) ProjectTools(ctx context.Context, projectID string) ([]types.ProjectTool, error) {
	var tools []types.ProjectTool
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("use_count DESC").
		Find(&tools).Error
	return tools, err
}

// AddProjectTool enables a tool for a project, reactivating a prior row
// when one exists.
func (r *Tools) AddProjectTool(ctx context.Context, projectID, toolName, reason string) error {
	var existing types.ProjectTool
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND tool_name = ?", projectID, toolName).
		First(&existing).Error
	if err == nil {
		return r.db.WithContext(ctx).Model(&existing).
			Updates(map[string]any{"active": true, "reason": reason}).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	category := "mcp_server"
	var tool types.Tool
	if r.db.WithContext(ctx).Where("name = ?", toolName).First(&tool).Error == nil {
		category = tool.Category
	}
	return r.db.WithContext(ctx).Create(&types.ProjectTool{
		ProjectID: projectID,
		ToolName:  toolName,
		Category:  category,
		Reason:    reason,
		Active:    true,
	}).Error
}

// RecordToolUse bumps the usage counter for a project tool.
func (r *Tools) RecordToolUse(ctx context.Context, projectID, toolName string) error {
	return r.db.WithContext(ctx).
		Model(&types.ProjectTool{}).
		Where("project_id = ? AND tool_name = ?", projectID, toolName).
		UpdateColumn("use_count", gorm.Expr("use_count + 1")).Error
}
