package types

import "time"

// Agents
type Agent struct {
	ID              uint32    `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:128;unique;not null" json:"name"`
	Type            string    `gorm:"size:32;index;not null" json:"type"`
	Purpose         string    `gorm:"size:1024;not null" json:"purpose"`
	SystemPrompt    string    `gorm:"size:4096" json:"system_prompt,omitempty"`
	Embedding       []float32 `gorm:"serializer:json;type:mediumtext" json:"-"`
	SuccessRate     *float64  `json:"success_rate"`
	TasksCompleted  uint32    `gorm:"default:0" json:"tasks_completed"`
	RoutingPriority int       `gorm:"default:0" json:"routing_priority"`
	AvgExecMs       *float64  `json:"avg_execution_time_ms,omitempty"`
	LastUsed        *time.Time `json:"last_used,omitempty"`
}

// MCP tool registry
type Tool struct {
	ID           uint32    `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:64;unique;not null" json:"name"`
	Category     string    `gorm:"size:32;not null" json:"category"`
	Description  string    `gorm:"size:512" json:"description"`
	Capabilities []string  `gorm:"serializer:json;type:text" json:"capabilities"`
	InstallCmd   string    `gorm:"size:256" json:"install_command,omitempty"`
	Configured   bool      `gorm:"default:false" json:"configured"`
	Reliability  float64   `gorm:"default:1" json:"-"`
	Embedding    []float32 `gorm:"serializer:json;type:mediumtext" json:"-"`
}

// Routing decisions, one row per classified query
type RoutingLog struct {
	ID        uint64    `gorm:"primaryKey"`
	Query     string    `gorm:"size:1000;not null"`
	Route     string    `gorm:"size:32;index;not null"`
	TimeMs    int64     `gorm:"not null"`
	CreatedAt time.Time
}

// Execution history feeding agent success rates
type AgentExecution struct {
	ID        string    `gorm:"primaryKey;size:36"`
	AgentID   uint32    `gorm:"index;not null"`
	ProjectID string    `gorm:"size:64;index"`
	Task      string    `gorm:"size:4000;not null"`
	Output    string    `gorm:"type:mediumtext"`
	TimeMs    int64
	Tokens    int
	Success   bool      `gorm:"default:true"`
	CreatedAt time.Time
}

// Periodic snapshot of an agent's learning state
type LearningCheckpoint struct {
	ID            uint64  `gorm:"primaryKey"`
	AgentID       uint32  `gorm:"index;not null"`
	Version       uint32  `gorm:"not null"`
	SuccessRate   float64
	AvgExecMs     float64
	TasksRecorded uint32
	CreatedAt     time.Time
}

// Tools enabled per project
type ProjectTool struct {
	ID        uint64 `gorm:"primaryKey" json:"-"`
	ProjectID string `gorm:"size:64;index;not null" json:"project_id"`
	ToolName  string `gorm:"size:64;not null" json:"name"`
	Category  string `gorm:"size:32" json:"category"`
	Reason    string `gorm:"size:256" json:"reason"`
	Active    bool   `gorm:"default:true" json:"active"`
	UseCount  uint32 `gorm:"default:0" json:"usage_count"`
}
