package repo

import (
	"context"
	"log"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/api/types"
)

// checkpointEvery is how many completed tasks sit between learning snapshots.
const checkpointEvery = 10

// History records executions and keeps agent performance metrics current.
type History struct {
	db *gorm.DB
}

func NewHistory(db *gorm.DB) *History {
	return &History{db: db}
}

// Record inserts an execution row, recomputes the agent's success rate and
// average execution time from history, and snapshots a checkpoint every
// tenth completed task.
func (h *History) Record(ctx context.Context, exec types.AgentExecution) error {
	if exec.ID == "" {
		exec.ID = uuid.NewString()
	}
	db := h.db.WithContext(ctx)

	if err := db.Create(&exec).Error; err != nil {
		return err
	}

	var stats struct {
		Rate  float64
		AvgMs float64
		Total int64
	}
	err := db.Model(&types.AgentExecution{}).
		Select("AVG(success) AS rate, AVG(time_ms) AS avg_ms, COUNT(*) AS total").
		Where("agent_id = ?", exec.AgentID).
		Scan(&stats).Error
	if err != nil {
		return err
	}

	now := time.Now()
	err = db.Model(&types.Agent{}).
		Where("id = ?", exec.AgentID).
		Updates(map[string]any{
			"tasks_completed": gorm.Expr("tasks_completed + 1"),
			"success_rate":    stats.Rate,
			"avg_exec_ms":     stats.AvgMs,
			"last_used":       now,
		}).Error
	if err != nil {
		return err
	}

	var agent types.Agent
	if err := db.First(&agent, exec.AgentID).Error; err != nil {
		return err
	}
	if agent.TasksCompleted > 0 && agent.TasksCompleted%checkpointEvery == 0 {
		if err := h.checkpoint(ctx, agent); err != nil {
			log.Printf("history: checkpoint for agent %d: %v", agent.ID, err)
		}
	}
	return nil
}

func (h *History) checkpoint(ctx context.Context, agent types.Agent) error {
	db := h.db.WithContext(ctx)

	var version uint32
	err := db.Model(&types.LearningCheckpoint{}).
		Select("COALESCE(MAX(version), 0) + 1").
		Where("agent_id = ?", agent.ID).
		Scan(&version).Error
	if err != nil {
		return err
	}

	cp := types.LearningCheckpoint{
		AgentID:       agent.ID,
		Version:       version,
		TasksRecorded: agent.TasksCompleted,
	}
	if agent.SuccessRate != nil {
		cp.SuccessRate = *agent.SuccessRate
	}
	if agent.AvgExecMs != nil {
		cp.AvgExecMs = *agent.AvgExecMs
	}
	if err := db.Create(&cp).Error; err != nil {
		return err
	}
	log.Printf("history: checkpoint v%d created for agent %d", version, agent.ID)
	return nil
}

// LogRouting records one classification decision.
func (h *History) LogRouting(ctx context.Context, query, route string, elapsed time.Duration) {
	query = truncateRunes(query, 1000)
	err := h.db.WithContext(ctx).Create(&types.RoutingLog{
		Query:  query,
		Route:  route,
		TimeMs: elapsed.Milliseconds(),
	}).Error
	if err != nil {
		log.Printf("history: routing log: %v", err)
	}
}

// truncateRunes cuts s to at most n bytes without splitting a UTF-8 rune;
// strict-mode MySQL rejects varchar values with a broken trailing sequence.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
