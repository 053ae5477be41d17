package data

import (
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/api/types"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/mcp"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/selector"
)

// ConnectMySQL opens the database and migrates the schema. A nil db with
// an error means the caller should run in lite mode.
func ConnectMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(
		&types.Agent{},
		&types.Tool{},
		&types.RoutingLog{},
		&types.AgentExecution{},
		&types.LearningCheckpoint{},
		&types.ProjectTool{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Seed inserts the built-in agents and tools when their tables are empty.
func Seed(db *gorm.DB) {
	var agentCount int64
	db.Model(&types.Agent{}).Count(&agentCount)
	if agentCount == 0 {
		for _, agent := range selector.DefaultAgents {
			a := agent
			a.ID = 0
			if err := db.Create(&a).Error; err != nil {
				log.Printf("seed agent %s: %v", agent.Name, err)
			}
		}
	}

	var toolCount int64
	db.Model(&types.Tool{}).Count(&toolCount)
	if toolCount == 0 {
		for _, tool := range mcp.BuiltinTools {
			t := tool
			if err := db.Create(&t).Error; err != nil {
				log.Printf("seed tool %s: %v", tool.Name, err)
			}
		}
	}
}
