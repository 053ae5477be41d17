package repo

import (
	"context"
	"math"

	"gorm.io/gorm"

	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/api/types"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/selector"
)

// Agents implements selector.Repository on gorm/MySQL. Purpose embeddings
// are stored JSON-serialized on the row; distances are computed in process.
type Agents struct {
	db *gorm.DB
}

func NewAgents(db *gorm.DB) *Agents {
	return &Agents{db: db}
}

func (r *Agents) FindCandidates(ctx context.Context, embedding []float32, typeFilter string) ([]selector.Candidate, error) {
	q := r.db.WithContext(ctx)
	if typeFilter != "" {
		q = q.Where("type = ?", typeFilter)
	}
	var agents []types.Agent
	if err := q.Find(&agents).Error; err != nil {
		return nil, err
	}

	candidates := make([]selector.Candidate, 0, len(agents))
	for _, agent := range agents {
		if len(agent.Embedding) == 0 {
			continue
		}
		candidates = append(candidates, selector.Candidate{
			Agent:    agent,
			Distance: Euclidean(embedding, agent.Embedding),
		})
	}
	return candidates, nil
}

// Get returns one agent by id.
func (r *Agents) Get(ctx context.Context, id uint32) (types.Agent, error) {
	var agent types.Agent
	err := r.db.WithContext(ctx).First(&agent, id).Error
	return agent, err
}

// List returns all agents ordered by success rate, best first.
func (r *Agents) List(ctx context.Context) ([]types.Agent, error) {
	var agents []types.Agent
	err := r.db.WithContext(ctx).
		Order("success_rate IS NULL, success_rate DESC").
		Find(&agents).Error
	return agents, err
}

// Create inserts a new agent row.
func (r *Agents) Create(ctx context.Context, agent *types.Agent) error {
	return r.db.WithContext(ctx).Create(agent).Error
}

// Euclidean distance between two vectors; mismatched lengths compare over
// the shorter prefix.
func Euclidean(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
