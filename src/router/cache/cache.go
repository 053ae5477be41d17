package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/api/types"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/keys"
)

// DefaultTTL selects the tier's configured TTL on put.
const DefaultTTL time.Duration = -1

// backingTimeout bounds every call to the distributed store so a stalled
// redis degrades to memory-only caching instead of stalling callers.
const backingTimeout = 250 * time.Millisecond

const (
	responsePrefix  = "response:"
	embeddingPrefix = "embedding:"
	agentPrefix     = "agent:"
)

// Backing is an optional distributed store shared by all tiers.
type Backing interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
}

type redisBacking struct {
	rdb *redis.Client
}

func NewRedisBacking(rdb *redis.Client) Backing {
	return redisBacking{rdb: rdb}
}

func (b redisBacking) Get(ctx context.Context, key string) ([]byte, error) {
	return b.rdb.Get(ctx, key).Bytes()
}

func (b redisBacking) Put(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return b.rdb.Set(ctx, key, val, ttl).Err()
}

func (b redisBacking) Ping(ctx context.Context) error {
	return b.rdb.Ping(ctx).Err()
}

// Config sizes the three tiers.
type Config struct {
	ResponseCapacity  int
	ResponseTTL       time.Duration
	EmbeddingCapacity int
	AgentCapacity     int
	AgentTTL          time.Duration
}

// Tiered is the three-tier cache: responses, embeddings, agent selections.
// Each tier has its own lock; the embedding tier is a pure LRU while the
// other two expire by TTL and evict oldest-inserted when over capacity.
type Tiered struct {
	respMu    sync.Mutex
	responses *ttlStore[map[string]any]

	embeddings *lru.Cache[string, []float32]

	agentMu sync.Mutex
	agents  *ttlStore[types.Agent]

	cfg     Config
	backing Backing // nil when absent or the probe failed
}

// New builds the cache. A non-nil backing is probed once; if the probe
// fails the instance runs memory-only for its lifetime.
func New(cfg Config, backing Backing) (*Tiered, error) {
	if cfg.ResponseCapacity <= 0 || cfg.EmbeddingCapacity <= 0 || cfg.AgentCapacity <= 0 {
		return nil, fmt.Errorf("cache: capacities must be positive")
	}
	embeddings, err := lru.New[string, []float32](cfg.EmbeddingCapacity)
	if err != nil {
		return nil, err
	}
	c := &Tiered{
		responses:  newTTLStore[map[string]any](cfg.ResponseCapacity, cfg.ResponseTTL),
		embeddings: embeddings,
		agents:     newTTLStore[types.Agent](cfg.AgentCapacity, cfg.AgentTTL),
		cfg:        cfg,
	}
	if backing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), backingTimeout)
		defer cancel()
		if err := backing.Ping(ctx); err == nil {
			c.backing = backing
		}
	}
	return c, nil
}

// GetResponse checks the response tier for a previously computed result.
func (c *Tiered) GetResponse(ctx context.Context, query string, qctx map[string]any) (map[string]any, bool) {
	key := keys.Derive(query, qctx).String()

	c.respMu.Lock()
	val, ok := c.responses.get(key, time.Now())
	c.respMu.Unlock()
	if ok {
		return val, true
	}

	raw, ok := c.backingGet(ctx, responsePrefix+key)
	if !ok {
		return nil, false
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, false
	}
	c.respMu.Lock()
	c.responses.put(key, data, DefaultTTL, time.Now())
	c.respMu.Unlock()
	return data, true
}

// PutResponse caches a result. Pass DefaultTTL for the configured expiry.
func (c *Tiered) PutResponse(ctx context.Context, query string, qctx map[string]any, resp map[string]any, ttl time.Duration) {
	key := keys.Derive(query, qctx).String()

	c.respMu.Lock()
	c.responses.put(key, resp, ttl, time.Now())
	c.respMu.Unlock()

	// An entry that is already expired must not be resurrected through
	// the backing store.
	if ttl == DefaultTTL {
		ttl = c.cfg.ResponseTTL
	}
	if ttl <= 0 {
		return
	}
	if raw, err := json.Marshal(resp); err == nil {
		c.backingPut(ctx, responsePrefix+key, raw, ttl)
	}
}

// GetEmbedding returns a cached vector for the exact text.
func (c *Tiered) GetEmbedding(ctx context.Context, text string) ([]float32, bool) {
	key := keys.Derive(text, nil).String()
	if vec, ok := c.embeddings.Get(key); ok {
		return vec, true
	}
	raw, ok := c.backingGet(ctx, embeddingPrefix+key)
	if !ok {
		return nil, false
	}
	var vec []float32
	if err := json.Unmarshal(raw, &vec); err != nil {
		return nil, false
	}
	c.embeddings.Add(key, vec)
	return vec, true
}

func (c *Tiered) PutEmbedding(ctx context.Context, text string, vec []float32) {
	key := keys.Derive(text, nil).String()
	c.embeddings.Add(key, vec)
	if raw, err := json.Marshal(vec); err == nil {
		c.backingPut(ctx, embeddingPrefix+key, raw, 0)
	}
}

// GetAgent returns a cached agent selection for (task, project).
func (c *Tiered) GetAgent(ctx context.Context, task, projectID string) (types.Agent, bool) {
	key := agentKey(task, projectID)

	c.agentMu.Lock()
	agent, ok := c.agents.get(key, time.Now())
	c.agentMu.Unlock()
	if ok {
		return agent, true
	}

	raw, ok := c.backingGet(ctx, agentPrefix+key)
	if !ok {
		return types.Agent{}, false
	}
	if err := json.Unmarshal(raw, &agent); err != nil {
		return types.Agent{}, false
	}
	c.agentMu.Lock()
	c.agents.put(key, agent, DefaultTTL, time.Now())
	c.agentMu.Unlock()
	return agent, true
}

func (c *Tiered) PutAgent(ctx context.Context, task, projectID string, agent types.Agent, ttl time.Duration) {
	key := agentKey(task, projectID)

	c.agentMu.Lock()
	c.agents.put(key, agent, ttl, time.Now())
	c.agentMu.Unlock()

	if ttl == DefaultTTL {
		ttl = c.cfg.AgentTTL
	}
	if ttl <= 0 {
		return
	}
	if raw, err := json.Marshal(agent); err == nil {
		c.backingPut(ctx, agentPrefix+key, raw, ttl)
	}
}

func agentKey(task, projectID string) string {
	return keys.Derive(task, map[string]any{"project_id": projectID}).String()
}

// backingGet reads from the distributed store; any failure is a miss.
func (c *Tiered) backingGet(ctx context.Context, key string) ([]byte, bool) {
	if c.backing == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(ctx, backingTimeout)
	defer cancel()
	raw, err := c.backing.Get(ctx, key)
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	return raw, true
}

// backingPut writes to the distributed store best-effort.
func (c *Tiered) backingPut(ctx context.Context, key string, val []byte, ttl time.Duration) {
	if c.backing == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, backingTimeout)
	defer cancel()
	_ = c.backing.Put(ctx, key, val, ttl)
}

type TierStats struct {
	Size     int `json:"size"`
	Capacity int `json:"maxsize"`
}

type Stats struct {
	Response       TierStats `json:"response_cache"`
	Embedding      TierStats `json:"embedding_cache"`
	Agent          TierStats `json:"agent_cache"`
	RedisConnected bool      `json:"redis_connected"`
}

// Stats reports in-process sizes only, plus backing connectivity.
func (c *Tiered) Stats() Stats {
	c.respMu.Lock()
	respSize := c.responses.len()
	c.respMu.Unlock()
	c.agentMu.Lock()
	agentSize := c.agents.len()
	c.agentMu.Unlock()
	return Stats{
		Response:       TierStats{Size: respSize, Capacity: c.cfg.ResponseCapacity},
		Embedding:      TierStats{Size: c.embeddings.Len(), Capacity: c.cfg.EmbeddingCapacity},
		Agent:          TierStats{Size: agentSize, Capacity: c.cfg.AgentCapacity},
		RedisConnected: c.backing != nil,
	}
}
