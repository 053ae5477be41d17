package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port      string
	MySQLDSN  string
	RedisURL  string
	JWTSecret string

	OllamaURL      string
	OllamaModel    string
	EmbedModel     string
	AnthropicKey   string
	AnthropicModel string

	ResponseTTL       time.Duration
	ResponseCapacity  int
	EmbeddingCapacity int
	AgentTTL          time.Duration
	AgentCapacity     int

	ComplexThreshold int
	SimpleThreshold  int
	LengthThreshold  int

	RecommendedDistanceThreshold float64
	RecommendedMaxCount          int
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func getint(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("env %s: %v", key, err)
	}
	return n
}

func getfloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("env %s: %v", key, err)
	}
	return f
}

func Load() Config {
	cfg := Config{
		Port:      getenv("PORT", "8080"),
		MySQLDSN:  getenv("MYSQL_DSN", "aidev:aidev@tcp(localhost:3306)/aidev?parseTime=true"),
		RedisURL:  os.Getenv("REDIS_URL"),
		JWTSecret: getenv("JWT_SECRET", "dev-only-secret"),

		OllamaURL:      getenv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:    getenv("OLLAMA_MODEL", "llama3.2:3b"),
		EmbedModel:     getenv("EMBED_MODEL", "nomic-embed-text"),
		AnthropicKey:   os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel: getenv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),

		ResponseTTL:       time.Duration(getint("RESPONSE_TTL_SECONDS", 3600)) * time.Second,
		ResponseCapacity:  getint("RESPONSE_CAPACITY", 1000),
		EmbeddingCapacity: getint("EMBEDDING_CAPACITY", 10000),
		AgentTTL:          time.Duration(getint("AGENT_TTL_SECONDS", 7200)) * time.Second,
		AgentCapacity:     getint("AGENT_CAPACITY", 500),

		ComplexThreshold: getint("COMPLEX_THRESHOLD", 1),
		SimpleThreshold:  getint("SIMPLE_THRESHOLD", 1),
		LengthThreshold:  getint("LENGTH_THRESHOLD", 15),

		RecommendedDistanceThreshold: getfloat("RECOMMENDED_DISTANCE_THRESHOLD", 0.5),
		RecommendedMaxCount:          getint("RECOMMENDED_MAX_COUNT", 5),
	}

	if cfg.ResponseCapacity <= 0 || cfg.EmbeddingCapacity <= 0 || cfg.AgentCapacity <= 0 {
		log.Fatalf("config: cache capacities must be positive")
	}
	if cfg.ComplexThreshold <= 0 || cfg.SimpleThreshold <= 0 || cfg.LengthThreshold <= 0 {
		log.Fatalf("config: classifier thresholds must be positive")
	}
	return cfg
}
