package handlers

import (
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/ai/core"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/api/config"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/cache"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/classifier"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/mcp"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/repo"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/router/selector"
)

// Deps is the composition root's wiring handed to every handler. Repos and
// history are nil in lite mode; the hosted client is nil without an API key.
type Deps struct {
	Cfg         config.Config
	DB          *gorm.DB
	Cache       *cache.Tiered
	Classifier  *classifier.Classifier
	Selector    *selector.Selector
	Recommender *mcp.Recommender
	Agents      *repo.Agents
	Tools       *repo.Tools
	History     *repo.History
	Local       core.Client
	Hosted      core.Client
	Embedder    selector.Embedder
	Sanitizer   *bluemonday.Policy
	LiteMode    bool
}

func (d Deps) sanitize(text string) string {
	if d.Sanitizer == nil {
		return text
	}
	return d.Sanitizer.Sanitize(text)
}
