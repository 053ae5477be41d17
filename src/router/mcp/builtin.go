package mcp

import "github.com/Dan-MapMAchina/ai-dev-infrastructure/src/api/types"

// BuiltinTools seed the registry and back the keyword fallback.
var BuiltinTools = []types.Tool{
	{Name: "filesystem", Category: "mcp_server", Description: "File operations",
		Capabilities: []string{"read", "write", "file", "directory"}, Reliability: 1.0},
	{Name: "github", Category: "mcp_server", Description: "Git operations",
		Capabilities: []string{"git", "repository", "pull request", "issues"}, Reliability: 1.0},
	{Name: "memory", Category: "mcp_server", Description: "Persistent knowledge graph",
		Capabilities: []string{"memory", "knowledge", "context"}, Reliability: 1.0},
	{Name: "postgresql", Category: "mcp_server", Description: "PostgreSQL access",
		Capabilities: []string{"postgres", "sql", "database", "query"}, Reliability: 0.95},
	{Name: "slack", Category: "mcp_server", Description: "Team messaging",
		Capabilities: []string{"slack", "team", "collaboration", "notification"}, Reliability: 0.9},
	{Name: "puppeteer", Category: "mcp_server", Description: "Browser automation",
		Capabilities: []string{"browser", "testing", "e2e", "scrape"}, Reliability: 0.9},
	{Name: "brave-search", Category: "mcp_server", Description: "Web search",
		Capabilities: []string{"search", "web", "research"}, Reliability: 0.9},
	{Name: "fetch", Category: "mcp_server", Description: "HTTP fetch",
		Capabilities: []string{"http", "fetch", "api", "rest"}, Reliability: 0.85},
}
