package selector

import "github.com/Dan-MapMAchina/ai-dev-infrastructure/src/api/types"

func rate(v float64) *float64 { return &v }

// DefaultAgents are the built-in personas used when the agent repository
// is unavailable (lite mode) or the semantic path returns nothing.
var DefaultAgents = []types.Agent{
	{
		ID:           1,
		Name:         "Code Review Specialist",
		Type:         "code_review",
		Purpose:      "Deep code review focusing on security, performance, and best practices",
		SystemPrompt: "You are an expert code reviewer. Analyze code for security vulnerabilities, performance issues, and best practice violations.",
		SuccessRate:  rate(0.88),
	},
	{
		ID:           2,
		Name:         "Refactoring Specialist",
		Type:         "refactoring",
		Purpose:      "Transform messy code into clean, maintainable architecture",
		SystemPrompt: "You are a refactoring expert. Apply SOLID principles, reduce complexity, and improve code structure.",
		SuccessRate:  rate(0.91),
	},
	{
		ID:           3,
		Name:         "Test Engineer",
		Type:         "testing",
		Purpose:      "Generate comprehensive test suites for maximum coverage",
		SystemPrompt: "You are a test automation expert. Write unit tests, integration tests, and identify edge cases.",
		SuccessRate:  rate(0.86),
	},
	{
		ID:           4,
		Name:         "Software Architect",
		Type:         "architecture",
		Purpose:      "Design scalable system architectures and make strategic decisions",
		SystemPrompt: "You are a software architect. Provide system design recommendations and technology advice.",
		SuccessRate:  rate(0.92),
	},
	{
		ID:           5,
		Name:         "Bug Detection Specialist",
		Type:         "debugging",
		Purpose:      "Find and fix bugs with root cause analysis",
		SystemPrompt: "You are a debugging expert. Identify root causes and suggest targeted fixes.",
		SuccessRate:  rate(0.85),
	},
}
