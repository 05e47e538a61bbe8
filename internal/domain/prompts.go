package domain

import "strings"

// System prompts framing the remote model per agent. The table is read-only;
// lookups for unknown ids fall back to the generic assistant prompt.
//
//nolint:gochecknoglobals // Static lookup table, never mutated after init
var systemPrompts = map[string]string{
	"codebase-analysis": `You are an expert code analyzer. Your task is to:
- Analyze code structure and identify patterns
- Detect potential bugs, logic errors, and code smells
- Identify security vulnerabilities
- Suggest improvements with clear explanations
- Consider cross-file dependencies
Be thorough but concise in your analysis.
`,
	"dependency-graph": `You are a dependency analysis expert. Your task is to:
- Parse and explain import/export relationships
- Identify module dependencies
- Detect circular dependencies
- Explain the architecture and module relationships
Format dependencies clearly for visualization.
`,
	"qa-agent": `You are a helpful code assistant. Your task is to:
- Answer questions about the code clearly and accurately
- Explain how functions and classes work
- Help developers understand the codebase
- Provide code examples when helpful
Be friendly and educational in your responses.
`,
	"code-modifier": `You are an expert code modifier. Your task is to:
- Understand the user's modification request precisely
- Generate clean, working code changes
- Maintain existing code style and conventions
- Preserve functionality when refactoring
- Provide before/after comparisons
Always show the complete modified code.
`,
	"code-review": `You are an expert code reviewer. Your task is to:
- Review code changes thoroughly
- Check for security vulnerabilities
- Verify logic correctness
- Suggest performance improvements
- Follow best practices for code review
Provide constructive feedback with specific suggestions.
`,
	"documentation": `You are a documentation expert. Your task is to:
- Generate comprehensive README files
- Create clear API documentation
- Add meaningful code comments
- Generate usage examples
- Follow documentation best practices
Write documentation that is clear and helpful for developers.
`,
	"pushing-agent": `You are a Git workflow assistant. Your task is to:
- Generate meaningful commit messages
- Suggest branch naming conventions
- Guide through Git operations
- Create pull request descriptions
- Explain Git concepts when needed
Help users follow Git best practices.
`,
}

const defaultSystemPrompt = `You are an AI assistant for code analysis and development.
Help the user with their request clearly and accurately.
`

// Known agents in listing order.
//
//nolint:gochecknoglobals // Static lookup table, never mutated after init
var knownAgents = []Agent{
	{ID: "codebase-analysis", Name: "Codebase Analysis Agent"},
	{ID: "dependency-graph", Name: "Dependency Graph Agent"},
	{ID: "qa-agent", Name: "Q&A Agent"},
	{ID: "code-modifier", Name: "Code Modifier Agent"},
	{ID: "code-review", Name: "Code Review Agent"},
	{ID: "documentation", Name: "Documentation Agent"},
	{ID: "pushing-agent", Name: "Pushing Agent"},
}

// SystemPromptFor returns the system prompt for an agent id.
// Unknown ids resolve to the generic assistant prompt; this never fails.
func SystemPromptFor(agentID string) string {
	if prompt, ok := systemPrompts[agentID]; ok {
		return prompt
	}
	return defaultSystemPrompt
}

// BuildInput assembles the full generation input for a request:
// system prompt, optional code-context block, and the user message.
func BuildInput(req *ChatRequest) string {
	var body strings.Builder

	if len(req.Files) > 0 {
		body.WriteString("=== CODE CONTEXT ===\n\n")
		for _, file := range req.Files {
			body.WriteString("--- File: ")
			body.WriteString(file.Path)
			if file.Language != "" {
				body.WriteString(" (")
				body.WriteString(file.Language)
				body.WriteString(")")
			}
			body.WriteString(" ---\n")
			body.WriteString(file.Content)
			body.WriteString("\n\n")
		}
		body.WriteString("=== END CODE CONTEXT ===\n\n")
	}

	body.WriteString("User Request: ")
	body.WriteString(req.Message)

	return SystemPromptFor(req.AgentID) + "\n\n" + body.String()
}
