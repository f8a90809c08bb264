package models

// AgentMessage is one turn of the conversation between the orchestrator and
// the LLM. History is append-only and owned by a single run.
type AgentMessage struct {
	Role        string       `json:"role"`
	Content     string       `json:"content"`
	ToolCalls   []ToolCall   `json:"tool_calls,omitempty"`
	ToolResults []ToolResult `json:"tool_results,omitempty"`
}

type ToolCall struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

type ToolResult struct {
	ToolCallID string `json:"tool_call_id"`
	Content    string `json:"content"`
}

// ModelResponse is what an LLM adapter hands back: free text plus any tool
// calls the provider already returned in structured form. Text-only providers
// leave ToolCalls empty and the response parser extracts the action from Text.
type ModelResponse struct {
	Text      string
	ToolCalls []ToolCall
}

// ParsedResponse is the parser's view of one model turn. Invocation is nil
// for reasoning-only or unparseable turns.
type ParsedResponse struct {
	Thought    string
	Invocation *ToolCall
}

// RunResult summarizes one agent run.
type RunResult struct {
	Success              bool   `json:"success"`
	Iterations           int    `json:"iterations"`
	MaxIterationsReached bool   `json:"max_iterations_reached"`
	ConversationLength   int    `json:"conversation_length"`
	Summary              string `json:"summary,omitempty"`
}

type RunRequest struct {
	Task          string `json:"task"`
	MaxIterations int    `json:"max_iterations,omitempty"`
}
