// Package llm abstracts the model providers behind one call shape so the
// orchestrator never sees provider-specific request or response types.
package llm

import (
	"context"

	"reactagent/models"
)

// Client is the contract every LLM backend implements: send the system
// prompt and conversation history, get one response back. Providers that
// support native tool calling consume the descriptors; text-only providers
// rely on the catalog rendered into the system prompt and ignore them.
type Client interface {
	CallLLM(ctx context.Context, systemPrompt string, history []models.AgentMessage, tools []models.ToolDescriptor) (*models.ModelResponse, error)
}
