package llm

import "fmt"

// NewClient builds the adapter for the configured provider. The OpenAI
// adapter reads OPENAI_API_KEY from the environment itself (langchaingo
// convention); Claude needs the key passed explicitly.
func NewClient(provider, anthropicAPIKey string) (Client, error) {
	switch provider {
	case "claude":
		if anthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for the claude provider")
		}
		return NewClaudeClient(anthropicAPIKey), nil
	case "openai":
		return NewOpenAIClient("")
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q (supported: claude, openai)", provider)
	}
}
