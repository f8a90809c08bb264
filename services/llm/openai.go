package llm

import (
	"context"
	"fmt"
	"log"

	"reactagent/models"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIClient talks to the OpenAI chat API through langchaingo. It is the
// text-shape provider: the model answers with THOUGHT/ACTION tags and the
// response parser extracts the invocation, so no native tool wiring is used.
type OpenAIClient struct {
	llm *openai.LLM
}

func NewOpenAIClient(model string) (*OpenAIClient, error) {
	if model == "" {
		model = "gpt-4o"
	}
	client, err := openai.New(openai.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %v", err)
	}
	return &OpenAIClient{llm: client}, nil
}

func (c *OpenAIClient) CallLLM(ctx context.Context, systemPrompt string, history []models.AgentMessage, tools []models.ToolDescriptor) (*models.ModelResponse, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
	}

	for _, msg := range history {
		switch msg.Role {
		case "user":
			messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, msg.Content))
		case "assistant":
			messages = append(messages, llms.TextParts(llms.ChatMessageTypeAI, msg.Content))
		case "tool":
			// The text protocol feeds observations back as user turns.
			for _, result := range msg.ToolResults {
				observation := fmt.Sprintf("<OBSERVATION>%s</OBSERVATION>", result.Content)
				messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, observation))
			}
		}
	}

	log.Printf("[INFO] Calling OpenAI with %d messages", len(messages))

	response, err := c.llm.GenerateContent(ctx, messages, llms.WithTemperature(0.2))
	if err != nil {
		return nil, fmt.Errorf("failed to call OpenAI API: %v", err)
	}
	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("OpenAI API returned no choices")
	}

	text := response.Choices[0].Content
	log.Printf("[INFO] OpenAI response: %d chars", len(text))

	return &models.ModelResponse{Text: text}, nil
}
