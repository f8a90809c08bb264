package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"reactagent/models"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ClaudeClient talks to the Anthropic Messages API. It is the structured
// provider: tool invocations come back as typed tool_use blocks, so no text
// parsing is needed downstream.
type ClaudeClient struct {
	client *anthropic.Client
}

func NewClaudeClient(apiKey string) *ClaudeClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &ClaudeClient{client: &client}
}

func (c *ClaudeClient) CallLLM(ctx context.Context, systemPrompt string, history []models.AgentMessage, tools []models.ToolDescriptor) (*models.ModelResponse, error) {
	messages := convertToAnthropicMessages(history)
	toolSpecs := buildAnthropicToolSpecs(tools)

	log.Printf("[INFO] Calling Claude with %d messages and %d tools", len(messages), len(toolSpecs))

	response, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.ModelClaude4Sonnet20250514,
		MaxTokens: 4096,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: messages,
		Tools:    toolSpecs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call Anthropic API: %v", err)
	}

	result := &models.ModelResponse{}
	for _, block := range response.Content {
		switch block := block.AsAny().(type) {
		case anthropic.TextBlock:
			result.Text += block.Text
		case anthropic.ToolUseBlock:
			inputJSON, _ := json.Marshal(block.Input)
			var arguments map[string]interface{}
			json.Unmarshal(inputJSON, &arguments)

			result.ToolCalls = append(result.ToolCalls, models.ToolCall{
				ID:        block.ID,
				Name:      block.Name,
				Arguments: arguments,
			})
		}
	}

	log.Printf("[INFO] Claude response: stop_reason=%s, text=%d chars, tool_calls=%d",
		response.StopReason, len(result.Text), len(result.ToolCalls))

	return result, nil
}

func convertToAnthropicMessages(history []models.AgentMessage) []anthropic.MessageParam {
	var messages []anthropic.MessageParam

	for _, msg := range history {
		switch msg.Role {
		case "user":
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case "assistant":
			contentBlocks := []anthropic.ContentBlockParamUnion{}

			if msg.Content != "" {
				contentBlocks = append(contentBlocks, anthropic.ContentBlockParamUnion{
					OfText: &anthropic.TextBlockParam{Text: msg.Content},
				})
			}

			for _, toolCall := range msg.ToolCalls {
				contentBlocks = append(contentBlocks, anthropic.ContentBlockParamUnion{
					OfToolUse: &anthropic.ToolUseBlockParam{
						ID:    toolCall.ID,
						Name:  toolCall.Name,
						Input: toolCall.Arguments,
					},
				})
			}

			messages = append(messages, anthropic.NewAssistantMessage(contentBlocks...))
		case "tool":
			// Tool results go back as user-role blocks keyed by the
			// originating invocation's id.
			toolResultBlocks := []anthropic.ContentBlockParamUnion{}
			for _, result := range msg.ToolResults {
				toolResultBlocks = append(toolResultBlocks, anthropic.ContentBlockParamUnion{
					OfToolResult: &anthropic.ToolResultBlockParam{
						ToolUseID: result.ToolCallID,
						Content: []anthropic.ToolResultBlockParamContentUnion{
							{OfText: &anthropic.TextBlockParam{Text: result.Content}},
						},
					},
				})
			}
			messages = append(messages, anthropic.NewUserMessage(toolResultBlocks...))
		}
	}

	return messages
}

func buildAnthropicToolSpecs(tools []models.ToolDescriptor) []anthropic.ToolUnionParam {
	var toolSpecs []anthropic.ToolUnionParam

	for _, tool := range tools {
		toolSpecs = append(toolSpecs, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        tool.Name,
				Description: anthropic.String(tool.Description),
				InputSchema: tool.InputSchema,
			},
		})
	}

	return toolSpecs
}
