package models

import "github.com/anthropics/anthropic-sdk-go"

// ToolDescriptor advertises a callable capability to the LLM and to remote
// tool integrations. InputSchema enumerates parameter names, types, and
// required/optional status.
type ToolDescriptor struct {
	Name        string                         `json:"name"`
	Description string                         `json:"description"`
	InputSchema anthropic.ToolInputSchemaParam `json:"input_schema"`
}
