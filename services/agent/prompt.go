package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"reactagent/models"

	"github.com/samber/lo"
)

const systemPromptTemplate = `You are a software development agent that can interact with a code repository.
You follow the ReAct pattern: Reasoning + Acting.

For each step:
1. THINK: Reason about what you need to do next
2. ACT: Choose a tool to use and specify the parameters in XML format

Available Tools:
%s

Instructions:
- Always start by exploring the repository to understand its structure
- Think step by step about what needs to be done
- Use the tools to read, search, and modify files as needed
- Prefer apply_diff over write_file for small targeted edits to existing files
- When you've completed the task, call the 'task_complete' tool with a summary
- Format your responses using XML tags:

<THOUGHT>[Your reasoning about what to do next]</THOUGHT>
<ACTION>
  <tool_name>[Tool name]</tool_name>
  <parameters>
    <param_name>[param_value]</param_name>
  </parameters>
</ACTION>

Example:
<THOUGHT>I need to see what files are in the repository first.</THOUGHT>
<ACTION>
  <tool_name>list_files</tool_name>
  <parameters>
    <directory>.</directory>
  </parameters>
</ACTION>

After you use a tool, I will respond with:
<OBSERVATION>[Tool execution result]</OBSERVATION>

Then you continue with your next THOUGHT/ACTION cycle.
`

// BuildSystemPrompt renders the tool catalog and the response-format
// instructions the model must follow.
func BuildSystemPrompt(descriptors []models.ToolDescriptor) string {
	entries := lo.Map(descriptors, func(d models.ToolDescriptor, _ int) string {
		schema, err := json.MarshalIndent(d.InputSchema, "  ", "  ")
		if err != nil {
			schema = []byte("{}")
		}
		return fmt.Sprintf("<tool>\n  <name>%s</name>\n  <description>%s</description>\n  <parameters>%s</parameters>\n</tool>",
			d.Name, d.Description, schema)
	})

	return fmt.Sprintf(systemPromptTemplate, strings.Join(entries, "\n\n"))
}
