package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"reactagent/models"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// ErrUnknownTool is returned when an invocation names a tool absent from the
// registry. The orchestrator surfaces it as a failed observation, never a crash.
var ErrUnknownTool = errors.New("unknown tool")

// Registry is the static catalog of local tools, keyed by name. Names are
// unique; registration order is preserved for prompt rendering.
type Registry struct {
	tools map[string]AgentTool
	order []string
}

// NewRegistry builds the filesystem tool set rooted at the workspace
// directory, plus the terminal task_complete tool.
func NewRegistry(workspace string) *Registry {
	r := &Registry{tools: make(map[string]AgentTool)}

	for _, tool := range []AgentTool{
		NewListFilesTool(workspace),
		NewReadFileTool(workspace),
		NewWriteFileTool(workspace),
		NewSearchTool(workspace),
		NewFileInfoTool(workspace),
		NewApplyDiffTool(workspace),
		NewTaskCompleteTool(),
	} {
		if err := r.Register(tool); err != nil {
			// Only reachable if the built-in set itself has a duplicate name.
			log.Printf("[ERROR] Failed to register tool %s: %v", tool.Name(), err)
		}
	}

	return r
}

func (r *Registry) Register(tool AgentTool) error {
	if _, exists := r.tools[tool.Name()]; exists {
		return fmt.Errorf("tool %s is already registered", tool.Name())
	}
	r.tools[tool.Name()] = tool
	r.order = append(r.order, tool.Name())
	return nil
}

func (r *Registry) Resolve(name string) (AgentTool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// Execute resolves a tool by name and invokes it with the given arguments.
// Unknown names yield ErrUnknownTool, with the closest registered name
// suggested when one is plausible.
func (r *Registry) Execute(ctx context.Context, name string, arguments map[string]interface{}) (string, error) {
	tool, ok := r.Resolve(name)
	if !ok {
		if suggestion := r.closestName(name); suggestion != "" {
			return "", fmt.Errorf("%w: %s (did you mean %q?)", ErrUnknownTool, name, suggestion)
		}
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	if arguments == nil {
		arguments = map[string]interface{}{}
	}
	input, err := json.Marshal(arguments)
	if err != nil {
		return "", fmt.Errorf("invalid parameters for tool %s: %v", name, err)
	}

	return tool.Call(ctx, string(input))
}

// Descriptors renders the catalog in registration order.
func (r *Registry) Descriptors() []models.ToolDescriptor {
	return lo.Map(r.order, func(name string, _ int) models.ToolDescriptor {
		tool := r.tools[name]
		return models.ToolDescriptor{
			Name:        tool.Name(),
			Description: tool.Description(),
			InputSchema: tool.GetAnthropicToolSpec(),
		}
	})
}

// closestName suggests the registered name nearest to a misspelled one.
// Names further than 3 edits away are not worth suggesting.
func (r *Registry) closestName(name string) string {
	best := ""
	bestDistance := 4
	for _, candidate := range r.order {
		distance := fuzzy.LevenshteinDistance(strings.ToLower(name), candidate)
		if distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}
	return best
}
