package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"reactagent/models"
	"reactagent/services/llm"
	"reactagent/services/tools"
)

// RemoteToolSource is an external tool provider (an MCP-style server). The
// orchestrator treats it as an opaque collaborator: any failure from it is an
// ordinary failed tool result, never a run-level fault.
type RemoteToolSource interface {
	List(ctx context.Context) ([]models.ToolDescriptor, error)
	Execute(ctx context.Context, name string, arguments map[string]interface{}) (string, error)
}

const terminalToolName = "task_complete"

// Service drives the think/act/observe loop: one model call, one tool
// dispatch per iteration, until task_complete or the iteration budget runs
// out. It owns the conversation history for the lifetime of one run.
type Service struct {
	llmClient     llm.Client
	registry      *tools.Registry
	maxIterations int

	remote      RemoteToolSource
	remoteTools []models.ToolDescriptor
}

func NewService(llmClient llm.Client, registry *tools.Registry, maxIterations int) *Service {
	if maxIterations <= 0 {
		maxIterations = 10
	}
	return &Service{
		llmClient:     llmClient,
		registry:      registry,
		maxIterations: maxIterations,
	}
}

// UseRemoteTools fetches the remote catalog once and merges it into the set
// advertised to the model. A failed fetch leaves the agent with local tools
// only.
func (s *Service) UseRemoteTools(ctx context.Context, remote RemoteToolSource) {
	descriptors, err := remote.List(ctx)
	if err != nil {
		log.Printf("[ERROR] Failed to fetch remote tools: %v", err)
		return
	}
	s.remote = remote
	s.remoteTools = descriptors
	log.Printf("[INFO] Loaded %d remote tools", len(descriptors))
}

// Run executes the agent on a task and reports how the run ended. The only
// error returned is a failure to reach the model itself; everything else is
// folded into the loop as observations.
func (s *Service) Run(ctx context.Context, task string) (*models.RunResult, error) {
	return s.run(ctx, task, s.maxIterations)
}

// RunWithBudget runs one task under a caller-supplied iteration ceiling.
func (s *Service) RunWithBudget(ctx context.Context, task string, maxIterations int) (*models.RunResult, error) {
	if maxIterations <= 0 {
		maxIterations = s.maxIterations
	}
	return s.run(ctx, task, maxIterations)
}

func (s *Service) run(ctx context.Context, task string, maxIterations int) (*models.RunResult, error) {
	log.Printf("[INFO] Starting agent run with task: %s", task)

	descriptors := append(s.registry.Descriptors(), s.remoteTools...)
	systemPrompt := BuildSystemPrompt(descriptors)

	history := []models.AgentMessage{
		{
			Role:    "user",
			Content: fmt.Sprintf("Task: %s\n\nPlease complete this task using the available tools. Think step by step about what you need to do.", task),
		},
	}

	completed := false
	summary := ""
	iterations := 0

	for iterations < maxIterations && !completed {
		iterations++
		log.Printf("[INFO] ITERATION %d/%d", iterations, maxIterations)

		response, err := s.llmClient.CallLLM(ctx, systemPrompt, history, descriptors)
		if err != nil {
			return nil, fmt.Errorf("model call failed on iteration %d: %w", iterations, err)
		}

		history = append(history, models.AgentMessage{
			Role:      "assistant",
			Content:   response.Text,
			ToolCalls: response.ToolCalls,
		})

		parsed := Parse(response)
		if parsed.Invocation == nil {
			// Reasoning-only or unparseable turn. It still consumes an
			// iteration so a model that never acts cannot stall the run.
			log.Printf("[INFO] No tool invocation in iteration %d, continuing", iterations)
			continue
		}

		invocation := parsed.Invocation
		log.Printf("[INFO] Executing tool: %s", invocation.Name)

		result := s.executeTool(ctx, invocation)

		history = append(history, models.AgentMessage{
			Role: "tool",
			ToolResults: []models.ToolResult{
				{ToolCallID: invocation.ID, Content: result},
			},
		})

		if invocation.Name == terminalToolName {
			completed = true
			summary = terminalSummary(invocation.Arguments)
			log.Printf("[INFO] Task completed: %s", summary)
		}
	}

	runResult := &models.RunResult{
		Success:              completed,
		Iterations:           iterations,
		MaxIterationsReached: iterations >= maxIterations && !completed,
		ConversationLength:   len(history),
		Summary:              summary,
	}
	if !completed {
		runResult.Summary = fmt.Sprintf("Agent exhausted %d iterations without completing the task", maxIterations)
	}

	log.Printf("[INFO] AGENT RUN COMPLETED: success=%t iterations=%d history=%d",
		runResult.Success, runResult.Iterations, runResult.ConversationLength)

	return runResult, nil
}

// executeTool dispatches one invocation to the local registry or the remote
// source and converts every failure into a failed tool result document.
func (s *Service) executeTool(ctx context.Context, invocation *models.ToolCall) string {
	var result string
	var err error

	if _, local := s.registry.Resolve(invocation.Name); !local && s.remote != nil && s.isRemoteTool(invocation.Name) {
		result, err = s.remote.Execute(ctx, invocation.Name, invocation.Arguments)
	} else {
		result, err = s.registry.Execute(ctx, invocation.Name, invocation.Arguments)
	}

	if err != nil {
		log.Printf("[ERROR] Tool %s failed: %v", invocation.Name, err)
		failure, marshalErr := json.Marshal(map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		if marshalErr != nil {
			return `{"success":false,"error":"tool execution failed"}`
		}
		return string(failure)
	}

	return result
}

func (s *Service) isRemoteTool(name string) bool {
	for _, descriptor := range s.remoteTools {
		if descriptor.Name == name {
			return true
		}
	}
	return false
}

func terminalSummary(arguments map[string]interface{}) string {
	if summary, ok := arguments["summary"].(string); ok && summary != "" {
		return summary
	}
	return "Task completed"
}
