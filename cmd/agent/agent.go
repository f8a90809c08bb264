package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"

	"reactagent/config"
	"reactagent/services/agent"
	"reactagent/services/llm"
	"reactagent/services/mcp"
	"reactagent/services/tools"
)

func main() {
	cfg := config.Load()

	task := flag.String("task", "", "The software development task for the agent to complete")
	workspace := flag.String("workspace", cfg.Workspace, "Path to the code repository the agent works on")
	provider := flag.String("provider", cfg.LLMProvider, "LLM provider to use (claude or openai)")
	maxIterations := flag.Int("max-iterations", cfg.MaxIterations, "Maximum number of reasoning-action cycles")
	mcpServer := flag.String("mcp-server", cfg.MCPServerURL, "URL of an MCP server to load remote tools from")
	logFile := flag.String("log-file", cfg.LogFile, "Optional file to write logs to")
	flag.Parse()

	if *task == "" {
		log.Fatal("-task is required")
	}

	if *logFile != "" {
		setupLogFile(*logFile)
	}

	workspacePath, err := filepath.Abs(*workspace)
	if err != nil {
		log.Fatalf("Invalid workspace path %s: %v", *workspace, err)
	}

	llmClient, err := llm.NewClient(*provider, cfg.AnthropicAPIKey)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	log.Printf("[INFO] React Agent for Software Development")
	log.Printf("[INFO] Task: %s", *task)
	log.Printf("[INFO] Workspace: %s", workspacePath)
	log.Printf("[INFO] LLM provider: %s", *provider)
	log.Printf("[INFO] Max iterations: %d", *maxIterations)

	registry := tools.NewRegistry(workspacePath)
	agentService := agent.NewService(llmClient, registry, *maxIterations)

	ctx := context.Background()
	if *mcpServer != "" {
		log.Printf("[INFO] MCP server: %s", *mcpServer)
		agentService.UseRemoteTools(ctx, mcp.NewClient(*mcpServer))
	}

	result, err := agentService.Run(ctx, *task)
	if err != nil {
		log.Fatalf("Agent failed: %v", err)
	}

	log.Printf("[INFO] FINAL RESULT")
	log.Printf("[INFO] Success: %t", result.Success)
	log.Printf("[INFO] Iterations used: %d/%d", result.Iterations, *maxIterations)
	log.Printf("[INFO] Conversation length: %d messages", result.ConversationLength)
	log.Printf("[INFO] Summary: %s", result.Summary)

	if result.MaxIterationsReached && !result.Success {
		log.Printf("[ERROR] Agent reached maximum iterations without completing the task")
		os.Exit(1)
	}
}

func setupLogFile(logFile string) {
	if dir := filepath.Dir(logFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create log directory %s: %v", dir, err)
		}
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Fatalf("Failed to open log file %s: %v", logFile, err)
	}

	log.SetOutput(io.MultiWriter(os.Stdout, file))
}
