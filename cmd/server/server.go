package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"reactagent/config"
	"reactagent/handlers"
	"reactagent/services/agent"
	"reactagent/services/llm"
	"reactagent/services/mcp"
	"reactagent/services/tools"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	workspacePath, err := filepath.Abs(cfg.Workspace)
	if err != nil {
		log.Fatalf("Invalid workspace path %s: %v", cfg.Workspace, err)
	}

	llmClient, err := llm.NewClient(cfg.LLMProvider, cfg.AnthropicAPIKey)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	registry := tools.NewRegistry(workspacePath)
	agentService := agent.NewService(llmClient, registry, cfg.MaxIterations)

	if cfg.MCPServerURL != "" {
		agentService.UseRemoteTools(context.Background(), mcp.NewClient(cfg.MCPServerURL))
	}

	agentHandler := handlers.NewAgentHandler(agentService)

	router := mux.NewRouter()
	agentHandler.RegisterRoutes(router)

	fmt.Printf("Agent server starting on %s (workspace: %s)\n", cfg.ListenAddr, workspacePath)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, router))
}
