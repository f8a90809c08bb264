package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AnthropicAPIKey string
	OpenAIAPIKey    string
	LLMProvider     string
	Workspace       string
	MaxIterations   int
	MCPServerURL    string
	LogFile         string
	ListenAddr      string
}

// Load reads configuration from a .env file when present, falling back to
// the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("[INFO] No .env file found, using environment variables")
	}

	return &Config{
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		LLMProvider:     getEnvOrDefault("LLM_PROVIDER", "claude"),
		Workspace:       getEnvOrDefault("AGENT_WORKSPACE", "."),
		MaxIterations:   getEnvIntOrDefault("AGENT_MAX_ITERATIONS", 10),
		MCPServerURL:    os.Getenv("MCP_SERVER_URL"),
		LogFile:         os.Getenv("AGENT_LOG_FILE"),
		ListenAddr:      getEnvOrDefault("LISTEN_ADDR", ":8080"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[ERROR] Invalid value for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
