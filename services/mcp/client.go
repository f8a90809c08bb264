// Package mcp is a client for MCP-style remote tool servers: GET /tools
// lists descriptors, POST /execute/{name} runs one.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"reactagent/models"

	"github.com/anthropics/anthropic-sdk-go"
)

type Client struct {
	serverURL  string
	httpClient *http.Client
}

func NewClient(serverURL string) *Client {
	return &Client{
		serverURL:  strings.TrimRight(serverURL, "/"),
		httpClient: http.DefaultClient,
	}
}

// remoteDescriptor is the wire shape the server advertises.
type remoteDescriptor struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  interface{} `json:"parameters"`
}

// List fetches the remote tool catalog.
func (c *Client) List(ctx context.Context) ([]models.ToolDescriptor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+"/tools", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tools request: %v", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tools from %s: %v", c.serverURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tools request to %s returned status %d", c.serverURL, resp.StatusCode)
	}

	var remoteTools []remoteDescriptor
	if err := json.NewDecoder(resp.Body).Decode(&remoteTools); err != nil {
		return nil, fmt.Errorf("failed to decode tools response: %v", err)
	}

	descriptors := make([]models.ToolDescriptor, 0, len(remoteTools))
	for _, tool := range remoteTools {
		descriptors = append(descriptors, models.ToolDescriptor{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: anthropic.ToolInputSchemaParam{Properties: tool.Parameters},
		})
	}

	log.Printf("[INFO] Fetched %d tools from MCP server %s", len(descriptors), c.serverURL)
	return descriptors, nil
}

// Execute runs a remote tool. Unreachable server, non-2xx status, and
// malformed payloads all come back as plain errors for the caller to fold
// into a failed tool result.
func (c *Client) Execute(ctx context.Context, name string, arguments map[string]interface{}) (string, error) {
	if arguments == nil {
		arguments = map[string]interface{}{}
	}
	body, err := json.Marshal(arguments)
	if err != nil {
		return "", fmt.Errorf("invalid parameters for remote tool %s: %v", name, err)
	}

	url := fmt.Sprintf("%s/execute/%s", c.serverURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build execute request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute remote tool %s: %v", name, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response for remote tool %s: %v", name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("remote tool %s returned status %d", name, resp.StatusCode)
	}

	if !json.Valid(payload) {
		return "", fmt.Errorf("remote tool %s returned invalid JSON", name)
	}

	log.Printf("[INFO] Executed remote tool %s", name)
	return string(payload), nil
}
