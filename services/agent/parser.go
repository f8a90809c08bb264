package agent

import (
	"encoding/xml"
	"io"
	"log"
	"strings"

	"reactagent/models"

	"github.com/google/uuid"
)

// Parse converts one raw model response into a thought plus at most one tool
// invocation. Structured providers already deliver typed tool calls; for
// text-shape responses the THOUGHT/ACTION tags are extracted instead. Parse
// never fails: anything unparseable becomes a reasoning-only turn.
func Parse(response *models.ModelResponse) *models.ParsedResponse {
	if len(response.ToolCalls) > 0 {
		// At most one invocation is acted on per iteration.
		invocation := response.ToolCalls[0]
		return &models.ParsedResponse{
			Thought:    strings.TrimSpace(response.Text),
			Invocation: &invocation,
		}
	}

	return parseTagged(response.Text)
}

// parseTagged extracts <THOUGHT> and <ACTION> from semi-structured model
// output. The raw text is wrapped in a synthetic root element before parsing:
// responses are not guaranteed to be a single well-formed fragment (multiple
// top-level tags, stray prose), and only a wrapper makes them one document a
// standard XML parser will accept.
func parseTagged(text string) *models.ParsedResponse {
	decoder := xml.NewDecoder(strings.NewReader("<root>" + text + "</root>"))

	var (
		stack    []string
		charData strings.Builder
		thought  string
		toolName string
	)
	parameters := map[string]interface{}{}

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("[ERROR] Invalid XML in model response: %v", err)
			return &models.ParsedResponse{Thought: thought}
		}

		switch t := token.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name.Local)
			charData.Reset()
		case xml.CharData:
			charData.Write(t)
		case xml.EndElement:
			value := strings.TrimSpace(charData.String())
			path := strings.Join(stack, "/")
			switch {
			case path == "root/THOUGHT":
				thought = value
			case path == "root/ACTION/tool_name":
				toolName = value
			case len(stack) == 4 && stack[1] == "ACTION" && stack[2] == "parameters":
				parameters[t.Name.Local] = value
			}
			stack = stack[:len(stack)-1]
			charData.Reset()
		}
	}

	if toolName == "" {
		log.Printf("[INFO] No ACTION found in model response, treating as reasoning-only turn")
		return &models.ParsedResponse{Thought: thought}
	}

	return &models.ParsedResponse{
		Thought: thought,
		Invocation: &models.ToolCall{
			// Text-shape invocations carry no provider id, so one is minted
			// here to keep observation correlation uniform across providers.
			ID:        uuid.NewString(),
			Name:      toolName,
			Arguments: parameters,
		},
	}
}
