package agent

import (
	"testing"

	"reactagent/models"
)

func TestParseStructuredResponse(t *testing.T) {
	response := &models.ModelResponse{
		Text: "I'll create the file now.",
		ToolCalls: []models.ToolCall{
			{ID: "toolu_123", Name: "write_file", Arguments: map[string]interface{}{
				"filepath": "hello.txt",
				"content":  "hi",
			}},
		},
	}

	parsed := Parse(response)
	if parsed.Invocation == nil {
		t.Fatal("expected an invocation for a structured tool call")
	}
	if parsed.Invocation.ID != "toolu_123" {
		t.Errorf("invocation ID = %q, expected toolu_123", parsed.Invocation.ID)
	}
	if parsed.Invocation.Name != "write_file" {
		t.Errorf("invocation name = %q, expected write_file", parsed.Invocation.Name)
	}
	if parsed.Thought != "I'll create the file now." {
		t.Errorf("thought = %q", parsed.Thought)
	}
}

func TestParseStructuredResponseUsesFirstToolCall(t *testing.T) {
	response := &models.ModelResponse{
		ToolCalls: []models.ToolCall{
			{ID: "1", Name: "read_file"},
			{ID: "2", Name: "write_file"},
		},
	}

	parsed := Parse(response)
	if parsed.Invocation == nil || parsed.Invocation.Name != "read_file" {
		t.Fatalf("expected the first tool call to win, got %+v", parsed.Invocation)
	}
}

func TestParseTaggedResponse(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantThought    string
		wantTool       string
		wantArguments  map[string]interface{}
		wantInvocation bool
	}{
		{
			name: "well-formed action",
			text: "<THOUGHT>I need to see the files first.</THOUGHT>\n" +
				"<ACTION>\n  <tool_name>list_files</tool_name>\n  <parameters>\n    <directory>.</directory>\n  </parameters>\n</ACTION>",
			wantThought:    "I need to see the files first.",
			wantTool:       "list_files",
			wantArguments:  map[string]interface{}{"directory": "."},
			wantInvocation: true,
		},
		{
			name: "multiple parameters",
			text: "<ACTION><tool_name>write_file</tool_name><parameters>" +
				"<filepath>hello.txt</filepath><content>hi</content></parameters></ACTION>",
			wantTool:       "write_file",
			wantArguments:  map[string]interface{}{"filepath": "hello.txt", "content": "hi"},
			wantInvocation: true,
		},
		{
			name: "stray prose around multiple top-level tags",
			text: "Sure, here is my plan.\n<THOUGHT>Check the config.</THOUGHT>\nNow the action:\n" +
				"<ACTION><tool_name>read_file</tool_name><parameters><filepath>config.go</filepath></parameters></ACTION>",
			wantThought:    "Check the config.",
			wantTool:       "read_file",
			wantArguments:  map[string]interface{}{"filepath": "config.go"},
			wantInvocation: true,
		},
		{
			name:           "thought only is a reasoning turn",
			text:           "<THOUGHT>Let me think about this some more.</THOUGHT>",
			wantThought:    "Let me think about this some more.",
			wantInvocation: false,
		},
		{
			name:           "unterminated tag yields no invocation",
			text:           "<THOUGHT>half a thought<ACTION><tool_name>list_files",
			wantInvocation: false,
		},
		{
			name:           "plain prose yields no invocation",
			text:           "I am not sure what to do next.",
			wantInvocation: false,
		},
		{
			name:           "action without tool_name yields no invocation",
			text:           "<ACTION><parameters><directory>.</directory></parameters></ACTION>",
			wantInvocation: false,
		},
		{
			name:           "empty response",
			text:           "",
			wantInvocation: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := Parse(&models.ModelResponse{Text: tt.text})

			if tt.wantThought != "" && parsed.Thought != tt.wantThought {
				t.Errorf("thought = %q, expected %q", parsed.Thought, tt.wantThought)
			}

			if !tt.wantInvocation {
				if parsed.Invocation != nil {
					t.Fatalf("expected no invocation, got %+v", parsed.Invocation)
				}
				return
			}

			if parsed.Invocation == nil {
				t.Fatal("expected an invocation, got none")
			}
			if parsed.Invocation.Name != tt.wantTool {
				t.Errorf("tool = %q, expected %q", parsed.Invocation.Name, tt.wantTool)
			}
			if parsed.Invocation.ID == "" {
				t.Error("text-shape invocation should receive a generated ID")
			}
			for key, want := range tt.wantArguments {
				if got := parsed.Invocation.Arguments[key]; got != want {
					t.Errorf("argument %s = %v, expected %v", key, got, want)
				}
			}
		})
	}
}
