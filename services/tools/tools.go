package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"reactagent/services/patch"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/invopop/jsonschema"
)

// AgentTool is the interface all local tools implement. Call receives the
// tool arguments as a JSON document and returns a JSON document that always
// carries a "success" field.
type AgentTool interface {
	Name() string
	Description() string
	Call(ctx context.Context, input string) (string, error)
	GetAnthropicToolSpec() anthropic.ToolInputSchemaParam
}

// ignoredDirs are skipped when walking or searching the workspace.
var ignoredDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"__pycache__":  true,
	"venv":         true,
	"vendor":       true,
}

func generateAnthropicSchema[T any]() anthropic.ToolInputSchemaParam {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)

	return anthropic.ToolInputSchemaParam{
		Properties: schema.Properties,
	}
}

type ListFilesInput struct {
	Directory string `json:"directory,omitempty" jsonschema:"description=The directory to list files from relative to the workspace root (default: '.')"`
}

type ListFilesTool struct {
	workspace string
}

func NewListFilesTool(workspace string) ListFilesTool {
	return ListFilesTool{workspace: workspace}
}

func (l ListFilesTool) Name() string {
	return "list_files"
}

func (l ListFilesTool) Description() string {
	return "Recursively lists all files in a directory. Use '.' for the workspace root."
}

func (l ListFilesTool) Call(ctx context.Context, input string) (string, error) {
	var params ListFilesInput
	if err := json.Unmarshal([]byte(input), &params); err != nil {
		return "", fmt.Errorf("failed to parse list_files input: %v", err)
	}

	directory := params.Directory
	if directory == "" {
		directory = "."
	}

	root := filepath.Join(l.workspace, directory)
	files := []string{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || ignoredDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		rel, err := filepath.Rel(l.workspace, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to list files in %s: %v", directory, err)
	}

	type listFilesResult struct {
		Success bool     `json:"success"`
		Files   []string `json:"files"`
		Count   int      `json:"count"`
	}

	return marshalResult(listFilesResult{Success: true, Files: files, Count: len(files)})
}

func (l ListFilesTool) GetAnthropicToolSpec() anthropic.ToolInputSchemaParam {
	return generateAnthropicSchema[ListFilesInput]()
}

type ReadFileInput struct {
	Filepath string `json:"filepath" jsonschema:"required,description=The relative path of the file from the workspace root"`
}

type ReadFileTool struct {
	workspace string
}

func NewReadFileTool(workspace string) ReadFileTool {
	return ReadFileTool{workspace: workspace}
}

func (r ReadFileTool) Name() string {
	return "read_file"
}

func (r ReadFileTool) Description() string {
	return "Reads the entire content of a specified file."
}

func (r ReadFileTool) Call(ctx context.Context, input string) (string, error) {
	var params ReadFileInput
	if err := json.Unmarshal([]byte(input), &params); err != nil {
		return "", fmt.Errorf("failed to parse read_file input: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(r.workspace, params.Filepath))
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %v", params.Filepath, err)
	}

	type readFileResult struct {
		Success  bool   `json:"success"`
		Filepath string `json:"filepath"`
		Content  string `json:"content"`
		Lines    int    `json:"lines"`
	}

	lines := 0
	if len(content) > 0 {
		lines = len(strings.Split(strings.TrimRight(string(content), "\n"), "\n"))
	}

	return marshalResult(readFileResult{
		Success:  true,
		Filepath: params.Filepath,
		Content:  string(content),
		Lines:    lines,
	})
}

func (r ReadFileTool) GetAnthropicToolSpec() anthropic.ToolInputSchemaParam {
	return generateAnthropicSchema[ReadFileInput]()
}

type WriteFileInput struct {
	Filepath string `json:"filepath" jsonschema:"required,description=The relative path of the file to write to"`
	Content  string `json:"content" jsonschema:"required,description=The new content for the file"`
}

type WriteFileTool struct {
	workspace string
}

func NewWriteFileTool(workspace string) WriteFileTool {
	return WriteFileTool{workspace: workspace}
}

func (w WriteFileTool) Name() string {
	return "write_file"
}

func (w WriteFileTool) Description() string {
	return "Writes content to a file, creating it if it doesn't exist or overwriting it if it does."
}

func (w WriteFileTool) Call(ctx context.Context, input string) (string, error) {
	var params WriteFileInput
	if err := json.Unmarshal([]byte(input), &params); err != nil {
		return "", fmt.Errorf("failed to parse write_file input: %v", err)
	}

	fullPath := filepath.Join(w.workspace, params.Filepath)
	if dir := filepath.Dir(fullPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
	}

	if err := os.WriteFile(fullPath, []byte(params.Content), 0644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %v", params.Filepath, err)
	}

	type writeFileResult struct {
		Success      bool   `json:"success"`
		Filepath     string `json:"filepath"`
		BytesWritten int    `json:"bytes_written"`
	}

	return marshalResult(writeFileResult{
		Success:      true,
		Filepath:     params.Filepath,
		BytesWritten: len(params.Content),
	})
}

func (w WriteFileTool) GetAnthropicToolSpec() anthropic.ToolInputSchemaParam {
	return generateAnthropicSchema[WriteFileInput]()
}

type FileInfoInput struct {
	Filepath string `json:"filepath" jsonschema:"required,description=The relative path of the file"`
}

type FileInfoTool struct {
	workspace string
}

func NewFileInfoTool(workspace string) FileInfoTool {
	return FileInfoTool{workspace: workspace}
}

func (f FileInfoTool) Name() string {
	return "get_file_info"
}

func (f FileInfoTool) Description() string {
	return "Retrieves metadata about a file, such as its size and type. Reports exists=false for missing paths."
}

func (f FileInfoTool) Call(ctx context.Context, input string) (string, error) {
	var params FileInfoInput
	if err := json.Unmarshal([]byte(input), &params); err != nil {
		return "", fmt.Errorf("failed to parse get_file_info input: %v", err)
	}

	type fileInfoResult struct {
		Success  bool   `json:"success"`
		Filepath string `json:"filepath"`
		Exists   bool   `json:"exists"`
		Size     int64  `json:"size,omitempty"`
		IsFile   bool   `json:"is_file"`
		IsDir    bool   `json:"is_dir"`
	}

	info, err := os.Stat(filepath.Join(f.workspace, params.Filepath))
	if err != nil {
		if os.IsNotExist(err) {
			return marshalResult(fileInfoResult{Success: true, Filepath: params.Filepath, Exists: false})
		}
		return "", fmt.Errorf("failed to stat %s: %v", params.Filepath, err)
	}

	return marshalResult(fileInfoResult{
		Success:  true,
		Filepath: params.Filepath,
		Exists:   true,
		Size:     info.Size(),
		IsFile:   info.Mode().IsRegular(),
		IsDir:    info.IsDir(),
	})
}

func (f FileInfoTool) GetAnthropicToolSpec() anthropic.ToolInputSchemaParam {
	return generateAnthropicSchema[FileInfoInput]()
}

type ApplyDiffInput struct {
	Filepath string `json:"filepath" jsonschema:"required,description=The relative path of the file to patch"`
	Diff     string `json:"diff" jsonschema:"required,description=A merge-diff document with <<<<<<< SEARCH / ======= / >>>>>>> REPLACE blocks"`
}

type ApplyDiffTool struct {
	workspace string
}

func NewApplyDiffTool(workspace string) ApplyDiffTool {
	return ApplyDiffTool{workspace: workspace}
}

func (a ApplyDiffTool) Name() string {
	return "apply_diff"
}

func (a ApplyDiffTool) Description() string {
	return "Applies a merge-diff to a file. Every occurrence of each SEARCH block is replaced with its REPLACE block."
}

func (a ApplyDiffTool) Call(ctx context.Context, input string) (string, error) {
	var params ApplyDiffInput
	if err := json.Unmarshal([]byte(input), &params); err != nil {
		return "", fmt.Errorf("failed to parse apply_diff input: %v", err)
	}

	applied, err := patch.ApplyDiff(filepath.Join(a.workspace, params.Filepath), params.Diff)
	if err != nil {
		return "", fmt.Errorf("failed to apply diff to %s: %w", params.Filepath, err)
	}

	type applyDiffResult struct {
		Success       bool   `json:"success"`
		Filepath      string `json:"filepath"`
		BlocksApplied int    `json:"blocks_applied"`
	}

	return marshalResult(applyDiffResult{
		Success:       true,
		Filepath:      params.Filepath,
		BlocksApplied: applied,
	})
}

func (a ApplyDiffTool) GetAnthropicToolSpec() anthropic.ToolInputSchemaParam {
	return generateAnthropicSchema[ApplyDiffInput]()
}

type TaskCompleteInput struct {
	Summary string `json:"summary" jsonschema:"required,description=A brief summary of what was accomplished"`
}

// TaskCompleteTool is the terminal tool. It runs like any other so its
// summary lands in the history, then the orchestrator stops the loop.
type TaskCompleteTool struct{}

func NewTaskCompleteTool() TaskCompleteTool {
	return TaskCompleteTool{}
}

func (t TaskCompleteTool) Name() string {
	return "task_complete"
}

func (t TaskCompleteTool) Description() string {
	return "Call this tool when the assigned task is fully completed. Provide a summary of what was accomplished."
}

func (t TaskCompleteTool) Call(ctx context.Context, input string) (string, error) {
	var params TaskCompleteInput
	if err := json.Unmarshal([]byte(input), &params); err != nil {
		return "", fmt.Errorf("failed to parse task_complete input: %v", err)
	}

	summary := params.Summary
	if summary == "" {
		summary = "Task completed"
	}

	type taskCompleteResult struct {
		Success bool   `json:"success"`
		Summary string `json:"summary"`
	}

	return marshalResult(taskCompleteResult{Success: true, Summary: summary})
}

func (t TaskCompleteTool) GetAnthropicToolSpec() anthropic.ToolInputSchemaParam {
	return generateAnthropicSchema[TaskCompleteInput]()
}

func marshalResult(result any) (string, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal tool result: %v", err)
	}
	return string(data), nil
}
