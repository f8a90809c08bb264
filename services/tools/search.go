package tools

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
)

type SearchInput struct {
	Pattern       string `json:"pattern" jsonschema:"required,description=The text pattern to search for (case-insensitive)"`
	FileExtension string `json:"file_extension,omitempty" jsonschema:"description=The extension of files to search in (e.g. 'go' or 'py')"`
}

type searchResult struct {
	Success bool     `json:"success"`
	Pattern string   `json:"pattern"`
	Matches []string `json:"matches"`
	Count   int      `json:"count"`
}

// SearchTool searches the workspace for a pattern. It delegates to grep when
// the binary is present on the host and falls back to an in-process line scan
// otherwise. Both paths produce the same result shape: "path:line:text"
// matches plus a total count.
type SearchTool struct {
	workspace string
	grepPath  string
}

func NewSearchTool(workspace string) SearchTool {
	grepPath, err := exec.LookPath("grep")
	if err != nil {
		grepPath = ""
	}
	return SearchTool{workspace: workspace, grepPath: grepPath}
}

func (s SearchTool) Name() string {
	return "search_in_files"
}

func (s SearchTool) Description() string {
	return "Searches for a pattern in files and returns the matching lines with file paths and line numbers."
}

func (s SearchTool) Call(ctx context.Context, input string) (string, error) {
	var params SearchInput
	if err := json.Unmarshal([]byte(input), &params); err != nil {
		return "", fmt.Errorf("failed to parse search_in_files input: %v", err)
	}
	if params.Pattern == "" {
		return "", fmt.Errorf("search pattern must not be empty")
	}

	var matches []string
	var err error

	if s.grepPath != "" {
		matches, err = s.grepSearch(ctx, params.Pattern, params.FileExtension)
	}
	if s.grepPath == "" || err != nil {
		matches, err = s.scanSearch(params.Pattern, params.FileExtension)
	}
	if err != nil {
		return "", fmt.Errorf("search for %q failed: %v", params.Pattern, err)
	}

	return marshalResult(searchResult{
		Success: true,
		Pattern: params.Pattern,
		Matches: matches,
		Count:   len(matches),
	})
}

func (s SearchTool) GetAnthropicToolSpec() anthropic.ToolInputSchemaParam {
	return generateAnthropicSchema[SearchInput]()
}

func (s SearchTool) grepSearch(ctx context.Context, pattern, extension string) ([]string, error) {
	args := []string{"-r", "-n", "-i"}
	if extension != "" {
		args = append(args, "--include", "*."+extension)
	}
	for dir := range ignoredDirs {
		args = append(args, "--exclude-dir", dir)
	}
	args = append(args, "-e", pattern, ".")

	cmd := exec.CommandContext(ctx, s.grepPath, args...)
	cmd.Dir = s.workspace
	output, err := cmd.Output()
	if err != nil {
		// Exit status 1 means no matches, which is still a successful search.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return []string{}, nil
		}
		return nil, err
	}

	matches := []string{}
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line == "" {
			continue
		}
		matches = append(matches, strings.TrimPrefix(line, "./"))
	}
	return matches, nil
}

func (s SearchTool) scanSearch(pattern, extension string) ([]string, error) {
	matches := []string{}
	patternLower := strings.ToLower(pattern)

	err := filepath.WalkDir(s.workspace, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != s.workspace && (strings.HasPrefix(name, ".") || ignoredDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if extension != "" && !strings.HasSuffix(name, "."+extension) {
			return nil
		}

		file, err := os.Open(path)
		if err != nil {
			// Unreadable files are skipped, matching grep's permissive behavior.
			return nil
		}
		defer file.Close()

		rel, err := filepath.Rel(s.workspace, path)
		if err != nil {
			return err
		}

		scanner := bufio.NewScanner(file)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			if strings.Contains(strings.ToLower(scanner.Text()), patternLower) {
				matches = append(matches, fmt.Sprintf("%s:%d:%s", filepath.ToSlash(rel), lineNum, strings.TrimSpace(scanner.Text())))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return matches, nil
}
