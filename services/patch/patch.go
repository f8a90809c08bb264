// Package patch applies merge-diff documents to files: a targeted text
// replacement that doesn't require the caller to resend the full file.
package patch

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	searchMarker    = "<<<<<<< SEARCH"
	separatorMarker = "======="
	replaceMarker   = ">>>>>>> REPLACE"
)

// ErrMalformedDiff is returned when a diff document contains no complete
// search/replace block.
var ErrMalformedDiff = errors.New("malformed diff: no search/replace blocks found")

// Block is one parsed search/replace pair.
type Block struct {
	SearchText  string
	ReplaceText string
}

type parseMode int

const (
	modeOutside parseMode = iota
	modeInSearch
	modeInReplace
)

// ParseDiff scans a merge-diff document line by line and extracts its blocks.
// Lines outside any block are ignored, so surrounding prose from the model
// doesn't break parsing. An empty search section still counts as a complete
// block; callers that care must guard against it themselves.
func ParseDiff(diff string) ([]Block, error) {
	var blocks []Block
	var searchLines, replaceLines []string

	mode := modeOutside
	for _, line := range strings.Split(diff, "\n") {
		switch strings.TrimRight(line, "\r") {
		case searchMarker:
			mode = modeInSearch
			searchLines = nil
			replaceLines = nil
			continue
		case separatorMarker:
			if mode == modeInSearch {
				mode = modeInReplace
				continue
			}
		case replaceMarker:
			if mode == modeInReplace {
				blocks = append(blocks, Block{
					SearchText:  strings.Join(searchLines, "\n"),
					ReplaceText: strings.Join(replaceLines, "\n"),
				})
				mode = modeOutside
				continue
			}
		}

		switch mode {
		case modeInSearch:
			searchLines = append(searchLines, line)
		case modeInReplace:
			replaceLines = append(replaceLines, line)
		}
	}

	if len(blocks) == 0 {
		return nil, ErrMalformedDiff
	}

	return blocks, nil
}

// ApplyDiff parses the diff and applies each block to the file at filepath in
// order. Each block is a global literal replacement: every occurrence of the
// search text is substituted, not just the first. The file is read once,
// rewritten once, and left untouched when parsing fails or the file is missing.
func ApplyDiff(filepath, diff string) (int, error) {
	blocks, err := ParseDiff(diff)
	if err != nil {
		return 0, err
	}

	content, err := os.ReadFile(filepath)
	if err != nil {
		return 0, fmt.Errorf("failed to read file %s: %w", filepath, err)
	}

	text := string(content)
	applied := 0
	for _, block := range blocks {
		if strings.Contains(text, block.SearchText) {
			text = strings.ReplaceAll(text, block.SearchText, block.ReplaceText)
			applied++
		}
	}

	if err := os.WriteFile(filepath, []byte(text), 0644); err != nil {
		return 0, fmt.Errorf("failed to write file %s: %w", filepath, err)
	}

	return applied, nil
}
