package patch

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "target.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read test file: %v", err)
	}
	return string(content)
}

func TestParseDiff(t *testing.T) {
	tests := []struct {
		name        string
		diff        string
		wantBlocks  []Block
		wantErr     bool
	}{
		{
			name: "single block",
			diff: "<<<<<<< SEARCH\nold line\n=======\nnew line\n>>>>>>> REPLACE",
			wantBlocks: []Block{
				{SearchText: "old line", ReplaceText: "new line"},
			},
		},
		{
			name: "multiple blocks",
			diff: "<<<<<<< SEARCH\nfirst\n=======\n1st\n>>>>>>> REPLACE\n" +
				"<<<<<<< SEARCH\nsecond\n=======\n2nd\n>>>>>>> REPLACE",
			wantBlocks: []Block{
				{SearchText: "first", ReplaceText: "1st"},
				{SearchText: "second", ReplaceText: "2nd"},
			},
		},
		{
			name: "prose around block is ignored",
			diff: "Here is the change you asked for:\n" +
				"<<<<<<< SEARCH\nfoo\n=======\nbar\n>>>>>>> REPLACE\n" +
				"Let me know if that works.",
			wantBlocks: []Block{
				{SearchText: "foo", ReplaceText: "bar"},
			},
		},
		{
			name: "multi-line search and replace",
			diff: "<<<<<<< SEARCH\nline a\nline b\n=======\nline c\nline d\nline e\n>>>>>>> REPLACE",
			wantBlocks: []Block{
				{SearchText: "line a\nline b", ReplaceText: "line c\nline d\nline e"},
			},
		},
		{
			name: "empty search section is parse success",
			diff: "<<<<<<< SEARCH\n=======\ninserted\n>>>>>>> REPLACE",
			wantBlocks: []Block{
				{SearchText: "", ReplaceText: "inserted"},
			},
		},
		{
			name:    "missing replace marker",
			diff:    "<<<<<<< SEARCH\nold\n=======\nnew",
			wantErr: true,
		},
		{
			name:    "no markers at all",
			diff:    "just some text without any markers",
			wantErr: true,
		},
		{
			name:    "empty document",
			diff:    "",
			wantErr: true,
		},
		{
			name:    "separator without search marker is ignored",
			diff:    "=======\ntext\n>>>>>>> REPLACE",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks, err := ParseDiff(tt.diff)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedDiff) {
					t.Fatalf("ParseDiff() error = %v, expected ErrMalformedDiff", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDiff() unexpected error: %v", err)
			}
			if len(blocks) != len(tt.wantBlocks) {
				t.Fatalf("ParseDiff() returned %d blocks, expected %d", len(blocks), len(tt.wantBlocks))
			}
			for i, want := range tt.wantBlocks {
				if blocks[i] != want {
					t.Errorf("block %d = %+v, expected %+v", i, blocks[i], want)
				}
			}
		})
	}
}

func TestApplyDiffSingleOccurrence(t *testing.T) {
	path := writeTempFile(t, "package main\n\nfunc oldName() {}\n")
	diff := "<<<<<<< SEARCH\nfunc oldName() {}\n=======\nfunc newName() {}\n>>>>>>> REPLACE"

	applied, err := ApplyDiff(path, diff)
	if err != nil {
		t.Fatalf("ApplyDiff() unexpected error: %v", err)
	}
	if applied != 1 {
		t.Errorf("ApplyDiff() applied = %d, expected 1", applied)
	}

	got := readFile(t, path)
	want := "package main\n\nfunc newName() {}\n"
	if got != want {
		t.Errorf("file content = %q, expected %q", got, want)
	}

	// A second application finds nothing to replace and leaves the file as is.
	applied, err = ApplyDiff(path, diff)
	if err != nil {
		t.Fatalf("second ApplyDiff() unexpected error: %v", err)
	}
	if applied != 0 {
		t.Errorf("second ApplyDiff() applied = %d, expected 0", applied)
	}
	if readFile(t, path) != want {
		t.Errorf("second apply modified the file")
	}
}

func TestApplyDiffReplacesAllOccurrences(t *testing.T) {
	// Global-replace semantics: every occurrence is substituted, this is
	// deliberately not a single-occurrence patch.
	path := writeTempFile(t, "count = 0\ncount = 0\nother\ncount = 0\n")
	diff := "<<<<<<< SEARCH\ncount = 0\n=======\ncount = 1\n>>>>>>> REPLACE"

	if _, err := ApplyDiff(path, diff); err != nil {
		t.Fatalf("ApplyDiff() unexpected error: %v", err)
	}

	got := readFile(t, path)
	if strings.Contains(got, "count = 0") {
		t.Errorf("expected all occurrences replaced, got %q", got)
	}
	if strings.Count(got, "count = 1") != 3 {
		t.Errorf("expected 3 replacements, got %q", got)
	}
}

func TestApplyDiffMultipleBlocksInOrder(t *testing.T) {
	path := writeTempFile(t, "alpha\nbeta\n")
	diff := "<<<<<<< SEARCH\nalpha\n=======\nbeta\n>>>>>>> REPLACE\n" +
		"<<<<<<< SEARCH\nbeta\n=======\ngamma\n>>>>>>> REPLACE"

	if _, err := ApplyDiff(path, diff); err != nil {
		t.Fatalf("ApplyDiff() unexpected error: %v", err)
	}

	// The first block turns alpha into beta, the second then rewrites both
	// betas. Order of application is observable.
	got := readFile(t, path)
	want := "gamma\ngamma\n"
	if got != want {
		t.Errorf("file content = %q, expected %q", got, want)
	}
}

func TestApplyDiffMalformedLeavesFileUnmodified(t *testing.T) {
	original := "do not touch\n"
	path := writeTempFile(t, original)
	diff := "<<<<<<< SEARCH\ndo not touch\n=======\ncorrupted"

	_, err := ApplyDiff(path, diff)
	if !errors.Is(err, ErrMalformedDiff) {
		t.Fatalf("ApplyDiff() error = %v, expected ErrMalformedDiff", err)
	}
	if readFile(t, path) != original {
		t.Errorf("malformed diff modified the target file")
	}
}

func TestApplyDiffMissingFile(t *testing.T) {
	diff := "<<<<<<< SEARCH\nold\n=======\nnew\n>>>>>>> REPLACE"
	path := filepath.Join(t.TempDir(), "does-not-exist.txt")

	if _, err := ApplyDiff(path, diff); err == nil {
		t.Fatal("ApplyDiff() expected error for missing file, got nil")
	}
}
