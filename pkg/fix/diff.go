// Package fix renders the changes format mode makes to a file.
package fix

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of context lines to show around changes.
const contextLines = 3

// noNewlineMarker is appended to a final line lacking a terminator, as
// diff(1) does.
const noNewlineMarker = "\n\\ No newline at end of file\n"

// Diff represents a unified diff between original and modified content.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Original is the original file content.
	Original []byte

	// Modified is the modified file content.
	Modified []byte

	// Unified is the diff body, starting at the "---" header.
	Unified string

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// GenerateDiff creates a unified diff between original and modified content.
// Returns nil if there are no changes.
func GenerateDiff(path string, original, modified []byte) *Diff {
	if bytes.Equal(original, modified) {
		return nil
	}

	path = strings.TrimPrefix(path, "/")
	unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(original),
		B:        splitLines(modified),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  contextLines,
	})
	if err != nil || unified == "" {
		return nil
	}

	diff := &Diff{
		Path:     path,
		Original: original,
		Modified: modified,
		Unified:  unified,
	}
	for _, line := range diff.Lines() {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			diff.Additions++
		case strings.HasPrefix(line, "-"):
			diff.Deletions++
		}
	}
	return diff
}

// splitLines splits content into newline-terminated lines. A last line
// without a terminator gets the "No newline" marker so that adding or
// removing the final newline shows up as a change.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.SplitAfter(string(content), "\n")
	if lines[len(lines)-1] == "" {
		return lines[:len(lines)-1]
	}
	lines[len(lines)-1] += noNewlineMarker
	return lines
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	return fmt.Sprintf("diff --git a/%s b/%s", d.Path, d.Path)
}

// String returns the diff in unified diff format (without the git header).
func (d *Diff) String() string {
	if d == nil {
		return ""
	}
	return d.Unified
}

// FullString returns the complete diff including the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// Lines returns the diff body split into lines without terminators.
func (d *Diff) Lines() []string {
	if !d.HasChanges() {
		return nil
	}
	return strings.Split(strings.TrimSuffix(d.Unified, "\n"), "\n")
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && d.Unified != ""
}
