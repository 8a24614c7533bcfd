package kwinrc

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"focusctl/internal/ini"
)

// Change is a computed but not yet written kwinrc rewrite.
type Change struct {
	Path   string
	Before []string
	After  []string
}

// Changed reports whether the document differs.
func (c Change) Changed() bool {
	return !slices.Equal(c.Before, c.After)
}

// DiffLine is one line of a change preview.
type DiffLine struct {
	Op   diffmatchpatch.Operation
	Text string
	Gap  bool // Stands for unchanged lines left out by WithContext
}

// Prefix is the unified-diff marker for the line.
func (d DiffLine) Prefix() string {
	switch d.Op {
	case diffmatchpatch.DiffInsert:
		return "+"
	case diffmatchpatch.DiffDelete:
		return "-"
	default:
		return " "
	}
}

// Diff returns a line diff of the change. Unchanged lines are included.
func (c Change) Diff() []DiffLine {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(ini.JoinLines(c.Before), ini.JoinLines(c.After))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var out []DiffLine
	for _, d := range diffs {
		for _, line := range ini.SplitLines(d.Text) {
			out = append(out, DiffLine{Op: d.Type, Text: line})
		}
	}
	return out
}

// Unified renders the diff with ---/+++ headers, or "" when nothing changes.
func (c Change) Unified() string {
	if !c.Changed() {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n+++ %s\n", c.Path, c.Path)
	for _, d := range c.Diff() {
		b.WriteString(d.Prefix())
		b.WriteString(d.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// WithContext keeps changed lines and up to n unchanged lines around each
// of them. Every run of dropped lines becomes one Gap entry.
func WithContext(lines []DiffLine, n int) []DiffLine {
	keep := make([]bool, len(lines))
	for i, d := range lines {
		if d.Op == diffmatchpatch.DiffEqual {
			continue
		}
		for j := max(0, i-n); j <= min(len(lines)-1, i+n); j++ {
			keep[j] = true
		}
	}
	var out []DiffLine
	gap := false
	for i, d := range lines {
		if keep[i] {
			out = append(out, d)
			gap = false
			continue
		}
		if !gap {
			out = append(out, DiffLine{Op: diffmatchpatch.DiffEqual, Gap: true})
			gap = true
		}
	}
	return out
}
