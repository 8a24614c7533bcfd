package model

import "fmt"

// LineContext represents a line from a document with surrounding context
type LineContext struct {
	Before2    string // Two lines before the target
	Before1    string // Line before the target
	Target     string // The actual target line
	After1     string // Line after the target
	After2     string // Two lines after the target
	LineNumber int    // 1-based line number of the target
	HasBefore2 bool   // Whether there's a second line before
	HasBefore1 bool   // Whether there's a line before
	HasAfter1  bool   // Whether there's a line after
	HasAfter2  bool   // Whether there's a second line after
	ErrorMsg   string // Set when the line number is out of range
}

// GetLineContext returns the target line (1-based) with up to two lines of
// context on each side.
func GetLineContext(lines []string, lineNumber int) LineContext {
	result := LineContext{
		LineNumber: lineNumber,
	}

	if lineNumber < 1 || lineNumber > len(lines) {
		result.ErrorMsg = fmt.Sprintf("Line %d out of range (document has %d lines)", lineNumber, len(lines))
		return result
	}

	// Get the target line (convert to 0-indexed)
	result.Target = lines[lineNumber-1]

	if lineNumber > 2 {
		result.Before2 = lines[lineNumber-3]
		result.HasBefore2 = true
	}
	if lineNumber > 1 {
		result.Before1 = lines[lineNumber-2]
		result.HasBefore1 = true
	}

	if lineNumber < len(lines) {
		result.After1 = lines[lineNumber]
		result.HasAfter1 = true
	}
	if lineNumber+1 < len(lines) {
		result.After2 = lines[lineNumber+1]
		result.HasAfter2 = true
	}

	return result
}

// Lines returns the context as an ordered slice, target included.
func (c LineContext) Lines() []string {
	var out []string
	if c.HasBefore2 {
		out = append(out, c.Before2)
	}
	if c.HasBefore1 {
		out = append(out, c.Before1)
	}
	if c.ErrorMsg == "" {
		out = append(out, c.Target)
	}
	if c.HasAfter1 {
		out = append(out, c.After1)
	}
	if c.HasAfter2 {
		out = append(out, c.After2)
	}
	return out
}

// FirstLine is the 1-based number of the first line returned by Lines.
func (c LineContext) FirstLine() int {
	switch {
	case c.HasBefore2:
		return c.LineNumber - 2
	case c.HasBefore1:
		return c.LineNumber - 1
	default:
		return c.LineNumber
	}
}
