// Package ini edits grouped key=value files ("[Section]" headers followed by
// key=value lines) without disturbing anything it does not touch.
//
// A document is a plain slice of lines. Scanning yields line indices, and all
// edits are index-based replace or insert, so comments, blank lines, ordering
// and unrelated sections survive a rewrite byte for byte.
package ini

import "strings"

// Location is where a key sits in a document.
//
// There are three shapes: section absent (both indices -1), section present
// but key absent (ValueIndex -1), or both present.
type Location struct {
	Section     string // Section name that was searched for
	Key         string // Key name that was searched for
	HeaderIndex int    // Index of the most recent matching header, or -1
	ValueIndex  int    // Index of the last matching key line, or -1
	Value       string // Text after "key=" on the value line
}

// HasSection reports whether the section header was found.
func (l Location) HasSection() bool { return l.HeaderIndex >= 0 }

// HasValue reports whether the key line was found.
func (l Location) HasValue() bool { return l.ValueIndex >= 0 }

// Header renders a section header line.
func Header(section string) string {
	return "[" + section + "]"
}

// isHeader reports whether a trimmed line is a section header.
func isHeader(trimmed string) bool {
	return strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]")
}

// SplitLines breaks file contents into lines. A trailing newline does not
// produce an extra empty line, and CRLF endings are accepted.
func SplitLines(contents string) []string {
	if contents == "" {
		return nil
	}
	lines := strings.Split(contents, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// JoinLines serializes lines with a newline after every line, the last one
// included.
func JoinLines(lines []string) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Locate scans lines once for key inside section.
//
// Only one section is current at a time: the matching header enters it, any
// other header leaves it. A repeated key inside the section resolves to its
// last occurrence, and a repeated section reports its last header. Neither
// repetition is produced by this package; both come from hand-edited files.
func Locate(lines []string, section, key string) Location {
	loc := Location{
		Section:     section,
		Key:         key,
		HeaderIndex: -1,
		ValueIndex:  -1,
	}
	header := Header(section)
	prefix := key + "="
	inSection := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if isHeader(trimmed) {
			inSection = trimmed == header
			if inSection {
				loc.HeaderIndex = i
			}
			continue
		}

		if inSection && strings.HasPrefix(trimmed, prefix) {
			loc.ValueIndex = i
			loc.Value = trimmed[len(prefix):]
		}
	}
	return loc
}

// Line renders a key=value line.
func Line(key, value string) string {
	return key + "=" + value
}

// Upsert writes line at loc and returns the new document:
//
//   - key present: that one line is replaced in place
//   - section present, key absent: line is inserted right after the header
//   - section absent: a blank separator (only when the document is non-empty
//     and does not already end blank), the header, then line are appended
//
// lines is not modified.
func Upsert(lines []string, loc Location, line string) []string {
	out := make([]string, 0, len(lines)+3)

	switch {
	case loc.HasValue():
		out = append(out, lines...)
		out[loc.ValueIndex] = line
	case loc.HasSection():
		out = append(out, lines[:loc.HeaderIndex+1]...)
		out = append(out, line)
		out = append(out, lines[loc.HeaderIndex+1:]...)
	default:
		out = append(out, lines...)
		if len(out) > 0 && out[len(out)-1] != "" {
			out = append(out, "")
		}
		out = append(out, Header(loc.Section), line)
	}
	return out
}

// Set locates key in section and upserts key=value.
func Set(lines []string, section, key, value string) []string {
	return Upsert(lines, Locate(lines, section, key), Line(key, value))
}

// Occurrence describes one header or key line found by Scan.
type Occurrence struct {
	Index int    // Line index
	Value string // Key value; empty for headers
}

// Scan lists every header of section and every key line inside any of its
// occurrences, in file order. Locate reports only the last of each; Scan is
// for diagnosing files where that matters.
func Scan(lines []string, section, key string) (headers, values []Occurrence) {
	header := Header(section)
	prefix := key + "="
	inSection := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isHeader(trimmed) {
			inSection = trimmed == header
			if inSection {
				headers = append(headers, Occurrence{Index: i})
			}
			continue
		}
		if inSection && strings.HasPrefix(trimmed, prefix) {
			values = append(values, Occurrence{Index: i, Value: trimmed[len(prefix):]})
		}
	}
	return headers, values
}
