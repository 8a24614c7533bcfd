// Package classes handles window-class lists as stored in the forced-focus
// setting: normalization, parsing, and order-preserving deduplication.
package classes

import (
	"strings"
	"unicode"
)

// DesktopSuffix is stripped from normalized keys so that "foo.desktop" and
// "foo" refer to the same class.
const DesktopSuffix = ".desktop"

// Key returns the comparison key for a window class: trimmed, lower-cased,
// with one trailing ".desktop" removed. An empty result means "no class".
// Keys are for matching only; stored values keep the caller's spelling.
func Key(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	return strings.TrimSuffix(strings.ToLower(s), DesktopSuffix)
}

// Parse splits a stored or user-supplied list. Semicolons, commas and any
// whitespace all separate entries; empty entries are dropped.
func Parse(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		return r == ';' || r == ',' || unicode.IsSpace(r)
	})
}

// Join serializes a list in the stored form.
func Join(list []string) string {
	return strings.Join(list, ";")
}

// Dedupe keeps the first entry for every normalized key, in order, and
// drops entries that normalize to nothing.
func Dedupe(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, c := range list {
		k := Key(c)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Contains reports whether any entry shares class's normalized key.
func Contains(list []string, class string) bool {
	k := Key(class)
	if k == "" {
		return false
	}
	for _, c := range list {
		if Key(c) == k {
			return true
		}
	}
	return false
}

// Add appends class (trimmed, original spelling) unless its key is already
// present. The second result reports whether the list changed.
func Add(list []string, class string) ([]string, bool) {
	class = strings.TrimSpace(class)
	if Key(class) == "" || Contains(list, class) {
		return list, false
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, list...)
	out = append(out, class)
	return Dedupe(out), true
}

// Remove drops every entry sharing class's normalized key. The second
// result reports whether anything was removed.
func Remove(list []string, class string) ([]string, bool) {
	k := Key(class)
	out := make([]string, 0, len(list))
	for _, c := range list {
		if k != "" && Key(c) == k {
			continue
		}
		out = append(out, c)
	}
	return out, len(out) != len(list)
}

// Duplicates returns, for every entry after the first with a given key, the
// index of that first entry. Used to report a stored value that was edited
// by hand.
func Duplicates(list []string) map[int]int {
	first := make(map[string]int)
	dups := make(map[int]int)
	for i, c := range list {
		k := Key(c)
		if k == "" {
			continue
		}
		if j, ok := first[k]; ok {
			dups[i] = j
			continue
		}
		first[k] = i
	}
	return dups
}
