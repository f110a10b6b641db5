package inference

import (
	"regexp"
	"strings"
)

// importPrefixRe matches import("...")-qualified type prefixes that the
// parser preserves verbatim in annotation text.
var importPrefixRe = regexp.MustCompile(`import\([^)]*\)\.`)

// NormalizeTypeText cleans up a declared type's text for presentation:
// module-path prefixes are stripped, the boolean literal union collapses
// to boolean, and redundant `| undefined` is dropped from nullable
// primitive unions.
func NormalizeTypeText(t string) string {
	t = strings.TrimSpace(t)
	if t == "" {
		return t
	}

	t = importPrefixRe.ReplaceAllString(t, "")

	parts := splitUnion(t)
	if len(parts) == 2 &&
		((parts[0] == "false" && parts[1] == "true") || (parts[0] == "true" && parts[1] == "false")) {
		return "boolean"
	}

	// X | null | undefined → X | null for primitive X.
	if len(parts) == 3 && isPrimitive(parts[0]) && containsAll(parts[1:], "null", "undefined") {
		return parts[0] + " | null"
	}

	return strings.Join(parts, " | ")
}

// splitUnion splits a union type's text on top-level pipes and trims each
// member. Nested unions inside parentheses or generics are left intact.
func splitUnion(t string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(t); i++ {
		switch t[i] {
		case '(', '<', '[', '{':
			depth++
		case ')', '>', ']', '}':
			depth--
		case '|':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(t[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(t[start:]))
	return parts
}

func isPrimitive(t string) bool {
	switch t {
	case "string", "number", "boolean":
		return true
	}
	return false
}

func containsAll(parts []string, want ...string) bool {
	set := make(map[string]bool, len(parts))
	for _, p := range parts {
		set[p] = true
	}
	for _, w := range want {
		if !set[w] {
			return false
		}
	}
	return true
}
