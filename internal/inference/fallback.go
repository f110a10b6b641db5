package inference

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// fallbackRule is one naming-convention heuristic. The rules form an
// ordered table: the first match wins, so more specific patterns must sit
// above the generic ones (e.g. the `.length` suffix before the plural
// array guess).
type fallbackRule struct {
	pattern    *regexp.Regexp
	typeName   string
	confidence Confidence
}

var fallbackRules = []fallbackRule{
	// Boolean naming conventions.
	{regexp.MustCompile(`^(is|has|can|should)([A-Z_]|$)`), "boolean", ConfidenceMedium},
	{regexp.MustCompile(`(Enabled|Visible|Active|Valid|Loading)$`), "boolean", ConfidenceMedium},
	// Collection-size member access, before anything that could match the
	// base name.
	{regexp.MustCompile(`\.(length|size|count)$`), "number", ConfidenceMedium},
	// Numeric suffixes.
	{regexp.MustCompile(`(Index|Total|Amount|Price|Quantity|Count)$`), "number", ConfidenceMedium},
	{regexp.MustCompile(`(Width|Height|Size|Age|Weight|Depth)$`), "number", ConfidenceLow},
	// Date suffixes: the audit-trail names are trustworthy, the generic
	// ones only a hint.
	{regexp.MustCompile(`(CreatedAt|UpdatedAt|Timestamp)$`), "Date", ConfidenceMedium},
	{regexp.MustCompile(`(Date|Time)$`), "Date", ConfidenceLow},
	// String suffixes.
	{regexp.MustCompile(`(Name|Title|Email|Url|Id|Label|Text|Message|Description)$`), "string", ConfidenceLow},
	// The template event payload variable.
	{regexp.MustCompile(`^\$event$`), "Event", ConfidenceMedium},
	// Plural / array-ish names, last so the suffix rules above win.
	{regexp.MustCompile(`(List|Items|Array|s)$`), "unknown[]", ConfidenceLow},
}

var (
	stringLiteralRe = regexp.MustCompile("^('[^']*'|\"[^\"]*\"|`[^`]*`)$")
	numberLiteralRe = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// InferFromLiteral recognizes literal expressions (quoted strings,
// numerals, booleans, null, undefined) at high confidence. Returns nil —
// not a guess — when the expression is not a recognizable literal, so the
// caller can continue with pattern matching or static resolution.
func InferFromLiteral(expr, propertyName string) *InferredType {
	expr = strings.TrimSpace(expr)

	var typeName string
	switch {
	case stringLiteralRe.MatchString(expr):
		typeName = "string"
	case numberLiteralRe.MatchString(expr):
		typeName = "number"
	case expr == "true" || expr == "false":
		typeName = "boolean"
	case expr == "null":
		typeName = "null"
	case expr == "undefined":
		typeName = "undefined"
	default:
		return nil
	}

	return &InferredType{
		PropertyName: propertyName,
		Type:         typeName,
		IsInferred:   true,
		Confidence:   ConfidenceHigh,
	}
}

// InferFromExpression guesses a type from naming conventions. It always
// returns a result; when nothing matches it returns the canonical
// not-inferred entry. The expression is consulted first, then the bound
// property name.
func InferFromExpression(expr, propertyName string) InferredType {
	if lit := InferFromLiteral(expr, propertyName); lit != nil {
		return *lit
	}

	for _, candidate := range []string{strings.TrimSpace(expr), propertyName} {
		if candidate == "" {
			continue
		}
		for _, rule := range fallbackRules {
			if rule.pattern.MatchString(candidate) {
				return InferredType{
					PropertyName: propertyName,
					Type:         rule.typeName,
					IsInferred:   true,
					Confidence:   rule.confidence,
				}
			}
		}
	}

	return Unknown(propertyName)
}

// ShouldWarnUser reports whether over half of the results are low
// confidence, in which case the user should review the scaffolded types.
func ShouldWarnUser(results map[string]InferredType) bool {
	if len(results) == 0 {
		return false
	}
	low := 0
	for _, r := range results {
		if r.Confidence == ConfidenceLow {
			low++
		}
	}
	return low*2 > len(results)
}

// GenerateWarningMessage enumerates the low-confidence and not-inferred
// entries for the manual-review advisory.
func GenerateWarningMessage(results map[string]InferredType) string {
	var names []string
	for name, r := range results {
		if r.Confidence == ConfidenceLow || !r.IsInferred {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("some binding types could not be inferred reliably; review these manually:\n")
	for _, name := range names {
		r := results[name]
		fmt.Fprintf(&sb, "  %s: %s [%s]\n", name, r.Type, r.Confidence.Label())
	}
	return sb.String()
}

// Stats tallies confidence levels across one inference run.
type Stats struct {
	High   int
	Medium int
	Low    int
	// SuccessRate is (High+Medium)/total, 0 for an empty run.
	SuccessRate float64
}

// ConfidenceStats computes confidence tallies and the success rate.
func ConfidenceStats(results map[string]InferredType) Stats {
	var s Stats
	for _, r := range results {
		switch r.Confidence {
		case ConfidenceHigh:
			s.High++
		case ConfidenceMedium:
			s.Medium++
		default:
			s.Low++
		}
	}
	if total := len(results); total > 0 {
		s.SuccessRate = float64(s.High+s.Medium) / float64(total)
	}
	return s
}
