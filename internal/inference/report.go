package inference

import (
	"fmt"
	"strings"
)

// GenerateReport renders one line per property in the given order.
// Inferred properties are marked with a check, unresolved ones with a
// cross, each followed by the resolved type and confidence label.
func GenerateReport(order []string, results map[string]InferredType) string {
	var b strings.Builder
	for _, name := range order {
		r, ok := results[name]
		if !ok {
			r = Unknown(name)
		}
		mark := "✓"
		if !r.IsInferred {
			mark = "✗"
		}
		fmt.Fprintf(&b, "%s %s: %s [%s]\n", mark, name, r.Type, r.Confidence.Label())
	}
	return b.String()
}
