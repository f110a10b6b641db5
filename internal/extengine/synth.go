package extengine

import (
	"fmt"
	"strings"
)

// SynthesizeProbe builds the scratch source queried by the host: the
// parent component's source with an extra component appended whose
// inline template is the extracted markup and whose class extends the
// parent. Inside that template every binding expression resolves
// against the parent's members, so hovering an expression yields its
// real type.
func SynthesizeProbe(parentSource, parentClassName, template string) string {
	escaped := strings.ReplaceAll(template, "`", "\\`")
	var b strings.Builder
	b.WriteString(parentSource)
	if !strings.HasSuffix(parentSource, "\n") {
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, `
@Component({
  selector: 'ngxtract-probe',
  template: %s%s%s,
})
export class NgxtractProbeComponent extends %s {}
`, "`", escaped, "`", parentClassName)
	return b.String()
}

// FindExpressionPosition locates the first occurrence of expr inside
// text after offset and returns its zero-based line and character.
// Returns (0, 0) when the expression is not found; the host query then
// lands on the file start and simply resolves nothing.
func FindExpressionPosition(text, expr string, offset int) (line, character int) {
	if offset < 0 || offset > len(text) {
		offset = 0
	}
	idx := strings.Index(text[offset:], expr)
	if idx < 0 {
		return 0, 0
	}
	idx += offset

	for i := 0; i < idx; i++ {
		if text[i] == '\n' {
			line++
			character = 0
		} else {
			character++
		}
	}
	return line, character
}
