package extengine

import (
	"regexp"
	"strings"
)

var (
	fencedBlockRe = regexp.MustCompile("(?s)```[a-zA-Z]*\n?(.*?)```")
	inlineCodeRe  = regexp.MustCompile("`([^`]+)`")

	propertySigRe = regexp.MustCompile(`\(property\)\s+[\w.$\[\]'s ]+:\s*(.+)`)
	methodSigRe   = regexp.MustCompile(`\(method\)\s+[\w.$]+\((.*?)\)`)
	bareSigRe     = regexp.MustCompile(`^[\w.$\[\]]+:\s*(.+)$`)
	firstParamRe  = regexp.MustCompile(`^[\w.$]+\s*:\s*([^,]+)`)
)

// SelectPayload picks the most signature-like payload from a hover
// response. Payloads carrying a typescript fence or a property/method
// marker win, then any fenced payload, then the first one.
func SelectPayload(payloads []HoverPayload) (HoverPayload, bool) {
	if len(payloads) == 0 {
		return HoverPayload{}, false
	}
	for _, p := range payloads {
		if strings.Contains(p.Content, "```typescript") ||
			strings.Contains(p.Content, "(property)") ||
			strings.Contains(p.Content, "(method)") {
			return p, true
		}
	}
	for _, p := range payloads {
		if strings.Contains(p.Content, "```") {
			return p, true
		}
	}
	return payloads[0], true
}

// ExtractCodeBlock pulls the signature text out of a payload. Fenced
// blocks are preferred, then inline backtick spans, then the raw
// content.
func ExtractCodeBlock(p HoverPayload) string {
	if m := fencedBlockRe.FindStringSubmatch(p.Content); m != nil {
		return strings.TrimSpace(m[1])
	}
	if p.IsMarkdown {
		if m := inlineCodeRe.FindStringSubmatch(p.Content); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return strings.TrimSpace(p.Content)
}

// ParseSignatureType reads the type out of a hover signature. Three
// shapes are recognized:
//
//	(property) Component.user: User
//	(method) Component.onSave(event: MouseEvent): void
//	user: User
//
// For methods the first parameter's type is taken; a parameterless
// method yields void. Returns "" when nothing matches.
func ParseSignatureType(signature string) string {
	signature = strings.TrimSpace(signature)

	if m := methodSigRe.FindStringSubmatch(signature); m != nil {
		params := strings.TrimSpace(m[1])
		if params == "" {
			return "void"
		}
		if pm := firstParamRe.FindStringSubmatch(params); pm != nil {
			return strings.TrimSpace(pm[1])
		}
		return ""
	}

	if m := propertySigRe.FindStringSubmatch(signature); m != nil {
		return strings.TrimSpace(firstLine(m[1]))
	}

	if m := bareSigRe.FindStringSubmatch(firstLine(signature)); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
