package inference

import (
	"regexp"
	"strings"

	"github.com/microsoft/typescript-go/shim/ast"

	"github.com/ngxtract/ngxtract/internal/source"
)

// pipeType is one entry of the built-in pipe result table. The table is
// an ordered list: the first pipe in the chain whose name appears here
// decides the type.
type pipeType struct {
	name     string
	typeName string
}

var builtinPipeTypes = []pipeType{
	{"date", "string"},
	{"uppercase", "string"},
	{"lowercase", "string"},
	{"titlecase", "string"},
	{"currency", "string"},
	{"percent", "string"},
	{"number", "string"},
	{"json", "string"},
	{"slice", "unknown[]"},
	{"keyvalue", "unknown[]"},
}

var (
	ternaryRe     = regexp.MustCompile(`^(.+?)\?(.+):(.+)$`)
	arrayAccessRe = regexp.MustCompile(`^([A-Za-z_$][A-Za-z0-9_$]*)\[[^\]]*\](.*)$`)
	methodCallRe  = regexp.MustCompile(`^([A-Za-z_$][A-Za-z0-9_$]*)\((.*?)\)(.*)$`)

	complexMarkers = []string{"?", "[", "(", "|", "&&", "+", "*", "/", "%", "==", "!=", "<", ">", " - "}
)

// IsComplexExpression reports whether an expression needs pattern-specific
// analysis rather than plain property-path resolution: ternaries, bracket
// indexing, calls, pipes, logical/arithmetic/comparison operators.
func IsComplexExpression(expr string) bool {
	for _, marker := range complexMarkers {
		if strings.Contains(expr, marker) {
			return true
		}
	}
	return false
}

// AnalyzeExpression classifies a complex binding expression and derives a
// best-effort type against the first class of the parent source file.
// Dispatch order: pipe, ternary, array access, method call; anything else
// is reported simple and unknown. First match wins.
func AnalyzeExpression(expr string, sf *ast.SourceFile) ExpressionAnalysisResult {
	expr = strings.TrimSpace(expr)

	switch {
	case strings.Contains(expr, "|") && !strings.Contains(expr, "||"):
		return analyzePipe(expr)
	case ternaryRe.MatchString(expr):
		return analyzeTernary(expr)
	case arrayAccessRe.MatchString(expr):
		return analyzeArrayAccess(expr, sf)
	case methodCallRe.MatchString(expr):
		return analyzeMethodCall(expr, sf)
	default:
		return ExpressionAnalysisResult{Type: "unknown", Confidence: ConfidenceLow, IsComplex: false}
	}
}

// analyzePipe handles `base | pipe1 | pipe2...`. The async pipe always
// yields unknown: observable unwrapping is an explicit non-goal, not a
// bug. Custom pipes are unknown too — their transform types are not
// resolvable lexically.
func analyzePipe(expr string) ExpressionAnalysisResult {
	parts := strings.Split(expr, "|")
	base := strings.TrimSpace(parts[0])

	var pipeNames []string
	for _, part := range parts[1:] {
		// A pipe segment may carry arguments: `date:'short'`.
		name := strings.TrimSpace(part)
		if idx := strings.Index(name, ":"); idx >= 0 {
			name = strings.TrimSpace(name[:idx])
		}
		pipeNames = append(pipeNames, name)
	}

	for _, name := range pipeNames {
		if name == "async" {
			return ExpressionAnalysisResult{
				Type:           "unknown",
				Confidence:     ConfidenceLow,
				BaseExpression: base,
				IsComplex:      true,
			}
		}
	}

	for _, name := range pipeNames {
		for _, pt := range builtinPipeTypes {
			if pt.name == name {
				return ExpressionAnalysisResult{
					Type:           pt.typeName,
					Confidence:     ConfidenceMedium,
					BaseExpression: base,
					IsComplex:      true,
				}
			}
		}
	}

	return ExpressionAnalysisResult{
		Type:           "unknown",
		Confidence:     ConfidenceLow,
		BaseExpression: base,
		IsComplex:      true,
	}
}

// analyzeTernary handles `cond ? a : b` by literal detection on the two
// branches only — no recursion into nested expressions.
func analyzeTernary(expr string) ExpressionAnalysisResult {
	m := ternaryRe.FindStringSubmatch(expr)
	whenTrue := strings.TrimSpace(m[2])
	whenFalse := strings.TrimSpace(m[3])

	trueType := literalTypeOf(whenTrue)
	falseType := literalTypeOf(whenFalse)

	switch {
	case trueType != "" && falseType != "":
		if trueType == falseType {
			return ExpressionAnalysisResult{Type: trueType, Confidence: ConfidenceMedium, IsComplex: true}
		}
		return ExpressionAnalysisResult{Type: trueType + " | " + falseType, Confidence: ConfidenceMedium, IsComplex: true}
	case trueType != "":
		return ExpressionAnalysisResult{Type: trueType, Confidence: ConfidenceLow, BaseExpression: whenFalse, IsComplex: true}
	case falseType != "":
		return ExpressionAnalysisResult{Type: falseType, Confidence: ConfidenceLow, BaseExpression: whenTrue, IsComplex: true}
	default:
		return ExpressionAnalysisResult{Type: "unknown", Confidence: ConfidenceLow, IsComplex: true}
	}
}

// analyzeArrayAccess handles `name[idx]`, deriving the element type from
// an array-suffixed property declaration. Member access past the bracket
// (items[0].label) is not resolved across the array boundary; the base
// name is still reported for callers that want to continue.
func analyzeArrayAccess(expr string, sf *ast.SourceFile) ExpressionAnalysisResult {
	m := arrayAccessRe.FindStringSubmatch(expr)
	baseName, rest := m[1], m[2]

	result := ExpressionAnalysisResult{
		Type:           "unknown",
		Confidence:     ConfidenceLow,
		BaseExpression: baseName,
		IsComplex:      true,
	}

	if strings.HasPrefix(rest, ".") {
		return result
	}

	class := source.FirstClass(sf)
	if class == nil {
		return result
	}
	prop := source.ClassProperty(class, baseName)
	if prop == nil || prop.Type == nil {
		return result
	}

	typeText := NormalizeTypeText(source.NodeText(sf, prop.Type))
	if elem, ok := strings.CutSuffix(typeText, "[]"); ok {
		result.Type = elem
		result.Confidence = ConfidenceMedium
	}
	return result
}

// analyzeMethodCall handles `name(...)`, returning the method's declared
// return type. Member access past the call (name().prop) cannot be
// resolved through the call boundary.
func analyzeMethodCall(expr string, sf *ast.SourceFile) ExpressionAnalysisResult {
	m := methodCallRe.FindStringSubmatch(expr)
	methodName, rest := m[1], m[3]

	result := ExpressionAnalysisResult{
		Type:           "unknown",
		Confidence:     ConfidenceLow,
		BaseExpression: methodName,
		IsComplex:      true,
	}

	if strings.HasPrefix(rest, ".") {
		return result
	}

	class := source.FirstClass(sf)
	if class == nil {
		return result
	}
	method := source.ClassMethod(class, methodName)
	if method == nil || method.Type == nil {
		return result
	}

	result.Type = NormalizeTypeText(source.NodeText(sf, method.Type))
	result.Confidence = ConfidenceMedium
	return result
}

// literalTypeOf detects string/number/boolean/null/undefined literals.
// Returns "" when the text is not a literal.
func literalTypeOf(text string) string {
	switch {
	case stringLiteralRe.MatchString(text):
		return "string"
	case numberLiteralRe.MatchString(text):
		return "number"
	case text == "true" || text == "false":
		return "boolean"
	case text == "null":
		return "null"
	case text == "undefined":
		return "undefined"
	default:
		return ""
	}
}
