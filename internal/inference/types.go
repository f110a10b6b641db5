// Package inference resolves TypeScript types for template binding
// expressions. It hosts the shared result types, the engine contract, the
// static AST engine with its expression analyzer and naming-convention
// fallback, and the orchestrator that merges engine results.
package inference

import "strings"

// Confidence is the trust label attached to every inferred type,
// reflecting how directly it was derived from a declared type versus
// guessed.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Label returns the confidence in report form (e.g., "HIGH").
func (c Confidence) Label() string {
	return strings.ToUpper(string(c))
}

// InferredType is the canonical inference result for one binding.
// Invariant: IsInferred=false implies Type="unknown" and Confidence=low.
// The converse does not hold — a heuristic guess is inferred but may
// still be low confidence.
type InferredType struct {
	PropertyName string     `json:"propertyName"`
	Type         string     `json:"type"`
	IsInferred   bool       `json:"isInferred"`
	Confidence   Confidence `json:"confidence"`
}

// Unknown returns the canonical not-inferred result for a property.
func Unknown(propertyName string) InferredType {
	return InferredType{
		PropertyName: propertyName,
		Type:         "unknown",
		IsInferred:   false,
		Confidence:   ConfidenceLow,
	}
}

// Context is the single input unit to every inference engine.
type Context struct {
	// ParentTSFilePath is the path of the component source the template
	// belongs to.
	ParentTSFilePath string
	// TemplateBindings maps property name → binding expression. Keys are
	// unique; the binding parser's map construction guarantees last write
	// wins on collision.
	TemplateBindings map[string]string
	// TemplateText is the raw template fragment. The static engine
	// ignores it; the external engine embeds it in the synthesized probe
	// component so the language service sees the expressions in context.
	TemplateText string
}

// ExpressionAnalysisResult is the transient product of the expression
// analyzer. BaseExpression records the resolvable sub-expression (e.g.
// the array name in items[0]) for callers that may continue resolution.
type ExpressionAnalysisResult struct {
	Type           string
	Confidence     Confidence
	BaseExpression string
	IsComplex      bool
}

// Signal is an enriched input/output/model descriptor in the final
// result shape.
type Signal struct {
	Name         string `json:"name"`
	Required     bool   `json:"isRequired,omitempty"`
	InferredType string `json:"inferredType"`
}

// Import describes an import statement the extracted component needs for
// an inferred custom type.
type Import struct {
	TypeName   string `json:"typeName"`
	ModulePath string `json:"modulePath"`
}

// Result is the aggregate output of one enrichment run. It is
// constructed once per EnrichPropertiesWithTypes call and handed to the
// scaffolding layer; no shared mutable state survives the call.
type Result struct {
	Inputs  []Signal `json:"inputs"`
	Outputs []Signal `json:"outputs"`
	Models  []Signal `json:"models"`
	Imports []Import `json:"imports"`
	Report  string   `json:"report,omitempty"`
}
