package inference

import (
	"context"
	"fmt"
	"strings"

	"github.com/microsoft/typescript-go/shim/ast"

	"github.com/ngxtract/ngxtract/internal/source"
)

// StaticEngine infers types by walking the parent component's syntax
// tree. It never type-checks: property annotations, constructor
// parameter annotations and method signatures are read textually, and
// anything that cannot be resolved that way falls through to the
// heuristic table.
type StaticEngine struct {
	loader *source.Loader
}

func NewStaticEngine(loader *source.Loader) *StaticEngine {
	return &StaticEngine{loader: loader}
}

func (e *StaticEngine) Name() string { return "static" }

// InferTypes resolves every binding in the context against the parent
// source file. A missing or unparsable parent file degrades the whole
// run to unknown results rather than failing it; a panic while
// resolving one binding only costs that binding.
func (e *StaticEngine) InferTypes(ctx context.Context, in *Context) (map[string]InferredType, error) {
	results := make(map[string]InferredType, len(in.TemplateBindings))

	sf, err := e.loader.Load(in.ParentTSFilePath)
	if err != nil {
		for name := range in.TemplateBindings {
			results[name] = Unknown(name)
		}
		return results, nil
	}

	for name, expr := range in.TemplateBindings {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("static inference interrupted: %w", err)
		}
		results[name] = e.inferBinding(sf, name, expr)
	}
	return results, nil
}

func (e *StaticEngine) inferBinding(sf *ast.SourceFile, name, expr string) (result InferredType) {
	defer func() {
		if r := recover(); r != nil {
			result = Unknown(name)
		}
	}()

	if strings.Contains(expr, "(") {
		return e.inferOutput(sf, name, expr)
	}
	return e.inferInput(sf, name, expr)
}

// inferOutput resolves an event handler expression to the type of the
// handler's first parameter. Handlers are looked up by the leading
// identifier of the expression, so `onSave($event)` and `onSave()`
// both resolve the method onSave.
func (e *StaticEngine) inferOutput(sf *ast.SourceFile, name, expr string) InferredType {
	methodName := leadingIdentifier(expr)
	if methodName == "" {
		return Unknown(name)
	}

	class := source.FirstClass(sf)
	if class == nil {
		return Unknown(name)
	}
	method := source.ClassMethod(class, methodName)
	if method == nil {
		return Unknown(name)
	}

	params := method.Parameters.Nodes
	if len(params) == 0 {
		// A zero-argument handler means the event carries no payload.
		return InferredType{PropertyName: name, Type: "void", IsInferred: true, Confidence: ConfidenceHigh}
	}

	param := params[0].AsParameterDeclaration()
	if param.Type == nil {
		return Unknown(name)
	}
	typeText := NormalizeTypeText(source.NodeText(sf, param.Type))
	return InferredType{PropertyName: name, Type: typeText, IsInferred: true, Confidence: ConfidenceHigh}
}

// inferInput resolves a property-path expression. Declared class
// properties carry high confidence, constructor parameter properties
// medium. Chains (user.address.city) walk same-file type declarations;
// anything that falls off the chain goes to the heuristic table.
func (e *StaticEngine) inferInput(sf *ast.SourceFile, name, expr string) InferredType {
	if IsComplexExpression(expr) {
		analysis := AnalyzeExpression(expr, sf)
		if analysis.Type != "unknown" {
			return InferredType{PropertyName: name, Type: analysis.Type, IsInferred: true, Confidence: analysis.Confidence}
		}
		return InferFromExpression(expr, name)
	}

	segments := strings.Split(strings.TrimSpace(expr), ".")
	rootName := segments[0]

	class := source.FirstClass(sf)
	if class == nil {
		return InferFromExpression(expr, name)
	}

	var (
		rootType   *ast.Node
		confidence Confidence
	)
	if prop := source.ClassProperty(class, rootName); prop != nil && prop.Type != nil {
		rootType = prop.Type
		confidence = ConfidenceHigh
	} else if param := source.ConstructorParam(class, rootName); param != nil && param.Type != nil {
		rootType = param.Type
		confidence = ConfidenceMedium
	} else {
		return InferFromExpression(expr, name)
	}

	if len(segments) == 1 {
		typeText := NormalizeTypeText(source.NodeText(sf, rootType))
		return InferredType{PropertyName: name, Type: typeText, IsInferred: true, Confidence: confidence}
	}

	resolved, ok := source.ResolveMemberChain(sf, rootType, segments[1:])
	if !ok {
		return InferFromExpression(expr, name)
	}
	return InferredType{PropertyName: name, Type: NormalizeTypeText(resolved), IsInferred: true, Confidence: confidence}
}

// leadingIdentifier extracts the identifier that starts an expression,
// stopping at the first non-identifier character.
func leadingIdentifier(expr string) string {
	expr = strings.TrimSpace(expr)
	for i, r := range expr {
		isIdent := r == '_' || r == '$' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(i > 0 && r >= '0' && r <= '9')
		if !isIdent {
			return expr[:i]
		}
	}
	return expr
}
