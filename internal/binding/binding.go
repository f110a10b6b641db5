// Package binding extracts data bindings from Angular template fragments.
// It deliberately avoids a full template parser: three regex passes over
// the raw markup cover the property, event, and two-way binding syntaxes,
// which is all the extraction flow needs.
package binding

import "regexp"

// Type classifies a binding occurrence.
type Type int

const (
	// TypeInput is a property binding: [name]="expr".
	TypeInput Type = iota
	// TypeOutput is an event binding: (name)="expr".
	TypeOutput
	// TypeModel is a two-way binding: [(name)]="expr".
	TypeModel
)

func (t Type) String() string {
	switch t {
	case TypeInput:
		return "input"
	case TypeOutput:
		return "output"
	case TypeModel:
		return "model"
	default:
		return "unknown"
	}
}

// Info is one binding occurrence found in a template.
type Info struct {
	// PropertyName is the bound name (e.g., "userName", "class.active", "attr.aria-label").
	PropertyName string
	// Expression is the host-component expression text bound to the name.
	Expression string
	// Type is the binding classification.
	Type Type
}

// Binding name charset: letters, digits, dots, underscores, hyphens.
// Dots cover class./style./attr. prefixes; hyphens cover attr.aria-label.
var (
	modelRe    = regexp.MustCompile(`\[\(([A-Za-z_][A-Za-z0-9_.-]*)\)\]="([^"]*)"`)
	propertyRe = regexp.MustCompile(`\[([A-Za-z_][A-Za-z0-9_.-]*)\]="([^"]*)"`)
	eventRe    = regexp.MustCompile(`\(([A-Za-z_][A-Za-z0-9_.-]*)\)="([^"]*)"`)
)

// defaultBannedEvents are framework-reserved event names that must never be
// treated as custom outputs of an extracted component.
var defaultBannedEvents = map[string]bool{
	"ngModelChange": true,
	"ngSubmit":      true,
}

// ParseTemplate extracts all bindings from raw template text, in document
// order per binding type. Two-way bindings are found first; a name
// classified as a model is excluded from the input and output sets.
//
// Expressions containing unescaped nested quotes are unsupported input;
// the regexes stop at the first closing quote.
func ParseTemplate(template string) []Info {
	return ParseTemplateWithBanned(template, nil)
}

// ParseTemplateWithBanned is ParseTemplate with additional banned event
// names (merged with the framework-reserved defaults).
func ParseTemplateWithBanned(template string, extraBanned []string) []Info {
	banned := defaultBannedEvents
	if len(extraBanned) > 0 {
		banned = make(map[string]bool, len(defaultBannedEvents)+len(extraBanned))
		for name := range defaultBannedEvents {
			banned[name] = true
		}
		for _, name := range extraBanned {
			banned[name] = true
		}
	}

	var bindings []Info
	modelNames := make(map[string]bool)
	seenInputs := make(map[string]bool)
	seenOutputs := make(map[string]bool)

	// Pass 1: two-way bindings. These claim their names before the
	// property and event passes run.
	for _, m := range modelRe.FindAllStringSubmatch(template, -1) {
		name, expr := m[1], m[2]
		if modelNames[name] {
			continue
		}
		modelNames[name] = true
		bindings = append(bindings, Info{PropertyName: name, Expression: expr, Type: TypeModel})
	}

	// Pass 2: property bindings.
	for _, m := range propertyRe.FindAllStringSubmatch(template, -1) {
		name, expr := m[1], m[2]
		if modelNames[name] || seenInputs[name] {
			continue
		}
		seenInputs[name] = true
		bindings = append(bindings, Info{PropertyName: name, Expression: expr, Type: TypeInput})
	}

	// Pass 3: event bindings.
	for _, m := range eventRe.FindAllStringSubmatch(template, -1) {
		name, expr := m[1], m[2]
		if modelNames[name] || seenOutputs[name] || banned[name] {
			continue
		}
		seenOutputs[name] = true
		bindings = append(bindings, Info{PropertyName: name, Expression: expr, Type: TypeOutput})
	}

	return bindings
}

// CreateBindingMap collapses a binding list to propertyName → expression.
// If two bindings share a property name, later entries overwrite earlier
// ones (acceptable collision, not an error).
func CreateBindingMap(bindings []Info) map[string]string {
	result := make(map[string]string, len(bindings))
	for _, b := range bindings {
		result[b.PropertyName] = b.Expression
	}
	return result
}

// Classify splits a binding list into input, output, and model name lists,
// preserving document order within each list.
func Classify(bindings []Info) (inputs, outputs, models []string) {
	for _, b := range bindings {
		switch b.Type {
		case TypeInput:
			inputs = append(inputs, b.PropertyName)
		case TypeOutput:
			outputs = append(outputs, b.PropertyName)
		case TypeModel:
			models = append(models, b.PropertyName)
		}
	}
	return inputs, outputs, models
}
