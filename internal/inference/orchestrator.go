package inference

import (
	"context"

	"github.com/ngxtract/ngxtract/internal/binding"
	"github.com/ngxtract/ngxtract/internal/diagnostic"
	"github.com/ngxtract/ngxtract/internal/source"
)

// High-confidence-overall thresholds. When an external engine's result
// set clears both, it is trusted wholesale instead of merged
// per-property.
const (
	maxUnknownFraction = 0.20
	minHighFraction    = 0.80
)

// Orchestrator coordinates the static engine and an optional external
// engine and shapes their merged output into the final result. The
// external engine may be nil; open failures in either engine degrade
// the run, never fail it.
type Orchestrator struct {
	static   Engine
	external Engine
	loader   *source.Loader
	diags    *diagnostic.Collector

	// ExtraBannedEvents supplements the parser's built-in banned event
	// list, typically from config.
	ExtraBannedEvents []string
}

func NewOrchestrator(static, external Engine, loader *source.Loader, diags *diagnostic.Collector) *Orchestrator {
	return &Orchestrator{static: static, external: external, loader: loader, diags: diags}
}

// EnrichPropertiesWithTypes resolves a type for every requested input,
// output and model name. It cannot fail: scaffolding must proceed even
// when inference cannot, so any internal panic degrades to untyped
// signals carrying the bare names.
func (o *Orchestrator) EnrichPropertiesWithTypes(ctx context.Context, template string, inputs, outputs, models []string, parentPath string) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			result = bareResult(inputs, outputs, models)
		}
	}()

	bindings := binding.CreateBindingMap(binding.ParseTemplateWithBanned(template, o.ExtraBannedEvents))
	in := &Context{
		ParentTSFilePath: parentPath,
		TemplateBindings: bindings,
		TemplateText:     template,
	}

	results := o.runEngines(ctx, in)

	order := make([]string, 0, len(inputs)+len(outputs)+len(models))
	order = append(order, inputs...)
	order = append(order, outputs...)
	order = append(order, models...)
	for _, name := range order {
		if _, ok := results[name]; !ok {
			results[name] = Unknown(name)
		}
	}

	if ShouldWarnUser(results) {
		o.diags.Warn(diagnostic.CategoryLowConfidence, parentPath, 0, GenerateWarningMessage(results))
	}

	result = &Result{
		Inputs:  shapeSignals(inputs, results, bindings),
		Outputs: shapeSignals(outputs, results, nil),
		Models:  shapeSignals(models, results, bindings),
		Report:  GenerateReport(order, results),
	}
	if sf, err := o.loader.Load(parentPath); err == nil {
		result.Imports = ResolveTypeImports(sf, results)
	}
	return result
}

// runEngines consults the external engine first when one is configured
// and available. An external result set that is high confidence overall
// is taken as-is; only a partial or failed external run pays for the
// static AST walk, either to merge with or to stand alone.
func (o *Orchestrator) runEngines(ctx context.Context, in *Context) map[string]InferredType {
	if o.external != nil {
		if checker, ok := o.external.(AvailabilityChecker); !ok || checker.Available() {
			external, err := o.external.InferTypes(ctx, in)
			switch {
			case err != nil:
				o.diags.Warn(diagnostic.CategoryProtocolFailure, in.ParentTSFilePath, 0, o.external.Name()+" engine failed: "+err.Error())
			case isHighConfidenceOverall(external):
				return external
			default:
				return mergeResults(o.runStatic(ctx, in), external)
			}
		}
	}
	return o.runStatic(ctx, in)
}

func (o *Orchestrator) runStatic(ctx context.Context, in *Context) map[string]InferredType {
	static, err := o.static.InferTypes(ctx, in)
	if err != nil {
		return map[string]InferredType{}
	}
	return static
}

// isHighConfidenceOverall holds when at most 20% of the results are
// unknown or any and at least 80% carry high confidence.
func isHighConfidenceOverall(results map[string]InferredType) bool {
	if len(results) == 0 {
		return false
	}
	var unknown, high int
	for _, r := range results {
		if isUnknownOrAny(r.Type) {
			unknown++
		}
		if r.Confidence == ConfidenceHigh {
			high++
		}
	}
	total := float64(len(results))
	return float64(unknown)/total <= maxUnknownFraction &&
		float64(high)/total >= minHighFraction
}

// mergeResults takes the external result for a property only when it is
// high confidence and carries a real type; everything else keeps the
// static result.
func mergeResults(static, external map[string]InferredType) map[string]InferredType {
	merged := make(map[string]InferredType, len(static))
	for name, s := range static {
		merged[name] = s
	}
	for name, e := range external {
		if e.Confidence == ConfidenceHigh && !isUnknownOrAny(e.Type) {
			merged[name] = e
		} else if _, ok := merged[name]; !ok {
			merged[name] = e
		}
	}
	return merged
}

func isUnknownOrAny(typeText string) bool {
	return typeText == "unknown" || typeText == "any"
}

// shapeSignals builds the signal list for one binding kind in request
// order. A signal is required when its name was actually bound in the
// template; outputs pass bindings=nil since handlers stay optional.
func shapeSignals(names []string, results map[string]InferredType, bindings map[string]string) []Signal {
	signals := make([]Signal, 0, len(names))
	for _, name := range names {
		r, ok := results[name]
		if !ok {
			r = Unknown(name)
		}
		_, bound := bindings[name]
		signals = append(signals, Signal{
			Name:         name,
			Required:     bound,
			InferredType: r.Type,
		})
	}
	return signals
}

func bareResult(inputs, outputs, models []string) *Result {
	return &Result{
		Inputs:  bareSignals(inputs),
		Outputs: bareSignals(outputs),
		Models:  bareSignals(models),
	}
}

func bareSignals(names []string) []Signal {
	signals := make([]Signal, 0, len(names))
	for _, name := range names {
		signals = append(signals, Signal{Name: name, InferredType: "unknown"})
	}
	return signals
}
