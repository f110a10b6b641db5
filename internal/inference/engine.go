package inference

import "context"

// Engine is the shared contract of the interchangeable type-inference
// strategies (static AST engine, external language-service engine). An
// engine returns exactly one InferredType per requested binding; per-
// binding failures degrade to Unknown entries rather than errors. The
// error return is reserved for whole-engine failure, which the
// orchestrator treats as "fall back to another strategy".
type Engine interface {
	Name() string
	InferTypes(ctx context.Context, in *Context) (map[string]InferredType, error)
}

// AvailabilityChecker is implemented by engines whose backing service may
// be absent (the external engine probes its host). Engines that do not
// implement it are always considered available.
type AvailabilityChecker interface {
	Available() bool
}
