package extengine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ngxtract/ngxtract/internal/diagnostic"
	"github.com/ngxtract/ngxtract/internal/inference"
	"github.com/ngxtract/ngxtract/internal/scratch"
	"github.com/ngxtract/ngxtract/internal/source"
)

// Timeout bounds for a single hover round-trip. Configured values are
// clamped into this range.
const (
	MinTimeout     = 1 * time.Second
	MaxTimeout     = 10 * time.Second
	DefaultTimeout = 5 * time.Second
)

// ClampTimeout forces d into the supported range; a zero or negative
// value picks the default.
func ClampTimeout(d time.Duration) time.Duration {
	switch {
	case d <= 0:
		return DefaultTimeout
	case d < MinTimeout:
		return MinTimeout
	case d > MaxTimeout:
		return MaxTimeout
	default:
		return d
	}
}

// Engine answers type queries through an external tooling host. For
// each run it writes one probe file combining the parent source and
// the extracted template, asks for hover information at each binding
// expression, then removes the probe.
type Engine struct {
	host    Host
	loader  *source.Loader
	scratch *scratch.Manager
	timeout time.Duration
	diags   *diagnostic.Collector
}

func NewEngine(host Host, loader *source.Loader, sm *scratch.Manager, timeout time.Duration, diags *diagnostic.Collector) *Engine {
	return &Engine{
		host:    host,
		loader:  loader,
		scratch: sm,
		timeout: ClampTimeout(timeout),
		diags:   diags,
	}
}

func (e *Engine) Name() string { return "external" }

// Available reports whether the host process can currently be queried.
func (e *Engine) Available() bool {
	return e.host != nil && e.host.Available()
}

// InferTypes queries the host once per binding, sequentially. Bindings
// the host cannot resolve come back unknown; only a failure to set up
// the probe file fails the whole run.
func (e *Engine) InferTypes(ctx context.Context, in *inference.Context) (map[string]inference.InferredType, error) {
	sf, err := e.loader.Load(in.ParentTSFilePath)
	if err != nil {
		return nil, fmt.Errorf("load parent source: %w", err)
	}
	class := source.FirstClass(sf)
	if class == nil {
		return nil, fmt.Errorf("no class declaration in %s", in.ParentTSFilePath)
	}
	className := source.ClassName(class)
	if className == "" {
		return nil, fmt.Errorf("unnamed class in %s", in.ParentTSFilePath)
	}

	probe := SynthesizeProbe(sf.Text(), className, in.TemplateText)
	probePath, err := e.scratch.Create(probe)
	if err != nil {
		return nil, fmt.Errorf("create probe: %w", err)
	}
	// A probe that cannot be deleted must not fail the inference run,
	// but the leftover file should not go unnoticed either.
	defer func() {
		if err := e.scratch.Remove(probePath); err != nil {
			e.diags.Warn(diagnostic.CategoryCleanupFailure, probePath, 0, err.Error())
		}
	}()

	// Expressions are searched only inside the appended probe template,
	// not in the parent source above it.
	templateOffset := strings.LastIndex(probe, in.TemplateText)
	if templateOffset < 0 {
		templateOffset = 0
	}

	results := make(map[string]inference.InferredType, len(in.TemplateBindings))
	for name, expr := range in.TemplateBindings {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("external inference interrupted: %w", err)
		}
		results[name] = e.queryBinding(ctx, probePath, probe, name, expr, templateOffset)
	}
	return results, nil
}

func (e *Engine) queryBinding(ctx context.Context, probePath, probe, name, expr string, offset int) inference.InferredType {
	line, character := FindExpressionPosition(probe, expr, offset)

	hoverCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	payloads, err := e.host.RequestTypeAtPosition(hoverCtx, probePath, line, character)
	if err != nil {
		return inference.Unknown(name)
	}

	payload, ok := SelectPayload(payloads)
	if !ok {
		return inference.Unknown(name)
	}
	typeText := ParseSignatureType(ExtractCodeBlock(payload))
	if typeText == "" {
		return inference.Unknown(name)
	}

	return inference.InferredType{
		PropertyName: name,
		Type:         inference.NormalizeTypeText(typeText),
		IsInferred:   true,
		Confidence:   inference.ConfidenceHigh,
	}
}
