package inference

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ngxtract/ngxtract/internal/diagnostic"
	"github.com/ngxtract/ngxtract/internal/source"
)

// fakeEngine returns canned results and records whether it was invoked.
type fakeEngine struct {
	name      string
	results   map[string]InferredType
	err       error
	available bool
	calls     int
}

func (f *fakeEngine) Name() string { return f.name }

func (f *fakeEngine) Available() bool { return f.available }

func (f *fakeEngine) InferTypes(ctx context.Context, in *Context) (map[string]InferredType, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]InferredType, len(f.results))
	for k, v := range f.results {
		out[k] = v
	}
	return out, nil
}

const orchestratorTemplate = `<div [name]="user.name" [age]="user.age" (save)="handleSave($event)" [(query)]="query"></div>`

const orchestratorComponentSource = `import { SaveEvent } from './events';

export class SearchComponent {
  user: LocalUser;
  query: string;

  handleSave(event: SaveEvent): void {}
}

class LocalUser {
  name: string;
  age: number;
}
`

func newTestOrchestrator(t *testing.T, external Engine) (*Orchestrator, *diagnostic.Collector) {
	t.Helper()
	loader, err := source.NewLoader(source.NewMemoryFS(map[string]string{
		"/app/search.component.ts": orchestratorComponentSource,
	}), source.DefaultCacheSize)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	diags := diagnostic.NewCollector(false, false)
	return NewOrchestrator(NewStaticEngine(loader), external, loader, diags), diags
}

func enrich(t *testing.T, o *Orchestrator) *Result {
	t.Helper()
	return o.EnrichPropertiesWithTypes(context.Background(), orchestratorTemplate,
		[]string{"name", "age"}, []string{"save"}, []string{"query"}, "/app/search.component.ts")
}

func signalByName(t *testing.T, signals []Signal, name string) Signal {
	t.Helper()
	for _, s := range signals {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("signal %q not found in %v", name, signals)
	return Signal{}
}

func TestOrchestratorStaticOnly(t *testing.T) {
	o, _ := newTestOrchestrator(t, nil)
	result := enrich(t, o)

	if got := signalByName(t, result.Inputs, "name"); got.InferredType != "string" {
		t.Errorf("name: got %q, want string", got.InferredType)
	}
	if got := signalByName(t, result.Inputs, "age"); got.InferredType != "number" {
		t.Errorf("age: got %q, want number", got.InferredType)
	}
	if got := signalByName(t, result.Outputs, "save"); got.InferredType != "SaveEvent" {
		t.Errorf("save: got %q, want SaveEvent", got.InferredType)
	}
	if got := signalByName(t, result.Models, "query"); got.InferredType != "string" {
		t.Errorf("query: got %q, want string", got.InferredType)
	}
}

func TestOrchestratorRequiredFlags(t *testing.T) {
	o, _ := newTestOrchestrator(t, nil)
	result := enrich(t, o)

	if !signalByName(t, result.Inputs, "name").Required {
		t.Error("bound input must be required")
	}
	if !signalByName(t, result.Models, "query").Required {
		t.Error("bound model must be required")
	}
	if signalByName(t, result.Outputs, "save").Required {
		t.Error("outputs stay optional")
	}
}

func TestOrchestratorUnavailableExternalEqualsStatic(t *testing.T) {
	external := &fakeEngine{
		name:      "external",
		available: false,
		results: map[string]InferredType{
			"name": {PropertyName: "name", Type: "Wrong", IsInferred: true, Confidence: ConfidenceHigh},
		},
	}
	withExternal, _ := newTestOrchestrator(t, external)
	staticOnly, _ := newTestOrchestrator(t, nil)

	got := enrich(t, withExternal)
	want := enrich(t, staticOnly)

	if external.calls != 0 {
		t.Fatal("unavailable external engine must not be invoked")
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unavailable external must be equivalent to static only:\n%+v\n%+v", got, want)
	}
}

func TestOrchestratorExternalErrorFallsBack(t *testing.T) {
	external := &fakeEngine{name: "external", available: true, err: errors.New("host went away")}
	o, diags := newTestOrchestrator(t, external)

	result := enrich(t, o)

	if external.calls != 1 {
		t.Fatal("expected one external attempt")
	}
	if got := signalByName(t, result.Inputs, "name"); got.InferredType != "string" {
		t.Errorf("expected static result after external failure, got %q", got.InferredType)
	}
	found := false
	for _, d := range diags.Diagnostics() {
		if d.Category == diagnostic.CategoryProtocolFailure {
			found = true
		}
	}
	if !found {
		t.Error("expected a protocol-failure diagnostic")
	}
}

func TestOrchestratorHighConfidenceExternalWinsWholesale(t *testing.T) {
	external := &fakeEngine{
		name:      "external",
		available: true,
		results: map[string]InferredType{
			"name":  {PropertyName: "name", Type: "FancyName", IsInferred: true, Confidence: ConfidenceHigh},
			"age":   {PropertyName: "age", Type: "Years", IsInferred: true, Confidence: ConfidenceHigh},
			"save":  {PropertyName: "save", Type: "SaveEvent", IsInferred: true, Confidence: ConfidenceHigh},
			"query": {PropertyName: "query", Type: "Query", IsInferred: true, Confidence: ConfidenceHigh},
		},
	}
	o, _ := newTestOrchestrator(t, external)
	result := enrich(t, o)

	if got := signalByName(t, result.Inputs, "name"); got.InferredType != "FancyName" {
		t.Errorf("name: got %q, want the external result", got.InferredType)
	}
	if got := signalByName(t, result.Models, "query"); got.InferredType != "Query" {
		t.Errorf("query: got %q, want the external result", got.InferredType)
	}
}

func TestOrchestratorStaticRunsOnlyWhenNeeded(t *testing.T) {
	loader, err := source.NewLoader(source.NewMemoryFS(map[string]string{
		"/app/search.component.ts": orchestratorComponentSource,
	}), source.DefaultCacheSize)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}

	allHigh := map[string]InferredType{
		"name":  {PropertyName: "name", Type: "FancyName", IsInferred: true, Confidence: ConfidenceHigh},
		"age":   {PropertyName: "age", Type: "Years", IsInferred: true, Confidence: ConfidenceHigh},
		"save":  {PropertyName: "save", Type: "SaveEvent", IsInferred: true, Confidence: ConfidenceHigh},
		"query": {PropertyName: "query", Type: "Query", IsInferred: true, Confidence: ConfidenceHigh},
	}

	t.Run("wholesale adoption skips the static walk", func(t *testing.T) {
		static := &fakeEngine{name: "static"}
		external := &fakeEngine{name: "external", available: true, results: allHigh}
		o := NewOrchestrator(static, external, loader, diagnostic.NewCollector(false, false))
		enrich(t, o)

		if external.calls != 1 {
			t.Fatalf("external engine calls = %d, want 1", external.calls)
		}
		if static.calls != 0 {
			t.Fatalf("static engine calls = %d, want 0 when external results are trusted wholesale", static.calls)
		}
	})

	t.Run("partial external results pull the static engine in", func(t *testing.T) {
		static := &fakeEngine{name: "static", results: map[string]InferredType{
			"age": {PropertyName: "age", Type: "number", IsInferred: true, Confidence: ConfidenceHigh},
		}}
		external := &fakeEngine{name: "external", available: true, results: map[string]InferredType{
			"name":  {PropertyName: "name", Type: "FancyName", IsInferred: true, Confidence: ConfidenceHigh},
			"age":   {PropertyName: "age", Type: "unknown", Confidence: ConfidenceLow},
			"save":  {PropertyName: "save", Type: "unknown", Confidence: ConfidenceLow},
			"query": {PropertyName: "query", Type: "unknown", Confidence: ConfidenceLow},
		}}
		o := NewOrchestrator(static, external, loader, diagnostic.NewCollector(false, false))
		result := enrich(t, o)

		if static.calls != 1 {
			t.Fatalf("static engine calls = %d, want 1 on the merge path", static.calls)
		}
		if got := signalByName(t, result.Inputs, "age"); got.InferredType != "number" {
			t.Errorf("age: static must survive an unknown external, got %q", got.InferredType)
		}
	})

	t.Run("external failure pulls the static engine in", func(t *testing.T) {
		static := &fakeEngine{name: "static"}
		external := &fakeEngine{name: "external", available: true, err: errors.New("host went away")}
		o := NewOrchestrator(static, external, loader, diagnostic.NewCollector(false, false))
		enrich(t, o)

		if static.calls != 1 {
			t.Fatalf("static engine calls = %d, want 1 after an external failure", static.calls)
		}
	})
}

func TestOrchestratorPerPropertyMerge(t *testing.T) {
	// Half the external results are unknown, so the wholesale rule does
	// not apply and merging happens per property.
	external := &fakeEngine{
		name:      "external",
		available: true,
		results: map[string]InferredType{
			"name":  {PropertyName: "name", Type: "FancyName", IsInferred: true, Confidence: ConfidenceHigh},
			"age":   {PropertyName: "age", Type: "unknown", Confidence: ConfidenceLow},
			"save":  {PropertyName: "save", Type: "unknown", Confidence: ConfidenceLow},
			"query": {PropertyName: "query", Type: "Query", IsInferred: true, Confidence: ConfidenceMedium},
		},
	}
	o, _ := newTestOrchestrator(t, external)
	result := enrich(t, o)

	if got := signalByName(t, result.Inputs, "name"); got.InferredType != "FancyName" {
		t.Errorf("name: high-confidence external must win, got %q", got.InferredType)
	}
	if got := signalByName(t, result.Inputs, "age"); got.InferredType != "number" {
		t.Errorf("age: static must survive an unknown external, got %q", got.InferredType)
	}
	if got := signalByName(t, result.Models, "query"); got.InferredType != "string" {
		t.Errorf("query: medium external must not displace static, got %q", got.InferredType)
	}
}

func TestOrchestratorReportAndImports(t *testing.T) {
	o, _ := newTestOrchestrator(t, nil)
	result := enrich(t, o)

	for _, want := range []string{"✓ name: string [HIGH]", "✓ save: SaveEvent [HIGH]"} {
		if !strings.Contains(result.Report, want) {
			t.Errorf("report missing %q:\n%s", want, result.Report)
		}
	}

	if len(result.Imports) != 1 {
		t.Fatalf("expected one import, got %v", result.Imports)
	}
	if result.Imports[0].TypeName != "SaveEvent" || result.Imports[0].ModulePath != "./events" {
		t.Fatalf("unexpected import: %+v", result.Imports[0])
	}
}

func TestOrchestratorUnrequestedNamesDefaultUnknown(t *testing.T) {
	o, _ := newTestOrchestrator(t, nil)
	result := o.EnrichPropertiesWithTypes(context.Background(), orchestratorTemplate,
		[]string{"name", "ghost"}, nil, nil, "/app/search.component.ts")

	ghost := signalByName(t, result.Inputs, "ghost")
	if ghost.InferredType != "unknown" {
		t.Fatalf("ghost: got %q, want unknown", ghost.InferredType)
	}
	if ghost.Required {
		t.Fatal("a name absent from the template is not required")
	}
}
