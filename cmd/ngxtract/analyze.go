package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/microsoft/typescript-go/shim/vfs/osvfs"
	"github.com/ngxtract/ngxtract/internal/binding"
	"github.com/ngxtract/ngxtract/internal/config"
	"github.com/ngxtract/ngxtract/internal/diagnostic"
	"github.com/ngxtract/ngxtract/internal/extengine"
	"github.com/ngxtract/ngxtract/internal/inference"
	"github.com/ngxtract/ngxtract/internal/resultcache"
	"github.com/ngxtract/ngxtract/internal/source"
	"github.com/ngxtract/ngxtract/internal/watcher"
)

// runAnalyze parses the template, classifies its bindings and runs the
// inference pipeline. Inference failure never fails the command:
// extraction tooling downstream must always receive a result.
func runAnalyze(args []string) int {
	analyzeFlags := flag.NewFlagSet("analyze", flag.ExitOnError)

	var (
		templateArg   string
		componentPath string
		configPath    string
		timeoutMs     int
		staticOnly    bool
		asJSON        bool
		noCache       bool
		watch         bool
	)

	analyzeFlags.StringVar(&templateArg, "template", "", "Template file path or literal markup")
	analyzeFlags.StringVar(&templateArg, "t", "", "Template file path or literal markup (shorthand for --template)")
	analyzeFlags.StringVar(&componentPath, "component", "", "Parent component .ts file")
	analyzeFlags.StringVar(&componentPath, "c", "", "Parent component .ts file (shorthand for --component)")
	analyzeFlags.StringVar(&configPath, "config", "", "Path to ngxtract config file (ngxtract.json)")
	analyzeFlags.IntVar(&timeoutMs, "timeout", 0, "External engine query timeout in ms (overrides config)")
	analyzeFlags.BoolVar(&staticOnly, "static-only", false, "Skip the external engine even when configured")
	analyzeFlags.BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	analyzeFlags.BoolVar(&noCache, "no-cache", false, "Skip the on-disk result cache")
	analyzeFlags.BoolVar(&watch, "watch", false, "Re-run when the template or component file changes")

	analyzeFlags.Usage = func() {
		fmt.Println("Usage: ngxtract analyze [flags]")
		fmt.Println()
		fmt.Println("Flags:")
		analyzeFlags.PrintDefaults()
	}

	analyzeFlags.Parse(args)

	if templateArg == "" {
		fmt.Fprintln(os.Stderr, "error: --template is required")
		return 1
	}
	if componentPath == "" {
		fmt.Fprintln(os.Stderr, "error: --component is required")
		return 1
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not get working directory: %v\n", err)
		return 1
	}

	cfg, err := loadConfig(cwd, configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if timeoutMs > 0 {
		cfg.External.TimeoutMs = timeoutMs
	}

	templatePath := ""
	if !filepath.IsAbs(componentPath) {
		componentPath = filepath.Join(cwd, componentPath)
	}
	if _, statErr := os.Stat(templateArg); statErr == nil {
		templatePath = templateArg
		if !filepath.IsAbs(templatePath) {
			templatePath = filepath.Join(cwd, templatePath)
		}
	}

	loader, err := source.NewLoader(osvfs.FS(), cfg.Cache.Size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	a := &analysis{
		cfg:           cfg,
		loader:        loader,
		templateArg:   templateArg,
		templatePath:  templatePath,
		componentPath: componentPath,
		staticOnly:    staticOnly,
		asJSON:        asJSON,
		useCache:      !noCache && !watch,
	}

	if code := a.run(); code != 0 || !watch {
		return code
	}

	// Watch mode: rerun on every change to the watched files. The parse
	// cache entry for the component is dropped first so the engines see
	// the fresh source.
	watched := []string{componentPath}
	if templatePath != "" {
		watched = append(watched, templatePath)
	}
	fmt.Fprintf(os.Stderr, "watching %s\n", strings.Join(watched, ", "))

	w := watcher.New(watched, 200*time.Millisecond, func(events []watcher.Event) {
		loader.Invalidate(componentPath)
		a.run()
	})
	if err := w.Watch(); err != nil {
		fmt.Fprintf(os.Stderr, "error: watch: %v\n", err)
		return 1
	}
	return 0
}

// analysis bundles one analyze invocation's inputs so watch mode can
// repeat it.
type analysis struct {
	cfg           *config.Config
	loader        *source.Loader
	templateArg   string
	templatePath  string
	componentPath string
	staticOnly    bool
	asJSON        bool
	useCache      bool
}

func (a *analysis) run() int {
	return a.runWith(diagnostic.NewCollector(false, false))
}

func (a *analysis) runWith(diags *diagnostic.Collector) int {
	template, err := a.resolveTemplate()
	if err != nil {
		diags.Error(diagnostic.CategoryTemplateInvalid, a.templateArg, 0, err.Error())
		fmt.Fprintln(os.Stderr, diags.FormatAll())
		return 1
	}

	var templateHash, componentHash, configHash, cachePath string
	if a.useCache {
		cfgBytes, err := json.Marshal(a.cfg)
		if err == nil {
			templateHash = resultcache.HashBytes([]byte(template))
			componentHash = resultcache.HashFile(a.componentPath)
			configHash = resultcache.HashBytes(cfgBytes)
			cachePath = resultcache.CachePath(resultcache.DefaultDir(), a.componentPath)

			entry := resultcache.Load(cachePath)
			if entry.IsValid(templateHash, componentHash, configHash) {
				fmt.Fprintln(os.Stderr, "inputs unchanged, reusing cached analysis")
				return a.printCached(entry.Result)
			}
		}
	}

	static := inference.NewStaticEngine(a.loader)

	// There is no live editor host in CLI mode, so external inference is
	// unavailable no matter what the config asks for.
	var external inference.Engine
	if a.cfg.External.Enabled && !a.staticOnly {
		timeout := extengine.ClampTimeout(time.Duration(a.cfg.External.TimeoutMs) * time.Millisecond)
		fmt.Fprintf(os.Stderr, "external engine configured (timeout %s) but no editor host is attached; running static analysis\n", timeout)
	}

	orch := inference.NewOrchestrator(static, external, a.loader, diags)
	orch.ExtraBannedEvents = a.cfg.Parser.BannedEvents

	infos := binding.ParseTemplateWithBanned(template, a.cfg.Parser.BannedEvents)
	inputs, outputs, models := binding.Classify(infos)

	result := orch.EnrichPropertiesWithTypes(context.Background(), template, inputs, outputs, models, a.componentPath)

	a.printResult(result)

	if formatted := diags.FormatAll(); formatted != "" {
		fmt.Fprintln(os.Stderr, formatted)
	}
	if summary := diags.Summary(); summary != "" {
		fmt.Fprintln(os.Stderr, summary)
	}

	if a.useCache && cachePath != "" {
		if encoded, err := json.Marshal(result); err == nil {
			entry := resultcache.New(templateHash, componentHash, configHash, encoded)
			if err := resultcache.Save(cachePath, entry); err != nil {
				fmt.Fprintf(os.Stderr, "warning: save result cache: %v\n", err)
			}
		}
	}

	// Inference is advisory; even an all-unknown run exits clean.
	return 0
}

func (a *analysis) printResult(result *inference.Result) {
	if a.asJSON {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: encode result: %v\n", err)
			return
		}
		fmt.Println(string(encoded))
		return
	}
	if result.Report != "" {
		fmt.Print(result.Report)
	} else {
		fmt.Println("no bindings found")
	}
}

func (a *analysis) printCached(raw json.RawMessage) int {
	var result inference.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		// A result that no longer decodes is treated as garbage, not an
		// analysis failure.
		fmt.Fprintf(os.Stderr, "warning: corrupt cache entry: %v\n", err)
		a.useCache = false
		return a.run()
	}
	a.printResult(&result)
	return 0
}

// resolveTemplate reads the template file when one was given, otherwise
// treats the argument as literal markup.
func (a *analysis) resolveTemplate() (string, error) {
	if a.templatePath != "" {
		data, err := os.ReadFile(a.templatePath)
		if err != nil {
			return "", fmt.Errorf("read template file %q: %w", a.templatePath, err)
		}
		return string(data), nil
	}
	if strings.ContainsAny(a.templateArg, "<[(") {
		return a.templateArg, nil
	}
	return "", fmt.Errorf("template %q is neither an existing file nor markup", a.templateArg)
}

// loadConfig loads an explicit config path, falls back to ngxtract.json
// in the working directory, and finally to defaults.
func loadConfig(cwd, configPath string) (*config.Config, error) {
	if configPath != "" {
		if !filepath.IsAbs(configPath) {
			configPath = filepath.Join(cwd, configPath)
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "loaded config from %s\n", filepath.Base(configPath))
		return cfg, nil
	}

	defaultPath := filepath.Join(cwd, "ngxtract.json")
	if _, err := os.Stat(defaultPath); err == nil {
		cfg, err := config.Load(defaultPath)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "loaded config from %s\n", filepath.Base(defaultPath))
		return cfg, nil
	}

	cfg := config.DefaultConfig()
	return &cfg, nil
}
