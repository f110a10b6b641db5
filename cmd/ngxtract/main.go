package main

import (
	"fmt"
	"os"
	"strings"
)

const version = "0.0.1-dev"

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		// No subcommand — default to analyze
		return runAnalyze(os.Args[1:])
	}

	switch os.Args[1] {
	case "analyze":
		return runAnalyze(os.Args[2:])
	case "clean":
		return runClean(os.Args[2:])
	case "--version", "-v":
		fmt.Println("ngxtract", version)
		return 0
	case "--help", "-h":
		printUsage()
		return 0
	default:
		// Check if first arg starts with - (it's a flag, not a subcommand)
		if strings.HasPrefix(os.Args[1], "-") {
			return runAnalyze(os.Args[1:])
		}
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Println("ngxtract - typed input/output inference for extracted Angular components")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  ngxtract [flags]              Analyze a template (default)")
	fmt.Println("  ngxtract analyze [flags]      Analyze a template")
	fmt.Println("  ngxtract clean                Remove scratch probe files and cached results")
	fmt.Println()
	fmt.Println("Global Flags:")
	fmt.Println("  --version, -v          Print version and exit")
	fmt.Println("  --help, -h             Print this help message")
	fmt.Println()
	fmt.Println("Analyze Flags:")
	fmt.Println("  --template, -t <arg>   Template file path or literal markup (required)")
	fmt.Println("  --component, -c <path> Parent component .ts file (required)")
	fmt.Println("  --config <path>        Path to ngxtract.json")
	fmt.Println("  --timeout <ms>         External engine query timeout (overrides config)")
	fmt.Println("  --static-only          Skip the external engine even when configured")
	fmt.Println("  --json                 Print the full result as JSON")
	fmt.Println("  --no-cache             Skip the on-disk result cache")
	fmt.Println("  --watch                Re-run when the template or component file changes")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ngxtract -t user-card.html -c src/app/user.component.ts")
	fmt.Println("  ngxtract analyze -t '<span [name]=\"user.name\"></span>' -c user.component.ts --json")
	fmt.Println("  ngxtract analyze -t card.html -c user.component.ts --config ngxtract.json")
	fmt.Println()
}
