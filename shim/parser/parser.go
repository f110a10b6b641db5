// Package parser re-exports the typescript-go parser entry point used by
// ngxtract. See shim/ast for the shim arrangement.
package parser

import (
	"github.com/microsoft/typescript-go/internal/ast"
	"github.com/microsoft/typescript-go/internal/core"
	"github.com/microsoft/typescript-go/internal/parser"
)

// ParseSourceFile parses a single TypeScript source text into an AST
// without constructing a program.
func ParseSourceFile(opts ast.SourceFileParseOptions, sourceText string, scriptKind core.ScriptKind) *ast.SourceFile {
	return parser.ParseSourceFile(opts, sourceText, scriptKind)
}
