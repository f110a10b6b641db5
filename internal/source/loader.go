// Package source loads and caches parsed TypeScript source files and
// provides lexical lookup over class declarations. It parses single files
// through the typescript-go parser without constructing a program: all
// downstream inference is declared-annotation based, so no binder or
// checker is involved.
package source

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/microsoft/typescript-go/shim/ast"
	"github.com/microsoft/typescript-go/shim/core"
	"github.com/microsoft/typescript-go/shim/parser"
	"github.com/microsoft/typescript-go/shim/tspath"
	"github.com/microsoft/typescript-go/shim/vfs"
	"github.com/microsoft/typescript-go/shim/vfs/osvfs"
)

// DefaultCacheSize is the default number of parsed files kept in memory.
const DefaultCacheSize = 128

// ErrFileNotFound is returned when a requested source file does not exist
// in the loader's filesystem (real or in-memory overlay).
var ErrFileNotFound = errors.New("source file not found")

// Loader parses TypeScript files and caches the results keyed by
// normalized path. Entries are never invalidated automatically: a caller
// that needs freshness after an on-disk change must call Invalidate or
// Purge. That is the intended trade-off for a tool that reparses on each
// discrete user-triggered action.
type Loader struct {
	fs    vfs.FS
	cache *lru.Cache[string, *ast.SourceFile]
}

// NewLoader creates a Loader over the given filesystem. A nil fs means
// the host OS filesystem. cacheSize <= 0 selects DefaultCacheSize.
func NewLoader(fsys vfs.FS, cacheSize int) (*Loader, error) {
	if fsys == nil {
		fsys = osvfs.FS()
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, *ast.SourceFile](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating parse cache: %w", err)
	}
	return &Loader{fs: fsys, cache: cache}, nil
}

// Load returns the parsed source file at path, from cache when available.
func (l *Loader) Load(path string) (*ast.SourceFile, error) {
	norm := tspath.NormalizePath(path)

	if sf, ok := l.cache.Get(norm); ok {
		return sf, nil
	}

	if !l.fs.FileExists(norm) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	text, ok := l.fs.ReadFile(norm)
	if !ok {
		return nil, fmt.Errorf("reading %s: %w", path, ErrFileNotFound)
	}

	sf := Parse(norm, text)
	l.cache.Add(norm, sf)
	return sf, nil
}

// Invalidate drops the cache entry for path, forcing a reparse on the
// next Load.
func (l *Loader) Invalidate(path string) {
	l.cache.Remove(tspath.NormalizePath(path))
}

// Purge drops every cache entry.
func (l *Loader) Purge() {
	l.cache.Purge()
}

// Parse parses TypeScript source text into an AST without any program or
// module resolution context.
func Parse(fileName, text string) *ast.SourceFile {
	opts := ast.SourceFileParseOptions{
		FileName: fileName,
		Path:     tspath.Path(fileName),
	}
	return parser.ParseSourceFile(opts, text, core.ScriptKindTS)
}
