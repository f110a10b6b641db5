package inference

import (
	"regexp"
	"sort"
	"strings"

	"github.com/microsoft/typescript-go/shim/ast"

	"github.com/ngxtract/ngxtract/internal/source"
)

var typeTokenRe = regexp.MustCompile(`[A-Za-z_$][A-Za-z0-9_$]*`)

// primitiveTypes never need imports.
var primitiveTypes = map[string]bool{
	"string":    true,
	"number":    true,
	"boolean":   true,
	"unknown":   true,
	"any":       true,
	"void":      true,
	"null":      true,
	"undefined": true,
	"never":     true,
	"object":    true,
}

// builtinTypes are globally visible without imports.
var builtinTypes = map[string]bool{
	"Date":    true,
	"Array":   true,
	"Promise": true,
	"Map":     true,
	"Set":     true,
	"Event":   true,
}

// ResolveTypeImports finds the import statements a consumer of the
// inferred types would need. Only named imports from the parent file
// are traced; Observable-bearing types are skipped whole because the
// extracted component never re-subscribes to the parent's streams.
func ResolveTypeImports(sf *ast.SourceFile, results map[string]InferredType) []Import {
	seen := make(map[string]bool)
	var imports []Import

	for _, r := range results {
		if strings.Contains(r.Type, "Observable") {
			continue
		}
		for _, token := range typeTokenRe.FindAllString(r.Type, -1) {
			if primitiveTypes[token] || builtinTypes[token] || seen[token] {
				continue
			}
			seen[token] = true
			module, ok := source.FindNamedImport(sf, token)
			if !ok {
				continue
			}
			imports = append(imports, Import{TypeName: token, ModulePath: module})
		}
	}

	sort.Slice(imports, func(i, j int) bool {
		if imports[i].ModulePath != imports[j].ModulePath {
			return imports[i].ModulePath < imports[j].ModulePath
		}
		return imports[i].TypeName < imports[j].TypeName
	})
	return imports
}
