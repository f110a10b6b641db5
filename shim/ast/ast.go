// Package ast re-exports the typescript-go AST surface used by ngxtract.
// The module path lives under github.com/microsoft/typescript-go/ so that
// the internal packages are importable; the main module wires it in with a
// replace directive.
package ast

import "github.com/microsoft/typescript-go/internal/ast"

type (
	Kind                         = ast.Kind
	Node                         = ast.Node
	NodeList                     = ast.NodeList
	SourceFile                   = ast.SourceFile
	SourceFileParseOptions       = ast.SourceFileParseOptions
	ClassDeclaration             = ast.ClassDeclaration
	InterfaceDeclaration         = ast.InterfaceDeclaration
	TypeAliasDeclaration         = ast.TypeAliasDeclaration
	PropertyDeclaration          = ast.PropertyDeclaration
	MethodDeclaration            = ast.MethodDeclaration
	ConstructorDeclaration       = ast.ConstructorDeclaration
	ParameterDeclaration         = ast.ParameterDeclaration
	PropertySignatureDeclaration = ast.PropertySignatureDeclaration
	TypeLiteralNode              = ast.TypeLiteralNode
	TypeReferenceNode            = ast.TypeReferenceNode
	Identifier                   = ast.Identifier
	StringLiteral                = ast.StringLiteral
	ImportDeclaration            = ast.ImportDeclaration
	ImportClause                 = ast.ImportClause
	NamedImports                 = ast.NamedImports
	ImportSpecifier              = ast.ImportSpecifier
)

const (
	KindClassDeclaration     = ast.KindClassDeclaration
	KindInterfaceDeclaration = ast.KindInterfaceDeclaration
	KindTypeAliasDeclaration = ast.KindTypeAliasDeclaration
	KindPropertyDeclaration  = ast.KindPropertyDeclaration
	KindMethodDeclaration    = ast.KindMethodDeclaration
	KindConstructor          = ast.KindConstructor
	KindParameter            = ast.KindParameter
	KindPropertySignature    = ast.KindPropertySignature
	KindTypeLiteral          = ast.KindTypeLiteral
	KindTypeReference        = ast.KindTypeReference
	KindIdentifier           = ast.KindIdentifier
	KindStringLiteral        = ast.KindStringLiteral
	KindImportDeclaration    = ast.KindImportDeclaration
	KindNamedImports         = ast.KindNamedImports
	KindUnionType            = ast.KindUnionType
	KindArrayType            = ast.KindArrayType
)
