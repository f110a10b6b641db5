package source

import (
	"strings"

	"github.com/microsoft/typescript-go/shim/ast"
)

// FirstClass returns the first class declaration in the source file, or
// nil if the file declares no class. Only the first class is ever
// consulted by the inference engines — multi-class component files are
// out of scope.
func FirstClass(sf *ast.SourceFile) *ast.Node {
	for _, stmt := range sf.Statements.Nodes {
		if stmt.Kind == ast.KindClassDeclaration {
			return stmt
		}
	}
	return nil
}

// ClassName returns the declared name of a class node, or "" for an
// anonymous class expression.
func ClassName(classNode *ast.Node) string {
	decl := classNode.AsClassDeclaration()
	if decl.Name() == nil {
		return ""
	}
	return declaredName(decl.Name())
}

// ClassProperty finds a property declaration by name on a class node.
func ClassProperty(classNode *ast.Node, name string) *ast.PropertyDeclaration {
	decl := classNode.AsClassDeclaration()
	if decl.Members == nil {
		return nil
	}
	for _, member := range decl.Members.Nodes {
		if member.Kind != ast.KindPropertyDeclaration {
			continue
		}
		prop := member.AsPropertyDeclaration()
		if declaredName(prop.Name()) == name {
			return prop
		}
	}
	return nil
}

// ClassMethod finds a method declaration by name on a class node.
func ClassMethod(classNode *ast.Node, name string) *ast.MethodDeclaration {
	decl := classNode.AsClassDeclaration()
	if decl.Members == nil {
		return nil
	}
	for _, member := range decl.Members.Nodes {
		if member.Kind != ast.KindMethodDeclaration {
			continue
		}
		method := member.AsMethodDeclaration()
		if declaredName(method.Name()) == name {
			return method
		}
	}
	return nil
}

// ConstructorParam finds a constructor parameter by name on a class node.
// Parameter properties (constructor(private userService: UserService))
// surface here like any other parameter.
func ConstructorParam(classNode *ast.Node, name string) *ast.ParameterDeclaration {
	decl := classNode.AsClassDeclaration()
	if decl.Members == nil {
		return nil
	}
	for _, member := range decl.Members.Nodes {
		if member.Kind != ast.KindConstructor {
			continue
		}
		ctor := member.AsConstructorDeclaration()
		if ctor.Parameters == nil {
			continue
		}
		for _, paramNode := range ctor.Parameters.Nodes {
			param := paramNode.AsParameterDeclaration()
			if declaredName(param.Name()) == name {
				return param
			}
		}
	}
	return nil
}

// NodeText returns the trimmed source text spanned by a node.
func NodeText(sf *ast.SourceFile, node *ast.Node) string {
	if node == nil {
		return ""
	}
	text := sf.Text()
	pos, end := node.Pos(), node.End()
	if pos < 0 || end > len(text) || pos > end {
		return ""
	}
	return strings.TrimSpace(text[pos:end])
}

// typeMember is a named member of a structural type, carrying its type
// annotation node (nil when the member has no annotation).
type typeMember struct {
	name     string
	typeNode *ast.Node
}

// ResolveMemberChain walks a chain of member names starting from a type
// annotation node, resolving type literals inline and type references
// against same-file interface/class/type-alias declarations. It returns
// the final member's declared type text. Resolution across files is out
// of scope; an unresolvable step returns ok=false.
func ResolveMemberChain(sf *ast.SourceFile, typeNode *ast.Node, chain []string) (string, bool) {
	current := typeNode
	for i, name := range chain {
		members := typeMembers(sf, current, 0)
		if members == nil {
			return "", false
		}
		var next *ast.Node
		found := false
		for _, m := range members {
			if m.name == name {
				next = m.typeNode
				found = true
				break
			}
		}
		if !found || next == nil {
			return "", false
		}
		if i == len(chain)-1 {
			return NodeText(sf, next), true
		}
		current = next
	}
	return "", false
}

// maxAliasDepth bounds type-alias indirection when collecting members,
// breaking cycles like `type A = B; type B = A`.
const maxAliasDepth = 8

// typeMembers collects the named members of a type annotation node.
// Supports inline type literals and references to same-file interfaces,
// classes, and type aliases. Returns nil for anything else (unions,
// generics, imported types).
func typeMembers(sf *ast.SourceFile, typeNode *ast.Node, depth int) []typeMember {
	if typeNode == nil || depth > maxAliasDepth {
		return nil
	}

	switch typeNode.Kind {
	case ast.KindTypeLiteral:
		lit := typeNode.AsTypeLiteralNode()
		if lit.Members == nil {
			return nil
		}
		var members []typeMember
		for _, m := range lit.Members.Nodes {
			if m.Kind != ast.KindPropertySignature {
				continue
			}
			sig := m.AsPropertySignatureDeclaration()
			members = append(members, typeMember{name: declaredName(sig.Name()), typeNode: sig.Type})
		}
		return members

	case ast.KindTypeReference:
		ref := typeNode.AsTypeReferenceNode()
		if ref.TypeName == nil || ref.TypeName.Kind != ast.KindIdentifier {
			return nil
		}
		return declMembers(sf, ref.TypeName.AsIdentifier().Text, depth)
	}

	return nil
}

// declMembers resolves a type name against the file's top-level
// declarations and returns the members of the match.
func declMembers(sf *ast.SourceFile, typeName string, depth int) []typeMember {
	for _, stmt := range sf.Statements.Nodes {
		switch stmt.Kind {
		case ast.KindInterfaceDeclaration:
			decl := stmt.AsInterfaceDeclaration()
			if declaredName(decl.Name()) != typeName || decl.Members == nil {
				continue
			}
			var members []typeMember
			for _, m := range decl.Members.Nodes {
				if m.Kind != ast.KindPropertySignature {
					continue
				}
				sig := m.AsPropertySignatureDeclaration()
				members = append(members, typeMember{name: declaredName(sig.Name()), typeNode: sig.Type})
			}
			return members

		case ast.KindClassDeclaration:
			decl := stmt.AsClassDeclaration()
			if decl.Name() == nil || declaredName(decl.Name()) != typeName || decl.Members == nil {
				continue
			}
			var members []typeMember
			for _, m := range decl.Members.Nodes {
				if m.Kind != ast.KindPropertyDeclaration {
					continue
				}
				prop := m.AsPropertyDeclaration()
				members = append(members, typeMember{name: declaredName(prop.Name()), typeNode: prop.Type})
			}
			return members

		case ast.KindTypeAliasDeclaration:
			decl := stmt.AsTypeAliasDeclaration()
			if declaredName(decl.Name()) != typeName {
				continue
			}
			return typeMembers(sf, decl.Type, depth+1)
		}
	}
	return nil
}

// FindNamedImport searches the file's import declarations for a named
// import binding typeName and returns its module specifier. Default and
// namespace imports do not participate: the import manager only reuses
// bindings it can copy verbatim into the extracted component.
func FindNamedImport(sf *ast.SourceFile, typeName string) (string, bool) {
	for _, stmt := range sf.Statements.Nodes {
		if stmt.Kind != ast.KindImportDeclaration {
			continue
		}
		decl := stmt.AsImportDeclaration()

		if decl.ModuleSpecifier == nil || decl.ModuleSpecifier.Kind != ast.KindStringLiteral {
			continue
		}
		if decl.ImportClause == nil {
			continue
		}
		clause := decl.ImportClause.AsImportClause()
		if clause.NamedBindings == nil || clause.NamedBindings.Kind != ast.KindNamedImports {
			continue
		}
		namedImports := clause.NamedBindings.AsNamedImports()
		if namedImports.Elements == nil {
			continue
		}
		for _, elem := range namedImports.Elements.Nodes {
			spec := elem.AsImportSpecifier()
			if declaredName(spec.Name()) == typeName {
				return decl.ModuleSpecifier.AsStringLiteral().Text, true
			}
		}
	}
	return "", false
}

// declaredName extracts the text of a declaration name node. Identifiers
// and string-literal names are supported; anything else (computed names)
// yields "".
func declaredName(nameNode *ast.Node) string {
	if nameNode == nil {
		return ""
	}
	switch nameNode.Kind {
	case ast.KindIdentifier:
		return nameNode.AsIdentifier().Text
	case ast.KindStringLiteral:
		return nameNode.AsStringLiteral().Text
	default:
		return ""
	}
}
