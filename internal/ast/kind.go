package ast

import (
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Kind is the syntactic category of a node, named after the tree-sitter
// TypeScript grammar's node types.
type Kind string

const (
	KindProgram             Kind = "program"
	KindClass               Kind = "class_declaration"
	KindAbstractClass       Kind = "abstract_class_declaration"
	KindExport              Kind = "export_statement"
	KindDecorator           Kind = "decorator"
	KindCall                Kind = "call_expression"
	KindArguments           Kind = "arguments"
	KindMember              Kind = "member_expression"
	KindObject              Kind = "object"
	KindArray               Kind = "array"
	KindPair                Kind = "pair"
	KindIdentifier          Kind = "identifier"
	KindPropertyIdentifier  Kind = "property_identifier"
	KindTypeIdentifier      Kind = "type_identifier"
	KindShorthandProperty   Kind = "shorthand_property_identifier"
	KindString              Kind = "string"
	KindImport              Kind = "import_statement"
	KindImportClause        Kind = "import_clause"
	KindNamedImports        Kind = "named_imports"
	KindImportSpecifier     Kind = "import_specifier"
	KindNamespaceImport     Kind = "namespace_import"
	KindExpressionStatement Kind = "expression_statement"
	KindVariableDeclarator  Kind = "variable_declarator"
	KindFunction            Kind = "function_declaration"
	KindMethod              Kind = "method_definition"
	KindComment             Kind = "comment"
)

// nameFunc returns the names a node answers to. A node matches a named
// step when any of them equals the step's name.
type nameFunc func(u *Unit, n *sitter.Node) []string

// kinds lists every kind a pattern may use. A nil nameFunc means the kind
// cannot be queried by name.
var kinds = map[Kind]nameFunc{
	KindProgram:             nil,
	KindClass:               fieldName("name"),
	KindAbstractClass:       fieldName("name"),
	KindExport:              nil,
	KindDecorator:           decoratorNames,
	KindCall:                calleeNames,
	KindArguments:           nil,
	KindMember:              fieldName("property"),
	KindObject:              nil,
	KindArray:               nil,
	KindPair:                pairNames,
	KindIdentifier:          ownText,
	KindPropertyIdentifier:  ownText,
	KindTypeIdentifier:      ownText,
	KindShorthandProperty:   ownText,
	KindString:              stringNames,
	KindImport:              importNames,
	KindImportClause:        nil,
	KindNamedImports:        nil,
	KindImportSpecifier:     fieldName("name"),
	KindNamespaceImport:     nil,
	KindExpressionStatement: nil,
	KindVariableDeclarator:  fieldName("name"),
	KindFunction:            fieldName("name"),
	KindMethod:              fieldName("name"),
	KindComment:             nil,
}

// Kinds returns every queryable kind, sorted.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func joinKinds(ks []Kind) string {
	names := make([]string, len(ks))
	for i, k := range ks {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// Known reports whether k may appear in a pattern.
func (k Kind) Known() bool {
	_, ok := kinds[k]
	return ok
}

// Nameable reports whether k has a name extractor.
func (k Kind) Nameable() bool {
	return kinds[k] != nil
}

func kindOf(n *sitter.Node) Kind {
	return Kind(n.Type())
}

func ownText(u *Unit, n *sitter.Node) []string {
	return []string{u.Text(n)}
}

func fieldName(field string) nameFunc {
	return func(u *Unit, n *sitter.Node) []string {
		if c := n.ChildByFieldName(field); c != nil {
			return []string{u.Text(c)}
		}
		return nil
	}
}

func stringNames(u *Unit, n *sitter.Node) []string {
	return []string{u.StringValue(n)}
}

func pairNames(u *Unit, n *sitter.Node) []string {
	if name := u.PropertyName(n); name != "" {
		return []string{name}
	}
	return nil
}

// calleeNames names a call by its callee, unwrapping one property access so
// that a.b() answers to "b".
func calleeNames(u *Unit, n *sitter.Node) []string {
	if name := u.calleeName(n); name != "" {
		return []string{name}
	}
	return nil
}

func decoratorNames(u *Unit, n *sitter.Node) []string {
	if name := u.DecoratorName(n); name != "" {
		return []string{name}
	}
	return nil
}

func importNames(u *Unit, n *sitter.Node) []string {
	specs := u.importSpecifiers(n)
	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, u.specifierName(s))
	}
	return names
}
