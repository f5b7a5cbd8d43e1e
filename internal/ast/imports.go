package ast

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dosanma1/forge-native/internal/change"
)

// ImportedSymbol is one named binding of an import declaration.
type ImportedSymbol struct {
	// Name is the exported name, Alias the local one if renamed.
	Name        string
	Alias       string
	ModulePath  string
	Declaration *sitter.Node
}

// Local returns the name the symbol is bound to in the file.
func (s ImportedSymbol) Local() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.Name
}

// Imports returns the top-level import declarations in source order.
func (u *Unit) Imports() []*sitter.Node {
	decls, _ := u.FindAll(Pattern{{Kind: KindImport}})
	return decls
}

// ModulePath returns the unquoted module specifier of an import or export
// declaration.
func (u *Unit) ModulePath(decl *sitter.Node) string {
	return u.StringValue(decl.ChildByFieldName("source"))
}

// ImportedSymbols lists every named binding in the file.
func (u *Unit) ImportedSymbols() []ImportedSymbol {
	var out []ImportedSymbol
	for _, decl := range u.Imports() {
		path := u.ModulePath(decl)
		for _, spec := range u.importSpecifiers(decl) {
			out = append(out, ImportedSymbol{
				Name:        u.specifierName(spec),
				Alias:       u.Text(spec.ChildByFieldName("alias")),
				ModulePath:  path,
				Declaration: decl,
			})
		}
	}
	return out
}

// LookupImport finds the binding whose local name is name.
func (u *Unit) LookupImport(name string) (ImportedSymbol, bool) {
	for _, s := range u.ImportedSymbols() {
		if s.Local() == name {
			return s, true
		}
	}
	return ImportedSymbol{}, false
}

// ModuleSpecifiers returns the string nodes naming a module in every import
// declaration and every re-export.
func (u *Unit) ModuleSpecifiers() []*sitter.Node {
	var out []*sitter.Node
	for _, k := range []Kind{KindImport, KindExport} {
		decls, _ := u.FindAll(Pattern{{Kind: k}})
		for _, d := range decls {
			if src := d.ChildByFieldName("source"); src != nil && kindOf(src) == KindString {
				out = append(out, src)
			}
		}
	}
	return out
}

// AddImport returns the edits that bind symbol from modulePath.
//
// Nothing changes when the symbol is already imported from that module or
// the module is imported as a namespace. An existing named import from the
// module is extended; otherwise a new declaration goes after the directive
// prologue, or at the top of the file.
func (u *Unit) AddImport(symbol, modulePath string) []change.Edit {
	var candidates []*sitter.Node
	for _, decl := range u.Imports() {
		if u.ModulePath(decl) == modulePath {
			candidates = append(candidates, decl)
		}
	}

	for _, decl := range candidates {
		if firstChildOfKind(importClause(decl), KindNamespaceImport) != nil {
			return nil
		}
		for _, spec := range u.importSpecifiers(decl) {
			if u.specifierName(spec) == symbol {
				return nil
			}
		}
	}

	for _, decl := range candidates {
		clause := importClause(decl)
		named := firstChildOfKind(clause, KindNamedImports)
		if named != nil {
			specs := namedChildren(named)
			if len(specs) == 0 {
				return []change.Edit{change.Insert{Path: u.path, Pos: int(named.StartByte()) + 1, Text: " " + symbol + " "}}
			}
			last := specs[len(specs)-1]
			return []change.Edit{change.Insert{Path: u.path, Pos: int(last.EndByte()), Text: ", " + symbol}}
		}
		if def := firstChildOfKind(clause, KindIdentifier); def != nil {
			return []change.Edit{change.Insert{Path: u.path, Pos: int(def.EndByte()), Text: ", { " + symbol + " }"}}
		}
	}

	stmt := fmt.Sprintf("import { %s } from '%s';", symbol, modulePath)
	if prologue := u.lastDirective(); prologue != nil {
		return []change.Edit{change.Insert{Path: u.path, Pos: int(prologue.EndByte()), Text: "\n" + stmt}}
	}
	return []change.Edit{change.Insert{Path: u.path, Pos: 0, Text: stmt + "\n"}}
}

// RemoveImport returns the edits that drop the named binding symbol from
// every declaration importing it. A declaration left without bindings is
// removed whole.
func (u *Unit) RemoveImport(symbol string) []change.Edit {
	decls, _ := u.FindAll(Pattern{{Kind: KindImport, Name: symbol}})

	var deletes []change.Delete
	for _, decl := range decls {
		clause := importClause(decl)
		specs := u.importSpecifiers(decl)
		others := len(specs) - 1
		if firstChildOfKind(clause, KindIdentifier) != nil {
			others++
		}

		switch {
		case others == 0:
			deletes = append(deletes, u.statementSpan(decl))
		case len(specs) == 1:
			// default import plus this one named binding
			deletes = append(deletes, u.listItemSpan(firstChildOfKind(clause, KindNamedImports)))
		default:
			for _, spec := range specs {
				if u.specifierName(spec) == symbol {
					deletes = append(deletes, u.listItemSpan(spec))
				}
			}
		}
	}
	return change.Deletes(change.MergeDeletes(deletes))
}

// RewriteModulePath returns the edits that replace the module specifier
// held by src, a string node, keeping its quotes.
func (u *Unit) RewriteModulePath(src *sitter.Node, path string) []change.Edit {
	if src == nil || kindOf(src) != KindString || u.StringValue(src) == path {
		return nil
	}
	start, end := int(src.StartByte())+1, int(src.EndByte())-1
	return []change.Edit{
		change.Insert{Path: u.path, Pos: start, Text: path},
		change.Delete{Path: u.path, Start: start, End: end},
	}
}

func importClause(decl *sitter.Node) *sitter.Node {
	return firstChildOfKind(decl, KindImportClause)
}

func (u *Unit) importSpecifiers(decl *sitter.Node) []*sitter.Node {
	named := firstChildOfKind(importClause(decl), KindNamedImports)
	if named == nil {
		return nil
	}
	var out []*sitter.Node
	for _, c := range namedChildren(named) {
		if kindOf(c) == KindImportSpecifier {
			out = append(out, c)
		}
	}
	return out
}

func (u *Unit) specifierName(spec *sitter.Node) string {
	return u.Text(spec.ChildByFieldName("name"))
}

// lastDirective returns the last statement of the leading run of string
// expression statements such as 'use strict'.
func (u *Unit) lastDirective() *sitter.Node {
	var last *sitter.Node
	for _, stmt := range namedChildren(u.Root()) {
		if kindOf(stmt) != KindExpressionStatement {
			break
		}
		if expr := firstNamed(stmt); expr == nil || kindOf(expr) != KindString {
			break
		}
		last = stmt
	}
	return last
}
