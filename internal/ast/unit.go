// Package ast locates and edits Angular decorator metadata and import
// declarations in TypeScript sources.
//
// A Unit is an immutable tree-sitter parse of one file snapshot. Queries walk
// it; editors return change.Edit values computed against that snapshot and
// never touch the text themselves. A Unit must not outlive the snapshot it
// was parsed from: after any commit to the same file, parse again.
package ast

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/dosanma1/forge-native/internal/errors"
)

// Unit is the parse of one file's text.
type Unit struct {
	path string
	text []byte
	tree *sitter.Tree
}

// Parse builds a Unit for path from text. The grammar is picked by
// extension: TSX for .tsx, TypeScript otherwise.
func Parse(ctx context.Context, path string, text []byte) (*Unit, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if strings.HasSuffix(path, ".tsx") {
		parser.SetLanguage(tsx.GetLanguage())
	} else {
		parser.SetLanguage(typescript.GetLanguage())
	}

	src := append([]byte(nil), text...)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}

	return &Unit{path: path, text: src, tree: tree}, nil
}

// Close releases the underlying syntax tree. Nodes obtained from the unit
// must not be used afterwards.
func (u *Unit) Close() {
	if u.tree != nil {
		u.tree.Close()
		u.tree = nil
	}
}

// Path returns the file path the unit was parsed for.
func (u *Unit) Path() string { return u.path }

// Source returns the full text of the snapshot.
func (u *Unit) Source() []byte { return u.text }

// Root returns the program node.
func (u *Unit) Root() *sitter.Node { return u.tree.RootNode() }

// HasErrors reports whether the parser had to recover from syntax errors.
func (u *Unit) HasErrors() bool { return u.Root().HasError() }

// Text returns the source text of n.
func (u *Unit) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(u.text[n.StartByte():n.EndByte()])
}
