package ast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dosanma1/forge-native/internal/errors"
)

// Step matches nodes of one kind, optionally restricted to a name.
type Step struct {
	Kind Kind
	Name string
}

func (s Step) String() string {
	if s.Name == "" {
		return string(s.Kind)
	}
	return string(s.Kind) + "[" + s.Name + "]"
}

func (s Step) validate() error {
	if !s.Kind.Known() {
		return errors.WithHint(
			errors.Wrapf(errors.ErrUnsupportedKind, "unknown kind %q", s.Kind),
			"queryable kinds: "+joinKinds(Kinds()))
	}
	if s.Name != "" && !s.Kind.Nameable() {
		return errors.Wrapf(errors.ErrUnsupportedKind, "%s cannot be matched by name", s.Kind)
	}
	return nil
}

func (s Step) matches(u *Unit, n *sitter.Node) bool {
	if kindOf(n) != s.Kind {
		return false
	}
	if s.Name == "" {
		return true
	}
	want := s.Name
	if s.Kind == KindDecorator {
		want = strings.TrimPrefix(want, "@")
	}
	for _, name := range kinds[s.Kind](u, n) {
		if name == want {
			return true
		}
	}
	return false
}

// Pattern is a chain of steps. Each step is searched for anywhere below the
// node matched by the previous one.
type Pattern []Step

// String renders the pattern as "kind[name] > kind".
func (p Pattern) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, " > ")
}

func (p Pattern) validate() error {
	for _, s := range p {
		if err := s.validate(); err != nil {
			return errors.Wrapf(err, "pattern %s", p)
		}
	}
	return nil
}

// FindAll runs p from the program node.
func (u *Unit) FindAll(p Pattern) ([]*sitter.Node, error) {
	return u.FindAllIn(u.Root(), p)
}

// FindAllIn returns every node reachable from start along p, in document
// order. start itself is never a candidate for the first step.
//
// Decorators written before `export` belong to the export statement in the
// grammar; when a class has matched a step, those decorators are searched as
// if they were the class's own.
func (u *Unit) FindAllIn(start *sitter.Node, p Pattern) ([]*sitter.Node, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if start == nil || len(p) == 0 {
		return nil, nil
	}

	var out []*sitter.Node
	u.search(start, p, false, &out)
	return out, nil
}

func (u *Unit) search(n *sitter.Node, p Pattern, scoped bool, out *[]*sitter.Node) {
	var children []*sitter.Node
	if scoped {
		children = append(children, u.exportDecorators(n)...)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		children = append(children, n.Child(i))
	}

	for _, c := range children {
		if !p[0].matches(u, c) {
			u.search(c, p, false, out)
			continue
		}
		if len(p) == 1 {
			*out = append(*out, c)
			u.search(c, p, false, out)
			continue
		}
		u.search(c, p[1:], true, out)
	}
}

// exportDecorators returns the decorators attached to the export statement
// that wraps a class.
func (u *Unit) exportDecorators(n *sitter.Node) []*sitter.Node {
	if k := kindOf(n); k != KindClass && k != KindAbstractClass {
		return nil
	}
	parent := n.Parent()
	if parent == nil || kindOf(parent) != KindExport {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(parent.NamedChildCount()); i++ {
		if c := parent.NamedChild(i); kindOf(c) == KindDecorator {
			out = append(out, c)
		}
	}
	return out
}

// FindOne runs p from start and requires exactly one match. When textFilter
// is set, only matches whose text contains it are counted.
func (u *Unit) FindOne(start *sitter.Node, p Pattern, textFilter string) (*sitter.Node, error) {
	matches, err := u.FindAllIn(start, p)
	if err != nil {
		return nil, err
	}
	if textFilter != "" {
		filtered := matches[:0]
		for _, m := range matches {
			if strings.Contains(u.Text(m), textFilter) {
				filtered = append(filtered, m)
			}
		}
		matches = filtered
	}

	switch len(matches) {
	case 0:
		return nil, errors.NotFoundf("%s in %s", p, u.path)
	case 1:
		return matches[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrAmbiguous, "%d matches for %s in %s", len(matches), p, u.path)
	}
}
