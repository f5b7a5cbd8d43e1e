package ast

import (
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dosanma1/forge-native/internal/change"
)

var lineBreakIndent = regexp.MustCompile(`^\r?\n\s*`)

// namedChildren returns the named children of n, skipping comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if kindOf(c) == KindComment {
			continue
		}
		out = append(out, c)
	}
	return out
}

func firstChildOfKind(n *sitter.Node, k Kind) *sitter.Node {
	if n == nil {
		return nil
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); kindOf(c) == k {
			return c
		}
	}
	return nil
}

// StringValue returns the contents of a string literal without quotes.
func (u *Unit) StringValue(n *sitter.Node) string {
	if n == nil || kindOf(n) != KindString {
		return ""
	}
	var b strings.Builder
	for i := 0; i < int(n.NamedChildCount()); i++ {
		b.WriteString(u.Text(n.NamedChild(i)))
	}
	return b.String()
}

// Properties returns the members of an object literal in source order.
func (u *Unit) Properties(obj *sitter.Node) []*sitter.Node {
	if obj == nil || kindOf(obj) != KindObject {
		return nil
	}
	return namedChildren(obj)
}

// PropertyName returns the key of a pair. Quoted keys are unquoted.
func (u *Unit) PropertyName(pair *sitter.Node) string {
	if pair == nil {
		return ""
	}
	switch kindOf(pair) {
	case KindShorthandProperty:
		return u.Text(pair)
	case KindPair:
	default:
		return ""
	}
	key := pair.ChildByFieldName("key")
	if key == nil {
		return ""
	}
	if kindOf(key) == KindString {
		return u.StringValue(key)
	}
	return u.Text(key)
}

// Property returns the first pair of obj whose key is name.
func (u *Unit) Property(obj *sitter.Node, name string) *sitter.Node {
	for _, p := range u.Properties(obj) {
		if kindOf(p) == KindPair && u.PropertyName(p) == name {
			return p
		}
	}
	return nil
}

// PropertyValue returns the value of the pair keyed name in obj.
func (u *Unit) PropertyValue(obj *sitter.Node, name string) *sitter.Node {
	if p := u.Property(obj, name); p != nil {
		return p.ChildByFieldName("value")
	}
	return nil
}

// Elements returns the elements of an array literal, skipping comments.
func (u *Unit) Elements(arr *sitter.Node) []*sitter.Node {
	if arr == nil || kindOf(arr) != KindArray {
		return nil
	}
	return namedChildren(arr)
}

// ArrayFieldValues returns the source text of each element of the array
// stored under field in obj. A missing field or a non-array value yields nil.
func (u *Unit) ArrayFieldValues(obj *sitter.Node, field string) []string {
	var out []string
	for _, el := range u.Elements(u.PropertyValue(obj, field)) {
		out = append(out, u.Text(el))
	}
	return out
}

func (u *Unit) calleeName(call *sitter.Node) string {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	switch kindOf(fn) {
	case KindIdentifier:
		return u.Text(fn)
	case KindMember:
		return u.Text(fn.ChildByFieldName("property"))
	}
	return ""
}

// separatorBefore returns the text to put between n and a new sibling
// appended after it. The new sibling reuses n's line break and indentation
// when n starts on its own line, and ", " otherwise.
func (u *Unit) separatorBefore(n *sitter.Node) string {
	gapStart := n.StartByte()
	if prev := n.PrevSibling(); prev != nil {
		gapStart = prev.EndByte()
	}
	gap := string(u.text[gapStart:n.StartByte()])
	if m := lineBreakIndent.FindString(gap); m != "" {
		return "," + m
	}
	return ", "
}

// indentOf returns the leading whitespace of the line n starts on.
func (u *Unit) indentOf(n *sitter.Node) string {
	start := int(n.StartByte())
	lineStart := strings.LastIndexByte(string(u.text[:start]), '\n') + 1
	line := u.text[lineStart:start]
	end := 0
	for end < len(line) && (line[end] == ' ' || line[end] == '\t') {
		end++
	}
	return string(line[:end])
}

// listItemSpan is the deletion that removes n from a comma separated list.
// The comma before n goes with it; the first item takes the comma after it
// and the whitespace up to the next item instead.
func (u *Unit) listItemSpan(n *sitter.Node) change.Delete {
	start, end := int(n.StartByte()), int(n.EndByte())

	if prev := n.PrevSibling(); prev != nil && prev.Type() == "," {
		return change.Delete{Path: u.path, Start: int(prev.StartByte()), End: end}
	}
	if next := n.NextSibling(); next != nil && next.Type() == "," {
		end = int(next.EndByte())
		if after := next.NextSibling(); after != nil {
			end = int(after.StartByte())
		}
	}
	return change.Delete{Path: u.path, Start: start, End: end}
}

// statementSpan is the deletion that removes a whole top-level statement.
// A statement with a predecessor is cut from the predecessor's end, which
// takes the line break before it; the first statement takes the line break
// after it instead.
func (u *Unit) statementSpan(n *sitter.Node) change.Delete {
	if prev := n.PrevSibling(); prev != nil {
		return change.Delete{Path: u.path, Start: int(prev.EndByte()), End: int(n.EndByte())}
	}
	end := int(n.EndByte())
	for end < len(u.text) && (u.text[end] == ' ' || u.text[end] == '\t') {
		end++
	}
	if end < len(u.text) && u.text[end] == '\r' {
		end++
	}
	if end < len(u.text) && u.text[end] == '\n' {
		end++
	}
	return change.Delete{Path: u.path, Start: int(n.StartByte()), End: end}
}
