package ast

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dosanma1/forge-native/internal/change"
	"github.com/dosanma1/forge-native/internal/logger"
)

// AddToArrayField returns the edits that make symbol an element of the
// array stored under field in obj.
//
// A missing field is appended as `field: [symbol]`. A single identifier
// value X becomes [X, symbol]. An array that already holds symbol yields no
// edits, so applying the result twice changes nothing the second time.
// Values of any other shape are left alone.
func (u *Unit) AddToArrayField(obj *sitter.Node, field, symbol string) []change.Edit {
	if obj == nil || kindOf(obj) != KindObject {
		return nil
	}

	pair := u.Property(obj, field)
	if pair == nil {
		return []change.Edit{u.appendProperty(obj, fmt.Sprintf("%s: [%s]", field, symbol))}
	}

	value := pair.ChildByFieldName("value")
	if value == nil {
		return nil
	}

	switch kindOf(value) {
	case KindArray:
		elems := u.Elements(value)
		for _, el := range elems {
			if u.Text(el) == symbol {
				return nil
			}
		}
		if len(elems) == 0 {
			return []change.Edit{change.Insert{Path: u.path, Pos: int(value.EndByte()) - 1, Text: symbol}}
		}
		return u.appendElement(elems[len(elems)-1], symbol)

	case KindIdentifier, KindMember:
		if u.Text(value) == symbol {
			return nil
		}
		return []change.Edit{
			change.Insert{Path: u.path, Pos: int(value.StartByte()), Text: "["},
			change.Insert{Path: u.path, Pos: int(value.EndByte()), Text: ", " + symbol + "]"},
		}
	}

	logger.Logger.Debugw("array field left unchanged",
		"file", u.path, "field", field, "symbol", symbol, "value", value.Type())
	return nil
}

// appendElement inserts symbol after last, the final element of an array.
// A trailing comma is kept trailing, and a comment on last's line stays
// with last.
func (u *Unit) appendElement(last *sitter.Node, symbol string) []change.Edit {
	sep := u.separatorBefore(last)
	lineSep := strings.TrimPrefix(sep, ",")

	pos := int(last.EndByte())
	next := last.NextSibling()
	trailingComma := next != nil && next.Type() == ","
	if trailingComma {
		pos = int(next.EndByte())
		next = next.NextSibling()
	}

	if next != nil && kindOf(next) == KindComment && !strings.Contains(string(u.text[pos:int(next.StartByte())]), "\n") {
		end := int(next.EndByte())
		if trailingComma {
			return []change.Edit{change.Insert{Path: u.path, Pos: end, Text: lineSep + symbol + ","}}
		}
		return []change.Edit{
			change.Insert{Path: u.path, Pos: pos, Text: ","},
			change.Insert{Path: u.path, Pos: end, Text: lineSep + symbol},
		}
	}
	if trailingComma {
		return []change.Edit{change.Insert{Path: u.path, Pos: pos, Text: lineSep + symbol + ","}}
	}
	return []change.Edit{change.Insert{Path: u.path, Pos: pos, Text: sep + symbol}}
}

// appendProperty inserts entry as the last member of obj.
func (u *Unit) appendProperty(obj *sitter.Node, entry string) change.Edit {
	props := u.Properties(obj)
	if len(props) > 0 {
		last := props[len(props)-1]
		return change.Insert{Path: u.path, Pos: int(last.EndByte()), Text: u.separatorBefore(last) + entry}
	}

	open := int(obj.StartByte()) + 1
	inner := string(u.text[open : int(obj.EndByte())-1])
	switch {
	case strings.Contains(inner, "\n"):
		return change.Insert{Path: u.path, Pos: open, Text: "\n" + u.indentOf(obj) + "  " + entry}
	case inner == "":
		return change.Insert{Path: u.path, Pos: open, Text: " " + entry + " "}
	default:
		return change.Insert{Path: u.path, Pos: open, Text: " " + entry}
	}
}
