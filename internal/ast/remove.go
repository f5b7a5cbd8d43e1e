package ast

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dosanma1/forge-native/internal/change"
)

// RemoveFromArrayField returns the deletions that drop every element whose
// text is value from the array under field, in every object literal found
// inside the given decorators. Each deletion takes one neighbouring comma so
// the list stays well formed. Overlapping deletions are merged.
func (u *Unit) RemoveFromArrayField(decorators []*sitter.Node, field, value string) []change.Edit {
	var deletes []change.Delete
	for _, d := range decorators {
		objects, err := u.FindAllIn(d, Pattern{{Kind: KindObject}})
		if err != nil {
			continue
		}
		for _, obj := range objects {
			for _, el := range u.Elements(u.PropertyValue(obj, field)) {
				if u.Text(el) == value {
					deletes = append(deletes, u.listItemSpan(el))
				}
			}
		}
	}
	return change.Deletes(change.MergeDeletes(deletes))
}
