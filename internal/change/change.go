// Package change defines the text edits produced by the source editors.
//
// An edit is only meaningful against the exact text snapshot its offsets
// were computed from. Edits are never spliced into text directly; they are
// handed to a Recorder obtained from the file tree, which applies every edit
// of one update in a single commit.
package change

import (
	"fmt"
	"sort"

	"github.com/dosanma1/forge-native/internal/errors"
)

// Edit is a single text modification against one file.
type Edit interface {
	// FilePath returns the file the edit applies to.
	FilePath() string
	// Span returns the byte range the edit touches. Inserts are empty spans.
	Span() (start, end int)
	fmt.Stringer
}

// Insert places Text before the byte at Pos.
type Insert struct {
	Path string
	Pos  int
	Text string
}

// FilePath implements Edit.
func (i Insert) FilePath() string { return i.Path }

// Span implements Edit.
func (i Insert) Span() (int, int) { return i.Pos, i.Pos }

func (i Insert) String() string {
	return fmt.Sprintf("insert %q at %s:%d", i.Text, i.Path, i.Pos)
}

// Delete removes the bytes in [Start, End).
type Delete struct {
	Path  string
	Start int
	End   int
}

// FilePath implements Edit.
func (d Delete) FilePath() string { return d.Path }

// Span implements Edit.
func (d Delete) Span() (int, int) { return d.Start, d.End }

func (d Delete) String() string {
	return fmt.Sprintf("delete %s:%d-%d", d.Path, d.Start, d.End)
}

// Recorder receives edits for one file. tree.Recorder implements it.
type Recorder interface {
	Path() string
	InsertLeft(pos int, text string) error
	Remove(start, end int) error
}

// Apply hands every edit to the recorder. Edits for another file are
// rejected so that one recorder never mixes files.
func Apply(rec Recorder, edits []Edit) error {
	for _, e := range edits {
		if e.FilePath() != rec.Path() {
			return errors.Newf("edit %s does not target %s", e, rec.Path())
		}
		switch e := e.(type) {
		case Insert:
			if err := rec.InsertLeft(e.Pos, e.Text); err != nil {
				return err
			}
		case Delete:
			if err := rec.Remove(e.Start, e.End); err != nil {
				return err
			}
		default:
			return errors.Newf("unknown edit type %T", e)
		}
	}
	return nil
}

// MergeDeletes sorts deletions by start and joins overlapping or touching
// spans, so that two removals that each swallow the same comma do not
// conflict.
func MergeDeletes(deletes []Delete) []Delete {
	if len(deletes) < 2 {
		return deletes
	}
	sorted := append([]Delete(nil), deletes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	merged := []Delete{sorted[0]}
	for _, d := range sorted[1:] {
		last := &merged[len(merged)-1]
		if d.Path == last.Path && d.Start <= last.End {
			if d.End > last.End {
				last.End = d.End
			}
			continue
		}
		merged = append(merged, d)
	}
	return merged
}

// Splice applies edits to text. Every offset refers to text as given.
// Edits are applied in position order, inserts before deletes at the same
// offset and otherwise in the order given. An edit that starts inside a
// span already deleted is a conflict.
func Splice(text []byte, edits []Edit) ([]byte, error) {
	sorted := append([]Edit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, _ := sorted[i].Span()
		sj, _ := sorted[j].Span()
		if si != sj {
			return si < sj
		}
		_, ii := sorted[i].(Insert)
		_, ij := sorted[j].(Insert)
		return ii && !ij
	})

	out := make([]byte, 0, len(text))
	cursor := 0
	for _, e := range sorted {
		start, end := e.Span()
		if start < 0 || end > len(text) || start > end {
			return nil, errors.Newf("edit %s out of range for %d bytes", e, len(text))
		}
		if start < cursor {
			return nil, errors.Wrapf(errors.ErrConflict, "edit %s overlaps an earlier deletion", e)
		}
		out = append(out, text[cursor:start]...)
		cursor = start
		switch e := e.(type) {
		case Insert:
			out = append(out, e.Text...)
		case Delete:
			cursor = e.End
		}
	}
	return append(out, text[cursor:]...), nil
}

// Deletes converts a slice of deletions to edits.
func Deletes(deletes []Delete) []Edit {
	edits := make([]Edit, 0, len(deletes))
	for _, d := range deletes {
		edits = append(edits, d)
	}
	return edits
}
