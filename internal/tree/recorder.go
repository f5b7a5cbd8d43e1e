package tree

import (
	"bytes"

	"github.com/dosanma1/forge-native/internal/change"
	"github.com/dosanma1/forge-native/internal/errors"
)

// Recorder collects edits against one snapshot of a file. Offsets always
// refer to that snapshot, whatever was recorded before.
type Recorder struct {
	path  string
	base  []byte
	edits []change.Edit
}

// BeginUpdate snapshots p and returns a recorder for it.
func (t *Tree) BeginUpdate(p string) (*Recorder, error) {
	data, err := t.Read(p)
	if err != nil {
		return nil, err
	}
	return &Recorder{path: Normalize(p), base: data}, nil
}

// Path implements change.Recorder.
func (r *Recorder) Path() string { return r.path }

// Snapshot returns the text the recorder's offsets refer to.
func (r *Recorder) Snapshot() []byte { return r.base }

// InsertLeft implements change.Recorder.
func (r *Recorder) InsertLeft(pos int, text string) error {
	if pos < 0 || pos > len(r.base) {
		return errors.Newf("insert at %d out of range for %s (%d bytes)", pos, r.path, len(r.base))
	}
	r.edits = append(r.edits, change.Insert{Path: r.path, Pos: pos, Text: text})
	return nil
}

// Remove implements change.Recorder.
func (r *Recorder) Remove(start, end int) error {
	if start < 0 || end > len(r.base) || start > end {
		return errors.Newf("delete %d-%d out of range for %s (%d bytes)", start, end, r.path, len(r.base))
	}
	r.edits = append(r.edits, change.Delete{Path: r.path, Start: start, End: end})
	return nil
}

// Edits returns what has been recorded so far.
func (r *Recorder) Edits() []change.Edit {
	return append([]change.Edit(nil), r.edits...)
}

// CommitUpdate applies every edit of rec in one pass. The file must still
// hold the snapshot rec was started from.
func (t *Tree) CommitUpdate(rec *Recorder) error {
	if len(rec.edits) == 0 {
		return nil
	}

	current, err := t.Read(rec.path)
	if err != nil {
		return err
	}
	if !bytes.Equal(current, rec.base) {
		return errors.Wrapf(errors.ErrStaleUpdate, "%s changed since the update began", rec.path)
	}

	out, err := change.Splice(rec.base, rec.edits)
	if err != nil {
		return errors.Wrapf(err, "failed to update %s", rec.path)
	}
	return t.Overwrite(rec.path, out)
}
