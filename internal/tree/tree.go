package tree

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dosanma1/forge-native/internal/errors"
	"github.com/dosanma1/forge-native/internal/logger"
)

// ActionKind classifies a staged change.
type ActionKind int

const (
	ActionCreate ActionKind = iota
	ActionOverwrite
	ActionRename
	ActionDelete
)

func (k ActionKind) String() string {
	switch k {
	case ActionCreate:
		return "CREATE"
	case ActionOverwrite:
		return "UPDATE"
	case ActionRename:
		return "RENAME"
	case ActionDelete:
		return "DELETE"
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// Action is one staged change, in the order it was made.
type Action struct {
	Kind ActionKind
	Path string
	// To is the new path of a rename.
	To string
	// Content is the file content after a create or overwrite.
	Content []byte
}

func (a Action) String() string {
	if a.Kind == ActionRename {
		return fmt.Sprintf("%s %s => %s", a.Kind, a.Path, a.To)
	}
	if a.Kind == ActionDelete {
		return fmt.Sprintf("%s %s", a.Kind, a.Path)
	}
	return fmt.Sprintf("%s %s (%d bytes)", a.Kind, a.Path, len(a.Content))
}

// staged is the state of one file as seen through the tree. A nil data
// with deleted set means the file is gone.
type staged struct {
	data    []byte
	deleted bool
}

// Tree is a staging area over a Host. Reads see staged changes; nothing
// reaches the host until Flush.
type Tree struct {
	host Host

	mu      sync.Mutex
	files   map[string]*staged
	actions []Action
}

// New returns an empty staging tree over host.
func New(host Host) *Tree {
	return &Tree{host: host, files: make(map[string]*staged)}
}

// Host returns the underlying host.
func (t *Tree) Host() Host { return t.host }

// Read returns the current content of p.
func (t *Tree) Read(p string) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.read(Normalize(p))
}

func (t *Tree) read(p string) ([]byte, error) {
	if s, ok := t.files[p]; ok {
		if s.deleted {
			return nil, errors.NotFoundf("file %s", p)
		}
		return append([]byte(nil), s.data...), nil
	}
	return t.host.Read(p)
}

// ReadString is Read for text files.
func (t *Tree) ReadString(p string) (string, error) {
	data, err := t.Read(p)
	return string(data), err
}

// Exists reports whether p is a file in the tree.
func (t *Tree) Exists(p string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.exists(Normalize(p))
}

func (t *Tree) exists(p string) bool {
	if s, ok := t.files[p]; ok {
		return !s.deleted
	}
	return t.host.Exists(p)
}

// Create adds a new file. It fails with ErrAlreadyExists when p exists.
func (t *Tree) Create(p string, data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	p = Normalize(p)
	if t.exists(p) {
		return errors.AlreadyExistsf("file %s", p)
	}
	t.record(Action{Kind: ActionCreate, Path: p, Content: t.stage(p, data)})
	return nil
}

// Overwrite replaces an existing file. It fails with ErrNotFound when p
// does not exist.
func (t *Tree) Overwrite(p string, data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	p = Normalize(p)
	if !t.exists(p) {
		return errors.NotFoundf("file %s", p)
	}
	t.record(Action{Kind: ActionOverwrite, Path: p, Content: t.stage(p, data)})
	return nil
}

// Write creates or overwrites p.
func (t *Tree) Write(p string, data []byte) error {
	if t.Exists(p) {
		return t.Overwrite(p, data)
	}
	return t.Create(p, data)
}

// Delete removes p.
func (t *Tree) Delete(p string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	p = Normalize(p)
	if !t.exists(p) {
		return errors.NotFoundf("file %s", p)
	}
	t.files[p] = &staged{deleted: true}
	t.record(Action{Kind: ActionDelete, Path: p})
	return nil
}

// Rename moves from to to. The destination must not exist.
func (t *Tree) Rename(from, to string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	from, to = Normalize(from), Normalize(to)
	data, err := t.read(from)
	if err != nil {
		return err
	}
	if t.exists(to) {
		return errors.AlreadyExistsf("file %s", to)
	}
	t.files[from] = &staged{deleted: true}
	t.stage(to, data)
	t.actions = append(t.actions, Action{Kind: ActionRename, Path: from, To: to})
	return nil
}

func (t *Tree) stage(p string, data []byte) []byte {
	data = append([]byte(nil), data...)
	t.files[p] = &staged{data: data}
	return data
}

// record appends a, folding consecutive writes of one file into a single
// action that keeps the first kind and the last content.
func (t *Tree) record(a Action) {
	if n := len(t.actions); n > 0 {
		last := &t.actions[n-1]
		if last.Path == a.Path && a.Kind == ActionOverwrite &&
			(last.Kind == ActionCreate || last.Kind == ActionOverwrite) {
			last.Content = a.Content
			return
		}
	}
	t.actions = append(t.actions, a)
}

// Actions returns the staged changes in order.
func (t *Tree) Actions() []Action {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Action(nil), t.actions...)
}

// Files lists the files below dir whose name ends in ext, sorted. An empty
// ext matches every file.
func (t *Tree) Files(dir, ext string) ([]string, error) {
	seen := make(map[string]bool)
	err := t.host.Walk(Normalize(dir), func(p string) error {
		seen[Normalize(p)] = true
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk %s", dir)
	}

	t.mu.Lock()
	for p, s := range t.files {
		if within(dir, p) {
			seen[p] = !s.deleted
		}
	}
	t.mu.Unlock()

	var out []string
	for p, ok := range seen {
		if ok && strings.HasSuffix(p, ext) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Flush replays the staged actions on the host and clears them. Each file
// write is atomic, but a failure part way leaves earlier actions applied.
func (t *Tree) Flush(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, a := range t.actions {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		switch a.Kind {
		case ActionCreate, ActionOverwrite:
			err = t.host.Write(a.Path, a.Content)
		case ActionRename:
			err = t.host.Rename(a.Path, a.To)
		case ActionDelete:
			err = t.host.Delete(a.Path)
		}
		if err != nil {
			t.actions = t.actions[i:]
			return errors.Wrapf(err, "failed to apply %s", a)
		}
		logger.Logger.Debugw("flushed", "action", a.Kind.String(), "path", a.Path)
	}

	t.actions = nil
	t.files = make(map[string]*staged)
	return nil
}
