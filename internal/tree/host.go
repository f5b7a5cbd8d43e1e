// Package tree stages file changes in memory and writes them to a host
// only when a schematic has finished.
package tree

import (
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/dosanma1/forge-native/internal/errors"
)

// Host is the storage behind a Tree. Paths are slash separated and
// relative to the workspace root.
type Host interface {
	Read(p string) ([]byte, error)
	Exists(p string) bool
	Write(p string, data []byte) error
	Delete(p string) error
	Rename(from, to string) error
	// Walk calls fn for every file below dir in lexical order.
	Walk(dir string, fn func(p string) error) error
}

// Normalize cleans p into the form hosts and trees key files by.
func Normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean("/" + p)
	return strings.TrimPrefix(p, "/")
}

// MemHost keeps files in a map.
type MemHost struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemHost returns a host holding a copy of files.
func NewMemHost(files map[string]string) *MemHost {
	h := &MemHost{files: make(map[string][]byte, len(files))}
	for p, content := range files {
		h.files[Normalize(p)] = []byte(content)
	}
	return h
}

func (h *MemHost) Read(p string) ([]byte, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	data, ok := h.files[Normalize(p)]
	if !ok {
		return nil, errors.NotFoundf("file %s", p)
	}
	return append([]byte(nil), data...), nil
}

func (h *MemHost) Exists(p string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.files[Normalize(p)]
	return ok
}

func (h *MemHost) Write(p string, data []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.files[Normalize(p)] = append([]byte(nil), data...)
	return nil
}

func (h *MemHost) Delete(p string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.files, Normalize(p))
	return nil
}

func (h *MemHost) Rename(from, to string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	from, to = Normalize(from), Normalize(to)
	data, ok := h.files[from]
	if !ok {
		return errors.NotFoundf("file %s", from)
	}
	delete(h.files, from)
	h.files[to] = data
	return nil
}

func (h *MemHost) Walk(dir string, fn func(p string) error) error {
	h.mu.RLock()
	var paths []string
	for p := range h.files {
		if within(dir, p) {
			paths = append(paths, p)
		}
	}
	h.mu.RUnlock()

	sort.Strings(paths)
	for _, p := range paths {
		if err := fn(p); err != nil {
			return err
		}
	}
	return nil
}

// Content returns a file as a string, or "" when it does not exist.
func (h *MemHost) Content(p string) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return string(h.files[Normalize(p)])
}

// within reports whether p lies below dir. The root is "" or ".".
func within(dir, p string) bool {
	dir = Normalize(dir)
	if dir == "" || dir == "." {
		return true
	}
	return strings.HasPrefix(p, dir+"/")
}
