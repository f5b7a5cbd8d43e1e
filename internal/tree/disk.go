package tree

import (
	"io/fs"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/dosanma1/forge-native/internal/errors"
	"github.com/dosanma1/forge-native/pkg/xos"
)

// skipDirs are never walked, whatever .gitignore says.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"platforms":    true,
	"hooks":        true,
}

// DiskHost reads and writes files below a root directory.
type DiskHost struct {
	root   string
	ignore *ignore.GitIgnore
}

// NewDiskHost returns a host rooted at root. The root's .gitignore, when
// present, prunes walks.
func NewDiskHost(root string) (*DiskHost, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", root)
	}
	h := &DiskHost{root: abs}

	gitignore := filepath.Join(abs, ".gitignore")
	if _, err := os.Stat(gitignore); err == nil {
		gi, err := ignore.CompileIgnoreFile(gitignore)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s", gitignore)
		}
		h.ignore = gi
	}
	return h, nil
}

// Root returns the absolute workspace directory.
func (h *DiskHost) Root() string { return h.root }

func (h *DiskHost) abs(p string) string {
	return filepath.Join(h.root, filepath.FromSlash(Normalize(p)))
}

func (h *DiskHost) Read(p string) ([]byte, error) {
	data, err := os.ReadFile(h.abs(p))
	if os.IsNotExist(err) {
		return nil, errors.NotFoundf("file %s", p)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", p)
	}
	return data, nil
}

func (h *DiskHost) Exists(p string) bool {
	info, err := os.Stat(h.abs(p))
	return err == nil && !info.IsDir()
}

func (h *DiskHost) Write(p string, data []byte) error {
	if err := xos.WriteFile(h.abs(p), data, xos.FilePerm); err != nil {
		return errors.Wrapf(err, "failed to write %s", p)
	}
	return nil
}

func (h *DiskHost) Delete(p string) error {
	if err := xos.RemoveFile(h.abs(p)); err != nil {
		return errors.Wrapf(err, "failed to delete %s", p)
	}
	return nil
}

func (h *DiskHost) Rename(from, to string) error {
	if err := xos.MoveFile(h.abs(from), h.abs(to)); err != nil {
		return errors.Wrapf(err, "failed to rename %s to %s", from, to)
	}
	return nil
}

func (h *DiskHost) Walk(dir string, fn func(p string) error) error {
	start := h.abs(dir)
	if _, err := os.Stat(start); os.IsNotExist(err) {
		return nil
	}

	return filepath.WalkDir(start, func(abs string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(h.root, abs)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if abs != start && (skipDirs[d.Name()] || h.ignored(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}
		if h.ignored(rel) {
			return nil
		}
		return fn(rel)
	})
}

func (h *DiskHost) ignored(rel string) bool {
	return h.ignore != nil && h.ignore.MatchesPath(rel)
}
