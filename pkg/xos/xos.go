// Package xos writes files so that a crash mid-write never leaves a
// truncated file behind.
package xos

import (
	"os"
	"path/filepath"
)

// DirPerm is used for every directory created on the way to a file.
const DirPerm os.FileMode = 0o755

// FilePerm is the default mode of generated files.
const FilePerm os.FileMode = 0o644

// WriteFile atomically replaces filename with data, creating missing parent
// directories first.
func WriteFile(filename string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(filename), DirPerm); err != nil {
		return err
	}
	return writeAtomic(filename, data, perm)
}

// MoveFile renames oldname to newname, creating newname's directory.
func MoveFile(oldname, newname string) error {
	if err := os.MkdirAll(filepath.Dir(newname), DirPerm); err != nil {
		return err
	}
	return os.Rename(oldname, newname)
}

// RemoveFile deletes filename. A file that is already gone is not an error.
func RemoveFile(filename string) error {
	if err := os.Remove(filename); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
