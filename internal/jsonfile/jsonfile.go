// Package jsonfile reads and patches the JSON-with-comments files of an
// Angular workspace (angular.json, package.json, tsconfig.json) without
// losing their comments.
package jsonfile

import (
	"encoding/json"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/dosanma1/forge-native/internal/errors"
	"github.com/dosanma1/forge-native/internal/tree"
)

// Op is one RFC 6902 operation.
type Op struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// Set adds or replaces the value at pointer. Missing parent objects are
// created.
func Set(pointer string, value any) Op {
	return Op{Op: "add", Path: pointer, Value: value}
}

// Remove deletes the value at pointer. A missing value is not an error.
func Remove(pointer string) Op {
	return Op{Op: "remove", Path: pointer}
}

// Pointer builds a JSON pointer from unescaped keys.
func Pointer(keys ...string) string {
	var b strings.Builder
	for _, k := range keys {
		k = strings.ReplaceAll(k, "~", "~0")
		k = strings.ReplaceAll(k, "/", "~1")
		b.WriteString("/")
		b.WriteString(k)
	}
	return b.String()
}

func parse(t *tree.Tree, path string) (hujson.Value, error) {
	data, err := t.Read(path)
	if err != nil {
		return hujson.Value{}, err
	}
	v, err := hujson.Parse(data)
	if err != nil {
		return hujson.Value{}, errors.Wrapf(err, "failed to parse %s", path)
	}
	return v, nil
}

// Standard returns path as plain JSON with comments and trailing commas
// stripped.
func Standard(t *tree.Tree, path string) ([]byte, error) {
	v, err := parse(t, path)
	if err != nil {
		return nil, err
	}
	v.Standardize()
	return v.Pack(), nil
}

// Read decodes path into out. Comments and trailing commas are allowed.
func Read(t *tree.Tree, path string, out any) error {
	data, err := Standard(t, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "failed to decode %s", path)
	}
	return nil
}

// Patch applies ops to path in order and writes the result back.
func Patch(t *tree.Tree, path string, ops ...Op) error {
	v, err := parse(t, path)
	if err != nil {
		return err
	}

	for _, op := range ops {
		switch op.Op {
		case "add":
			if err := ensureParents(&v, op.Path); err != nil {
				return errors.Wrapf(err, "failed to patch %s", path)
			}
		case "remove":
			if v.Find(op.Path) == nil {
				continue
			}
		}
		if err := applyOp(&v, op); err != nil {
			return errors.Wrapf(err, "failed to patch %s at %s", path, op.Path)
		}
	}

	return t.Overwrite(path, v.Pack())
}

// ensureParents adds an empty object for every missing ancestor of pointer.
func ensureParents(v *hujson.Value, pointer string) error {
	parts := strings.Split(pointer, "/")
	for i := 2; i < len(parts); i++ {
		parent := strings.Join(parts[:i], "/")
		if v.Find(parent) != nil {
			continue
		}
		if err := applyOp(v, Op{Op: "add", Path: parent, Value: map[string]any{}}); err != nil {
			return err
		}
	}
	return nil
}

func applyOp(v *hujson.Value, op Op) error {
	patch, err := json.Marshal([]Op{op})
	if err != nil {
		return err
	}
	return v.Patch(patch)
}

// Write creates or replaces path with v encoded as indented JSON.
func Write(t *tree.Tree, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", path)
	}
	return t.Write(path, append(data, '\n'))
}
