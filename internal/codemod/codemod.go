// Package codemod chains source edits on one file. Every step sees a fresh
// parse of the text the previous step committed, so offsets never go stale.
package codemod

import (
	"context"

	"github.com/dosanma1/forge-native/internal/ast"
	"github.com/dosanma1/forge-native/internal/change"
	"github.com/dosanma1/forge-native/internal/errors"
	"github.com/dosanma1/forge-native/internal/logger"
	"github.com/dosanma1/forge-native/internal/tree"
)

// Step computes edits against a parse of the current file content.
type Step func(u *ast.Unit) ([]change.Edit, error)

// Modify runs steps in order against path. After each step its edits are
// committed and the file is parsed again for the next one. The first
// failing step stops the chain; edits committed by earlier steps stay
// staged in the tree.
func Modify(ctx context.Context, t *tree.Tree, path string, steps ...Step) error {
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := apply(ctx, t, path, step); err != nil {
			return errors.Wrapf(err, "step %d on %s", i+1, path)
		}
	}
	return nil
}

func apply(ctx context.Context, t *tree.Tree, path string, step Step) error {
	rec, err := t.BeginUpdate(path)
	if err != nil {
		return err
	}

	unit, err := ast.Parse(ctx, rec.Path(), rec.Snapshot())
	if err != nil {
		return err
	}
	defer unit.Close()

	edits, err := step(unit)
	if err != nil {
		return err
	}
	if len(edits) == 0 {
		return nil
	}

	if err := change.Apply(rec, edits); err != nil {
		return err
	}
	logger.Logger.Debugw("committing edits", "file", path, "edits", len(edits))
	return t.CommitUpdate(rec)
}

// Inspect parses path and hands the unit to fn. Nothing is written.
func Inspect(ctx context.Context, t *tree.Tree, path string, fn func(u *ast.Unit) error) error {
	data, err := t.Read(path)
	if err != nil {
		return err
	}
	unit, err := ast.Parse(ctx, path, data)
	if err != nil {
		return err
	}
	defer unit.Close()
	return fn(unit)
}
