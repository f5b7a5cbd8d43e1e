package generator

import (
	"context"
	"path"
	"strings"

	"github.com/dosanma1/forge-native/internal/codemod"
	"github.com/dosanma1/forge-native/internal/errors"
	"github.com/dosanma1/forge-native/internal/logger"
	"github.com/dosanma1/forge-native/internal/options"
	"github.com/dosanma1/forge-native/internal/tree"
	"github.com/dosanma1/forge-native/internal/ui"
)

// ConvertRelativeImportsGenerator rewrites ../ imports to @src/ imports.
type ConvertRelativeImportsGenerator struct {
	schema *options.Schema
}

// NewConvertRelativeImportsGenerator creates a new convert-relative-imports
// generator.
func NewConvertRelativeImportsGenerator() *ConvertRelativeImportsGenerator {
	return &ConvertRelativeImportsGenerator{
		schema: mustSchema("convert-relative-imports"),
	}
}

// Name returns the generator name.
func (g *ConvertRelativeImportsGenerator) Name() string {
	return "convert-relative-imports"
}

// Description returns the generator description.
func (g *ConvertRelativeImportsGenerator) Description() string {
	return "Rewrite relative imports that leave their folder to @src/ imports"
}

// Schema returns the option schema.
func (g *ConvertRelativeImportsGenerator) Schema() *options.Schema {
	return g.schema
}

// Generate rewrites every .ts file below the source root.
func (g *ConvertRelativeImportsGenerator) Generate(ctx context.Context, opts GeneratorOptions) error {
	s, err := loadSettings(ctx, opts, configOf(opts))
	if err != nil {
		return err
	}

	files, err := opts.Tree.Files(s.SourceRoot, ".ts")
	if err != nil {
		return err
	}

	bar := ui.NewProgress(opts.Progress, len(files), "Converting imports")
	converted := 0
	for _, file := range files {
		before := len(opts.Tree.Actions())
		if err := codemod.Modify(ctx, opts.Tree, file, codemod.RewriteModulePaths(srcImport(s.SourceRoot, file))); err != nil {
			return errors.Wrapf(err, "failed to convert imports in %s", file)
		}
		if len(opts.Tree.Actions()) != before {
			converted++
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	logger.Logger.Infof("converted imports in %d of %d files", converted, len(files))

	return ensureSrcAlias(opts.Tree, s.TsConfig, srcTargets(s, ""))
}

// srcImport maps specifiers of file that climb out of its folder to
// @src/<path>. Specifiers resolving outside root are kept.
func srcImport(root, file string) func(spec string) (string, bool) {
	return func(spec string) (string, bool) {
		if !strings.HasPrefix(spec, "../") {
			return "", false
		}
		target := tree.Normalize(path.Join(path.Dir(file), spec))
		if root != "" {
			if !strings.HasPrefix(target, root+"/") {
				return "", false
			}
			target = strings.TrimPrefix(target, root+"/")
		} else if strings.HasPrefix(target, "../") {
			return "", false
		}
		return "@src/" + target, true
	}
}
