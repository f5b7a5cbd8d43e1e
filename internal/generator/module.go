package generator

import (
	"context"
	"path"
	"strings"

	"github.com/dosanma1/forge-native/internal/errors"
	"github.com/dosanma1/forge-native/internal/logger"
	"github.com/dosanma1/forge-native/internal/options"
	"github.com/dosanma1/forge-native/internal/template"
)

// ModuleGenerator creates a web module and its mobile twin.
type ModuleGenerator struct {
	engine *template.Engine
	schema *options.Schema
}

// NewModuleGenerator creates a new module generator.
func NewModuleGenerator() *ModuleGenerator {
	return &ModuleGenerator{
		engine: template.NewEngine(),
		schema: mustSchema("module"),
	}
}

// Name returns the generator name.
func (g *ModuleGenerator) Name() string {
	return "module"
}

// Description returns the generator description.
func (g *ModuleGenerator) Description() string {
	return "Generate an NgModule for web and NativeScript"
}

// Schema returns the option schema.
func (g *ModuleGenerator) Schema() *options.Schema {
	return g.schema
}

// Generate creates <name>.module.ts and <name>.module.<ns>.ts and imports
// the new module into its parent.
func (g *ModuleGenerator) Generate(ctx context.Context, opts GeneratorOptions) error {
	name := options.String(opts.Data, "name")
	if name == "" {
		return errors.InvalidOptionf("module name is required")
	}
	web, mobile := options.Bool(opts.Data, "web"), options.Bool(opts.Data, "nativescript")
	if !web && !mobile {
		return errors.InvalidOptionf("nothing to generate: both web and nativescript are disabled")
	}

	s, err := loadSettings(ctx, opts, configOf(opts))
	if err != nil {
		return err
	}

	dir := options.String(opts.Data, "path")
	if dir == "" {
		dir = s.AppRoot
	}
	if !options.Bool(opts.Data, "flat") {
		dir = path.Join(dir, template.Dasherize(name))
	}

	webFile := template.Dasherize(name) + ".module.ts"
	logger.Logger.Infof("generating module %s in %s", name, dir)
	if _, err := g.engine.ApplyDir(opts.Tree, "module", dir, map[string]any{
		"name":   name,
		"nsext":  s.NsExtension,
		"indent": s.Indentation,
	}, func(rel string) bool {
		if rel == webFile {
			return !web
		}
		return !mobile
	}); err != nil {
		return err
	}

	parentName := options.String(opts.Data, "module")
	if parentName == "" {
		return nil
	}
	parent, err := resolveModule(opts.Tree, s, parentName, "")
	if err != nil {
		return err
	}

	class := template.Classify(name) + "Module"
	file := path.Join(dir, webFile)
	mobileParent := moduleRef{Path: s.MobilePath(parent.Path), Class: parent.Class}

	if web && opts.Tree.Exists(parent.Path) {
		if err := declare(ctx, opts.Tree, parent, "imports", class, file); err != nil {
			return err
		}
	}
	if mobile && opts.Tree.Exists(mobileParent.Path) {
		if err := declare(ctx, opts.Tree, mobileParent, "imports", class, file); err != nil {
			return err
		}
	}
	return nil
}

// isMobileFile reports whether file carries the ns extension.
func isMobileFile(file, nsExtension string) bool {
	return strings.Contains(path.Base(file), "."+nsExtension+".")
}
