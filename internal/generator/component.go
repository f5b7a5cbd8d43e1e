package generator

import (
	"context"
	"path"

	"github.com/dosanma1/forge-native/internal/errors"
	"github.com/dosanma1/forge-native/internal/logger"
	"github.com/dosanma1/forge-native/internal/options"
	"github.com/dosanma1/forge-native/internal/settings"
	"github.com/dosanma1/forge-native/internal/template"
)

// ComponentGenerator creates a component with a web and a mobile template.
type ComponentGenerator struct {
	engine *template.Engine
	schema *options.Schema
}

// NewComponentGenerator creates a new component generator.
func NewComponentGenerator() *ComponentGenerator {
	return &ComponentGenerator{
		engine: template.NewEngine(),
		schema: mustSchema("component"),
	}
}

// Name returns the generator name.
func (g *ComponentGenerator) Name() string {
	return "component"
}

// Description returns the generator description.
func (g *ComponentGenerator) Description() string {
	return "Generate a component with web and NativeScript templates"
}

// Schema returns the option schema.
func (g *ComponentGenerator) Schema() *options.Schema {
	return g.schema
}

// Generate creates the component files and declares the component in the
// web and mobile modules.
func (g *ComponentGenerator) Generate(ctx context.Context, opts GeneratorOptions) error {
	name := options.String(opts.Data, "name")
	if name == "" {
		return errors.InvalidOptionf("component name is required")
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

	prefix := options.String(opts.Data, "prefix")
	if prefix == "" {
		prefix = s.Prefix
	}
	selector := options.String(opts.Data, "selector")
	if selector == "" {
		selector = prefix + "-" + template.Dasherize(name)
	}

	logger.Logger.Infof("generating component %s in %s", name, dir)
	if _, err := g.engine.ApplyDir(opts.Tree, "component", dir, map[string]any{
		"name":     name,
		"nsext":    s.NsExtension,
		"selector": selector,
		"indent":   s.Indentation,
	}, nil); err != nil {
		return err
	}

	if options.Bool(opts.Data, "skipImport") {
		return nil
	}
	if s.Standalone && options.String(opts.Data, "module") == "" {
		logger.Logger.Infof("standalone project %s, not declaring %s", s.Project, name)
		return nil
	}

	mod, err := resolveModule(opts.Tree, s, options.String(opts.Data, "module"), "")
	if err != nil {
		return err
	}
	file := path.Join(dir, template.Dasherize(name)+".component.ts")
	return declareInBoth(ctx, opts, s, mod, "declarations", template.Classify(name)+"Component", file)
}

// declareInBoth adds symbol to field in the web module and its mobile
// counterpart, whichever exist. At least one must.
func declareInBoth(ctx context.Context, opts GeneratorOptions, s *settings.Settings, web moduleRef, field, symbol, file string) error {
	mobile := moduleRef{Path: s.MobilePath(web.Path), Class: web.Class}

	declared := false
	for _, mod := range []moduleRef{web, mobile} {
		if !opts.Tree.Exists(mod.Path) {
			continue
		}
		if err := declare(ctx, opts.Tree, mod, field, symbol, file); err != nil {
			return err
		}
		declared = true
	}
	if !declared {
		return errors.NotFoundf("module %s", web.Path)
	}
	return nil
}
