package generator

import (
	"context"
	"path"
	"strings"

	"github.com/dosanma1/forge-native/internal/ast"
	"github.com/dosanma1/forge-native/internal/codemod"
	"github.com/dosanma1/forge-native/internal/errors"
	"github.com/dosanma1/forge-native/internal/logger"
	"github.com/dosanma1/forge-native/internal/options"
	"github.com/dosanma1/forge-native/internal/settings"
	"github.com/dosanma1/forge-native/internal/template"
	"github.com/dosanma1/forge-native/internal/tree"
)

// moduleSwaps maps web-only Angular modules to their NativeScript
// equivalents in @nativescript/angular.
var moduleSwaps = []struct{ Web, Mobile string }{
	{"BrowserModule", "NativeScriptModule"},
	{"CommonModule", "NativeScriptCommonModule"},
	{"FormsModule", "NativeScriptFormsModule"},
	{"HttpClientModule", "NativeScriptHttpClientModule"},
}

// MigrateModuleGenerator creates the mobile copy of a web module.
type MigrateModuleGenerator struct {
	engine *template.Engine
	schema *options.Schema
}

// NewMigrateModuleGenerator creates a new migrate-module generator.
func NewMigrateModuleGenerator() *MigrateModuleGenerator {
	return &MigrateModuleGenerator{
		engine: template.NewEngine(),
		schema: mustSchema("migrate-module"),
	}
}

// Name returns the generator name.
func (g *MigrateModuleGenerator) Name() string {
	return "migrate-module"
}

// Description returns the generator description.
func (g *MigrateModuleGenerator) Description() string {
	return "Create the NativeScript version of a web module"
}

// Schema returns the option schema.
func (g *MigrateModuleGenerator) Schema() *options.Schema {
	return g.schema
}

// Generate copies the module to <file>.<ns>.ts, swaps web modules for
// NativeScript ones and migrates every declared component.
func (g *MigrateModuleGenerator) Generate(ctx context.Context, opts GeneratorOptions) error {
	s, err := loadSettings(ctx, opts, configOf(opts))
	if err != nil {
		return err
	}
	web, err := resolveModule(opts.Tree, s, options.String(opts.Data, "name"), options.String(opts.Data, "path"))
	if err != nil {
		return err
	}
	if isMobileFile(web.Path, s.NsExtension) {
		return errors.InvalidOptionf("%s is already a mobile module", web.Path)
	}
	mobile := moduleRef{Path: s.MobilePath(web.Path), Class: web.Class}

	source, err := opts.Tree.Read(web.Path)
	if err != nil {
		return err
	}
	if err := opts.Tree.Create(mobile.Path, source); err != nil {
		return err
	}
	logger.Logger.Infof("migrating %s to %s", web.Path, mobile.Path)

	var steps []codemod.Step
	for _, swap := range moduleSwaps {
		steps = append(steps, codemod.ReplaceSymbol(mobile.Class, ngModule, "imports", swap.Web, swap.Mobile, nativeScriptAngular)...)
	}
	steps = append(steps,
		codemod.AddToDecoratorField(mobile.Class, ngModule, "schemas", noErrorsSchema),
		codemod.AddImport(noErrorsSchema, angularCore),
	)
	if err := codemod.Modify(ctx, opts.Tree, mobile.Path, steps...); err != nil {
		return err
	}

	components, err := declaredComponents(ctx, opts.Tree, web)
	if err != nil {
		return err
	}
	for _, class := range components {
		if err := migrateComponent(ctx, opts.Tree, g.engine, s, web, class, nil); err != nil {
			return err
		}
	}
	return nil
}

// declaredComponents lists the *Component entries of the module's
// declarations.
func declaredComponents(ctx context.Context, t *tree.Tree, mod moduleRef) ([]string, error) {
	var classes []string
	err := codemod.Inspect(ctx, t, mod.Path, func(u *ast.Unit) error {
		found, err := u.FindAll(ast.Pattern{
			{Kind: ast.KindClass, Name: mod.Class},
			{Kind: ast.KindDecorator, Name: ngModule},
			{Kind: ast.KindPair, Name: "declarations"},
			{Kind: ast.KindArray},
			{Kind: ast.KindIdentifier},
		})
		if err != nil {
			return err
		}
		if len(found) == 0 {
			if _, err := u.ClassMetadata(mod.Class, ngModule); err != nil {
				return err
			}
		}
		for _, n := range found {
			if name := u.Text(n); strings.HasSuffix(name, "Component") {
				classes = append(classes, name)
			}
		}
		return nil
	})
	return classes, err
}

// MigrateComponentGenerator creates the mobile template of a web component.
type MigrateComponentGenerator struct {
	engine *template.Engine
	schema *options.Schema
}

// NewMigrateComponentGenerator creates a new migrate-component generator.
func NewMigrateComponentGenerator() *MigrateComponentGenerator {
	return &MigrateComponentGenerator{
		engine: template.NewEngine(),
		schema: mustSchema("migrate-component"),
	}
}

// Name returns the generator name.
func (g *MigrateComponentGenerator) Name() string {
	return "migrate-component"
}

// Description returns the generator description.
func (g *MigrateComponentGenerator) Description() string {
	return "Create the NativeScript template of a web component"
}

// Schema returns the option schema.
func (g *MigrateComponentGenerator) Schema() *options.Schema {
	return g.schema
}

// Generate creates <name>.component.<ns>.html and declares the component
// in the mobile module when there is one.
func (g *MigrateComponentGenerator) Generate(ctx context.Context, opts GeneratorOptions) error {
	name := options.String(opts.Data, "name")
	if name == "" {
		return errors.InvalidOptionf("component name is required")
	}

	s, err := loadSettings(ctx, opts, configOf(opts))
	if err != nil {
		return err
	}
	web, err := resolveModule(opts.Tree, s, options.String(opts.Data, "module"), "")
	if err != nil {
		return err
	}

	mobile := moduleRef{Path: s.MobilePath(web.Path), Class: web.Class}
	var declareIn *moduleRef
	if opts.Tree.Exists(mobile.Path) {
		declareIn = &mobile
	} else {
		logger.Logger.Infof("%s does not exist, the component is not declared", mobile.Path)
	}
	return migrateComponent(ctx, opts.Tree, g.engine, s, web, template.Classify(name)+"Component", declareIn)
}

// migrateComponent creates the mobile template of class, a component
// imported by the web module. With declareIn set the component is also
// added to that module's declarations.
func migrateComponent(ctx context.Context, t *tree.Tree, engine *template.Engine, s *settings.Settings, web moduleRef, class string, declareIn *moduleRef) error {
	file, err := componentFile(ctx, t, web, class)
	if err != nil {
		return err
	}

	url, err := templateURL(ctx, t, file, class)
	if err != nil {
		return err
	}
	if url == "" {
		logger.Logger.Warnf("%s in %s has an inline template, no mobile template created", class, file)
	} else {
		html := tree.Normalize(path.Join(path.Dir(file), url))
		content, err := engine.RenderTemplate("migrate-component/component.html.tmpl", map[string]any{
			"name":        strings.TrimSuffix(class, "Component"),
			"webTemplate": path.Base(html),
		})
		if err != nil {
			return err
		}
		if err := createOrSkip(t, settings.WithExtension(html, s.NsExtension), content); err != nil {
			return err
		}
	}

	if declareIn == nil {
		return nil
	}
	return declare(ctx, t, *declareIn, "declarations", class, file)
}

// componentFile resolves the file class is imported from in the module.
func componentFile(ctx context.Context, t *tree.Tree, mod moduleRef, class string) (string, error) {
	var file string
	err := codemod.Inspect(ctx, t, mod.Path, func(u *ast.Unit) error {
		sym, ok := u.LookupImport(class)
		if !ok {
			return errors.WithHint(
				errors.NotFoundf("import of %s in %s", class, mod.Path),
				"the component must be imported by the module that declares it")
		}
		file = settings.ResolveModuleFile(mod.Path, sym.ModulePath)
		if file == "" {
			return errors.Wrapf(errors.ErrUnsupportedConstruct, "%s is imported from package %s", class, sym.ModulePath)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if !t.Exists(file) {
		return "", errors.NotFoundf("component file %s", file)
	}
	return file, nil
}
