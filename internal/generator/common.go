package generator

import (
	"context"
	"path"
	"strings"

	"github.com/dosanma1/forge-native/internal/ast"
	"github.com/dosanma1/forge-native/internal/codemod"
	"github.com/dosanma1/forge-native/internal/config"
	"github.com/dosanma1/forge-native/internal/errors"
	"github.com/dosanma1/forge-native/internal/logger"
	"github.com/dosanma1/forge-native/internal/settings"
	"github.com/dosanma1/forge-native/internal/template"
	"github.com/dosanma1/forge-native/internal/tree"
	"github.com/dosanma1/forge-native/internal/workspace"
)

// Angular and NativeScript package names used across schematics.
const (
	angularCore         = "@angular/core"
	nativeScriptAngular = "@nativescript/angular"
	noErrorsSchema      = "NO_ERRORS_SCHEMA"
	ngModule            = "NgModule"
	ngComponent         = "Component"
)

// moduleRef names an NgModule class and its file.
type moduleRef struct {
	Path  string
	Class string
}

func loadSettings(ctx context.Context, opts GeneratorOptions, cfg *config.Config) (*settings.Settings, error) {
	ws, err := workspace.Load(opts.Tree)
	if err != nil {
		return nil, err
	}
	return settings.Load(ctx, opts.Tree, ws, opts.Project, cfg)
}

func configOf(opts GeneratorOptions) *config.Config {
	if opts.Config == nil {
		return config.Default()
	}
	return opts.Config
}

// resolveModule finds the module declaring new code. An explicit file wins,
// then a module name, then the entry module.
func resolveModule(t *tree.Tree, s *settings.Settings, name, file string) (moduleRef, error) {
	if file != "" {
		file = tree.Normalize(file)
		if !t.Exists(file) {
			return moduleRef{}, errors.NotFoundf("module file %s", file)
		}
		if name == "" {
			name = strings.TrimSuffix(path.Base(s.CommonPath(file)), ".module.ts")
		}
		return moduleRef{Path: file, Class: template.Classify(name) + "Module"}, nil
	}

	if name == "" {
		if s.Standalone {
			return moduleRef{}, errors.WithHint(
				errors.NotFoundf("entry module of standalone project %s", s.Project),
				"pass --module to choose the declaring module")
		}
		return moduleRef{Path: s.EntryModulePath, Class: s.EntryModuleClassName}, nil
	}

	file, err := findModuleFile(t, s, name)
	if err != nil {
		return moduleRef{}, err
	}
	return moduleRef{Path: file, Class: template.Classify(name) + "Module"}, nil
}

// findModuleFile looks below the source root for <name>.module.ts, or its
// web variant.
func findModuleFile(t *tree.Tree, s *settings.Settings, name string) (string, error) {
	files, err := t.Files(s.SourceRoot, ".ts")
	if err != nil {
		return "", err
	}

	want := template.Dasherize(name) + ".module.ts"
	var found []string
	for _, f := range files {
		if path.Base(f) == want || (s.WebExtension != "" && path.Base(f) == settings.WithExtension(want, s.WebExtension)) {
			found = append(found, f)
		}
	}

	switch len(found) {
	case 0:
		return "", errors.WithHint(
			errors.NotFoundf("module %s under %s", want, s.SourceRoot),
			"pass --path with the module file")
	case 1:
		return found[0], nil
	default:
		return "", errors.WithHint(
			errors.Wrapf(errors.ErrAmbiguous, "module %s: %s", want, strings.Join(found, ", ")),
			"pass --path with the module file")
	}
}

// declare adds symbol to field of the module's NgModule metadata and
// imports it from file.
func declare(ctx context.Context, t *tree.Tree, mod moduleRef, field, symbol, file string) error {
	logger.Logger.Infof("adding %s to %s.%s in %s", symbol, mod.Class, field, mod.Path)
	return codemod.Modify(ctx, t, mod.Path,
		codemod.AddToDecoratorField(mod.Class, ngModule, field, symbol),
		codemod.AddImport(symbol, settings.RelativeImport(mod.Path, file)),
	)
}

// templateURL returns the templateUrl of the component class in file, or
// "" for inline templates.
func templateURL(ctx context.Context, t *tree.Tree, file, class string) (string, error) {
	var url string
	err := codemod.Inspect(ctx, t, file, func(u *ast.Unit) error {
		found, err := u.FindAll(ast.Pattern{
			{Kind: ast.KindClass, Name: class},
			{Kind: ast.KindDecorator, Name: ngComponent},
			{Kind: ast.KindPair, Name: "templateUrl"},
			{Kind: ast.KindString},
		})
		if err != nil {
			return err
		}
		if len(found) > 0 {
			url = u.StringValue(found[0])
		}
		return nil
	})
	return url, err
}

// createOrSkip creates path unless it exists already.
func createOrSkip(t *tree.Tree, p, content string) error {
	if t.Exists(p) {
		logger.Logger.Infof("%s already exists, skipping", p)
		return nil
	}
	return t.Create(p, []byte(content))
}
