package generator

import (
	"context"
	"path"
	"sort"
	"strings"

	"github.com/dosanma1/forge-native/internal/codemod"
	"github.com/dosanma1/forge-native/internal/config"
	"github.com/dosanma1/forge-native/internal/errors"
	"github.com/dosanma1/forge-native/internal/jsonfile"
	"github.com/dosanma1/forge-native/internal/logger"
	"github.com/dosanma1/forge-native/internal/options"
	"github.com/dosanma1/forge-native/internal/settings"
	"github.com/dosanma1/forge-native/internal/template"
	"github.com/dosanma1/forge-native/internal/tree"
	"github.com/dosanma1/forge-native/internal/workspace"
)

const sampleComponent = "barcelona"

// srcAlias is the tsconfig path alias for the source root.
const srcAlias = "@src/*"

// gitignoreEntries are the NativeScript build folders kept out of git.
var gitignoreEntries = []string{"platforms/", "hooks/"}

// AddNSGenerator adds NativeScript to an existing Angular project.
type AddNSGenerator struct {
	engine *template.Engine
	schema *options.Schema
}

// NewAddNSGenerator creates a new add-ns generator.
func NewAddNSGenerator() *AddNSGenerator {
	return &AddNSGenerator{
		engine: template.NewEngine(),
		schema: mustSchema("add-ns"),
	}
}

// Name returns the generator name.
func (g *AddNSGenerator) Name() string {
	return "add-ns"
}

// Description returns the generator description.
func (g *AddNSGenerator) Description() string {
	return "Add NativeScript to an existing Angular project"
}

// Schema returns the option schema.
func (g *AddNSGenerator) Schema() *options.Schema {
	return g.schema
}

// Generate turns the project into a shared web and mobile project.
func (g *AddNSGenerator) Generate(ctx context.Context, opts GeneratorOptions) error {
	cfg := *configOf(opts)
	if ext, ok := opts.Data["nsExtension"].(string); ok && ext != "" {
		cfg.NsExtension = ext
	}
	if ext, ok := opts.Data["webExtension"].(string); ok {
		cfg.WebExtension = ext
	}
	if cfg.NsExtension == cfg.WebExtension {
		return errors.InvalidOptionf("nsExtension and webExtension must differ, both are %q", cfg.NsExtension)
	}
	opts.Config = &cfg

	s, err := loadSettings(ctx, opts, &cfg)
	if err != nil {
		return err
	}
	if s.Standalone {
		return errors.WithHint(
			errors.Wrapf(errors.ErrUnsupportedConstruct, "%s bootstraps a standalone component", s.MainPath),
			"add-ns needs an NgModule based application")
	}

	mobileMain := s.MobilePath(s.MainPath)
	mobileModule := s.MobilePath(s.EntryModulePath)
	for _, p := range []string{mobileMain, mobileModule} {
		if opts.Tree.Exists(p) {
			return errors.WithHint(errors.AlreadyExistsf("file %s", p), "NativeScript was already added to this project")
		}
	}

	if s.WebExtension != "" {
		if err := g.renameWebFiles(ctx, opts.Tree, s); err != nil {
			return err
		}
	}

	if err := g.addMobileEntry(ctx, opts.Tree, s, mobileMain, mobileModule); err != nil {
		return err
	}
	if err := g.addConfigFiles(opts.Tree, s, mobileMain); err != nil {
		return err
	}
	if err := g.patchPackageJSON(opts.Tree, s, &cfg, mobileMain); err != nil {
		return err
	}
	if err := ensureSrcAlias(opts.Tree, s.TsConfig, srcTargets(s, s.WebExtension)); err != nil {
		return err
	}
	if err := appendGitignore(opts.Tree, workspace.Join(s.Root, ".gitignore"), gitignoreEntries); err != nil {
		return err
	}

	if options.Bool(opts.Data, "sample") {
		sample := NewComponentGenerator()
		data, err := sample.Schema().Resolve(map[string]any{"name": sampleComponent}, nil)
		if err != nil {
			return err
		}
		opts.Data = data
		if err := sample.Generate(ctx, opts); err != nil {
			return errors.Wrap(err, "failed to generate the sample component")
		}
	}
	return nil
}

// renameWebFiles moves main and the entry module to their web names and
// points angular.json and main at them.
func (g *AddNSGenerator) renameWebFiles(ctx context.Context, t *tree.Tree, s *settings.Settings) error {
	webMain := s.WebPath(s.MainPath)
	webModule := s.WebPath(s.EntryModulePath)
	logger.Logger.Infof("renaming %s to %s", s.MainPath, webMain)

	if err := t.Rename(s.MainPath, webMain); err != nil {
		return err
	}
	if err := jsonfile.Patch(t, workspace.ConfigFileName,
		jsonfile.Set(jsonfile.Pointer("projects", s.Project, "architect", "build", "options", "main"), webMain),
	); err != nil {
		return err
	}

	if err := t.Rename(s.EntryModulePath, webModule); err != nil {
		return err
	}
	return codemod.Modify(ctx, t, webMain,
		codemod.ReplaceImportPath(s.EntryModuleClassName, settings.RelativeImport(webMain, webModule)),
	)
}

func (g *AddNSGenerator) addMobileEntry(ctx context.Context, t *tree.Tree, s *settings.Settings, mobileMain, mobileModule string) error {
	main, err := g.engine.RenderTemplate("add-ns/main.ts.tmpl", map[string]any{
		"entryModule":       s.EntryModuleClassName,
		"entryModuleImport": settings.RelativeImport(mobileMain, mobileModule),
	})
	if err != nil {
		return err
	}
	if err := t.Create(mobileMain, []byte(main)); err != nil {
		return err
	}

	module, err := g.engine.RenderTemplate("add-ns/app.module.ts.tmpl", map[string]any{
		"entryModule":          s.EntryModuleClassName,
		"entryComponent":       s.EntryComponentClassName,
		"entryComponentImport": settings.RelativeImport(mobileModule, s.EntryComponentPath),
		"indent":               s.Indentation,
	})
	if err != nil {
		return err
	}
	if err := t.Create(mobileModule, []byte(module)); err != nil {
		return err
	}

	if s.EntryComponentPath == "" || !t.Exists(s.EntryComponentPath) {
		logger.Logger.Warnf("entry component %s not found, no mobile template created", s.EntryComponentClassName)
		return nil
	}
	url, err := templateURL(ctx, t, s.EntryComponentPath, s.EntryComponentClassName)
	if err != nil || url == "" {
		return err
	}
	html, err := g.engine.RenderTemplate("add-ns/app.component.html.tmpl", map[string]any{"project": s.Project})
	if err != nil {
		return err
	}
	htmlPath := tree.Normalize(path.Join(path.Dir(s.EntryComponentPath), url))
	return createOrSkip(t, settings.WithExtension(htmlPath, s.NsExtension), html)
}

func (g *AddNSGenerator) addConfigFiles(t *tree.Tree, s *settings.Settings, mobileMain string) error {
	files := []struct{ tmpl, dest string }{
		{"add-ns/app.css.tmpl", workspace.Join(s.SourceRoot, "app.css")},
		{"add-ns/tsconfig.json.tmpl", workspace.Join(s.Root, "tsconfig."+s.NsExtension+".json")},
		{"add-ns/nsconfig.json.tmpl", workspace.Join(s.Root, "nsconfig.json")},
	}
	data := map[string]any{
		"tsconfig":   path.Base(s.TsConfig),
		"sourceRoot": s.SourceRoot,
		"nsext":      s.NsExtension,
		"webext":     s.WebExtension,
		"main":       mobileMain,
	}
	for _, f := range files {
		content, err := g.engine.RenderTemplate(f.tmpl, data)
		if err != nil {
			return err
		}
		if err := createOrSkip(t, f.dest, content); err != nil {
			return err
		}
	}
	return nil
}

func (g *AddNSGenerator) patchPackageJSON(t *tree.Tree, s *settings.Settings, cfg *config.Config, mobileMain string) error {
	pkg := workspace.Join(s.Root, "package.json")
	if !t.Exists(pkg) {
		return errors.WithHint(errors.NotFoundf("file %s", pkg), "run npm init first")
	}

	var ops []jsonfile.Op
	for _, section := range []struct {
		key  string
		deps map[string]string
	}{{"dependencies", cfg.Dependencies()}, {"devDependencies", cfg.DevDependencies()}} {
		names := make([]string, 0, len(section.deps))
		for name := range section.deps {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			ops = append(ops, jsonfile.Set(jsonfile.Pointer(section.key, name), section.deps[name]))
		}
	}
	ops = append(ops,
		jsonfile.Set(jsonfile.Pointer("scripts", "android"), "ns run android"),
		jsonfile.Set(jsonfile.Pointer("scripts", "ios"), "ns run ios"),
		jsonfile.Set(jsonfile.Pointer("main"), strings.TrimPrefix(mobileMain, s.Root+"/")),
	)
	if cfg.NativeScript.AppID != "" {
		ops = append(ops, jsonfile.Set(jsonfile.Pointer("nativescript", "id"), cfg.NativeScript.AppID))
	}
	return jsonfile.Patch(t, pkg, ops...)
}

// srcTargets lists the files @src/* resolves to, platform files first.
func srcTargets(s *settings.Settings, ext string) []string {
	var targets []string
	if ext != "" {
		targets = append(targets, workspace.Join(s.SourceRoot, "*."+ext+".ts"))
	}
	return append(targets, workspace.Join(s.SourceRoot, "*.ts"))
}

// ensureSrcAlias adds the @src/* path mapping to tsconfig unless it is
// already there. A missing tsconfig is created.
func ensureSrcAlias(t *tree.Tree, tsconfig string, targets []string) error {
	if !t.Exists(tsconfig) {
		return jsonfile.Write(t, tsconfig, map[string]any{
			"compilerOptions": map[string]any{
				"baseUrl": "./",
				"paths":   map[string]any{srcAlias: targets},
			},
		})
	}

	var current struct {
		CompilerOptions struct {
			BaseURL string              `json:"baseUrl"`
			Paths   map[string][]string `json:"paths"`
		} `json:"compilerOptions"`
	}
	if err := jsonfile.Read(t, tsconfig, &current); err != nil {
		return err
	}
	if _, ok := current.CompilerOptions.Paths[srcAlias]; ok {
		return nil
	}

	ops := []jsonfile.Op{jsonfile.Set(jsonfile.Pointer("compilerOptions", "paths", srcAlias), targets)}
	if current.CompilerOptions.BaseURL == "" {
		ops = append(ops, jsonfile.Set(jsonfile.Pointer("compilerOptions", "baseUrl"), "./"))
	}
	return jsonfile.Patch(t, tsconfig, ops...)
}

// appendGitignore adds the entries p lacks, creating p when needed.
func appendGitignore(t *tree.Tree, p string, entries []string) error {
	var content string
	if t.Exists(p) {
		var err error
		if content, err = t.ReadString(p); err != nil {
			return err
		}
	}

	present := make(map[string]bool)
	for _, line := range strings.Split(content, "\n") {
		present[strings.TrimSpace(line)] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] && !present["/"+e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += "\n# NativeScript\n" + strings.Join(missing, "\n") + "\n"
	return t.Write(p, []byte(content))
}
