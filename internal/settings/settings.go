// Package settings derives the facts about an Angular project that every
// schematic needs: where main lives, which module it bootstraps and which
// component that module starts.
//
// A Settings value is computed once per invocation and passed down
// explicitly. Nothing here is cached between invocations.
package settings

import (
	"context"
	"path"
	"strings"

	"github.com/dosanma1/forge-native/internal/ast"
	"github.com/dosanma1/forge-native/internal/codemod"
	"github.com/dosanma1/forge-native/internal/config"
	"github.com/dosanma1/forge-native/internal/errors"
	"github.com/dosanma1/forge-native/internal/tree"
	"github.com/dosanma1/forge-native/internal/workspace"
)

// Settings describes one project of the workspace.
type Settings struct {
	Project    string
	Root       string
	SourceRoot string
	AppRoot    string
	MainPath   string
	Prefix     string

	// Standalone is set when main calls bootstrapApplication. Entry module
	// fields are empty then.
	Standalone bool

	EntryModuleClassName  string
	EntryModulePath       string
	EntryModuleImportPath string

	EntryComponentClassName  string
	EntryComponentPath       string
	EntryComponentImportPath string

	NsExtension  string
	WebExtension string
	TsConfig     string
	Indentation  string
}

// Load computes the settings of project, or of the default project when
// project is empty.
func Load(ctx context.Context, t *tree.Tree, ws *workspace.Config, project string, cfg *config.Config) (*Settings, error) {
	if project == "" {
		project = cfg.DefaultProject
	}
	name, p, err := ws.Resolve(project)
	if err != nil {
		return nil, err
	}

	s := &Settings{
		Project:      name,
		Root:         tree.Normalize(p.Root),
		SourceRoot:   p.SourceDir(),
		MainPath:     p.MainPath(),
		Prefix:       p.Prefix,
		NsExtension:  cfg.NsExtension,
		WebExtension: cfg.WebExtension,
		Indentation:  "  ",
	}
	s.AppRoot = workspace.Join(s.SourceRoot, "app")
	if s.Prefix == "" {
		s.Prefix = "app"
	}
	s.TsConfig = workspace.Join(s.Root, "tsconfig.json")
	if !t.Exists(s.TsConfig) {
		s.TsConfig = "tsconfig.json"
	}

	if !t.Exists(s.MainPath) {
		return nil, errors.WithHint(
			errors.NotFoundf("main file %s", s.MainPath),
			"check architect.build.options.main in angular.json")
	}

	if err := s.readMain(ctx, t); err != nil {
		return nil, err
	}
	if s.Standalone {
		return s, nil
	}
	if err := s.readEntryModule(ctx, t); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) readMain(ctx context.Context, t *tree.Tree) error {
	return codemod.Inspect(ctx, t, s.MainPath, func(u *ast.Unit) error {
		class, err := bootstrapArgument(u, "bootstrapModule")
		if err != nil {
			return err
		}
		if class == "" {
			class, err = bootstrapArgument(u, "bootstrapApplication")
			if err != nil {
				return err
			}
			if class == "" {
				return errors.WithHint(
					errors.NotFoundf("bootstrap call in %s", s.MainPath),
					"main must call bootstrapModule or bootstrapApplication")
			}
			s.Standalone = true
			s.EntryComponentClassName = class
			s.EntryComponentImportPath, s.EntryComponentPath = importedFile(u, class)
			return nil
		}

		s.EntryModuleClassName = class
		s.EntryModuleImportPath, s.EntryModulePath = importedFile(u, class)
		if s.EntryModulePath == "" {
			return errors.NotFoundf("import of %s in %s", class, s.MainPath)
		}
		return nil
	})
}

func (s *Settings) readEntryModule(ctx context.Context, t *tree.Tree) error {
	if !t.Exists(s.EntryModulePath) {
		return errors.NotFoundf("entry module %s", s.EntryModulePath)
	}
	return codemod.Inspect(ctx, t, s.EntryModulePath, func(u *ast.Unit) error {
		s.Indentation = detectIndentation(string(u.Source()))

		found, err := u.FindAll(ast.Pattern{
			{Kind: ast.KindClass, Name: s.EntryModuleClassName},
			{Kind: ast.KindDecorator, Name: "NgModule"},
			{Kind: ast.KindPair, Name: "bootstrap"},
			{Kind: ast.KindArray},
			{Kind: ast.KindIdentifier},
		})
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return errors.NotFoundf("bootstrap component of %s in %s", s.EntryModuleClassName, s.EntryModulePath)
		}
		s.EntryComponentClassName = u.Text(found[0])
		s.EntryComponentImportPath, s.EntryComponentPath = importedFile(u, s.EntryComponentClassName)
		return nil
	})
}

// bootstrapArgument returns the identifier passed first to the named call.
func bootstrapArgument(u *ast.Unit, call string) (string, error) {
	calls, err := u.FindAll(ast.Pattern{{Kind: ast.KindCall, Name: call}})
	if err != nil || len(calls) == 0 {
		return "", err
	}
	ids, err := u.FindAllIn(calls[0].ChildByFieldName("arguments"), ast.Pattern{{Kind: ast.KindIdentifier}})
	if err != nil || len(ids) == 0 {
		return "", err
	}
	return u.Text(ids[0]), nil
}

// importedFile returns the module specifier class is imported from and
// the file it resolves to. Package imports resolve to "".
func importedFile(u *ast.Unit, class string) (spec, file string) {
	sym, ok := u.LookupImport(class)
	if !ok {
		return "", ""
	}
	return sym.ModulePath, ResolveModuleFile(u.Path(), sym.ModulePath)
}

// detectIndentation returns the leading whitespace of the first indented
// line, or two spaces.
func detectIndentation(src string) string {
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed != "" && len(trimmed) < len(line) {
			return line[:len(line)-len(trimmed)]
		}
	}
	return "  "
}

// MobilePath inserts the ns extension before .ts: app.module.ts becomes
// app.module.tns.ts. A web extension already present is replaced.
func (s *Settings) MobilePath(file string) string {
	return WithExtension(s.CommonPath(file), s.NsExtension)
}

// WebPath inserts the web extension, if any.
func (s *Settings) WebPath(file string) string {
	return WithExtension(s.CommonPath(file), s.WebExtension)
}

// CommonPath strips a platform extension: app.module.web.ts and
// app.module.tns.ts both become app.module.ts.
func (s *Settings) CommonPath(file string) string {
	for _, ext := range []string{s.NsExtension, s.WebExtension} {
		if ext == "" {
			continue
		}
		dot := strings.LastIndex(file, ".")
		if dot <= strings.LastIndex(file, "/") {
			continue
		}
		if base := file[:dot]; strings.HasSuffix(base, "."+ext) {
			return strings.TrimSuffix(base, "."+ext) + file[dot:]
		}
	}
	return file
}

// WithExtension inserts ext before the last extension of file. An empty
// ext leaves file unchanged.
func WithExtension(file, ext string) string {
	if ext == "" {
		return file
	}
	dot := strings.LastIndex(file, ".")
	if dot <= strings.LastIndex(file, "/") {
		return file + "." + ext
	}
	return file[:dot] + "." + ext + file[dot:]
}

// ResolveModuleFile maps a relative module specifier used in from to the
// .ts file it names. Non-relative specifiers resolve to "".
func ResolveModuleFile(from, spec string) string {
	if !strings.HasPrefix(spec, ".") {
		return ""
	}
	file := tree.Normalize(path.Join(path.Dir(from), spec))
	if !strings.HasSuffix(file, ".ts") {
		file += ".ts"
	}
	return file
}

// RelativeImport returns the module specifier that imports file from the
// file at from.
func RelativeImport(from, file string) string {
	fromDir := strings.Split(path.Dir(tree.Normalize(from)), "/")
	target := strings.Split(strings.TrimSuffix(tree.Normalize(file), ".ts"), "/")
	if fromDir[0] == "." {
		fromDir = nil
	}

	common := 0
	for common < len(fromDir) && common < len(target)-1 && fromDir[common] == target[common] {
		common++
	}

	var parts []string
	for range fromDir[common:] {
		parts = append(parts, "..")
	}
	parts = append(parts, target[common:]...)

	rel := strings.Join(parts, "/")
	if !strings.HasPrefix(rel, "..") {
		rel = "./" + rel
	}
	return rel
}
