// Package template renders the embedded schematic templates.
package template

import (
	"bytes"
	"embed"
	"io/fs"
	"path"
	"regexp"
	"strings"
	"text/template"

	"github.com/iancoleman/strcase"

	"github.com/dosanma1/forge-native/internal/errors"
	"github.com/dosanma1/forge-native/internal/tree"
)

//go:embed all:templates
var templatesFS embed.FS

// TemplateSuffix is stripped from rendered file names.
const TemplateSuffix = ".tmpl"

// pathVar matches __key__ and __key@func__ in template file names.
var pathVar = regexp.MustCompile(`__([A-Za-z]+)(?:@([A-Za-z]+))?__`)

// Engine provides template rendering capabilities.
type Engine struct {
	funcMap template.FuncMap
}

// NewEngine creates a new template engine.
func NewEngine() *Engine {
	return &Engine{
		funcMap: template.FuncMap{
			"dasherize":  Dasherize,
			"classify":   Classify,
			"camelize":   Camelize,
			"underscore": Underscore,
			"upper":      strings.ToUpper,
			"lower":      strings.ToLower,
			"replace":    strings.ReplaceAll,
			"join":       strings.Join,
		},
	}
}

// Render renders a template string with the given data.
func (e *Engine) Render(templateStr string, data any) (string, error) {
	tmpl, err := template.New("template").Funcs(e.funcMap).Option("missingkey=error").Parse(templateStr)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse template")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, "failed to execute template")
	}

	return buf.String(), nil
}

// RenderTemplate renders an embedded template file with the given data.
func (e *Engine) RenderTemplate(templatePath string, data any) (string, error) {
	content, err := templatesFS.ReadFile("templates/" + templatePath)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read embedded template %s", templatePath)
	}

	return e.Render(string(content), data)
}

// ApplyDir renders every template below templates/<dir> into t under
// dest. File names have their __key@func__ segments substituted from data
// and lose the .tmpl suffix. skip, when set, is asked about each output
// path relative to dest; existing files are an error.
func (e *Engine) ApplyDir(t *tree.Tree, dir, dest string, data map[string]any, skip func(rel string) bool) ([]string, error) {
	root := path.Join("templates", dir)
	var created []string

	err := fs.WalkDir(templatesFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := e.renderPath(strings.TrimPrefix(p, root+"/"), data)
		if err != nil {
			return err
		}
		if skip != nil && skip(rel) {
			return nil
		}

		content, err := templatesFS.ReadFile(p)
		if err != nil {
			return err
		}
		out, err := e.Render(string(content), data)
		if err != nil {
			return errors.Wrapf(err, "template %s", p)
		}

		target := tree.Normalize(path.Join(dest, rel))
		if err := t.Create(target, []byte(out)); err != nil {
			return err
		}
		created = append(created, target)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to apply templates %s", dir)
	}
	return created, nil
}

// renderPath substitutes the variables of a template file name.
func (e *Engine) renderPath(name string, data map[string]any) (string, error) {
	var missing error
	out := pathVar.ReplaceAllStringFunc(name, func(m string) string {
		sub := pathVar.FindStringSubmatch(m)
		value, ok := data[sub[1]].(string)
		if !ok {
			missing = errors.Newf("no string value for %s in %s", sub[1], name)
			return m
		}
		if sub[2] == "" {
			return value
		}
		fn, ok := e.funcMap[sub[2]].(func(string) string)
		if !ok {
			missing = errors.Newf("unknown path function %s in %s", sub[2], name)
			return m
		}
		return fn(value)
	})
	return strings.TrimSuffix(out, TemplateSuffix), missing
}

// Dasherize converts a string to dash-case (kebab-case).
func Dasherize(s string) string {
	return strcase.ToKebab(s)
}

// Classify converts a string to PascalCase.
func Classify(s string) string {
	return strcase.ToCamel(s)
}

// Camelize converts a string to camelCase.
func Camelize(s string) string {
	return strcase.ToLowerCamel(s)
}

// Underscore converts a string to snake_case.
func Underscore(s string) string {
	return strcase.ToSnake(s)
}
