package workspace

import (
	"context"
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/dosanma1/forge-native/internal/ast"
	"github.com/dosanma1/forge-native/internal/errors"
	"github.com/dosanma1/forge-native/internal/jsonfile"
	"github.com/dosanma1/forge-native/internal/tree"
)

var (
	// namePattern matches valid kebab-case names.
	namePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

	//go:embed schemas/angular-workspace.schema.json
	schemaJSON []byte
)

// Issue is one validation finding.
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string {
	if i.Field == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// Validator validates angular.json and the files it points at.
type Validator struct {
	tree        *tree.Tree
	nsExtension string
}

// NewValidator creates a validator. Files ending in .<nsExtension>.ts are
// parse-checked.
func NewValidator(t *tree.Tree, nsExtension string) *Validator {
	return &Validator{tree: t, nsExtension: nsExtension}
}

// ValidateSchema checks angular.json against the workspace JSON schema.
func (v *Validator) ValidateSchema() ([]Issue, error) {
	data, err := jsonfile.Standard(v.tree, ConfigFileName)
	if err != nil {
		return nil, err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, errors.Wrap(err, "validation error")
	}

	var issues []Issue
	for _, desc := range result.Errors() {
		issues = append(issues, Issue{Field: desc.Field(), Message: desc.Description()})
	}
	return issues, nil
}

// Validate runs the checks the schema cannot express.
func (v *Validator) Validate(ctx context.Context, config *Config) []Issue {
	var issues []Issue

	if config.DefaultProject != "" && config.GetProject(config.DefaultProject) == nil {
		issues = append(issues, Issue{
			Field:   "defaultProject",
			Message: fmt.Sprintf("project %q does not exist", config.DefaultProject),
		})
	}

	for _, name := range config.ProjectNames() {
		project := config.Projects[name]
		issues = append(issues, v.validateProject(ctx, name, &project)...)
	}
	return issues
}

func (v *Validator) validateProject(ctx context.Context, name string, project *Project) []Issue {
	var issues []Issue
	field := "projects." + name

	if err := ValidateName(name); err != nil {
		issues = append(issues, Issue{Field: field, Message: err.Error()})
	}

	if project.ProjectType == ProjectTypeApplication {
		if main := project.MainPath(); !v.tree.Exists(main) {
			issues = append(issues, Issue{
				Field:   field + ".architect.build.options.main",
				Message: fmt.Sprintf("%s does not exist", main),
			})
		}
	}

	if v.nsExtension == "" {
		return issues
	}
	files, err := v.tree.Files(project.SourceDir(), "."+v.nsExtension+".ts")
	if err != nil {
		return append(issues, Issue{Field: field, Message: err.Error()})
	}
	for _, f := range files {
		if msg := v.checkParses(ctx, f); msg != "" {
			issues = append(issues, Issue{Field: field, Message: msg})
		}
	}
	return issues
}

func (v *Validator) checkParses(ctx context.Context, path string) string {
	data, err := v.tree.Read(path)
	if err != nil {
		return err.Error()
	}
	unit, err := ast.Parse(ctx, path, data)
	if err != nil {
		return err.Error()
	}
	defer unit.Close()
	if unit.HasErrors() {
		return fmt.Sprintf("%s has syntax errors", path)
	}
	return ""
}

// ValidateName validates a name follows kebab-case convention.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return errors.Wrapf(errors.ErrInvalidOption,
			"%q must be kebab-case (lowercase letters, numbers, and hyphens only, starting with a letter)", name)
	}
	return nil
}

// Join builds a workspace path from parts, skipping empty ones.
func Join(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return tree.Normalize(strings.Join(kept, "/"))
}
