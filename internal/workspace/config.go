// Package workspace models the Angular workspace file, angular.json.
package workspace

import (
	"sort"

	"github.com/dosanma1/forge-native/internal/errors"
	"github.com/dosanma1/forge-native/internal/jsonfile"
	"github.com/dosanma1/forge-native/internal/tree"
)

const ConfigFileName = "angular.json"

// Config represents angular.json.
type Config struct {
	Version        int                `json:"version"`
	NewProjectRoot string             `json:"newProjectRoot,omitempty"`
	DefaultProject string             `json:"defaultProject,omitempty"`
	Projects       map[string]Project `json:"projects"`
}

// Project is one entry of the projects map.
type Project struct {
	Root        string            `json:"root"`
	SourceRoot  string            `json:"sourceRoot,omitempty"`
	ProjectType ProjectType       `json:"projectType"`
	Prefix      string            `json:"prefix,omitempty"`
	Architect   map[string]Target `json:"architect,omitempty"`
}

// Target is an architect target such as build or serve.
type Target struct {
	Builder        string                    `json:"builder"`
	Options        map[string]any            `json:"options,omitempty"`
	Configurations map[string]map[string]any `json:"configurations,omitempty"`
}

// ProjectType represents the type of project.
type ProjectType string

const (
	ProjectTypeApplication ProjectType = "application"
	ProjectTypeLibrary     ProjectType = "library"
)

// Load reads angular.json from the root of t.
func Load(t *tree.Tree) (*Config, error) {
	var config Config
	if err := jsonfile.Read(t, ConfigFileName, &config); err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.WithHint(err, "run forge-native inside an Angular workspace")
		}
		return nil, errors.Wrap(err, "failed to load workspace")
	}
	if config.Projects == nil {
		config.Projects = make(map[string]Project)
	}
	return &config, nil
}

// Resolve picks a project: the given name, then defaultProject, then the
// only project of the workspace.
func (c *Config) Resolve(name string) (string, *Project, error) {
	if name == "" {
		name = c.DefaultProject
	}
	if name == "" {
		names := c.ProjectNames()
		if len(names) != 1 {
			return "", nil, errors.WithHint(
				errors.Newf("cannot choose among %d projects", len(names)),
				"pass --project or set defaultProject in angular.json")
		}
		name = names[0]
	}

	project := c.GetProject(name)
	if project == nil {
		return "", nil, errors.NotFoundf("project %q", name)
	}
	return name, project, nil
}

// GetProject retrieves a project by name.
func (c *Config) GetProject(name string) *Project {
	if project, exists := c.Projects[name]; exists {
		return &project
	}
	return nil
}

// ProjectNames returns the project names, sorted.
func (c *Config) ProjectNames() []string {
	names := make([]string, 0, len(c.Projects))
	for name := range c.Projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SourceDir returns the project's source root, defaulting to <root>/src.
func (p *Project) SourceDir() string {
	if p.SourceRoot != "" {
		return tree.Normalize(p.SourceRoot)
	}
	return tree.Normalize(p.Root + "/src")
}

// BuildOption returns a string option of the build target.
func (p *Project) BuildOption(key string) string {
	build, ok := p.Architect["build"]
	if !ok {
		return ""
	}
	s, _ := build.Options[key].(string)
	return s
}

// MainPath returns the build target's main file, defaulting to
// <sourceRoot>/main.ts.
func (p *Project) MainPath() string {
	if main := p.BuildOption("main"); main != "" {
		return tree.Normalize(main)
	}
	if browser := p.BuildOption("browser"); browser != "" {
		return tree.Normalize(browser)
	}
	return p.SourceDir() + "/main.ts"
}
