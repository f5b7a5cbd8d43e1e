// Package generator provides the schematics that add NativeScript to an
// Angular workspace and keep its web and mobile halves in step.
package generator

import (
	"context"
	"embed"
	"io"
	"sort"

	"github.com/dosanma1/forge-native/internal/config"
	"github.com/dosanma1/forge-native/internal/errors"
	"github.com/dosanma1/forge-native/internal/options"
	"github.com/dosanma1/forge-native/internal/tree"
)

//go:embed schemas/*.json
var schemasFS embed.FS

// Generator defines the interface for all schematics.
type Generator interface {
	// Name returns the name of the schematic.
	Name() string

	// Description returns a human-readable description.
	Description() string

	// Schema returns the option schema.
	Schema() *options.Schema

	// Generate stages its changes in opts.Tree. The caller flushes.
	Generate(ctx context.Context, opts GeneratorOptions) error
}

// GeneratorOptions contains common options for all schematics.
type GeneratorOptions struct {
	// Tree stages every change of the run.
	Tree *tree.Tree

	// Data holds the resolved option values.
	Data map[string]any

	// Project selects the angular.json project. Empty means the default.
	Project string

	Config *config.Config

	// Progress receives progress bars. Nil discards them.
	Progress io.Writer
}

// Registry manages available schematics.
type Registry struct {
	generators map[string]Generator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]Generator),
	}
}

// Default returns a registry holding every built-in schematic.
func Default() *Registry {
	r := NewRegistry()
	for _, g := range []Generator{
		NewAddNSGenerator(),
		NewMigrateModuleGenerator(),
		NewMigrateComponentGenerator(),
		NewModuleGenerator(),
		NewComponentGenerator(),
		NewConvertRelativeImportsGenerator(),
	} {
		if err := r.Register(g); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a generator to the registry.
func (r *Registry) Register(generator Generator) error {
	name := generator.Name()
	if _, exists := r.generators[name]; exists {
		return errors.AlreadyExistsf("generator %q", name)
	}

	r.generators[name] = generator
	return nil
}

// Get retrieves a generator by name.
func (r *Registry) Get(name string) (Generator, error) {
	generator, exists := r.generators[name]
	if !exists {
		return nil, errors.WithHint(
			errors.NotFoundf("generator %q", name),
			"run 'forge-native list' to see the available schematics")
	}

	return generator, nil
}

// List returns all registered generator names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has checks if a generator is registered.
func (r *Registry) Has(name string) bool {
	_, exists := r.generators[name]
	return exists
}

// Run resolves data against the schematic's schema and generates. prompter
// may be nil.
func (r *Registry) Run(ctx context.Context, name string, opts GeneratorOptions, prompter options.Prompter) error {
	g, err := r.Get(name)
	if err != nil {
		return err
	}
	data, err := g.Schema().Resolve(opts.Data, prompter)
	if err != nil {
		return err
	}
	opts.Data = data
	return g.Generate(ctx, opts)
}

// mustSchema parses an embedded option schema.
func mustSchema(name string) *options.Schema {
	raw, err := schemasFS.ReadFile("schemas/" + name + ".json")
	if err != nil {
		panic(err)
	}
	s, err := options.Parse(raw)
	if err != nil {
		panic(errors.Wrapf(err, "schema %s", name))
	}
	return s
}
