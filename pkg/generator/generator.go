// Package generator exposes the schematics to programs that embed
// forge-native instead of running the CLI.
//
// A typical run stages every change in a tree and writes it only when the
// schematic succeeds:
//
//	host, _ := generator.NewDiskHost(root)
//	t := generator.NewTree(host)
//	err := generator.Default().Run(ctx, "component", generator.GeneratorOptions{
//		Tree: t,
//		Data: map[string]any{"name": "user-profile"},
//	}, nil)
//	if err == nil {
//		err = t.Flush(ctx)
//	}
package generator

import (
	internal "github.com/dosanma1/forge-native/internal/generator"
	"github.com/dosanma1/forge-native/internal/options"
	"github.com/dosanma1/forge-native/internal/tree"
)

// Generator defines the interface for all schematics.
type Generator = internal.Generator

// GeneratorOptions contains common options for all schematics.
type GeneratorOptions = internal.GeneratorOptions

// Registry holds schematics by name.
type Registry = internal.Registry

// Prompter asks for options the caller left unset.
type Prompter = options.Prompter

// Host is the storage a Tree reads from and flushes to.
type Host = tree.Host

// Tree stages file changes over a Host.
type Tree = tree.Tree

// Action is one staged change.
type Action = tree.Action

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return internal.NewRegistry()
}

// Default returns a registry holding every built-in schematic.
func Default() *Registry {
	return internal.Default()
}

// NewTree creates a tree over host.
func NewTree(host Host) *Tree {
	return tree.New(host)
}

// NewDiskHost serves files below root.
func NewDiskHost(root string) (*tree.DiskHost, error) {
	return tree.NewDiskHost(root)
}

// NewMemHost serves files from memory, keyed by workspace path.
func NewMemHost(files map[string]string) *tree.MemHost {
	return tree.NewMemHost(files)
}
