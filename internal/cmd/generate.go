package cmd

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/spf13/cobra"

	"github.com/dosanma1/forge-native/internal/generator"
	"github.com/dosanma1/forge-native/internal/options"
	"github.com/dosanma1/forge-native/internal/ui"
)

func newGenerateCmd(o *globalOptions) *cobra.Command {
	registry := generator.Default()

	generateCmd := &cobra.Command{
		Use:     "generate [schematic] [name]",
		Aliases: []string{"g"},
		Short:   "Run a schematic",
		Long: `Run a schematic against the current Angular workspace.

Examples:
  forge-native generate add-ns --web-extension web
  forge-native g component home --module app
  forge-native g migrate-module home --dry-run`,
	}

	for _, name := range registry.List() {
		g, _ := registry.Get(name)
		generateCmd.AddCommand(newSchematicCmd(o, registry, g))
	}
	return generateCmd
}

// newSchematicCmd derives a command from a schematic's option schema:
// positional properties become arguments, the rest become flags.
func newSchematicCmd(o *globalOptions, registry *generator.Registry, g generator.Generator) *cobra.Command {
	schema := g.Schema()

	var positional []options.Property
	use := g.Name()
	for _, p := range schema.Properties {
		if p.Positional >= 0 {
			positional = append(positional, p)
			use += " [" + p.Name + "]"
		}
	}

	schematicCmd := &cobra.Command{
		Use:   use,
		Short: g.Description(),
		Args:  cobra.MaximumNArgs(len(positional)),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make(map[string]any)
			for i, arg := range args {
				values[positional[i].Name] = arg
			}
			for _, p := range schema.Properties {
				flag := cmd.Flags().Lookup(flagName(p.Name))
				if flag == nil || !flag.Changed {
					continue
				}
				if p.Type == options.TypeBoolean {
					v, _ := cmd.Flags().GetBool(flag.Name)
					values[p.Name] = v
					continue
				}
				values[p.Name] = flag.Value.String()
			}
			return o.runSchematic(cmd, registry, g.Name(), values)
		},
	}

	for _, p := range schema.Properties {
		desc := p.Description
		if len(p.Enum) > 0 {
			desc += fmt.Sprintf(" (one of: %s)", strings.Join(p.Enum, ", "))
		}
		switch p.Type {
		case options.TypeBoolean:
			def, _ := p.Default.(bool)
			schematicCmd.Flags().BoolP(flagName(p.Name), p.Alias, def, desc)
		default:
			def, _ := p.Default.(string)
			schematicCmd.Flags().StringP(flagName(p.Name), p.Alias, def, desc)
		}
	}
	return schematicCmd
}

func (o *globalOptions) runSchematic(cmd *cobra.Command, registry *generator.Registry, name string, values map[string]any) error {
	t, err := o.openWorkspace()
	if err != nil {
		return err
	}

	var prompter options.Prompter
	if o.interactive() {
		prompter = ui.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	}

	ctx := cmd.Context()
	err = registry.Run(ctx, name, generator.GeneratorOptions{
		Tree:     t,
		Data:     values,
		Project:  o.project,
		Config:   o.config,
		Progress: cmd.ErrOrStderr(),
	}, prompter)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	actions := t.Actions()
	ui.PrintActions(out, actions)
	if !o.dryRun {
		if err := t.Flush(ctx); err != nil {
			return err
		}
	}
	ui.PrintResult(out, actions, o.dryRun)
	return nil
}

// flagName turns an option name into a flag: webExtension becomes
// web-extension.
func flagName(option string) string {
	return strcase.ToKebab(option)
}
