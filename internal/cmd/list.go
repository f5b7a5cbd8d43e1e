package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dosanma1/forge-native/internal/generator"
	"github.com/dosanma1/forge-native/internal/ui"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available schematics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := generator.Default()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.TitleStyle.Render("Schematics"))
			for _, name := range registry.List() {
				g, err := registry.Get(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  %-26s %s\n", name, ui.HelpStyle.Render(g.Description()))
			}
			return nil
		},
	}
}
