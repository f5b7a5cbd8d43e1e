package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dosanma1/forge-native/internal/errors"
	"github.com/dosanma1/forge-native/internal/ui"
	"github.com/dosanma1/forge-native/internal/workspace"
)

func newValidateCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate angular.json and the NativeScript sources",
		Long: `Validates angular.json against its JSON Schema, then checks what the schema
cannot express: the default project exists, every application's main file
exists and every mobile (.tns.ts) source parses.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runValidate(cmd)
		},
	}
}

func (o *globalOptions) runValidate(cmd *cobra.Command) error {
	t, err := o.openWorkspace()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	validator := workspace.NewValidator(t, o.config.NsExtension)

	fmt.Fprintf(out, "Validating %s...\n", workspace.ConfigFileName)
	issues, err := validator.ValidateSchema()
	if err != nil {
		return err
	}

	if len(issues) == 0 {
		config, err := workspace.Load(t)
		if err != nil {
			return err
		}
		issues = validator.Validate(cmd.Context(), config)
	}

	if len(issues) == 0 {
		fmt.Fprintln(out, ui.SuccessStyle.Render(ui.IconSuccess+" "+workspace.ConfigFileName+" is valid"))
		return nil
	}

	fmt.Fprintln(out, ui.ErrorStyle.Render("Validation failed:"))
	for i, issue := range issues {
		fmt.Fprintf(out, "%d. %s\n", i+1, issue)
	}
	return errors.Newf("validation failed with %d issue(s)", len(issues))
}
