package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dosanma1/forge-native/internal/errors"
	"github.com/dosanma1/forge-native/internal/prereq"
	"github.com/dosanma1/forge-native/internal/ui"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that Node.js, npx and the NativeScript CLI are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, prereq.New())
		},
	}
}

func runDoctor(cmd *cobra.Command, checker *prereq.Checker) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range checker.CheckAll(cmd.Context()) {
		if r.Err != nil {
			failed++
			fmt.Fprintln(out, ui.ErrorStyle.Render("✗ "+r.Tool))
			fmt.Fprintf(out, "%s\n\n", r.Err)
			continue
		}
		line := ui.IconSuccess + " " + r.Tool
		if r.Version != "" {
			line += " " + r.Version
		}
		fmt.Fprintln(out, ui.SuccessStyle.Render(line))
	}
	if failed > 0 {
		return errors.Newf("%d prerequisite(s) missing", failed)
	}
	return nil
}
