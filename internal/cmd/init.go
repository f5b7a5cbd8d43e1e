package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dosanma1/forge-native/internal/config"
	"github.com/dosanma1/forge-native/internal/errors"
	"github.com/dosanma1/forge-native/internal/ui"
)

func newInitCmd(o *globalOptions) *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.FileName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(o.cwd, config.FileName)
			if _, err := os.Stat(path); err == nil && !force {
				return errors.WithHint(errors.AlreadyExistsf("file %s", path), "pass --force to overwrite it")
			}
			if err := config.Default().Save(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessStyle.Render(ui.IconSuccess+" wrote "+path))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return initCmd
}
