package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dosanma1/forge-native/internal/config"
	"github.com/dosanma1/forge-native/internal/errors"
	"github.com/dosanma1/forge-native/internal/logger"
)

// Version is stamped at build time.
var Version = "0.1.0"

// globalOptions holds the persistent flags and what PersistentPreRunE
// derives from them. One value lives per command tree.
type globalOptions struct {
	dryRun        bool
	verbose       int
	jsonLogs      bool
	project       string
	noInteractive bool
	cwd           string

	config *config.Config
}

// NewRootCommand builds the forge-native command tree.
func NewRootCommand() *cobra.Command {
	o := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "forge-native",
		Short: "Forge Native - share one Angular code base between web and NativeScript",
		Long: `Forge Native adds NativeScript to Angular workspaces and keeps the web and
mobile halves of a code-sharing project in step.

Schematics edit TypeScript sources through their syntax tree, so existing
formatting and comments are preserved. Every change is staged in memory and
written only when the whole schematic succeeds.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&o.dryRun, "dry-run", false, "Print the changes without writing them")
	flags.CountVarP(&o.verbose, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	flags.BoolVar(&o.jsonLogs, "json-logs", false, "Log as JSON")
	flags.StringVar(&o.project, "project", "", "The angular.json project to work on")
	flags.BoolVar(&o.noInteractive, "no-interactive", false, "Never prompt for missing options")
	flags.StringVar(&o.cwd, "cwd", "", "Run as if started in this directory")

	rootCmd.AddCommand(
		newGenerateCmd(o),
		newListCmd(),
		newValidateCmd(o),
		newInitCmd(o),
		newDoctorCmd(),
	)
	return rootCmd
}

// Execute runs the command tree on os.Args.
func Execute() error {
	defer logger.Sync()
	return NewRootCommand().Execute()
}

// init loads the configuration and sets up logging. Flags win over the
// config file.
func (o *globalOptions) init(cmd *cobra.Command) error {
	if o.cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "failed to get current directory")
		}
		o.cwd = wd
	}

	cfg, err := config.Load(o.cwd)
	if err != nil {
		return err
	}
	o.config = cfg

	verbosity, jsonLogs := cfg.Log.Verbosity, cfg.Log.JSON
	if cmd.Flags().Changed("verbose") {
		verbosity = o.verbose
	}
	if cmd.Flags().Changed("json-logs") {
		jsonLogs = o.jsonLogs
	}
	if err := logger.Initialize(verbosity, jsonLogs); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	if path := cfg.Path(); path != "" {
		logger.Logger.Debugf("loaded config from %s", path)
	}
	return nil
}

// interactive reports whether missing options may be prompted for.
func (o *globalOptions) interactive() bool {
	return !o.noInteractive && o.config.Interactive
}
