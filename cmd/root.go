// Package cmd implements the CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/zorak1103/dclean/internal/cleanup"
	"github.com/zorak1103/dclean/internal/config"
	"github.com/zorak1103/dclean/internal/version"
)

var (
	cfgFile       string
	verbose       bool
	dryRun        bool
	noColor       bool
	runtimeMode   string
	hostFlags     []string
	cfg           *config.Config
	errConfigLoad error
)

var rootCmd = &cobra.Command{
	Use:   "dclean",
	Short: "Remove exited containers and dangling images",
	Long: `dclean removes exited containers and untagged ("<none>") images from one or
more container runtime hosts.

Running dclean without a subcommand performs both sweeps:
  1. Exited-container sweep: containers whose status is "Created" or contains
     "Exited" are force-removed together with their anonymous volumes.
  2. Dangling-image sweep: untagged images found on the primary host are
     removed on every configured host.

Individual removal failures are reported at the end and do not change the
exit code. Listing failures and unreachable hosts abort the run.`,
	Example: `  # Clean the local runtime
  dclean

  # Preview what would be removed
  dclean --dry-run

  # Clean the local runtime and a remote host over ssh
  dclean --mode cli --host local --host build=ssh://ops@build-01`,
	Version:       version.GetFullVersion(),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if noColor {
			color.NoColor = true
		}

		skipConfig := cmd.Name() == "init" || cmd.Name() == "help" || cmd.Name() == "version"
		if skipConfig {
			return nil
		}

		loaded, err := config.Load(cfgFile)
		if err != nil {
			// Stored for commands that need a config; they fail in requireConfig().
			errConfigLoad = err
			debugf("Warning: could not load config: %v\n", err)
			return nil
		}

		if err := applyFlagOverrides(cmd, loaded); err != nil {
			errConfigLoad = err
			return nil
		}

		cfg, errConfigLoad = loaded, nil
		if !cfg.Output.Color {
			color.NoColor = true
		}

		if cfg.ConfigFilePath != "" {
			debugf("Loaded configuration from: %s\n", cfg.ConfigFilePath)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		return runCleanup(cmd, c, cleanup.Sweeps{
			Containers: c.Cleanup.Containers,
			Images:     c.Cleanup.Images,
		})
	},
}

// Execute adds all child commands to the root command and runs it.
// The process exits with status 1 when the command returns an error.
func Execute() {
	ctx, stop := signalContext()
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&dryRun, "dry-run", false, "show what would be removed without removing anything")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
	flags.StringVar(&runtimeMode, "mode", "", "runtime backend: sdk or cli (overrides runtime.mode)")
	flags.StringArrayVar(&hostFlags, "host", nil, "target host as name=address or address; repeatable, replaces configured hosts")
}

// applyFlagOverrides layers command-line flags over the loaded configuration and re-validates it.
func applyFlagOverrides(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("dry-run") {
		c.Cleanup.DryRun = dryRun
	}
	if flags.Changed("mode") {
		c.Runtime.Mode = runtimeMode
	}
	if flags.Changed("host") {
		overridden := make([]config.HostConfig, 0, len(hostFlags))
		for _, value := range hostFlags {
			h, err := config.ParseHostFlag(value)
			if err != nil {
				return err
			}
			overridden = append(overridden, h)
		}
		c.Hosts = overridden
	}

	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid command-line overrides: %w", err)
	}
	return nil
}

// requireConfig returns the loaded configuration or the reason it is missing.
func requireConfig() (*config.Config, error) {
	if errConfigLoad != nil {
		return nil, fmt.Errorf("failed to load configuration: %w\n\nRun 'dclean init' to create a config.yaml", errConfigLoad)
	}
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return cfg, nil
}

func debugf(format string, args ...interface{}) {
	if !verbose {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
