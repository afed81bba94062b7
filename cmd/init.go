package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zorak1103/dclean/internal/templates"
)

var (
	force bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sample configuration",
	Long: `Init writes a commented config.yaml and a .env template into the current
directory. dclean works without them (defaults target the local runtime only);
create them to configure remote hosts, notifications or reports.`,
	Example: `  # Initialize in current directory
  dclean init

  # Force overwrite existing files
  dclean init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintln(out, "🔧 Initializing dclean...")

		files := []struct {
			name    string
			content []byte
		}{
			{"config.yaml", templates.ConfigYAML},
			{".env", templates.EnvFile},
		}

		for _, f := range files {
			if _, err := os.Stat(f.name); err == nil && !force {
				_, _ = fmt.Fprintf(out, "⚠️  Skipping %s (already exists, use --force to overwrite)\n", f.name)
				continue
			}

			if err := os.WriteFile(f.name, f.content, 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", f.name, err)
			}

			_, _ = fmt.Fprintf(out, "✅ Created %s\n", f.name)
		}

		_, _ = fmt.Fprintln(out, "\n📝 Next steps:")
		_, _ = fmt.Fprintln(out, "   1. Edit config.yaml to list your hosts")
		_, _ = fmt.Fprintln(out, "   2. Run 'dclean hosts' to check they are reachable")
		_, _ = fmt.Fprintln(out, "   3. Run 'dclean --dry-run' to preview a cleanup")

		return nil
	},
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration files")
}
