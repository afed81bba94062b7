package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zorak1103/dclean/internal/cleanup"
)

var containersCmd = &cobra.Command{
	Use:   "containers",
	Short: "Remove exited containers only",
	Long: `Remove every container on the primary host whose status is "Created" or
contains "Exited". Containers are force-removed together with their anonymous
volumes.`,
	Example: `  # Remove exited containers
  dclean containers

  # Only containers whose name starts with ci-
  DCLEAN_CLEANUP_NAME_PATTERN='^ci-' dclean containers --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		return runCleanup(cmd, c, cleanup.Sweeps{Containers: true})
	},
}

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Remove dangling images only",
	Long: `List untagged ("<none>") images on the primary host and attempt to remove
each of them on every configured host. Hosts where an image does not exist
report a failure that is listed at the end.`,
	Example: `  # Remove dangling images everywhere
  dclean images

  # Preview removals on two hosts
  dclean images --dry-run --host local --host ci=tcp://ci-01:2375`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		return runCleanup(cmd, c, cleanup.Sweeps{Images: true})
	},
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(containersCmd)
	rootCmd.AddCommand(imagesCmd)
}
