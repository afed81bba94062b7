package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zorak1103/dclean/internal/hosts"
)

const (
	checkmark = "✓"
	crossmark = "✗"
)

var hostsCmd = &cobra.Command{
	Use:   "hosts",
	Short: "List configured hosts and check they are reachable",
	Long: `List the hosts dclean would sweep, in order, and ping each of them.

The first host is primary: container and image listings run there. Unlike a
cleanup run, an unreachable host does not stop the check of the others.`,
	Example: `  # Check configured hosts
  dclean hosts

  # Check an ad-hoc host list
  dclean hosts --host local --host ci=tcp://ci-01:2375`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}

		factory, err := newFactory(c.Runtime.Mode, c.Runtime.Binary)
		if err != nil {
			return fmt.Errorf("failed to set up %s runtime: %w", c.Runtime.Mode, err)
		}

		results := hosts.Probe(commandContext(cmd), targets(c), factory, c.Runtime.PingTimeout)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(w, "Name\tAddress\tRole\tStatus")
		_, _ = fmt.Fprintln(w, "----\t-------\t----\t------")

		unreachable := 0
		for i, h := range c.Hosts {
			address := h.Address
			if address == "" {
				address = "(default)"
			}
			role := ""
			if i == 0 {
				role = "primary"
			}

			status := checkmark + " reachable"
			if err := results[h.Name]; err != nil {
				status = fmt.Sprintf("%s %v", crossmark, err)
				unreachable++
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", h.Name, address, role, status)
		}
		_ = w.Flush() // Flush buffered output; error not actionable in CLI display context

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "")
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d host(s), %d unreachable (%s backend)\n", len(c.Hosts), unreachable, c.Runtime.Mode)
		return nil
	},
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(hostsCmd)
}
