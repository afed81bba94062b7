package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display the effective configuration",
	Long: `Display the effective configuration that dclean will use at runtime.

This shows the merged configuration from:
  1. Default values
  2. Configuration file (config.yaml)
  3. Environment variables (DCLEAN_ prefix)
  4. Command-line flags (highest priority)

Notification URLs are masked.`,
	Example: `  # Show current configuration
  dclean config

  # Show with custom config file
  dclean config --config /etc/dclean/config.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		source := c.ConfigFilePath
		if source == "" {
			source = "(defaults and environment)"
		}

		_, _ = fmt.Fprintln(out, "=== dclean Effective Configuration ===")
		_, _ = fmt.Fprintf(out, "Source: %s\n\n", source)

		_, _ = fmt.Fprintln(out, "🐳 Runtime:")
		_, _ = fmt.Fprintf(out, "   Mode:           %s\n", c.Runtime.Mode)
		_, _ = fmt.Fprintf(out, "   Binary:         %s\n", c.Runtime.Binary)
		_, _ = fmt.Fprintf(out, "   Ping Timeout:   %s\n", c.Runtime.PingTimeout)
		_, _ = fmt.Fprintln(out)

		_, _ = fmt.Fprintln(out, "🖥️  Hosts:")
		for i, h := range c.Hosts {
			address := h.Address
			if address == "" {
				address = "(default)"
			}
			_, _ = fmt.Fprintf(out, "   %d. %-12s %s\n", i+1, h.Name, address)
		}
		_, _ = fmt.Fprintln(out)

		_, _ = fmt.Fprintln(out, "🧹 Cleanup:")
		_, _ = fmt.Fprintf(out, "   Containers:     %v\n", c.Cleanup.Containers)
		_, _ = fmt.Fprintf(out, "   Images:         %v\n", c.Cleanup.Images)
		_, _ = fmt.Fprintf(out, "   Dry Run:        %v\n", c.Cleanup.DryRun)
		_, _ = fmt.Fprintf(out, "   Name Pattern:   %s\n", orDash(c.Cleanup.NamePattern))
		_, _ = fmt.Fprintln(out)

		_, _ = fmt.Fprintln(out, "🔔 Notification:")
		_, _ = fmt.Fprintf(out, "   Enabled:        %v\n", c.Notification.Enabled)
		_, _ = fmt.Fprintf(out, "   Shoutrrr URL:   %s\n", maskShoutrrrURL(c.Notification.ShoutrrURL))
		_, _ = fmt.Fprintln(out)

		_, _ = fmt.Fprintln(out, "📁 Output:")
		_, _ = fmt.Fprintf(out, "   Color:          %v\n", c.Output.Color)
		_, _ = fmt.Fprintf(out, "   Reports:        %v\n", c.Output.ReportEnabled)
		_, _ = fmt.Fprintf(out, "   Reports Dir:    %s\n", c.Output.ReportsDir)

		return nil
	},
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(configCmd)
}

// maskShoutrrrURL masks sensitive parts of Shoutrrr URL
func maskShoutrrrURL(url string) string {
	if url == "" {
		return "❌ Not configured"
	}

	// Extract service type (e.g., discord://, slack://, smtp://)
	parts := strings.SplitN(url, "://", 2)
	if len(parts) != 2 {
		return "✅ Configured (invalid format)"
	}

	return fmt.Sprintf("✅ Configured (%s://***)", parts[0])
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
