package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/zorak1103/dclean/internal/cleanup"
	"github.com/zorak1103/dclean/internal/config"
	"github.com/zorak1103/dclean/internal/docker"
	"github.com/zorak1103/dclean/internal/hosts"
	"github.com/zorak1103/dclean/internal/notification"
	"github.com/zorak1103/dclean/internal/reporting"
)

// newFactory builds per-host runtime clients. Replaced in tests.
var newFactory = docker.NewFactory

// now is the clock used for reports and notifications. Replaced in tests.
var now = time.Now

// runCleanup dials every configured host, runs the requested sweeps and
// delivers the optional report and notification.
func runCleanup(cmd *cobra.Command, c *config.Config, sweeps cleanup.Sweeps) error {
	ctx := commandContext(cmd)

	factory, err := newFactory(c.Runtime.Mode, c.Runtime.Binary)
	if err != nil {
		return fmt.Errorf("failed to set up %s runtime: %w", c.Runtime.Mode, err)
	}

	debugf("Connecting to %d host(s) using the %s backend\n", len(c.Hosts), c.Runtime.Mode)

	inventory, err := hosts.Dial(ctx, targets(c), factory, c.Runtime.PingTimeout)
	if err != nil {
		return err
	}
	defer func() { _ = inventory.Close() }() // Close clients; error not actionable after the run

	cleaner := cleanup.New(inventory, cmd.OutOrStdout(), cleanup.Options{
		DryRun:      c.Cleanup.DryRun,
		NamePattern: c.Cleanup.NamePattern,
	})

	summary, err := cleaner.Run(ctx, sweeps)
	if err != nil {
		return err
	}

	finishRun(cmd, c, summary)
	return nil
}

// finishRun writes the report and sends the notification. Failures here are warnings only.
func finishRun(cmd *cobra.Command, c *config.Config, summary *cleanup.Summary) {
	at := now()

	if c.Output.ReportEnabled {
		path, err := reporting.SaveReport(c.Output.ReportsDir, reporting.GenerateRunReport(summary, at), at)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to save report: %v\n", err)
		} else {
			debugf("Report saved to %s\n", path)
		}
	}

	notifier, err := notification.NewNotifier(c)
	if err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		return
	}
	if err := notifier.SendCleanupSummary(summary, at); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
}

func targets(c *config.Config) []hosts.Target {
	out := make([]hosts.Target, 0, len(c.Hosts))
	for _, h := range c.Hosts {
		out = append(out, hosts.Target{Name: h.Name, Address: h.Address})
	}
	return out
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
