// Package notification handles sending notifications to external services.
package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/containrrr/shoutrrr"
	"github.com/zorak1103/dclean/internal/cleanup"
	"github.com/zorak1103/dclean/internal/config"
)

// Notifier handles sending notifications via Shoutrrr
type Notifier struct {
	enabled     bool
	shoutrrrURL string
	send        func(url string, message string) error
}

// NewNotifier initializes a Shoutrrr-based notification client from config.
func NewNotifier(cfg *config.Config) (*Notifier, error) {
	if !cfg.Notification.Enabled {
		return &Notifier{enabled: false}, nil
	}

	url := strings.TrimSpace(cfg.Notification.ShoutrrURL)
	if url == "" {
		return &Notifier{enabled: false}, fmt.Errorf("notification enabled but shoutrrr_url not configured: provide URL in format 'service://credentials' (e.g., slack://token@channel, discord://token@webhookid)")
	}

	return &Notifier{
		enabled:     true,
		shoutrrrURL: url,
		send:        shoutrrr.Send,
	}, nil
}

// SendCleanupSummary delivers the run summary via the configured notification channel.
func (n *Notifier) SendCleanupSummary(summary *cleanup.Summary, at time.Time) error {
	if !n.IsEnabled() {
		return nil // Notifications disabled
	}

	send := n.send
	if send == nil {
		send = shoutrrr.Send
	}

	failures := len(summary.Failures())
	if err := send(n.shoutrrrURL, FormatSummary(summary, at)); err != nil {
		// Extract service type from URL (e.g., "slack://..." -> "slack")
		serviceType := "unknown"
		if idx := strings.Index(n.shoutrrrURL, "://"); idx > 0 {
			serviceType = n.shoutrrrURL[:idx]
		}
		return fmt.Errorf("notification failed to send via %s (removed: %d, failed: %d): %w",
			serviceType, summary.Removed(), failures, err)
	}

	return nil
}

// FormatSummary renders the plain-text notification body.
func FormatSummary(summary *cleanup.Summary, at time.Time) string {
	var sb strings.Builder
	sb.WriteString("🧹 dclean run complete")
	if summary.DryRun {
		sb.WriteString(" (dry run)")
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("📅 Time: %s\n", at.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("🖥️  Hosts: %s\n", strings.Join(summary.Hosts, ", ")))

	if r := summary.Containers; r != nil {
		sb.WriteString(fmt.Sprintf("📦 Containers: %d found, %d removed\n", r.Found, r.Removed))
	}
	if r := summary.Images; r != nil {
		sb.WriteString(fmt.Sprintf("🗑️  Images: %d found, %d removals on %d attempt(s)\n", r.Found, r.Removed, r.Attempts))
	}

	failures := summary.Failures()
	if len(failures) == 0 {
		sb.WriteString("✅ No removal failures\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("⚠️  %d removal(s) failed\n", len(failures)))
	for _, f := range failures {
		sb.WriteString(fmt.Sprintf("- %v\n", f))
	}
	return sb.String()
}

// IsEnabled reports whether notifications are configured and active.
func (n *Notifier) IsEnabled() bool {
	return n != nil && n.enabled
}
