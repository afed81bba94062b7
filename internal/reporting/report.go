// Package reporting generates markdown reports of cleanup runs.
package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zorak1103/dclean/internal/cleanup"
)

// GenerateRunReport formats a cleanup summary as a markdown report.
func GenerateRunReport(summary *cleanup.Summary, at time.Time) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Cleanup Report\n\n")
	sb.WriteString(fmt.Sprintf("**Date:** %s  \n", at.Format(time.RFC1123)))
	sb.WriteString(fmt.Sprintf("**Hosts:** %s  \n", formatHosts(summary.Hosts)))
	if summary.DryRun {
		sb.WriteString("**Mode:** dry run (nothing was removed)  \n")
	}
	sb.WriteString("\n")

	// Statistics Section
	sb.WriteString("## 📊 Statistics\n\n")
	sb.WriteString("| Sweep | Found | Attempts | Removed | Failed | Success Rate |\n")
	sb.WriteString("|-------|-------|----------|---------|--------|--------------|\n")
	writeRow(&sb, "Exited containers", summary.Containers)
	writeRow(&sb, "Dangling images", summary.Images)
	sb.WriteString("\n")

	failures := summary.Failures()
	if len(failures) == 0 {
		sb.WriteString("No removal failures.\n")
		return sb.String()
	}

	sb.WriteString("## ⚠️ Failures\n\n")
	for _, f := range failures {
		sb.WriteString(fmt.Sprintf("- %v\n", f))
	}

	return sb.String()
}

func writeRow(sb *strings.Builder, label string, r *cleanup.Result) {
	if r == nil {
		sb.WriteString(fmt.Sprintf("| %s | skipped | - | - | - | - |\n", label))
		return
	}
	sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %d | %.1f%% |\n",
		label, r.Found, r.Attempts, r.Removed, len(r.Failures), successRate(r.Attempts, r.Removed)))
}

func formatHosts(hosts []string) string {
	if len(hosts) == 0 {
		return "-"
	}
	quoted := make([]string, 0, len(hosts))
	for _, h := range hosts {
		quoted = append(quoted, "`"+h+"`")
	}
	return strings.Join(quoted, ", ")
}

// SaveReport writes a report into dir and returns the file path.
func SaveReport(dir, content string, at time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	// Generate filename: YYYY-MM-DD_HH-MM-SS.md
	filename := at.Format("2006-01-02_15-04-05") + ".md"
	filePath := filepath.Join(dir, filename)

	if err := os.WriteFile(filePath, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return filePath, nil
}

func successRate(attempts, removed int) float64 {
	if attempts == 0 {
		return 100
	}
	return float64(removed) / float64(attempts) * 100
}
