package docker

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	apperrors "github.com/zorak1103/dclean/internal/errors"
)

const (
	fieldSeparator = "|"

	containerFormat = "{{.ID}}|{{.Names}}|{{.Status}}"
	imageFormat     = "{{.Repository}}|{{.Tag}}|{{.ID}}"
)

// CommandRunner executes a runtime binary and returns its standard output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs the command with os/exec. Stderr is folded into the error.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
		}
		return out, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return out, nil
}

// cliClient drives the runtime through its command-line binary.
type cliClient struct {
	binary  string
	address string
	run     CommandRunner
}

var _ Client = (*cliClient)(nil)

// NewCLIClient returns a Client that shells out to binary (e.g. "docker" or "podman").
// A non-empty address is passed with -H, so ssh:// hosts work when the binary supports them.
func NewCLIClient(binary, address string, run CommandRunner) Client {
	if run == nil {
		run = ExecRunner
	}
	return &cliClient{
		binary:  binary,
		address: address,
		run:     run,
	}
}

func (c *cliClient) command(ctx context.Context, args ...string) ([]byte, error) {
	if c.address != "" {
		args = append([]string{"-H", c.address}, args...)
	}
	return c.run(ctx, c.binary, args...)
}

func (c *cliClient) Ping(ctx context.Context) error {
	if _, err := c.command(ctx, "version", "--format", "{{.Server.Version}}"); err != nil {
		return fmt.Errorf("failed to reach runtime at %s: %w", displayAddress(c.address), err)
	}
	return nil
}

func (c *cliClient) Close() error {
	return nil
}

func (c *cliClient) ListContainers(ctx context.Context, opts FilterOptions) ([]Container, error) {
	nameFilter, err := compileNamePattern(opts.NamePattern)
	if err != nil {
		return nil, err
	}

	args := []string{"ps", "--no-trunc", "--format", containerFormat}
	if opts.IncludeAll {
		args = append(args, "-a")
	}

	out, err := c.command(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list containers from %s: %w", displayAddress(c.address), err)
	}

	containers, err := ParseContainers(out)
	if err != nil {
		return nil, err
	}

	if nameFilter == nil {
		return containers, nil
	}

	filtered := containers[:0]
	for _, ctr := range containers {
		if nameFilter.MatchString(ctr.Name) {
			filtered = append(filtered, ctr)
		}
	}
	return filtered, nil
}

func (c *cliClient) ListUntaggedImages(ctx context.Context) ([]Image, error) {
	out, err := c.command(ctx, "images", "--no-trunc", "--filter", "dangling=true", "--format", imageFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to list images from %s: %w", displayAddress(c.address), err)
	}
	return ParseImages(out)
}

func (c *cliClient) RemoveContainer(ctx context.Context, id string, opts RemoveOptions) error {
	args := []string{"rm"}
	if opts.Force {
		args = append(args, "-f")
	}
	if opts.RemoveVolumes {
		args = append(args, "-v")
	}
	args = append(args, id)

	if _, err := c.command(ctx, args...); err != nil {
		return fmt.Errorf("failed to remove container %s: %w", id, err)
	}
	return nil
}

func (c *cliClient) RemoveImage(ctx context.Context, id string) error {
	if _, err := c.command(ctx, "rmi", id); err != nil {
		return fmt.Errorf("failed to remove image %s: %w", id, err)
	}
	return nil
}

// ParseContainers parses "ID|Names|Status" lines.
// Blank lines are skipped; any other line without exactly three fields is an error.
func ParseContainers(out []byte) ([]Container, error) {
	var containers []Container
	err := eachRecord(out, func(fields []string) {
		containers = append(containers, Container{
			ID:     fields[0],
			Name:   fields[1],
			Status: fields[2],
		})
	})
	if err != nil {
		return nil, err
	}
	return containers, nil
}

// ParseImages parses "Repository|Tag|ID" lines with the same rules as ParseContainers.
func ParseImages(out []byte) ([]Image, error) {
	var images []Image
	err := eachRecord(out, func(fields []string) {
		images = append(images, Image{
			Repository: fields[0],
			Tag:        fields[1],
			ID:         fields[2],
		})
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

func eachRecord(out []byte, fn func(fields []string)) error {
	lines := strings.Split(strings.ReplaceAll(string(out), "\r\n", "\n"), "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, fieldSeparator)
		if len(fields) != 3 {
			return &apperrors.ParseError{
				Line:   i + 1,
				Text:   line,
				Reason: fmt.Sprintf("expected 3 fields, got %d", len(fields)),
			}
		}
		for j := range fields {
			fields[j] = strings.TrimSpace(fields[j])
		}
		fn(fields)
	}
	return nil
}
