// Package docker provides clients for talking to a container runtime on one host.
package docker

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/zorak1103/dclean/internal/version"
)

// Client defines the interface for runtime operations against a single host.
// All methods accept context.Context for cancellation support.
type Client interface {
	// Ping verifies the runtime is accessible. Returns error if connection fails.
	Ping(ctx context.Context) error
	// Close releases resources held by the client.
	Close() error

	// ListContainers lists containers matching the provided filter options.
	//
	// Example listing stopped containers too:
	//   containers, err := client.ListContainers(ctx, FilterOptions{IncludeAll: true})
	//   if err != nil {
	//       return fmt.Errorf("failed to list containers: %w", err)
	//   }
	//   for _, c := range containers {
	//       fmt.Printf("  %s: %s (%s)\n", c.Name, c.ID, c.Status)
	//   }
	ListContainers(ctx context.Context, opts FilterOptions) ([]Container, error)
	// ListUntaggedImages lists dangling images (no repository:tag reference).
	ListUntaggedImages(ctx context.Context) ([]Image, error)

	// RemoveContainer removes a container by ID.
	RemoveContainer(ctx context.Context, id string, opts RemoveOptions) error
	// RemoveImage removes an image by ID along with its untagged parents.
	RemoveImage(ctx context.Context, id string) error
}

// dockerClientWrapper wraps the Docker Engine SDK client to implement Client
type dockerClientWrapper struct {
	cli     *client.Client
	address string
}

// Compile-time verification that dockerClientWrapper implements Client
var _ Client = (*dockerClientWrapper)(nil)

// NewClient connects to the Docker daemon at address (or the environment default if empty).
func NewClient(address string) (Client, error) {
	opts := []client.Opt{
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
		client.WithUserAgent(version.UserAgent()),
	}

	if address != "" {
		opts = append(opts, client.WithHost(address))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client for %s: %w", displayAddress(address), err)
	}

	return &dockerClientWrapper{
		cli:     cli,
		address: address,
	}, nil
}

func (w *dockerClientWrapper) Ping(ctx context.Context) error {
	if _, err := w.cli.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping Docker daemon at %s: %w", displayAddress(w.address), err)
	}
	return nil
}

func (w *dockerClientWrapper) Close() error {
	return w.cli.Close()
}

func (w *dockerClientWrapper) ListContainers(ctx context.Context, opts FilterOptions) ([]Container, error) {
	nameFilter, err := compileNamePattern(opts.NamePattern)
	if err != nil {
		return nil, err
	}

	containers, err := w.cli.ContainerList(ctx, container.ListOptions{All: opts.IncludeAll})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers from %s: %w", displayAddress(w.address), err)
	}

	result := make([]Container, 0, len(containers))
	for _, ctr := range containers {
		name := primaryName(ctr.Names)

		if nameFilter != nil && !nameFilter.MatchString(name) {
			continue
		}

		result = append(result, Container{
			ID:     ctr.ID,
			Name:   name,
			Status: ctr.Status,
			State:  string(ctr.State),
			Image:  ctr.Image,
		})
	}

	return result, nil
}

func (w *dockerClientWrapper) ListUntaggedImages(ctx context.Context) ([]Image, error) {
	images, err := w.cli.ImageList(ctx, image.ListOptions{
		Filters: filters.NewArgs(filters.Arg("dangling", "true")),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list images from %s: %w", displayAddress(w.address), err)
	}

	result := make([]Image, 0, len(images))
	for _, img := range images {
		result = append(result, Image{
			Repository: repositoryFromDigests(img.RepoDigests),
			Tag:        NoneValue,
			ID:         img.ID,
		})
	}

	return result, nil
}

func (w *dockerClientWrapper) RemoveContainer(ctx context.Context, id string, opts RemoveOptions) error {
	err := w.cli.ContainerRemove(ctx, id, container.RemoveOptions{
		Force:         opts.Force,
		RemoveVolumes: opts.RemoveVolumes,
	})
	if err != nil {
		return fmt.Errorf("failed to remove container %s: %w", id, err)
	}
	return nil
}

func (w *dockerClientWrapper) RemoveImage(ctx context.Context, id string) error {
	if _, err := w.cli.ImageRemove(ctx, id, image.RemoveOptions{PruneChildren: true}); err != nil {
		return fmt.Errorf("failed to remove image %s: %w", id, err)
	}
	return nil
}

func compileNamePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid name pattern '%s': %w", pattern, err)
	}
	return re, nil
}

// primaryName returns the first container name without its leading slash.
func primaryName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return strings.TrimPrefix(names[0], "/")
}

// repositoryFromDigests extracts "repo" from the first "repo@sha256:..." digest.
// Dangling images built locally have no digests at all.
func repositoryFromDigests(digests []string) string {
	for _, d := range digests {
		if idx := strings.LastIndex(d, "@"); idx > 0 {
			repo := d[:idx]
			if repo != NoneValue {
				return repo
			}
		}
	}
	return NoneValue
}

func displayAddress(address string) string {
	if address == "" {
		return "default host"
	}
	return address
}
