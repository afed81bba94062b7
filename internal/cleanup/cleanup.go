// Package cleanup removes exited containers and dangling images across a host inventory.
package cleanup

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/zorak1103/dclean/internal/docker"
	apperrors "github.com/zorak1103/dclean/internal/errors"
	"github.com/zorak1103/dclean/internal/hosts"
)

// containerRemoval is the only removal mode used: kill if needed and drop anonymous volumes.
var containerRemoval = docker.RemoveOptions{Force: true, RemoveVolumes: true}

// Options tunes a Cleaner.
type Options struct {
	DryRun      bool   // Report what would be removed without removing anything
	NamePattern string // Only consider containers whose name matches this regexp
}

// Sweeps selects which sweeps Run performs.
type Sweeps struct {
	Containers bool
	Images     bool
}

// Cleaner runs the sweeps against an inventory and writes progress to out.
type Cleaner struct {
	inventory *hosts.Inventory
	out       io.Writer
	opts      Options

	count      func(a ...interface{}) string
	identifier func(a ...interface{}) string
	done       func(a ...interface{}) string
}

// New creates a Cleaner. The inventory stays owned by the caller.
func New(inventory *hosts.Inventory, out io.Writer, opts Options) *Cleaner {
	return &Cleaner{
		inventory:  inventory,
		out:        out,
		opts:       opts,
		count:      color.New(color.FgYellow).SprintFunc(),
		identifier: color.New(color.FgCyan).SprintFunc(),
		done:       color.New(color.FgGreen).SprintFunc(),
	}
}

// CleanExitedContainers removes every created or exited container on the primary host.
// A listing failure aborts the sweep; removal failures are recorded and skipped.
func (c *Cleaner) CleanExitedContainers(ctx context.Context) (*Result, error) {
	primary := c.inventory.Primary()

	containers, err := primary.Client.ListContainers(ctx, docker.FilterOptions{
		IncludeAll:  true,
		NamePattern: c.opts.NamePattern,
	})
	if err != nil {
		return nil, &apperrors.ListError{Host: primary.Name, Resource: "containers", Err: err}
	}

	exited := SelectExited(containers)
	result := &Result{Found: len(exited)}

	c.printf("Found %s exited container(s)\n", c.count(len(exited)))

	for _, ctr := range exited {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if c.opts.DryRun {
			c.printf("Would remove container %s with ID %s\n", c.identifier(ctr.Name), c.identifier(ctr.ID))
			continue
		}

		c.printf("Removing container %s with ID %s\n", c.identifier(ctr.Name), c.identifier(ctr.ID))
		result.Attempts++
		if err := primary.Client.RemoveContainer(ctx, ctr.ID, containerRemoval); err != nil {
			result.Failures = append(result.Failures, &apperrors.RemovalError{
				Host: primary.Name, Kind: "container", ID: ctr.ID, Err: err,
			})
			continue
		}
		result.Removed++
	}

	return result, nil
}

// CleanDanglingImages lists untagged images on the primary host and attempts to remove
// each of them on every host, images in the outer loop and hosts in the inner loop.
// An image missing on some host simply produces a recorded failure there.
func (c *Cleaner) CleanDanglingImages(ctx context.Context) (*Result, error) {
	primary := c.inventory.Primary()

	images, err := primary.Client.ListUntaggedImages(ctx)
	if err != nil {
		return nil, &apperrors.ListError{Host: primary.Name, Resource: "images", Err: err}
	}

	result := &Result{Found: len(images)}

	c.printf("Found %s %s images\n", c.count(len(images)), docker.NoneValue)

	for _, img := range images {
		c.inventory.Each(func(h hosts.Host) {
			if err := ctx.Err(); err != nil {
				return
			}

			if c.opts.DryRun {
				c.printf("Would remove image %s with tag %s on %s\n", img.Repository, img.Tag, c.identifier(h.Name))
				return
			}

			c.printf("Removing image %s with tag %s on %s\n", img.Repository, img.Tag, c.identifier(h.Name))
			result.Attempts++
			if err := h.Client.RemoveImage(ctx, img.ID); err != nil {
				result.Failures = append(result.Failures, &apperrors.RemovalError{
					Host: h.Name, Kind: "image", ID: img.ID, Err: err,
				})
				return
			}
			result.Removed++
		})
	}

	return result, ctx.Err()
}

// Run performs the selected sweeps, containers first, then reports failures and prints "Done!".
func (c *Cleaner) Run(ctx context.Context, sweeps Sweeps) (*Summary, error) {
	summary := &Summary{
		Hosts:  c.inventory.Names(),
		DryRun: c.opts.DryRun,
	}

	if sweeps.Containers {
		res, err := c.CleanExitedContainers(ctx)
		if res != nil {
			summary.Containers = res
		}
		if err != nil {
			return summary, fmt.Errorf("exited-container sweep: %w", err)
		}
	}

	if sweeps.Images {
		res, err := c.CleanDanglingImages(ctx)
		if res != nil {
			summary.Images = res
		}
		if err != nil {
			return summary, fmt.Errorf("dangling-image sweep: %w", err)
		}
	}

	if failures := summary.Failures(); len(failures) > 0 {
		c.printf("%s removal(s) failed:\n", c.count(len(failures)))
		for _, f := range failures {
			c.printf("  - %v\n", f)
		}
	}

	c.printf("%s\n", c.done("Done!"))
	return summary, nil
}

// SelectExited returns the containers whose status marks them for removal, in input order.
func SelectExited(containers []docker.Container) []docker.Container {
	selected := make([]docker.Container, 0, len(containers))
	for _, ctr := range containers {
		if ctr.Class().Removable() {
			selected = append(selected, ctr)
		}
	}
	return selected
}

func (c *Cleaner) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}
