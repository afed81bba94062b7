// Package dockertest provides an in-memory docker.Client for tests.
package dockertest

import (
	"context"
	"fmt"

	"github.com/zorak1103/dclean/internal/docker"
)

// RemovedContainer records one RemoveContainer call.
type RemovedContainer struct {
	ID   string
	Opts docker.RemoveOptions
}

// Client is a scriptable docker.Client that records removals.
type Client struct {
	Containers []docker.Container
	Images     []docker.Image

	PingErr           error
	ListContainersErr error
	ListImagesErr     error
	CloseErr          error

	// FailRemove maps container or image IDs to the error their removal returns.
	FailRemove map[string]error

	RemovedContainers []RemovedContainer
	RemovedImages     []string
	ListOptions       []docker.FilterOptions
	Closed            bool
}

var _ docker.Client = (*Client)(nil)

func (c *Client) Ping(_ context.Context) error {
	return c.PingErr
}

func (c *Client) Close() error {
	c.Closed = true
	return c.CloseErr
}

func (c *Client) ListContainers(_ context.Context, opts docker.FilterOptions) ([]docker.Container, error) {
	c.ListOptions = append(c.ListOptions, opts)
	if c.ListContainersErr != nil {
		return nil, c.ListContainersErr
	}
	return c.Containers, nil
}

func (c *Client) ListUntaggedImages(_ context.Context) ([]docker.Image, error) {
	if c.ListImagesErr != nil {
		return nil, c.ListImagesErr
	}
	return c.Images, nil
}

func (c *Client) RemoveContainer(_ context.Context, id string, opts docker.RemoveOptions) error {
	c.RemovedContainers = append(c.RemovedContainers, RemovedContainer{ID: id, Opts: opts})
	if err, ok := c.FailRemove[id]; ok {
		return err
	}
	return nil
}

func (c *Client) RemoveImage(_ context.Context, id string) error {
	c.RemovedImages = append(c.RemovedImages, id)
	if err, ok := c.FailRemove[id]; ok {
		return err
	}
	return nil
}

// Factory returns a docker.Factory serving clients by address.
// Unknown addresses produce an error.
func Factory(clients map[string]*Client) docker.Factory {
	return func(address string) (docker.Client, error) {
		c, ok := clients[address]
		if !ok {
			return nil, fmt.Errorf("no fake client for address %q", address)
		}
		return c, nil
	}
}
