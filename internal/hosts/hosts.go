// Package hosts manages the set of runtime hosts a cleanup run targets.
package hosts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zorak1103/dclean/internal/docker"
	apperrors "github.com/zorak1103/dclean/internal/errors"
)

// DefaultPingTimeout bounds the reachability check done while dialing.
const DefaultPingTimeout = 5 * time.Second

// ErrNoHosts is returned when an inventory would contain no hosts.
var ErrNoHosts = errors.New("no hosts configured")

// Target names a host and where its runtime listens.
type Target struct {
	Name    string
	Address string // empty means the local default
}

// Host is a dialed target.
type Host struct {
	Name    string
	Address string
	Client  docker.Client
}

// Inventory is the ordered set of hosts for one run. The first host is primary.
type Inventory struct {
	hosts []Host
}

// New builds an inventory from already-connected hosts.
func New(hosts ...Host) (*Inventory, error) {
	if len(hosts) == 0 {
		return nil, ErrNoHosts
	}
	return &Inventory{hosts: hosts}, nil
}

// Dial creates and pings a client for every target, in order.
// On failure every client opened so far is closed and a HostUnavailableError is returned.
func Dial(ctx context.Context, targets []Target, factory docker.Factory, pingTimeout time.Duration) (*Inventory, error) {
	if len(targets) == 0 {
		return nil, ErrNoHosts
	}
	if pingTimeout <= 0 {
		pingTimeout = DefaultPingTimeout
	}

	inv := &Inventory{hosts: make([]Host, 0, len(targets))}
	for _, target := range targets {
		client, err := factory(target.Address)
		if err != nil {
			_ = inv.Close()
			return nil, &apperrors.HostUnavailableError{Host: target.Name, Address: target.Address, Operation: "dial", Err: err}
		}

		if err := ping(ctx, client, pingTimeout); err != nil {
			_ = client.Close()
			_ = inv.Close()
			return nil, &apperrors.HostUnavailableError{Host: target.Name, Address: target.Address, Operation: "ping", Err: err}
		}

		inv.hosts = append(inv.hosts, Host{Name: target.Name, Address: target.Address, Client: client})
	}

	return inv, nil
}

func ping(ctx context.Context, client docker.Client, timeout time.Duration) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return client.Ping(pingCtx)
}

// Primary returns the host that listings run against.
func (i *Inventory) Primary() Host {
	return i.hosts[0]
}

// Each calls fn for every host in configured order, one at a time.
func (i *Inventory) Each(fn func(Host)) {
	for _, h := range i.hosts {
		fn(h)
	}
}

// Len returns the number of hosts.
func (i *Inventory) Len() int {
	return len(i.hosts)
}

// Names returns host names in configured order.
func (i *Inventory) Names() []string {
	names := make([]string, 0, len(i.hosts))
	for _, h := range i.hosts {
		names = append(names, h.Name)
	}
	return names
}

// Close closes every client and joins the errors.
func (i *Inventory) Close() error {
	var errs []error
	for _, h := range i.hosts {
		if err := h.Client.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", h.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Probe pings every target independently and reports each result.
// Unlike Dial it does not stop at the first unreachable host.
func Probe(ctx context.Context, targets []Target, factory docker.Factory, pingTimeout time.Duration) map[string]error {
	if pingTimeout <= 0 {
		pingTimeout = DefaultPingTimeout
	}

	results := make(map[string]error, len(targets))
	for _, target := range targets {
		client, err := factory(target.Address)
		if err != nil {
			results[target.Name] = err
			continue
		}
		results[target.Name] = ping(ctx, client, pingTimeout)
		_ = client.Close()
	}
	return results
}
