package cmd

import (
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/zorak1103/dclean/internal/config"
	"github.com/zorak1103/dclean/internal/docker"
	"github.com/zorak1103/dclean/internal/docker/dockertest"
)

const testLocalAddress = ""

// useFakeRuntime points the commands at in-memory clients keyed by host address
// and installs c as the loaded configuration. Globals are restored on cleanup.
func useFakeRuntime(t *testing.T, c *config.Config, clients map[string]*dockertest.Client) {
	t.Helper()

	prevFactory, prevCfg, prevErr, prevNoColor := newFactory, cfg, errConfigLoad, color.NoColor
	t.Cleanup(func() {
		newFactory, cfg, errConfigLoad, color.NoColor = prevFactory, prevCfg, prevErr, prevNoColor
	})

	newFactory = func(_, _ string) (docker.Factory, error) {
		return dockertest.Factory(clients), nil
	}
	cfg, errConfigLoad = c, nil
	color.NoColor = true
}

func testConfig(hosts ...config.HostConfig) *config.Config {
	if len(hosts) == 0 {
		hosts = []config.HostConfig{{Name: config.LocalHostName, Address: testLocalAddress}}
	}
	return &config.Config{
		Runtime: config.RuntimeConfig{Mode: docker.ModeSDK, Binary: "docker", PingTimeout: time.Second},
		Hosts:   hosts,
		Cleanup: config.CleanupConfig{Containers: true, Images: true},
		Output:  config.OutputConfig{Color: true, ReportsDir: "./reports"},
	}
}
