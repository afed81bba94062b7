package docker

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/zorak1103/dclean/internal/errors"
)

// fakeRunner records invocations and replies with canned output keyed by subcommand
type fakeRunner struct {
	calls   [][]string
	outputs map[string]string
	fail    map[string]error
}

func (f *fakeRunner) run(_ context.Context, name string, args ...string) ([]byte, error) {
	call := append([]string{name}, args...)
	f.calls = append(f.calls, call)

	sub := subcommand(args)
	if err, ok := f.fail[sub]; ok {
		return nil, err
	}
	return []byte(f.outputs[sub]), nil
}

// subcommand skips a leading "-H <address>" pair
func subcommand(args []string) string {
	if len(args) >= 2 && args[0] == "-H" {
		args = args[2:]
	}
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func TestParseContainers(t *testing.T) {
	out := "a1|web|Exited (0) 2 hours ago\n" +
		"b2 | db | Up 5 days \n" +
		"\n" +
		"c3|worker|Created\r\n"

	containers, err := ParseContainers([]byte(out))
	require.NoError(t, err)
	require.Len(t, containers, 3)

	assert.Equal(t, Container{ID: "a1", Name: "web", Status: "Exited (0) 2 hours ago"}, containers[0])
	assert.Equal(t, Container{ID: "b2", Name: "db", Status: "Up 5 days"}, containers[1])
	assert.Equal(t, Container{ID: "c3", Name: "worker", Status: "Created"}, containers[2])
}

func TestParseContainers_Empty(t *testing.T) {
	containers, err := ParseContainers(nil)
	require.NoError(t, err)
	assert.Empty(t, containers)

	containers, err = ParseContainers([]byte("\n\n"))
	require.NoError(t, err)
	assert.Empty(t, containers)
}

func TestParseContainers_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		out      string
		wantLine int
	}{
		{name: "too few fields", out: "a1|web\n", wantLine: 1},
		{name: "too many fields", out: "a1|web|Up 1 day\nb2|db|Exited|extra\n", wantLine: 2},
		{name: "no separator", out: "CONTAINER ID   NAMES   STATUS\n", wantLine: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseContainers([]byte(tt.out))
			require.Error(t, err)

			var parseErr *apperrors.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.wantLine, parseErr.Line)
		})
	}
}

func TestParseImages(t *testing.T) {
	out := "<none>|<none>|sha256:x9\nnginx|<none>|sha256:y8\n"

	images, err := ParseImages([]byte(out))
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, Image{Repository: "<none>", Tag: "<none>", ID: "sha256:x9"}, images[0])
	assert.Equal(t, Image{Repository: "nginx", Tag: "<none>", ID: "sha256:y8"}, images[1])
}

func TestCLIClient_ListContainers(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"ps": "a1|web|Exited (0) 2 hours ago\nb2|db|Up 5 days\n",
	}}
	c := NewCLIClient("docker", "", runner.run)

	containers, err := c.ListContainers(context.Background(), FilterOptions{IncludeAll: true})
	require.NoError(t, err)
	assert.Len(t, containers, 2)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"docker", "ps", "--no-trunc", "--format", containerFormat, "-a"}, runner.calls[0])
}

func TestCLIClient_ListContainers_NamePattern(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"ps": "a1|app-web|Exited (0) 2 hours ago\nb2|db|Exited (1) 1 hour ago\n",
	}}
	c := NewCLIClient("docker", "", runner.run)

	containers, err := c.ListContainers(context.Background(), FilterOptions{IncludeAll: true, NamePattern: "^app-"})
	require.NoError(t, err)
	require.Len(t, containers, 1)
	assert.Equal(t, "a1", containers[0].ID)
}

func TestCLIClient_ListContainers_Errors(t *testing.T) {
	runner := &fakeRunner{fail: map[string]error{"ps": errors.New("daemon down")}}
	c := NewCLIClient("docker", "", runner.run)

	_, err := c.ListContainers(context.Background(), FilterOptions{IncludeAll: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daemon down")

	runner = &fakeRunner{outputs: map[string]string{"ps": "garbage\n"}}
	c = NewCLIClient("docker", "", runner.run)

	_, err = c.ListContainers(context.Background(), FilterOptions{IncludeAll: true})
	var parseErr *apperrors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestCLIClient_RemoteAddress(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{}}
	c := NewCLIClient("docker", "ssh://ops@remote1", runner.run)

	require.NoError(t, c.RemoveImage(context.Background(), "x9"))

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"docker", "-H", "ssh://ops@remote1", "rmi", "x9"}, runner.calls[0])
}

func TestCLIClient_RemoveContainer(t *testing.T) {
	tests := []struct {
		name string
		opts RemoveOptions
		want []string
	}{
		{name: "force and volumes", opts: RemoveOptions{Force: true, RemoveVolumes: true}, want: []string{"docker", "rm", "-f", "-v", "a1"}},
		{name: "plain", opts: RemoveOptions{}, want: []string{"docker", "rm", "a1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}
			c := NewCLIClient("docker", "", runner.run)

			require.NoError(t, c.RemoveContainer(context.Background(), "a1", tt.opts))
			assert.Equal(t, tt.want, runner.calls[0])
		})
	}
}

func TestCLIClient_RemoveFailures(t *testing.T) {
	runner := &fakeRunner{fail: map[string]error{
		"rm":  errors.New("No such container: a1"),
		"rmi": errors.New("No such image: x9"),
	}}
	c := NewCLIClient("docker", "", runner.run)

	err := c.RemoveContainer(context.Background(), "a1", RemoveOptions{Force: true, RemoveVolumes: true})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "a1"))

	err = c.RemoveImage(context.Background(), "x9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No such image")
}

func TestCLIClient_ListUntaggedImages(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"images": "<none>|<none>|sha256:x9\n",
	}}
	c := NewCLIClient("podman", "", runner.run)

	images, err := c.ListUntaggedImages(context.Background())
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "sha256:x9", images[0].ID)
	assert.Equal(t, []string{"podman", "images", "--no-trunc", "--filter", "dangling=true", "--format", imageFormat}, runner.calls[0])
}

func TestCLIClient_Ping(t *testing.T) {
	runner := &fakeRunner{}
	c := NewCLIClient("docker", "", runner.run)
	assert.NoError(t, c.Ping(context.Background()))
	assert.NoError(t, c.Close())

	runner = &fakeRunner{fail: map[string]error{"version": errors.New("cannot connect")}}
	c = NewCLIClient("docker", "tcp://remote1:2375", runner.run)
	err := c.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tcp://remote1:2375")
}

func TestNewCLIClient_DefaultRunner(t *testing.T) {
	c := NewCLIClient("docker", "", nil)
	cli, ok := c.(*cliClient)
	require.True(t, ok)
	assert.NotNil(t, cli.run)
}

func TestExecRunner_MissingBinary(t *testing.T) {
	_, err := ExecRunner(context.Background(), "dclean-no-such-binary-for-tests", "ps")
	assert.Error(t, err)
}
