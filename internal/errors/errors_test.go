package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errUnderlying = errors.New("underlying")

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "configuration error with key",
			err:  &ConfigurationError{ConfigPath: "config.yaml", Key: "runtime.mode", Err: errUnderlying},
			want: "configuration error in config.yaml (key: runtime.mode): underlying",
		},
		{
			name: "configuration error without key",
			err:  &ConfigurationError{ConfigPath: "config.yaml", Err: errUnderlying},
			want: "configuration error in config.yaml: underlying",
		},
		{
			name: "host unavailable with address",
			err:  &HostUnavailableError{Host: "remote1", Address: "tcp://remote1:2375", Operation: "ping", Err: errUnderlying},
			want: "host remote1 unavailable: ping failed (address: tcp://remote1:2375): underlying",
		},
		{
			name: "host unavailable without address",
			err:  &HostUnavailableError{Host: "local", Operation: "dial", Err: errUnderlying},
			want: "host local unavailable: dial failed: underlying",
		},
		{
			name: "list error",
			err:  &ListError{Host: "local", Resource: "containers", Err: errUnderlying},
			want: "failed to list containers on local: underlying",
		},
		{
			name: "removal error",
			err:  &RemovalError{Host: "remote1", Kind: "image", ID: "x9", Err: errUnderlying},
			want: "failed to remove image x9 on remote1: underlying",
		},
		{
			name: "parse error",
			err:  &ParseError{Line: 2, Text: "a1|web", Reason: "expected 3 fields, got 2"},
			want: `cannot parse output line 2 "a1|web": expected 3 fields, got 2`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorsUnwrap(t *testing.T) {
	wrapped := []error{
		&ConfigurationError{Err: errUnderlying},
		&HostUnavailableError{Err: errUnderlying},
		&ListError{Err: errUnderlying},
		&RemovalError{Err: errUnderlying},
	}

	for _, err := range wrapped {
		outer := fmt.Errorf("outer: %w", err)
		assert.ErrorIs(t, outer, errUnderlying)
	}
}

func TestErrorsAs(t *testing.T) {
	err := fmt.Errorf("sweep: %w", &RemovalError{Host: "local", Kind: "container", ID: "a1", Err: errUnderlying})

	var removalErr *RemovalError
	if assert.ErrorAs(t, err, &removalErr) {
		assert.Equal(t, "a1", removalErr.ID)
		assert.Equal(t, "container", removalErr.Kind)
	}
}
