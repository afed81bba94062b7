package docker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      StatusClass
		removable bool
	}{
		{name: "exited zero", raw: "Exited (0) 2 hours ago", want: StatusExited, removable: true},
		{name: "exited killed", raw: "Exited (137) 5 minutes ago", want: StatusExited, removable: true},
		{name: "created", raw: "Created", want: StatusCreated, removable: true},
		{name: "created with padding", raw: "  Created\n", want: StatusCreated, removable: true},
		{name: "running", raw: "Up 5 days", want: StatusRunning, removable: false},
		{name: "running healthy", raw: "Up 3 days (healthy)", want: StatusRunning, removable: false},
		{name: "paused", raw: "Up 2 minutes (Paused)", want: StatusRunning, removable: false},
		{name: "restarting", raw: "Restarting (1) 10 seconds ago", want: StatusOther, removable: false},
		{name: "dead", raw: "Dead", want: StatusOther, removable: false},
		{name: "lowercase exited is not matched", raw: "exited (0) 1 hour ago", want: StatusOther, removable: false},
		{name: "created must match exactly", raw: "Created 2 hours ago", want: StatusOther, removable: false},
		{name: "empty", raw: "", want: StatusOther, removable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyStatus(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.removable, got.Removable())
		})
	}
}

func TestStatusClass_String(t *testing.T) {
	assert.Equal(t, "created", StatusCreated.String())
	assert.Equal(t, "exited", StatusExited.String())
	assert.Equal(t, "running", StatusRunning.String())
	assert.Equal(t, "other", StatusOther.String())
}

func TestContainer_Class(t *testing.T) {
	c := Container{ID: "a1", Name: "web", Status: "Exited (0) 2 hours ago"}
	assert.Equal(t, StatusExited, c.Class())
}
