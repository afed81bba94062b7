package docker

import "strings"

// StatusClass is the coarse classification of a container's status text.
type StatusClass int

// Status classes derived from runtime status strings.
const (
	StatusOther StatusClass = iota
	StatusCreated
	StatusExited
	StatusRunning
)

// ClassifyStatus maps a raw runtime status string to a StatusClass.
//
// "Created" must match exactly (after trimming). Anything containing "Exited"
// is exited, so "Exited (137) 5 minutes ago" qualifies. Matching is
// case-sensitive.
func ClassifyStatus(raw string) StatusClass {
	s := strings.TrimSpace(raw)
	switch {
	case s == "Created":
		return StatusCreated
	case strings.Contains(s, "Exited"):
		return StatusExited
	case strings.HasPrefix(s, "Up"):
		return StatusRunning
	default:
		return StatusOther
	}
}

// Removable reports whether containers of this class are swept.
func (c StatusClass) Removable() bool {
	return c == StatusCreated || c == StatusExited
}

func (c StatusClass) String() string {
	switch c {
	case StatusCreated:
		return "created"
	case StatusExited:
		return "exited"
	case StatusRunning:
		return "running"
	default:
		return "other"
	}
}
