package docker

// NoneValue is what the runtime reports for a missing repository or tag.
const NoneValue = "<none>"

// Container represents a Docker container with relevant metadata
type Container struct {
	ID     string
	Name   string
	Status string // raw status text, e.g. "Exited (0) 2 hours ago"
	State  string // running, exited, etc. (empty for the cli backend)
	Image  string
}

// Class classifies the container's raw status.
func (c Container) Class() StatusClass {
	return ClassifyStatus(c.Status)
}

// Image represents an image as listed by the runtime.
type Image struct {
	Repository string
	Tag        string
	ID         string
}

// FilterOptions contains options for filtering containers
type FilterOptions struct {
	NamePattern string // Regex pattern for container names
	IncludeAll  bool   // Include stopped containers
}

// RemoveOptions controls container removal.
type RemoveOptions struct {
	Force         bool // Kill the container first if it is running
	RemoveVolumes bool // Remove anonymous volumes attached to the container
}
