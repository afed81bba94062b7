// Package apperrors provides domain-specific error types for dclean.
// These error types include contextual information to aid debugging and error reporting.
package apperrors

import "fmt"

// ConfigurationError represents configuration-related errors.
// It includes the configuration file path and specific key that caused the error.
type ConfigurationError struct {
	ConfigPath string // Path to the configuration file
	Key        string // Configuration key that caused the error
	Err        error  // Underlying error
}

// Error implements the error interface for ConfigurationError.
func (e *ConfigurationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("configuration error in %s (key: %s): %v", e.ConfigPath, e.Key, e.Err)
	}
	return fmt.Sprintf("configuration error in %s: %v", e.ConfigPath, e.Err)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// HostUnavailableError represents a host whose runtime could not be reached.
// It includes the host name, its address and the operation that failed.
type HostUnavailableError struct {
	Host      string // Configured host name (e.g., "local")
	Address   string // Runtime address (e.g., unix:///var/run/docker.sock)
	Operation string // Operation that failed (e.g., "dial", "ping")
	Err       error  // Underlying error
}

// Error implements the error interface for HostUnavailableError.
func (e *HostUnavailableError) Error() string {
	if e.Address != "" {
		return fmt.Sprintf("host %s unavailable: %s failed (address: %s): %v", e.Host, e.Operation, e.Address, e.Err)
	}
	return fmt.Sprintf("host %s unavailable: %s failed: %v", e.Host, e.Operation, e.Err)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *HostUnavailableError) Unwrap() error {
	return e.Err
}

// ListError represents a failure to enumerate containers or images on a host.
// Listing failures abort the sweep that needed the list.
type ListError struct {
	Host     string // Host the listing ran against
	Resource string // "containers" or "images"
	Err      error  // Underlying error
}

// Error implements the error interface for ListError.
func (e *ListError) Error() string {
	return fmt.Sprintf("failed to list %s on %s: %v", e.Resource, e.Host, e.Err)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *ListError) Unwrap() error {
	return e.Err
}

// RemovalError represents a single failed container or image removal.
type RemovalError struct {
	Host string // Host the removal ran against
	Kind string // "container" or "image"
	ID   string // Container or image ID
	Err  error  // Underlying error
}

// Error implements the error interface for RemovalError.
func (e *RemovalError) Error() string {
	return fmt.Sprintf("failed to remove %s %s on %s: %v", e.Kind, e.ID, e.Host, e.Err)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *RemovalError) Unwrap() error {
	return e.Err
}

// ParseError represents a line of runtime CLI output that could not be parsed.
type ParseError struct {
	Line   int    // 1-based line number in the command output
	Text   string // Offending line
	Reason string // What was wrong with it
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse output line %d %q: %s", e.Line, e.Text, e.Reason)
}
