package cleanup

import "errors"

// Result is the outcome of one sweep.
type Result struct {
	Found    int     // Candidates found
	Attempts int     // Removal calls issued
	Removed  int     // Removal calls that succeeded
	Failures []error // One RemovalError per failed call
}

// Summary is the outcome of a whole run. Sweeps that did not run are nil.
type Summary struct {
	Hosts      []string
	DryRun     bool
	Containers *Result
	Images     *Result
}

// Failures returns container failures followed by image failures.
func (s *Summary) Failures() []error {
	var out []error
	if s.Containers != nil {
		out = append(out, s.Containers.Failures...)
	}
	if s.Images != nil {
		out = append(out, s.Images.Failures...)
	}
	return out
}

// Removed is the total number of successful removals.
func (s *Summary) Removed() int {
	n := 0
	if s.Containers != nil {
		n += s.Containers.Removed
	}
	if s.Images != nil {
		n += s.Images.Removed
	}
	return n
}

// Err joins all removal failures, or returns nil when there were none.
func (s *Summary) Err() error {
	return errors.Join(s.Failures()...)
}
