package loader

import "fmt"

// MergeConflictError reports an allOf composition whose members cannot be
// merged into a single object.
type MergeConflictError struct {
	Reason string
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("allOf merge conflict: %s", e.Reason)
}
