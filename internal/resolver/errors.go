package resolver

import (
	"fmt"
)

// DependencyNotFoundError is returned when a declared library name has
// no candidate file anywhere under the system root. It is fatal for the
// enclosing resolution chain.
type DependencyNotFoundError struct {
	// Name is the bare file name of the library that could not be found.
	Name string
	// Subject is the path of the binary that declared the dependency.
	Subject string
}

func (e *DependencyNotFoundError) Error() string {
	return fmt.Sprintf("%s not found (required by %s)", e.Name, e.Subject)
}

// RollbackError is returned when removing a partially resolved library
// copy failed while unwinding from a resolution failure. The original
// failure remains the primary cause, the delete failure is attached as
// a secondary diagnostic. In this case the distribution directory is in
// an inconsistent state and a retry requires manual cleanup first.
type RollbackError struct {
	// Cause is the resolution failure that triggered the rollback.
	Cause error
	// DeleteErr is the failure encountered while removing the copy.
	DeleteErr error
	// Path is the file that could not be removed.
	Path string
}

func (e *RollbackError) Error() string {
	return fmt.Sprintf("%v (removing %s failed: %v, manual cleanup required before retrying)",
		e.Cause, e.Path, e.DeleteErr)
}

func (e *RollbackError) Unwrap() error {
	return e.Cause
}
