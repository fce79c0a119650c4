// Package directory abstracts the local security group directory: the
// collaborator that creates, enumerates and deletes local groups by
// name. The Windows implementation delegates to the Net API
// (NetLocalGroupAdd/Enum/Del); Memory is an in-process implementation
// for tests and dry wiring on other platforms.
package directory

import "errors"

// Directory errors.
var (
	ErrGroupExists   = errors.New("directory: group already exists")
	ErrGroupNotFound = errors.New("directory: group not found")
	ErrUnsupported   = errors.New("directory: local group directory requires Windows")
)

// Group is one local security group as seen by the directory.
type Group struct {
	Name        string
	Description string
}

// Directory is the group directory collaborator.
//
// Create fails with ErrGroupExists on a duplicate name; callers are
// expected to surface, not retry. Delete fails with ErrGroupNotFound
// if the group is absent.
type Directory interface {
	// Create adds a local group with the given name and description.
	Create(name, description string) error

	// List returns every local group, sorted by name.
	List() ([]Group, error)

	// Delete removes the named local group.
	Delete(name string) error
}
