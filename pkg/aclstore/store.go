// Package aclstore abstracts the DACL of a filesystem object: reading
// its entries, granting and revoking access for a principal, and
// toggling inheritance from the parent.
//
// The Windows implementation wraps the hectane/go-acl library for
// mutations and reads security descriptors through
// golang.org/x/sys/windows. Memory is an in-process tree model with
// the same observable semantics, used by tests.
package aclstore

import (
	"errors"

	"github.com/backkem/aclgroups/pkg/rights"
)

// Store errors.
var (
	ErrNotFound    = errors.New("aclstore: object not found")
	ErrUnsupported = errors.New("aclstore: NTFS ACLs require Windows")
)

// Entry is one access-allowed ACE as the convention layer sees it.
type Entry struct {
	// Principal is the account the entry grants access to: a
	// convention group name or a well-known account name.
	Principal string

	// Tier is the permission level, when the entry's mask is one of the
	// four fixed tier masks. Zero for foreign entries; Mask then holds
	// the raw access mask.
	Tier rights.Tier

	// Mask is the raw access mask. Zero means "use Tier.Mask()".
	Mask uint32

	// Inherited is true for entries propagated from an ancestor. Only
	// explicit (non-inherited) entries can be removed on the object.
	Inherited bool

	// AppliesTo is the propagation scope of the entry.
	AppliesTo rights.AppliesTo
}

// EffectiveMask returns Mask if set, otherwise the tier's fixed mask.
func (e Entry) EffectiveMask() uint32 {
	if e.Mask != 0 {
		return e.Mask
	}
	return e.Tier.Mask()
}

// Store is the ACL store collaborator. All calls are synchronous and
// act directly on the underlying security descriptor; nothing is
// cached between calls.
type Store interface {
	// Read returns the DACL of the object as a list of entries,
	// inherited ones included, in descriptor order.
	Read(path string) ([]Entry, error)

	// IsProtected reports whether the DACL is protected, i.e. whether
	// inheritance from the parent is currently disabled.
	IsProtected(path string) (bool, error)

	// Add appends one access-allowed entry for the principal.
	Add(path string, entry Entry) error

	// RemovePrincipal removes every explicit entry for the principal.
	// Inherited entries are untouched. Returns the number of entries
	// removed; removing an absent principal is not an error.
	RemovePrincipal(path, principal string) (int, error)

	// SetInheritance enables or disables inheritance on the object.
	// When disabling with clear, inherited entries are dropped instead
	// of being copied into explicit ones. When enabling with clear,
	// explicit entries are discarded so the object holds only what it
	// inherits.
	SetInheritance(path string, enabled, clear bool) error
}
