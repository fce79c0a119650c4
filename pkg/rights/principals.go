package rights

// Well-known principals the reset operations treat specially. The
// account names resolve on any Windows installation regardless of UI
// language when passed through LookupAccountName; the SID strings are
// the stable identifiers used when building ACEs directly.
const (
	// System is the LocalSystem account (S-1-5-18).
	System = "NT AUTHORITY\\SYSTEM"

	// CreatorOwner is the CREATOR OWNER placeholder principal (S-1-3-0).
	// ACEs for it materialize as owner ACEs on newly created children.
	CreatorOwner = "CREATOR OWNER"

	// Administrators is the built-in Administrators alias (S-1-5-32-544).
	Administrators = "BUILTIN\\Administrators"
)

// SID strings for the well-known principals above.
const (
	SIDSystem         = "S-1-5-18"
	SIDCreatorOwner   = "S-1-3-0"
	SIDAdministrators = "S-1-5-32-544"
)

// IsWellKnown returns true if the principal is one of the well-known
// accounts reset operations must preserve.
func IsWellKnown(principal string) bool {
	switch principal {
	case System, CreatorOwner, SIDSystem, SIDCreatorOwner:
		return true
	default:
		return false
	}
}
