package rights

import "fmt"

// AppliesTo describes the propagation scope of an ACE: which part of
// the tree below (and including) the object the entry applies to.
//
// The numeric values double as the ACCTRL inheritance flags passed to
// the ACL library (OBJECT_INHERIT = 0x1, CONTAINER_INHERIT = 0x2,
// INHERIT_ONLY = 0x8), so Inheritance() is a direct cast.
type AppliesTo uint8

const (
	// ThisFolderOnly applies to the object itself and nothing below it.
	ThisFolderOnly AppliesTo = 0x0

	// ThisFolderAndFiles applies to the object and files directly or
	// indirectly inside it.
	ThisFolderAndFiles AppliesTo = 0x1

	// ThisFolderAndSubfolders applies to the object and subfolders.
	ThisFolderAndSubfolders AppliesTo = 0x2

	// ThisFolderSubfoldersAndFiles applies to the whole subtree. This is
	// the default scope for grants.
	ThisFolderSubfoldersAndFiles AppliesTo = 0x3

	// FilesOnly applies to contained files but not the object itself.
	FilesOnly AppliesTo = 0x9

	// SubfoldersOnly applies to subfolders but not the object itself.
	SubfoldersOnly AppliesTo = 0xA

	// SubfoldersAndFiles applies to everything below the object but not
	// the object itself.
	SubfoldersAndFiles AppliesTo = 0xB
)

// String returns the scope name as shown in the Windows security dialog.
func (a AppliesTo) String() string {
	switch a {
	case ThisFolderOnly:
		return "ThisFolderOnly"
	case ThisFolderAndFiles:
		return "ThisFolderAndFiles"
	case ThisFolderAndSubfolders:
		return "ThisFolderAndSubfolders"
	case ThisFolderSubfoldersAndFiles:
		return "ThisFolderSubfoldersAndFiles"
	case FilesOnly:
		return "FilesOnly"
	case SubfoldersOnly:
		return "SubfoldersOnly"
	case SubfoldersAndFiles:
		return "SubfoldersAndFiles"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the scope is a defined value.
func (a AppliesTo) IsValid() bool {
	switch a {
	case ThisFolderOnly, ThisFolderAndFiles, ThisFolderAndSubfolders,
		ThisFolderSubfoldersAndFiles, FilesOnly, SubfoldersOnly,
		SubfoldersAndFiles:
		return true
	default:
		return false
	}
}

// Inheritance returns the ACCTRL inheritance flags for the scope.
func (a AppliesTo) Inheritance() uint32 {
	return uint32(a)
}

// Propagates returns true if the entry reaches anything below the
// object it is set on.
func (a AppliesTo) Propagates() bool {
	return a&(ThisFolderAndFiles|ThisFolderAndSubfolders) != 0
}

// ParseAppliesTo maps the CLI spelling of a scope to its value.
func ParseAppliesTo(s string) (AppliesTo, error) {
	switch s {
	case "this-folder-only":
		return ThisFolderOnly, nil
	case "this-folder-and-files":
		return ThisFolderAndFiles, nil
	case "this-folder-and-subfolders":
		return ThisFolderAndSubfolders, nil
	case "this-folder-subfolders-and-files":
		return ThisFolderSubfoldersAndFiles, nil
	case "files-only":
		return FilesOnly, nil
	case "subfolders-only":
		return SubfoldersOnly, nil
	case "subfolders-and-files":
		return SubfoldersAndFiles, nil
	default:
		return 0, fmt.Errorf("rights: unknown scope %q", s)
	}
}
