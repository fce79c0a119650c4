//go:build !windows

package aclstore

// NTFS is only functional on Windows. The stub keeps the type and
// constructor available so platform-independent wiring compiles; every
// method fails with ErrUnsupported.
type NTFS struct{}

// NewNTFS fails on non-Windows platforms.
func NewNTFS() (*NTFS, error) {
	return nil, ErrUnsupported
}

func (*NTFS) Read(path string) ([]Entry, error) { return nil, ErrUnsupported }

func (*NTFS) IsProtected(path string) (bool, error) { return false, ErrUnsupported }

func (*NTFS) Add(path string, entry Entry) error { return ErrUnsupported }

func (*NTFS) RemovePrincipal(path, principal string) (int, error) { return 0, ErrUnsupported }

func (*NTFS) SetInheritance(path string, enabled, clear bool) error { return ErrUnsupported }
