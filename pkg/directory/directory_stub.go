//go:build !windows

package directory

// Local is only functional on Windows. The stub keeps the type and
// constructor available so platform-independent wiring compiles; every
// method fails with ErrUnsupported.
type Local struct{}

// NewLocal fails on non-Windows platforms.
func NewLocal() (*Local, error) {
	return nil, ErrUnsupported
}

func (*Local) Create(name, description string) error { return ErrUnsupported }

func (*Local) List() ([]Group, error) { return nil, ErrUnsupported }

func (*Local) Delete(name string) error { return ErrUnsupported }
