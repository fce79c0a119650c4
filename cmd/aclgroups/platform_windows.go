//go:build windows

package main

import (
	"github.com/Microsoft/go-winio"

	"github.com/backkem/aclgroups/pkg/aclstore"
	"github.com/backkem/aclgroups/pkg/directory"
)

func newCollaborators() (directory.Directory, aclstore.Store, error) {
	dir, err := directory.NewLocal()
	if err != nil {
		return nil, nil, err
	}
	store, err := aclstore.NewNTFS()
	if err != nil {
		return nil, nil, err
	}
	return dir, store, nil
}

// withBackupPrivileges runs fn with SeBackupPrivilege and
// SeRestorePrivilege enabled on the calling thread, so resets and
// discovery can read and rewrite security descriptors the DACL would
// otherwise deny.
func withBackupPrivileges(fn func() error) error {
	return winio.RunWithPrivileges(
		[]string{winio.SeBackupPrivilege, winio.SeRestorePrivilege},
		fn,
	)
}
