//go:build windows

package directory

import (
	"sort"
	"syscall"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

var (
	modNetapi32 = windows.NewLazySystemDLL("netapi32.dll")

	procNetLocalGroupAdd  = modNetapi32.NewProc("NetLocalGroupAdd")
	procNetLocalGroupEnum = modNetapi32.NewProc("NetLocalGroupEnum")
	procNetLocalGroupDel  = modNetapi32.NewProc("NetLocalGroupDel")
)

// Net API status codes not exposed by x/sys.
const (
	nerrGroupExists   = 2223
	nerrGroupNotFound = 2220

	// MAX_PREFERRED_LENGTH: let the Net API size the enum buffer.
	maxPreferredLength = 0xFFFFFFFF
)

// localGroupInfo1 mirrors LOCALGROUP_INFO_1.
type localGroupInfo1 struct {
	name    *uint16
	comment *uint16
}

// Local is the Windows local group directory, backed by the
// NetLocalGroup* Net API on the local machine.
type Local struct{}

// NewLocal returns the directory for the local machine.
func NewLocal() (*Local, error) {
	return &Local{}, nil
}

// Create adds a local security group via NetLocalGroupAdd (info level 1,
// name plus comment). Duplicate names map to ErrGroupExists.
func (*Local) Create(name, description string) error {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return errors.Wrapf(err, "encode group name %q", name)
	}
	commentPtr, err := windows.UTF16PtrFromString(description)
	if err != nil {
		return errors.Wrapf(err, "encode group description for %q", name)
	}

	info := localGroupInfo1{name: namePtr, comment: commentPtr}
	var parmErr uint32
	status, _, _ := procNetLocalGroupAdd.Call(
		0, // local machine
		1, // LOCALGROUP_INFO_1
		uintptr(unsafe.Pointer(&info)),
		uintptr(unsafe.Pointer(&parmErr)),
	)
	switch status {
	case 0:
		return nil
	case nerrGroupExists, uintptr(windows.ERROR_ALIAS_EXISTS):
		return ErrGroupExists
	default:
		return errors.Wrapf(syscall.Errno(status), "NetLocalGroupAdd(%q)", name)
	}
}

// List enumerates every local group via NetLocalGroupEnum, following
// the resume handle until the Net API reports completion.
func (*Local) List() ([]Group, error) {
	var result []Group
	var resume uintptr

	for {
		var (
			buf   *byte
			read  uint32
			total uint32
		)
		status, _, _ := procNetLocalGroupEnum.Call(
			0, // local machine
			1, // LOCALGROUP_INFO_1
			uintptr(unsafe.Pointer(&buf)),
			maxPreferredLength,
			uintptr(unsafe.Pointer(&read)),
			uintptr(unsafe.Pointer(&total)),
			uintptr(unsafe.Pointer(&resume)),
		)
		if status != 0 && syscall.Errno(status) != windows.ERROR_MORE_DATA {
			return nil, errors.Wrap(syscall.Errno(status), "NetLocalGroupEnum")
		}

		if buf != nil && read > 0 {
			entries := unsafe.Slice((*localGroupInfo1)(unsafe.Pointer(buf)), read)
			for _, e := range entries {
				result = append(result, Group{
					Name:        windows.UTF16PtrToString(e.name),
					Description: windows.UTF16PtrToString(e.comment),
				})
			}
		}
		if buf != nil {
			_ = windows.NetApiBufferFree(buf)
		}

		if syscall.Errno(status) != windows.ERROR_MORE_DATA {
			break
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Delete removes a local group via NetLocalGroupDel. A missing group
// maps to ErrGroupNotFound.
func (*Local) Delete(name string) error {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return errors.Wrapf(err, "encode group name %q", name)
	}

	status, _, _ := procNetLocalGroupDel.Call(0, uintptr(unsafe.Pointer(namePtr)))
	switch status {
	case 0:
		return nil
	case nerrGroupNotFound, uintptr(windows.ERROR_NO_SUCH_ALIAS):
		return ErrGroupNotFound
	default:
		return errors.Wrapf(syscall.Errno(status), "NetLocalGroupDel(%q)", name)
	}
}
