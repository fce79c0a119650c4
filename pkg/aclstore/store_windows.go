//go:build windows

package aclstore

import (
	"unsafe"

	"github.com/hectane/go-acl"
	"github.com/hectane/go-acl/api"
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"github.com/backkem/aclgroups/pkg/rights"
)

// Scope bits of an ACE header: OBJECT_INHERIT_ACE, CONTAINER_INHERIT_ACE
// and INHERIT_ONLY_ACE. These are the bits AppliesTo is defined over.
const inheritScopeMask = windows.OBJECT_INHERIT_ACE |
	windows.CONTAINER_INHERIT_ACE | windows.INHERIT_ONLY_ACE

// aclHeader mirrors the fixed part of a Windows ACL so the ACE count
// can be read; x/sys does not export the field.
type aclHeader struct {
	revision byte
	sbz1     byte
	size     uint16
	count    uint16
	sbz2     uint16
}

// NTFS is the Windows ACL store. Reads go through
// GetNamedSecurityInfo; grants and revocations through the
// hectane/go-acl library; inheritance toggles through
// SetNamedSecurityInfo with a rebuilt DACL.
type NTFS struct {
	computer string
}

// NewNTFS returns the store for the local machine.
func NewNTFS() (*NTFS, error) {
	name, err := windows.ComputerName()
	if err != nil {
		return nil, errors.Wrap(err, "query computer name")
	}
	return &NTFS{computer: name}, nil
}

// Read returns the access-allowed entries of the object's DACL.
func (s *NTFS) Read(path string) ([]Entry, error) {
	dacl, _, err := s.readDACL(path)
	if err != nil {
		return nil, err
	}
	if dacl == nil {
		// Nil DACL: everyone has full access, nothing to report.
		return nil, nil
	}

	count := (*aclHeader)(unsafe.Pointer(dacl)).count
	result := make([]Entry, 0, count)
	for i := uint32(0); i < uint32(count); i++ {
		var ace *windows.ACCESS_ALLOWED_ACE
		if err := windows.GetAce(dacl, i, &ace); err != nil {
			return nil, errors.Wrapf(err, "read ACE %d of %s", i, path)
		}
		if ace.Header.AceType != windows.ACCESS_ALLOWED_ACE_TYPE {
			continue
		}

		sid := (*windows.SID)(unsafe.Pointer(&ace.SidStart))
		entry := Entry{
			Principal: s.principalName(sid),
			Mask:      uint32(ace.Mask),
			Inherited: ace.Header.AceFlags&windows.INHERITED_ACE != 0,
			AppliesTo: rights.AppliesTo(ace.Header.AceFlags & inheritScopeMask),
		}
		if tier, ok := rights.TierFromMask(uint32(ace.Mask)); ok {
			entry.Tier = tier
		}
		result = append(result, entry)
	}
	return result, nil
}

// IsProtected reports whether SE_DACL_PROTECTED is set on the object.
func (s *NTFS) IsProtected(path string) (bool, error) {
	sd, err := windows.GetNamedSecurityInfo(path,
		windows.SE_FILE_OBJECT, windows.DACL_SECURITY_INFORMATION)
	if err != nil {
		return false, wrapLookupErr(err, path)
	}
	control, _, err := sd.Control()
	if err != nil {
		return false, errors.Wrapf(err, "read descriptor control of %s", path)
	}
	return control&windows.SE_DACL_PROTECTED != 0, nil
}

// Add appends one access-allowed entry through the ACL library,
// preserving the object's current protection state.
func (s *NTFS) Add(path string, entry Entry) error {
	inherit, err := s.inheritFlag(path)
	if err != nil {
		return err
	}

	namePtr, err := windows.UTF16PtrFromString(entry.Principal)
	if err != nil {
		return errors.Wrapf(err, "encode principal %q", entry.Principal)
	}
	grant := api.ExplicitAccess{
		AccessPermissions: entry.EffectiveMask(),
		AccessMode:        api.GRANT_ACCESS,
		Inheritance:       entry.AppliesTo.Inheritance(),
		Trustee: api.Trustee{
			TrusteeForm: api.TRUSTEE_IS_NAME,
			Name:        namePtr,
		},
	}
	if err := acl.Apply(path, false, inherit, grant); err != nil {
		return errors.Wrapf(err, "grant %s to %q on %s",
			entry.Tier, entry.Principal, path)
	}
	return nil
}

// RemovePrincipal revokes the principal's explicit entries through the
// ACL library. Inherited entries are left in place.
func (s *NTFS) RemovePrincipal(path, principal string) (int, error) {
	entries, err := s.Read(path)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, e := range entries {
		if e.Principal == principal && !e.Inherited {
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}

	inherit, err := s.inheritFlag(path)
	if err != nil {
		return 0, err
	}
	namePtr, err := windows.UTF16PtrFromString(principal)
	if err != nil {
		return 0, errors.Wrapf(err, "encode principal %q", principal)
	}
	revoke := api.ExplicitAccess{
		AccessMode: api.REVOKE_ACCESS,
		Trustee: api.Trustee{
			TrusteeForm: api.TRUSTEE_IS_NAME,
			Name:        namePtr,
		},
	}
	if err := acl.Apply(path, false, inherit, revoke); err != nil {
		return 0, errors.Wrapf(err, "revoke %q on %s", principal, path)
	}
	return count, nil
}

// SetInheritance rebuilds the DACL with the entries that survive the
// toggle and writes it with the matching protection flag.
func (s *NTFS) SetInheritance(path string, enabled, clear bool) error {
	dacl, _, err := s.readDACL(path)
	if err != nil {
		return err
	}

	// Entries to carry over: explicit ones always; inherited ones only
	// when disabling without clear (they become explicit copies).
	var keep []windows.EXPLICIT_ACCESS
	if dacl != nil {
		count := (*aclHeader)(unsafe.Pointer(dacl)).count
		for i := uint32(0); i < uint32(count); i++ {
			var ace *windows.ACCESS_ALLOWED_ACE
			if err := windows.GetAce(dacl, i, &ace); err != nil {
				return errors.Wrapf(err, "read ACE %d of %s", i, path)
			}
			inherited := ace.Header.AceFlags&windows.INHERITED_ACE != 0
			if inherited && (enabled || clear) {
				continue
			}
			if !inherited && enabled && clear {
				continue
			}

			sid := (*windows.SID)(unsafe.Pointer(&ace.SidStart))
			mode := windows.ACCESS_MODE(windows.GRANT_ACCESS)
			if ace.Header.AceType == windows.ACCESS_DENIED_ACE_TYPE {
				mode = windows.DENY_ACCESS
			}
			keep = append(keep, windows.EXPLICIT_ACCESS{
				AccessPermissions: ace.Mask,
				AccessMode:        mode,
				Inheritance:       uint32(ace.Header.AceFlags & inheritScopeMask),
				Trustee: windows.TRUSTEE{
					TrusteeForm:  windows.TRUSTEE_IS_SID,
					TrusteeType:  windows.TRUSTEE_IS_UNKNOWN,
					TrusteeValue: windows.TrusteeValueFromSID(sid),
				},
			})
		}
	}

	newDACL, err := windows.ACLFromEntries(keep, nil)
	if err != nil {
		return errors.Wrapf(err, "rebuild DACL of %s", path)
	}

	secInfo := windows.SECURITY_INFORMATION(windows.DACL_SECURITY_INFORMATION)
	if enabled {
		secInfo |= windows.UNPROTECTED_DACL_SECURITY_INFORMATION
	} else {
		secInfo |= windows.PROTECTED_DACL_SECURITY_INFORMATION
	}
	err = windows.SetNamedSecurityInfo(path, windows.SE_FILE_OBJECT,
		secInfo, nil, nil, newDACL, nil)
	if err != nil {
		return errors.Wrapf(err, "set inheritance on %s", path)
	}
	return nil
}

func (s *NTFS) readDACL(path string) (*windows.ACL, *windows.SECURITY_DESCRIPTOR, error) {
	sd, err := windows.GetNamedSecurityInfo(path,
		windows.SE_FILE_OBJECT, windows.DACL_SECURITY_INFORMATION)
	if err != nil {
		return nil, nil, wrapLookupErr(err, path)
	}
	dacl, _, err := sd.DACL()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read DACL of %s", path)
	}
	return dacl, sd, nil
}

// inheritFlag returns the "inherit" argument the ACL library expects:
// true keeps the DACL unprotected, false keeps it protected.
func (s *NTFS) inheritFlag(path string) (bool, error) {
	protected, err := s.IsProtected(path)
	if err != nil {
		return false, err
	}
	return !protected, nil
}

// principalName renders a SID the way the convention layer matches
// principals: bare account name for local accounts, DOMAIN\name
// otherwise, SID string when the account cannot be resolved.
func (s *NTFS) principalName(sid *windows.SID) string {
	account, domain, _, err := sid.LookupAccount("")
	if err != nil {
		return sid.String()
	}
	if domain == "" || domain == s.computer {
		return account
	}
	return domain + "\\" + account
}

func wrapLookupErr(err error, path string) error {
	if errors.Is(err, windows.ERROR_FILE_NOT_FOUND) ||
		errors.Is(err, windows.ERROR_PATH_NOT_FOUND) {
		return ErrNotFound
	}
	return errors.Wrapf(err, "read security descriptor of %s", path)
}
