package manager

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/backkem/aclgroups/pkg/aclstore"
	"github.com/backkem/aclgroups/pkg/rights"
)

// HardReset makes the target the sole ACL authority of its subtree:
// grant SYSTEM full control, cut the target off from its parent
// (dropping what it inherited), strip every other ACE, then walk the
// descendants re-enabling inheritance and discarding their explicit
// ACEs. With limitOwner, CREATOR OWNER comes back as a Modify-only
// grant instead of keeping full control over owned children.
func (m *Manager) HardReset(target Target, limitOwner bool) error {
	op := uuid.New()
	m.log.Infof("[%s] hard reset of %s (limitOwner=%v)", op, target.Path, limitOwner)

	// SYSTEM first, so the tool cannot cut off its own access while it
	// rewrites the rest of the DACL.
	sys := aclstore.Entry{
		Principal: rights.System,
		Tier:      rights.TierFullControl,
		AppliesTo: rights.ThisFolderSubfoldersAndFiles,
	}
	if err := m.store.Add(target.Path, sys); err != nil {
		return fmt.Errorf("grant SYSTEM on %s: %w", target.Path, err)
	}

	protected, err := m.store.IsProtected(target.Path)
	if err != nil {
		return fmt.Errorf("read inheritance of %s: %w", target.Path, err)
	}
	if !protected {
		if err := m.store.SetInheritance(target.Path, false, true); err != nil {
			return fmt.Errorf("disable inheritance on %s: %w", target.Path, err)
		}
	}

	entries, err := m.store.Read(target.Path)
	if err != nil {
		return fmt.Errorf("read ACL of %s: %w", target.Path, err)
	}
	for _, principal := range uniquePrincipals(entries) {
		if principal == rights.System || principal == rights.SIDSystem {
			continue
		}
		if _, err := m.store.RemovePrincipal(target.Path, principal); err != nil {
			return fmt.Errorf("remove %s on %s: %w", principal, target.Path, err)
		}
	}

	if limitOwner {
		owner := aclstore.Entry{
			Principal: rights.CreatorOwner,
			Tier:      rights.TierModify,
			AppliesTo: rights.SubfoldersAndFiles,
		}
		if err := m.store.Add(target.Path, owner); err != nil {
			return fmt.Errorf("grant CREATOR OWNER on %s: %w", target.Path, err)
		}
	}

	// Every descendant goes back to pure inheritance.
	walkErr := afero.Walk(m.fs, target.Path, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if samePath(path, target.Path) {
			return nil
		}
		if err := m.store.SetInheritance(path, true, true); err != nil {
			return fmt.Errorf("reset inheritance on %s: %w", path, err)
		}
		return nil
	})
	if walkErr != nil {
		return walkErr
	}

	m.log.Infof("[%s] hard reset of %s done", op, target.Path)
	return nil
}

// SoftReset removes only the ACEs that neither follow the naming
// convention for the target nor belong to SYSTEM or CREATOR OWNER.
// Convention groups keep their grants untouched.
func (m *Manager) SoftReset(target Target, limitOwner bool) error {
	op := uuid.New()
	m.log.Infof("[%s] soft reset of %s (limitOwner=%v)", op, target.Path, limitOwner)

	if limitOwner {
		if _, err := m.store.RemovePrincipal(target.Path, rights.CreatorOwner); err != nil {
			return fmt.Errorf("remove CREATOR OWNER on %s: %w", target.Path, err)
		}
		owner := aclstore.Entry{
			Principal: rights.CreatorOwner,
			Tier:      rights.TierModify,
			AppliesTo: rights.SubfoldersAndFiles,
		}
		if err := m.store.Add(target.Path, owner); err != nil {
			return fmt.Errorf("grant CREATOR OWNER on %s: %w", target.Path, err)
		}
	}

	entries, err := m.store.Read(target.Path)
	if err != nil {
		return fmt.Errorf("read ACL of %s: %w", target.Path, err)
	}
	for _, principal := range uniquePrincipals(entries) {
		if rights.IsWellKnown(principal) {
			continue
		}
		if _, ok := m.conv.Match(principal, target.Name); ok {
			continue
		}
		removed, err := m.store.RemovePrincipal(target.Path, principal)
		if err != nil {
			return fmt.Errorf("remove %s on %s: %w", principal, target.Path, err)
		}
		if removed > 0 {
			m.log.Infof("[%s] removed %d foreign entries for %s on %s",
				op, removed, principal, target.Path)
		}
	}
	return nil
}

// samePath compares paths ignoring separator style and a trailing
// separator.
func samePath(a, b string) bool {
	norm := func(p string) string {
		p = strings.ReplaceAll(p, "\\", "/")
		return strings.TrimRight(p, "/")
	}
	return norm(a) == norm(b)
}
