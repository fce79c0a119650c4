package manager

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/backkem/aclgroups/pkg/aclstore"
	"github.com/backkem/aclgroups/pkg/naming"
	"github.com/backkem/aclgroups/pkg/rights"
)

// GrantPermissions adds one ACE on the target per non-empty tier
// suffix, granting the tier's fixed mask to the composed group name
// with the given propagation scope. The group is not pre-validated; a
// missing principal surfaces as the store's failure.
func (m *Manager) GrantPermissions(target Target, suffixes naming.TierSuffixes, appliesTo rights.AppliesTo) error {
	op := uuid.New()
	var errs []error

	_ = suffixes.ForEach(func(tier rights.Tier, suffix string) error {
		name := m.conv.GroupName(target.Name, suffix)
		entry := aclstore.Entry{
			Principal: name,
			Tier:      tier,
			AppliesTo: appliesTo,
		}
		if err := m.store.Add(target.Path, entry); err != nil {
			errs = append(errs, fmt.Errorf("grant %s to %s: %w", tier, name, err))
			m.log.Warnf("[%s] grant %s to %s on %s: %v", op, tier, name, target.Path, err)
			return nil
		}
		m.log.Infof("[%s] granted %s to %s on %s (%s)", op, tier, name, target.Path, appliesTo)
		return nil
	})
	return errors.Join(errs...)
}

// RevokePermissions removes the target's convention ACEs. With
// unpublishAll, every ACE whose principal matches the convention stem
// is removed regardless of tier; otherwise only the ACEs of the exact
// composed names for the provided tiers.
func (m *Manager) RevokePermissions(target Target, suffixes naming.TierSuffixes, unpublishAll bool) error {
	op := uuid.New()
	var errs []error

	if unpublishAll {
		entries, err := m.store.Read(target.Path)
		if err != nil {
			return fmt.Errorf("read ACL of %s: %w", target.Path, err)
		}
		for _, principal := range uniquePrincipals(entries) {
			if _, ok := m.conv.Match(principal, target.Name); !ok {
				continue
			}
			if _, err := m.store.RemovePrincipal(target.Path, principal); err != nil {
				errs = append(errs, fmt.Errorf("revoke %s: %w", principal, err))
				m.log.Warnf("[%s] revoke %s on %s: %v", op, principal, target.Path, err)
				continue
			}
			m.log.Infof("[%s] revoked %s on %s", op, principal, target.Path)
		}
		return errors.Join(errs...)
	}

	_ = suffixes.ForEach(func(tier rights.Tier, suffix string) error {
		name := m.conv.GroupName(target.Name, suffix)
		if _, err := m.store.RemovePrincipal(target.Path, name); err != nil {
			errs = append(errs, fmt.Errorf("revoke %s: %w", name, err))
			m.log.Warnf("[%s] revoke %s on %s: %v", op, name, target.Path, err)
			return nil
		}
		m.log.Infof("[%s] revoked %s on %s", op, name, target.Path)
		return nil
	})
	return errors.Join(errs...)
}

// uniquePrincipals returns the distinct principals of the entries, in
// first-seen order.
func uniquePrincipals(entries []aclstore.Entry) []string {
	seen := make(map[string]bool, len(entries))
	var result []string
	for _, e := range entries {
		if seen[e.Principal] {
			continue
		}
		seen[e.Principal] = true
		result = append(result, e.Principal)
	}
	return result
}
