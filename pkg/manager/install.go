package manager

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/backkem/aclgroups/pkg/aclstore"
	"github.com/backkem/aclgroups/pkg/naming"
	"github.com/backkem/aclgroups/pkg/rights"
)

// Install creates the target's convention groups and grants each one
// its tier on the target, in that order. Grants are only attempted for
// groups that were actually created in this call.
//
// Without WithRollback a partial failure leaves earlier steps in
// place, matching the historic behavior. With it, any failure reverses
// the groups and grants completed so far and the records come back
// with StatusRolledBack.
func (m *Manager) Install(target Target, suffixes naming.TierSuffixes, description string, appliesTo rights.AppliesTo) ([]GroupRecord, error) {
	op := uuid.New()
	records, createErr := m.CreateGroups(target, suffixes, description)

	created := make(map[string]bool, len(records))
	for _, r := range records {
		if r.Status == StatusCreated {
			created[r.Name] = true
		}
	}

	var errs []error
	if createErr != nil {
		errs = append(errs, createErr)
	}

	var granted []string
	_ = suffixes.ForEach(func(tier rights.Tier, suffix string) error {
		name := m.conv.GroupName(target.Name, suffix)
		if !created[name] {
			return nil
		}
		entry := aclstore.Entry{Principal: name, Tier: tier, AppliesTo: appliesTo}
		if err := m.store.Add(target.Path, entry); err != nil {
			errs = append(errs, fmt.Errorf("grant %s to %s: %w", tier, name, err))
			return nil
		}
		granted = append(granted, name)
		return nil
	})

	if len(errs) > 0 && m.rollback {
		m.log.Warnf("[%s] install of %s failed, rolling back %d grants and %d groups",
			op, target.Path, len(granted), len(created))
		for _, name := range granted {
			if _, err := m.store.RemovePrincipal(target.Path, name); err != nil {
				errs = append(errs, fmt.Errorf("rollback grant of %s: %w", name, err))
			}
		}
		for i := range records {
			if records[i].Status != StatusCreated {
				continue
			}
			if err := m.dir.Delete(records[i].Name); err != nil {
				errs = append(errs, fmt.Errorf("rollback group %s: %w", records[i].Name, err))
				continue
			}
			records[i].Status = StatusRolledBack
		}
	}

	return records, errors.Join(errs...)
}

// Uninstall revokes the target's convention ACEs and deletes its
// groups, mirroring Install. With removeAll the convention stem alone
// decides what goes; otherwise only the provided tiers. Deleting local
// groups discards their SIDs, so Uninstall is never rolled back.
func (m *Manager) Uninstall(target Target, suffixes naming.TierSuffixes, removeAll bool) ([]GroupRecord, error) {
	var errs []error
	if err := m.RevokePermissions(target, suffixes, removeAll); err != nil {
		errs = append(errs, err)
	}

	records, err := m.DeleteGroups(target, suffixes, removeAll)
	if err != nil {
		errs = append(errs, err)
	}
	return records, errors.Join(errs...)
}
