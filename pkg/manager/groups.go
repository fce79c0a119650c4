package manager

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/backkem/aclgroups/pkg/directory"
	"github.com/backkem/aclgroups/pkg/naming"
	"github.com/backkem/aclgroups/pkg/rights"
)

// CreateGroups creates one local group per non-empty tier suffix. A
// name collision is recorded and reported, not retried; remaining
// suffixes are still attempted. The returned error joins all per-group
// failures.
func (m *Manager) CreateGroups(target Target, suffixes naming.TierSuffixes, description string) ([]GroupRecord, error) {
	op := uuid.New()
	var records []GroupRecord
	var errs []error

	_ = suffixes.ForEach(func(tier rights.Tier, suffix string) error {
		name := m.conv.GroupName(target.Name, suffix)
		rec := GroupRecord{Name: name, Description: description, Status: StatusCreated}
		if err := m.dir.Create(name, description); err != nil {
			rec.Status = StatusFailed
			rec.Err = err
			errs = append(errs, fmt.Errorf("create %s: %w", name, err))
			m.log.Warnf("[%s] create group %s: %v", op, name, err)
		} else {
			m.log.Infof("[%s] created group %s (%s on %s)", op, name, tier, target.Path)
		}
		records = append(records, rec)
		return nil
	})
	return records, errors.Join(errs...)
}

// DeleteGroups deletes the target's convention groups. With removeAll,
// every suffix matches; otherwise only groups whose suffix is in the
// given set are deleted. Returns one audit record per deleted (or
// failed) group.
func (m *Manager) DeleteGroups(target Target, suffixes naming.TierSuffixes, removeAll bool) ([]GroupRecord, error) {
	op := uuid.New()
	groups, err := m.dir.List()
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	var records []GroupRecord
	var errs []error
	for _, g := range groups {
		suffix, ok := m.conv.Match(g.Name, target.Name)
		if !ok {
			continue
		}
		if !removeAll && !suffixes.Contains(suffix) {
			continue
		}

		rec := GroupRecord{Name: g.Name, Description: g.Description, Status: StatusDeleted}
		if err := m.dir.Delete(g.Name); err != nil {
			rec.Status = StatusFailed
			rec.Err = err
			errs = append(errs, fmt.Errorf("delete %s: %w", g.Name, err))
			m.log.Warnf("[%s] delete group %s: %v", op, g.Name, err)
		} else {
			m.log.Infof("[%s] deleted group %s", op, g.Name)
		}
		records = append(records, rec)
	}
	return records, errors.Join(errs...)
}

// ListGroups returns the convention groups currently present for the
// target, in directory order.
func (m *Manager) ListGroups(target Target) ([]directory.Group, error) {
	groups, err := m.dir.List()
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	var result []directory.Group
	for _, g := range groups {
		if _, ok := m.conv.Match(g.Name, target.Name); ok {
			result = append(result, g)
		}
	}
	return result, nil
}
