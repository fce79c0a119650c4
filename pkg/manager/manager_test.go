package manager

import (
	"errors"
	"testing"

	"github.com/backkem/aclgroups/pkg/aclstore"
	"github.com/backkem/aclgroups/pkg/directory"
	"github.com/backkem/aclgroups/pkg/naming"
	"github.com/backkem/aclgroups/pkg/rights"
)

func TestNewTarget(t *testing.T) {
	tests := []struct {
		path string
		name string
	}{
		{"C:\\Shared", "Shared"},
		{"C:\\Data\\Projects\\", "Projects"},
		{"C:/Data/Projects", "Projects"},
		{"Shared", "Shared"},
	}
	for _, tt := range tests {
		if got := NewTarget(tt.path); got.Name != tt.name {
			t.Errorf("NewTarget(%q).Name = %q, want %q", tt.path, got.Name, tt.name)
		}
	}
}

func TestCreateGroups(t *testing.T) {
	dir := directory.NewMemory()
	m := New(dir, aclstore.NewMemory())

	target := NewTarget("C:\\Shared")
	suffixes := naming.TierSuffixes{Read: "R", Modify: "M"}

	records, err := m.CreateGroups(target, suffixes, "Shared folder access")
	if err != nil {
		t.Fatalf("CreateGroups() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("CreateGroups() returned %d records, want 2", len(records))
	}
	if records[0].Name != "AclGroup-Shared-R" || records[1].Name != "AclGroup-Shared-M" {
		t.Errorf("record names = %q, %q", records[0].Name, records[1].Name)
	}
	for _, r := range records {
		if r.Status != StatusCreated {
			t.Errorf("record %s status = %s, want Created", r.Name, r.Status)
		}
		if !dir.Has(r.Name) {
			t.Errorf("group %s missing from directory", r.Name)
		}
	}
}

// A name collision fails that group only; remaining suffixes are still
// attempted.
func TestCreateGroups_Collision(t *testing.T) {
	dir := directory.NewMemory()
	dir.Create("AclGroup-Shared-R", "already here")
	m := New(dir, aclstore.NewMemory())

	records, err := m.CreateGroups(NewTarget("C:\\Shared"),
		naming.TierSuffixes{Read: "R", Write: "W"}, "")
	if err == nil {
		t.Fatal("CreateGroups() error = nil, want collision")
	}
	if !errors.Is(err, directory.ErrGroupExists) {
		t.Errorf("CreateGroups() error = %v, want ErrGroupExists", err)
	}

	if records[0].Status != StatusFailed {
		t.Errorf("collided record status = %s, want Failed", records[0].Status)
	}
	if records[1].Status != StatusCreated {
		t.Errorf("second record status = %s, want Created", records[1].Status)
	}
	if !dir.Has("AclGroup-Shared-W") {
		t.Error("second group was not created after the collision")
	}
}

// DeleteGroups with removeAll removes a strict superset of any
// suffix-restricted call.
func TestDeleteGroups_RemoveAllSuperset(t *testing.T) {
	seed := func() *directory.Memory {
		dir := directory.NewMemory()
		for _, s := range []string{"R", "W", "M", "F", "Custom"} {
			dir.Create("AclGroup-Data-"+s, "")
		}
		dir.Create("AclGroup-Other-R", "")
		dir.Create("Users", "")
		return dir
	}
	target := NewTarget("C:\\Data")
	suffixes := naming.TierSuffixes{Read: "R", Write: "W"}

	dir := seed()
	m := New(dir, aclstore.NewMemory())
	subset, err := m.DeleteGroups(target, suffixes, false)
	if err != nil {
		t.Fatalf("DeleteGroups() error: %v", err)
	}
	if len(subset) != 2 {
		t.Fatalf("restricted delete removed %d groups, want 2", len(subset))
	}
	if !dir.Has("AclGroup-Data-Custom") || !dir.Has("AclGroup-Data-M") {
		t.Error("restricted delete removed groups outside the suffix set")
	}

	dir = seed()
	m = New(dir, aclstore.NewMemory())
	all, err := m.DeleteGroups(target, suffixes, true)
	if err != nil {
		t.Fatalf("DeleteGroups(removeAll) error: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("removeAll removed %d groups, want 5", len(all))
	}
	for _, r := range all {
		if r.Status != StatusDeleted {
			t.Errorf("record %s status = %s, want Deleted", r.Name, r.Status)
		}
	}

	// Superset check: everything the restricted call removed is gone too.
	removed := make(map[string]bool, len(all))
	for _, r := range all {
		removed[r.Name] = true
	}
	for _, r := range subset {
		if !removed[r.Name] {
			t.Errorf("removeAll did not cover %s", r.Name)
		}
	}

	// Foreign groups survive either way.
	if !dir.Has("AclGroup-Other-R") || !dir.Has("Users") {
		t.Error("removeAll deleted groups of another target")
	}
}

// Install on C:\Shared with Read suffix "R" creates AclGroup-Shared-R
// and one ReadAndExecute ACE propagating to the whole subtree.
func TestInstall_Scenario(t *testing.T) {
	dir := directory.NewMemory()
	store := aclstore.NewMemory()
	m := New(dir, store)

	target := NewTarget("C:\\Shared")
	records, err := m.Install(target, naming.TierSuffixes{Read: "R"},
		"Readers of Shared", rights.ThisFolderSubfoldersAndFiles)
	if err != nil {
		t.Fatalf("Install() error: %v", err)
	}
	if len(records) != 1 || records[0].Name != "AclGroup-Shared-R" {
		t.Fatalf("unexpected records: %+v", records)
	}
	if !dir.Has("AclGroup-Shared-R") {
		t.Error("group AclGroup-Shared-R missing")
	}

	entries, err := store.Read("C:\\Shared")
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("ACL has %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Principal != "AclGroup-Shared-R" {
		t.Errorf("principal = %q", e.Principal)
	}
	if e.EffectiveMask() != rights.MaskRead {
		t.Errorf("mask = %#x, want ReadAndExecute %#x", e.EffectiveMask(), rights.MaskRead)
	}
	if e.AppliesTo != rights.ThisFolderSubfoldersAndFiles {
		t.Errorf("appliesTo = %s", e.AppliesTo)
	}
}

// Install followed by Uninstall with the same parameters restores the
// directory and the ACL to their pre-Install state.
func TestInstallUninstall_RoundTrip(t *testing.T) {
	dir := directory.NewMemory()
	store := aclstore.NewMemory()
	m := New(dir, store)

	target := NewTarget("C:\\Projects")
	suffixes := naming.TierSuffixes{Read: "R", Write: "W", Modify: "M", FullControl: "F"}

	// Pre-existing foreign state must survive the round trip.
	dir.Create("Users", "")
	store.Add("C:\\Projects", aclstore.Entry{
		Principal: "Users", Tier: rights.TierRead,
		AppliesTo: rights.ThisFolderSubfoldersAndFiles,
	})

	if _, err := m.Install(target, suffixes, "projects", rights.ThisFolderSubfoldersAndFiles); err != nil {
		t.Fatalf("Install() error: %v", err)
	}
	if _, err := m.Uninstall(target, suffixes, true); err != nil {
		t.Fatalf("Uninstall() error: %v", err)
	}

	groups, _ := dir.List()
	if len(groups) != 1 || groups[0].Name != "Users" {
		t.Errorf("directory after round trip = %+v, want only Users", groups)
	}
	entries, _ := store.Read("C:\\Projects")
	if len(entries) != 1 || entries[0].Principal != "Users" {
		t.Errorf("ACL after round trip = %+v, want only Users", entries)
	}
}

func TestRevokePermissions_ExactVsAll(t *testing.T) {
	store := aclstore.NewMemory()
	m := New(directory.NewMemory(), store)
	target := NewTarget("C:\\Docs")

	seed := func() {
		for _, s := range []string{"R", "W", "Custom"} {
			store.Add("C:\\Docs", aclstore.Entry{
				Principal: "AclGroup-Docs-" + s,
				Tier:      rights.TierRead,
				AppliesTo: rights.ThisFolderSubfoldersAndFiles,
			})
		}
	}

	seed()
	if err := m.RevokePermissions(target, naming.TierSuffixes{Read: "R"}, false); err != nil {
		t.Fatalf("RevokePermissions() error: %v", err)
	}
	entries, _ := store.Read("C:\\Docs")
	if len(entries) != 2 {
		t.Fatalf("exact revoke left %d entries, want 2", len(entries))
	}

	if err := m.RevokePermissions(target, naming.TierSuffixes{}, true); err != nil {
		t.Fatalf("RevokePermissions(all) error: %v", err)
	}
	entries, _ = store.Read("C:\\Docs")
	if len(entries) != 0 {
		t.Errorf("unpublishAll left %d entries, want 0: %+v", len(entries), entries)
	}
}

// failingStore makes Add fail for one principal to exercise rollback.
type failingStore struct {
	*aclstore.Memory
	failPrincipal string
}

func (f *failingStore) Add(path string, e aclstore.Entry) error {
	if e.Principal == f.failPrincipal {
		return errors.New("induced grant failure")
	}
	return f.Memory.Add(path, e)
}

func TestInstall_Rollback(t *testing.T) {
	dir := directory.NewMemory()
	store := &failingStore{Memory: aclstore.NewMemory(), failPrincipal: "AclGroup-Shared-F"}
	m := New(dir, store, WithRollback(true))

	target := NewTarget("C:\\Shared")
	records, err := m.Install(target, naming.TierSuffixes{Read: "R", FullControl: "F"},
		"", rights.ThisFolderSubfoldersAndFiles)
	if err == nil {
		t.Fatal("Install() error = nil, want induced failure")
	}

	for _, r := range records {
		if r.Status != StatusRolledBack {
			t.Errorf("record %s status = %s, want RolledBack", r.Name, r.Status)
		}
	}
	groups, _ := dir.List()
	if len(groups) != 0 {
		t.Errorf("directory not rolled back: %+v", groups)
	}
	entries, _ := store.Read("C:\\Shared")
	if len(entries) != 0 {
		t.Errorf("ACL not rolled back: %+v", entries)
	}
}

// Without WithRollback a partial failure leaves earlier steps in place.
func TestInstall_NoRollbackByDefault(t *testing.T) {
	dir := directory.NewMemory()
	store := &failingStore{Memory: aclstore.NewMemory(), failPrincipal: "AclGroup-Shared-F"}
	m := New(dir, store)

	target := NewTarget("C:\\Shared")
	_, err := m.Install(target, naming.TierSuffixes{Read: "R", FullControl: "F"},
		"", rights.ThisFolderSubfoldersAndFiles)
	if err == nil {
		t.Fatal("Install() error = nil, want induced failure")
	}

	if !dir.Has("AclGroup-Shared-R") || !dir.Has("AclGroup-Shared-F") {
		t.Error("created groups were removed without rollback enabled")
	}
	entries, _ := store.Read("C:\\Shared")
	if len(entries) != 1 || entries[0].Principal != "AclGroup-Shared-R" {
		t.Errorf("entries = %+v, want the surviving Read grant", entries)
	}
}

func TestListGroups(t *testing.T) {
	dir := directory.NewMemory()
	dir.Create("AclGroup-Shared-R", "readers")
	dir.Create("AclGroup-Shared-W", "writers")
	dir.Create("AclGroup-Other-R", "")
	m := New(dir, aclstore.NewMemory())

	groups, err := m.ListGroups(NewTarget("D:\\Mounts\\Shared"))
	if err != nil {
		t.Fatalf("ListGroups() error: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("ListGroups() returned %d groups, want 2", len(groups))
	}
	if groups[0].Name != "AclGroup-Shared-R" || groups[1].Name != "AclGroup-Shared-W" {
		t.Errorf("groups = %+v", groups)
	}
}
