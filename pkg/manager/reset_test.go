package manager

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/backkem/aclgroups/pkg/aclstore"
	"github.com/backkem/aclgroups/pkg/directory"
	"github.com/backkem/aclgroups/pkg/rights"
)

func entry(principal string, tier rights.Tier, inherited bool) aclstore.Entry {
	return aclstore.Entry{
		Principal: principal,
		Tier:      tier,
		Inherited: inherited,
		AppliesTo: rights.ThisFolderSubfoldersAndFiles,
	}
}

// After a hard reset the target carries exactly one ACE: SYSTEM with
// full control. Every descendant inherits and has no explicit ACEs.
func TestHardReset(t *testing.T) {
	fs := afero.NewMemMapFs()
	fs.MkdirAll("C:/Share/sub/deep", 0o755)
	afero.WriteFile(fs, "C:/Share/sub/file.txt", []byte("x"), 0o644)

	store := aclstore.NewMemory()
	// Target inherits from its parent and carries explicit cruft.
	store.Add("C:/Share", entry("Users", rights.TierRead, true))
	store.Add("C:/Share", entry("DOMAIN\\Legacy", rights.TierModify, false))
	store.Add("C:/Share", entry("CREATOR OWNER", rights.TierFullControl, false))
	// A descendant diverged: protected with its own grant.
	store.Add("C:/Share/sub", entry("DOMAIN\\Other", rights.TierWrite, false))
	store.SetInheritance("C:/Share/sub", false, false)

	m := New(directory.NewMemory(), store, WithFilesystem(fs))
	if err := m.HardReset(NewTarget("C:/Share"), false); err != nil {
		t.Fatalf("HardReset() error: %v", err)
	}

	entries, _ := store.Read("C:/Share")
	if len(entries) != 1 {
		t.Fatalf("target ACL = %+v, want exactly one SYSTEM entry", entries)
	}
	if entries[0].Principal != rights.System || entries[0].Tier != rights.TierFullControl {
		t.Errorf("sole entry = %+v, want SYSTEM FullControl", entries[0])
	}

	protected, _ := store.IsProtected("C:/Share")
	if !protected {
		t.Error("target still inherits after HardReset")
	}

	for _, p := range []string{"C:/Share/sub", "C:/Share/sub/deep", "C:/Share/sub/file.txt"} {
		protected, _ := store.IsProtected(p)
		if protected {
			t.Errorf("%s still protected after HardReset", p)
		}
		entries, _ := store.Read(p)
		for _, e := range entries {
			if !e.Inherited {
				t.Errorf("%s carries explicit entry %+v after HardReset", p, e)
			}
		}
	}

	// The descendant now inherits the SYSTEM grant from the target.
	entries, _ = store.Read("C:/Share/sub")
	if len(entries) != 1 || entries[0].Principal != rights.System || !entries[0].Inherited {
		t.Errorf("descendant ACL = %+v, want inherited SYSTEM entry", entries)
	}
}

func TestHardReset_LimitOwner(t *testing.T) {
	fs := afero.NewMemMapFs()
	fs.MkdirAll("C:/Share", 0o755)

	store := aclstore.NewMemory()
	store.Add("C:/Share", entry("CREATOR OWNER", rights.TierFullControl, false))

	m := New(directory.NewMemory(), store, WithFilesystem(fs))
	if err := m.HardReset(NewTarget("C:/Share"), true); err != nil {
		t.Fatalf("HardReset() error: %v", err)
	}

	entries, _ := store.Read("C:/Share")
	if len(entries) != 2 {
		t.Fatalf("target ACL = %+v, want SYSTEM and CREATOR OWNER", entries)
	}

	var owner *aclstore.Entry
	for i := range entries {
		if entries[i].Principal == rights.CreatorOwner {
			owner = &entries[i]
		}
	}
	if owner == nil {
		t.Fatal("CREATOR OWNER entry missing")
	}
	if owner.Tier != rights.TierModify {
		t.Errorf("CREATOR OWNER tier = %s, want Modify", owner.Tier)
	}
}

// SoftReset keeps convention groups and well-known principals and
// removes everything else.
func TestSoftReset(t *testing.T) {
	store := aclstore.NewMemory()
	store.Add("C:/Docs", entry("AclGroup-Docs-R", rights.TierRead, false))
	store.Add("C:/Docs", entry("AclGroup-Docs-M", rights.TierModify, false))
	store.Add("C:/Docs", entry(rights.System, rights.TierFullControl, false))
	store.Add("C:/Docs", entry(rights.CreatorOwner, rights.TierFullControl, false))
	store.Add("C:/Docs", entry("DOMAIN\\Intruder", rights.TierFullControl, false))
	store.Add("C:/Docs", entry("AclGroup-Other-R", rights.TierRead, false))

	m := New(directory.NewMemory(), store)
	if err := m.SoftReset(NewTarget("C:/Docs"), false); err != nil {
		t.Fatalf("SoftReset() error: %v", err)
	}

	entries, _ := store.Read("C:/Docs")
	got := make(map[string]bool, len(entries))
	for _, e := range entries {
		got[e.Principal] = true
	}

	for _, keep := range []string{"AclGroup-Docs-R", "AclGroup-Docs-M", rights.System, rights.CreatorOwner} {
		if !got[keep] {
			t.Errorf("SoftReset removed %s", keep)
		}
	}
	for _, gone := range []string{"DOMAIN\\Intruder", "AclGroup-Other-R"} {
		if got[gone] {
			t.Errorf("SoftReset kept %s", gone)
		}
	}
}

func TestSoftReset_LimitOwner(t *testing.T) {
	store := aclstore.NewMemory()
	store.Add("C:/Docs", entry(rights.CreatorOwner, rights.TierFullControl, false))
	store.Add("C:/Docs", entry("AclGroup-Docs-R", rights.TierRead, false))

	m := New(directory.NewMemory(), store)
	if err := m.SoftReset(NewTarget("C:/Docs"), true); err != nil {
		t.Fatalf("SoftReset() error: %v", err)
	}

	entries, _ := store.Read("C:/Docs")
	for _, e := range entries {
		if e.Principal == rights.CreatorOwner && e.Tier != rights.TierModify {
			t.Errorf("CREATOR OWNER entry = %+v, want Modify only", e)
		}
	}
}
