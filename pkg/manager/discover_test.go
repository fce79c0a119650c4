package manager

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/backkem/aclgroups/pkg/aclstore"
	"github.com/backkem/aclgroups/pkg/directory"
	"github.com/backkem/aclgroups/pkg/rights"
)

// Discovery within 2 levels reports exactly the directories holding a
// non-inherited ACE, and mirrors them into the log file.
func TestFindNonInheritedDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, d := range []string{
		"C:/Data/clean",
		"C:/Data/diverged",
		"C:/Data/clean/nested",
		"C:/Data/clean/nested/toodeep",
	} {
		fs.MkdirAll(d, 0o755)
	}

	store := aclstore.NewMemory()
	inherited := entry("Users", rights.TierRead, true)
	store.Add("C:/Data/clean", inherited)
	store.Add("C:/Data/diverged", entry("DOMAIN\\Special", rights.TierModify, false))
	store.Add("C:/Data/clean/nested", entry("DOMAIN\\Nested", rights.TierWrite, false))
	// Level 3: diverged but out of range.
	store.Add("C:/Data/clean/nested/toodeep", entry("DOMAIN\\Deep", rights.TierWrite, false))

	m := New(directory.NewMemory(), store,
		WithFilesystem(fs), WithLogDir("C:/Logs"))

	paths, logPath, err := m.FindNonInheritedDirectories(NewTarget("C:/Data"), 2)
	if err != nil {
		t.Fatalf("FindNonInheritedDirectories() error: %v", err)
	}

	want := map[string]bool{
		"C:/Data/diverged":     true,
		"C:/Data/clean/nested": true,
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for _, p := range paths {
		if !want[filepath.ToSlash(p)] {
			t.Errorf("unexpected path %s", p)
		}
	}

	// Log file: one path per line, named "<timestamp> Data.txt".
	if !strings.HasSuffix(logPath, " Data.txt") {
		t.Errorf("logPath = %q, want suffix \" Data.txt\"", logPath)
	}
	content, err := afero.ReadFile(fs, logPath)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) != len(paths) {
		t.Fatalf("log has %d lines, want %d", len(lines), len(paths))
	}
	for i, p := range paths {
		if lines[i] != p {
			t.Errorf("log line %d = %q, want %q", i, lines[i], p)
		}
	}
}

// A depth of 1 restricts the sweep to direct children.
func TestFindNonInheritedDirectories_DepthOne(t *testing.T) {
	fs := afero.NewMemMapFs()
	fs.MkdirAll("C:/Data/child/grandchild", 0o755)

	store := aclstore.NewMemory()
	store.Add("C:/Data/child", entry("A", rights.TierRead, false))
	store.Add("C:/Data/child/grandchild", entry("B", rights.TierRead, false))

	m := New(directory.NewMemory(), store,
		WithFilesystem(fs), WithLogDir("C:/Logs"))

	paths, _, err := m.FindNonInheritedDirectories(NewTarget("C:/Data"), 1)
	if err != nil {
		t.Fatalf("FindNonInheritedDirectories() error: %v", err)
	}
	if len(paths) != 1 || filepath.ToSlash(paths[0]) != "C:/Data/child" {
		t.Errorf("paths = %v, want only the direct child", paths)
	}
}

func TestLevelsBelow(t *testing.T) {
	tests := []struct {
		root, path string
		want       int
	}{
		{"C:/Data", "C:/Data", 0},
		{"C:/Data", "C:/Data/a", 1},
		{"C:/Data", "C:/Data/a/b", 2},
		{"C:\\Data", "C:\\Data\\a\\b\\c", 3},
	}
	for _, tt := range tests {
		if got := levelsBelow(tt.root, tt.path); got != tt.want {
			t.Errorf("levelsBelow(%q, %q) = %d, want %d", tt.root, tt.path, got, tt.want)
		}
	}
}
