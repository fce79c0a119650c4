package manager

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// logTimeFormat is the timestamp prefix of discovery log files. Colons
// are not valid in Windows file names, hence dots in the time part.
const logTimeFormat = "2006-01-02 15.04.05"

// FindNonInheritedDirectories walks the tree under the target up to
// depth levels (1 = direct children) and collects every directory
// carrying at least one non-inherited ACE. The paths are written one
// per line to "<timestamp> <targetName>.txt" in the manager's log
// directory; the file is diagnostic output, the returned slice is the
// same list for programmatic use.
func (m *Manager) FindNonInheritedDirectories(target Target, depth int) (paths []string, logPath string, err error) {
	err = afero.Walk(m.fs, target.Path, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !info.IsDir() || samePath(path, target.Path) {
			return nil
		}
		if levelsBelow(target.Path, path) > depth {
			return filepath.SkipDir
		}

		entries, err := m.store.Read(path)
		if err != nil {
			return fmt.Errorf("read ACL of %s: %w", path, err)
		}
		for _, e := range entries {
			if !e.Inherited {
				paths = append(paths, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	logPath, err = m.writeDiscoveryLog(target, paths)
	if err != nil {
		return paths, "", err
	}
	return paths, logPath, nil
}

func (m *Manager) writeDiscoveryLog(target Target, paths []string) (string, error) {
	if err := m.fs.MkdirAll(m.logDir, 0o755); err != nil {
		return "", fmt.Errorf("create log directory %s: %w", m.logDir, err)
	}

	name := time.Now().Format(logTimeFormat) + " " + target.Name + ".txt"
	logPath := filepath.Join(m.logDir, name)

	var buf bytes.Buffer
	for _, p := range paths {
		buf.WriteString(p)
		buf.WriteByte('\n')
	}
	if err := afero.WriteFile(m.fs, logPath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write discovery log %s: %w", logPath, err)
	}
	m.log.Infof("wrote %d non-inherited paths to %s", len(paths), logPath)
	return logPath, nil
}

// levelsBelow counts how many levels descendant lies below root.
// Direct children are level 1.
func levelsBelow(root, descendant string) int {
	norm := func(p string) string {
		p = strings.ReplaceAll(p, "\\", "/")
		return strings.TrimRight(p, "/")
	}
	rel := strings.TrimPrefix(norm(descendant), norm(root))
	rel = strings.Trim(rel, "/")
	if rel == "" {
		return 0
	}
	return strings.Count(rel, "/") + 1
}
