package aclstore

import (
	"path"
	"strings"
	"sync"
)

// Memory is an in-memory Store modelling a tree of objects with
// per-object entry lists and a protected flag. It reproduces the
// observable inheritance behavior the convention layer depends on:
// disabling inheritance with clear drops inherited entries, re-enabling
// with clear drops explicit entries and pulls propagating entries down
// from the nearest ancestor present in the store.
//
// Objects never written to read as empty and unprotected, which is the
// state of a fresh directory that only inherits.
type Memory struct {
	objects map[string]*objectACL
	mu      sync.Mutex
}

type objectACL struct {
	entries   []Entry
	protected bool
}

// NewMemory creates an empty in-memory ACL store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string]*objectACL)}
}

// normalize maps Windows and slash paths onto one key space so tests
// can use either separator.
func normalize(p string) string {
	return path.Clean(strings.ReplaceAll(p, "\\", "/"))
}

func (m *Memory) object(p string) *objectACL {
	key := normalize(p)
	obj := m.objects[key]
	if obj == nil {
		obj = &objectACL{}
		m.objects[key] = obj
	}
	return obj
}

// Read returns a copy of the object's entries.
func (m *Memory) Read(p string) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.objects[normalize(p)]
	if obj == nil {
		return nil, nil
	}
	result := make([]Entry, len(obj.entries))
	copy(result, obj.entries)
	return result, nil
}

// IsProtected reports whether inheritance is disabled on the object.
func (m *Memory) IsProtected(p string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.objects[normalize(p)]
	if obj == nil {
		return false, nil
	}
	return obj.protected, nil
}

// Add appends one entry.
func (m *Memory) Add(p string, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.object(p)
	obj.entries = append(obj.entries, entry)
	return nil
}

// RemovePrincipal removes the principal's explicit entries.
func (m *Memory) RemovePrincipal(p, principal string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.objects[normalize(p)]
	if obj == nil {
		return 0, nil
	}

	kept := obj.entries[:0]
	removed := 0
	for _, e := range obj.entries {
		if e.Principal == principal && !e.Inherited {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	obj.entries = kept
	return removed, nil
}

// SetInheritance toggles the protected flag and, with clear, drops the
// entries the toggle invalidates.
func (m *Memory) SetInheritance(p string, enabled, clear bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.object(p)
	obj.protected = !enabled

	if !enabled {
		if clear {
			obj.entries = filterEntries(obj.entries, func(e Entry) bool { return !e.Inherited })
		}
		return nil
	}

	if clear {
		obj.entries = filterEntries(obj.entries, func(e Entry) bool { return e.Inherited })
	}

	// Recompute what the object inherits from the nearest ancestor the
	// store knows about.
	obj.entries = filterEntries(obj.entries, func(e Entry) bool { return !e.Inherited })
	if parent := m.nearestAncestor(p); parent != nil {
		for _, e := range parent.entries {
			if !e.AppliesTo.Propagates() {
				continue
			}
			inherited := e
			inherited.Inherited = true
			obj.entries = append(obj.entries, inherited)
		}
	}
	return nil
}

// nearestAncestor walks up the path to the closest object the store
// knows about. A protected ancestor still propagates its own entries;
// protection only blocks what the ancestor itself inherits.
func (m *Memory) nearestAncestor(p string) *objectACL {
	key := normalize(p)
	for {
		parent := path.Dir(key)
		if parent == key {
			return nil
		}
		key = parent
		if obj := m.objects[key]; obj != nil {
			return obj
		}
	}
}

func filterEntries(entries []Entry, keep func(Entry) bool) []Entry {
	kept := entries[:0]
	for _, e := range entries {
		if keep(e) {
			kept = append(kept, e)
		}
	}
	return kept
}
