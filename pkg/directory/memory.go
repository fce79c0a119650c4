package directory

import (
	"sort"
	"sync"
)

// Memory is an in-memory Directory for tests.
type Memory struct {
	groups map[string]Group
	mu     sync.Mutex
}

// NewMemory creates an empty in-memory directory.
func NewMemory() *Memory {
	return &Memory{groups: make(map[string]Group)}
}

// Create adds a group, failing on a duplicate name.
func (m *Memory) Create(name, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.groups[name]; exists {
		return ErrGroupExists
	}
	m.groups[name] = Group{Name: name, Description: description}
	return nil
}

// List returns all groups sorted by name.
func (m *Memory) List() ([]Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]Group, 0, len(m.groups))
	for _, g := range m.groups {
		result = append(result, g)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Delete removes a group, failing if it does not exist.
func (m *Memory) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.groups[name]; !exists {
		return ErrGroupNotFound
	}
	delete(m.groups, name)
	return nil
}

// Has reports whether a group with the name exists. Test helper.
func (m *Memory) Has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, exists := m.groups[name]
	return exists
}
