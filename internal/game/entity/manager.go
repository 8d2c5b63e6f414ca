package entity

// Manager indexes entities by ID.
type Manager struct {
	entities map[uint32]*Entity
}

// NewManager creates a new entity manager.
func NewManager() *Manager {
	return &Manager{
		entities: make(map[uint32]*Entity),
	}
}

// Add adds an entity.
func (m *Manager) Add(e *Entity) {
	m.entities[e.ID] = e
}

// AddTree adds root and all of its descendants.
func (m *Manager) AddTree(root *Entity) {
	root.Walk(func(e *Entity) bool {
		m.Add(e)
		return true
	})
}

// Remove removes an entity.
func (m *Manager) Remove(id uint32) {
	delete(m.entities, id)
}

// Get returns an entity by ID.
func (m *Manager) Get(id uint32) *Entity {
	return m.entities[id]
}

// All returns all entities.
func (m *Manager) All() []*Entity {
	result := make([]*Entity, 0, len(m.entities))
	for _, e := range m.entities {
		result = append(result, e)
	}
	return result
}

// GetByType returns all entities of a specific type.
func (m *Manager) GetByType(entityType Type) []*Entity {
	result := make([]*Entity, 0)
	for _, e := range m.entities {
		if e.Type == entityType {
			result = append(result, e)
		}
	}
	return result
}

// Count returns the total number of entities.
func (m *Manager) Count() int {
	return len(m.entities)
}

// CountByType returns the number of entities of a specific type.
func (m *Manager) CountByType(entityType Type) int {
	count := 0
	for _, e := range m.entities {
		if e.Type == entityType {
			count++
		}
	}
	return count
}

// Prune drops destroyed entities and returns how many were removed.
func (m *Manager) Prune() int {
	n := 0
	for id, e := range m.entities {
		if e.destroyed {
			delete(m.entities, id)
			n++
		}
	}
	return n
}

// ClearAll removes all entities.
func (m *Manager) ClearAll() {
	m.entities = make(map[uint32]*Entity)
}
