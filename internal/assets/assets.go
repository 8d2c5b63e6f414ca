// Package assets loads scene hierarchies from glTF files.
package assets

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/Faultbox/scenegraph/internal/game/entity"
	"github.com/Faultbox/scenegraph/internal/logger"
)

// Manager opens glTF documents and caches them by path.
type Manager struct {
	cache *Cache
	open  func(path string) (*gltf.Document, error)
	mu    sync.Mutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
		open:  gltf.Open,
	}
}

// Load returns the document at path, reading it on first use.
func (m *Manager) Load(path string) (*gltf.Document, error) {
	// Check cache first
	if doc, ok := m.cache.Get(path); ok {
		return doc, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	m.cache.Set(path, doc)
	logger.Debug("gltf loaded",
		zap.String("path", path),
		zap.Int("nodes", len(doc.Nodes)),
		zap.Int("scenes", len(doc.Scenes)),
	)
	return doc, nil
}

// LoadScene loads path and imports its default scene.
func (m *Manager) LoadScene(path string) (*entity.Entity, Report, error) {
	doc, err := m.Load(path)
	if err != nil {
		return nil, Report{}, err
	}
	root, report, err := Import(doc, -1)
	if err != nil {
		return nil, report, errors.Wrapf(err, "importing %s", path)
	}
	return root, report, nil
}

// Cache returns the document cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Close drops every cached document.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded documents.
type Cache struct {
	data map[string]*gltf.Document
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*gltf.Document),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (*gltf.Document, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return doc, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, doc *gltf.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = doc
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*gltf.Document)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
