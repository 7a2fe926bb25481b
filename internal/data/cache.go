package data

import (
	"os"
	"sync"
	"time"
)

type cacheEntry struct {
	dataset *Dataset
	modTime time.Time
}

// DatasetCache keeps parsed datasets in memory, keyed by path. An entry is
// invalidated when the file's modification time changes, so edited datasets
// are picked up without a restart.
type DatasetCache struct {
	mu    sync.RWMutex
	store map[string]cacheEntry
}

func NewDatasetCache() *DatasetCache {
	return &DatasetCache{store: make(map[string]cacheEntry)}
}

// Load returns the dataset at path, reading and parsing it only when the
// cache has no current entry.
func (c *DatasetCache) Load(path string) (*Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	entry, ok := c.store[path]
	c.mu.RUnlock()
	if ok && entry.modTime.Equal(info.ModTime()) {
		return entry.dataset, nil
	}

	d, err := LoadDataset(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.store[path] = cacheEntry{dataset: d, modTime: info.ModTime()}
	c.mu.Unlock()
	return d, nil
}

// Clear removes all entries from the cache.
func (c *DatasetCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]cacheEntry)
}
