package services

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"order-insights/internal/loader"
	"order-insights/internal/pipeline"
)

// fingerprint identifies one version of a source file. A changed size or
// modification time means the file must be read again.
type fingerprint struct {
	Path    string
	Sheet   string
	Size    int64
	ModTime time.Time
}

func (f fingerprint) String() string {
	return fmt.Sprintf("%s|%s|%d|%d", f.Path, f.Sheet, f.Size, f.ModTime.UnixNano())
}

func fingerprintOf(path, sheet string) (fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fingerprint{}, &loader.LoadError{Path: path, Op: "stat", Err: err}
	}
	return fingerprint{
		Path:    path,
		Sheet:   sheet,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// snapshot is an immutable pairing of a loaded dataset and its report.
type snapshot struct {
	key      fingerprint
	dataset  *loader.Dataset
	report   *pipeline.Report
	loadedAt time.Time
}

// Cache keeps the snapshot of the most recently loaded source version.
type Cache struct {
	mu     sync.Mutex
	entry  *snapshot
	hits   atomic.Int64
	misses atomic.Int64
}

func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) get(key fingerprint) (*snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry != nil && c.entry.key == key {
		c.hits.Add(1)
		return c.entry, true
	}
	c.misses.Add(1)
	return nil, false
}

func (c *Cache) put(s *snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = s
}

// Invalidate drops the cached snapshot so the next load reads the source.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
}

func (c *Cache) Hits() int64   { return c.hits.Load() }
func (c *Cache) Misses() int64 { return c.misses.Load() }
