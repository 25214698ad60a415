package pipeline

import (
	"io/fs"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Aman-CERP/docsearch/internal/metadata"
)

// extractionCache memoizes clean metadata extractions across rebuilds,
// keyed by path and invalidated on mtime or size change. Watch mode
// rebuilds the whole tree on every change; the cache keeps that cheap.
//
// Only extractions that parsed without warnings are cached, so degraded
// files keep reporting their warnings on every rebuild.
type extractionCache struct {
	mu  sync.Mutex
	lru *lru.Cache[string, cacheEntry]
}

type cacheEntry struct {
	modTime time.Time
	size    int64
	ext     metadata.Extraction
}

func newExtractionCache(size int) (*extractionCache, error) {
	c, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &extractionCache{lru: c}, nil
}

func (c *extractionCache) get(path string, info fs.FileInfo) (*metadata.Extraction, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.lru.Get(path)
	if !ok {
		return nil, false
	}
	if !entry.modTime.Equal(info.ModTime()) || entry.size != info.Size() {
		c.lru.Remove(path)
		return nil, false
	}
	ext := entry.ext
	return &ext, true
}

func (c *extractionCache) put(path string, info fs.FileInfo, ext *metadata.Extraction) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Add(path, cacheEntry{
		modTime: info.ModTime(),
		size:    info.Size(),
		ext:     *ext,
	})
}
