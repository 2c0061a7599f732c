package media

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	cacheSubdir   = "images"
	pruneInterval = 24 * time.Hour
)

// Cache stores downscaled source images as PNG files so remote and large
// images are not fetched and decoded again on the next run.
type Cache struct {
	dir    string
	maxAge time.Duration

	mu         sync.Mutex
	lastPruned time.Time
}

// NewCache creates a disk cache under baseDir. Entries older than maxAge
// are pruned in the background.
func NewCache(baseDir string, maxAge time.Duration) (*Cache, error) {
	if baseDir == "" {
		userCache, err := os.UserCacheDir()
		if err != nil {
			return nil, err
		}
		baseDir = filepath.Join(userCache, "lightbox")
	}

	dir := filepath.Join(baseDir, cacheSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	c := &Cache{dir: dir, maxAge: maxAge}

	// Prune old entries in background
	go c.pruneOldEntries()

	return c, nil
}

// cacheKey identifies a source at a given maximum edge length.
func cacheKey(url string, edge int) string {
	data := fmt.Sprintf("%s:%d", url, edge)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

func (c *Cache) path(url string, edge int) string {
	return filepath.Join(c.dir, cacheKey(url, edge)+".png")
}

// Get retrieves cached PNG data. Returns nil if not cached.
func (c *Cache) Get(url string, edge int) []byte {
	if c == nil {
		return nil
	}

	path := c.path(url, edge)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	// Touch the file to update mtime (keeps frequently used entries fresh)
	now := time.Now()
	_ = os.Chtimes(path, now, now) //nolint:errcheck // best-effort

	return data
}

// Put stores PNG data.
func (c *Cache) Put(url string, edge int, data []byte) error {
	if c == nil {
		return nil
	}

	// Write then rename so a concurrent Get never sees a partial file.
	path := c.path(url, edge)
	tmp, err := os.CreateTemp(c.dir, ".put-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// pruneOldEntries removes cache entries older than maxAge.
func (c *Cache) pruneOldEntries() {
	if c == nil || c.maxAge <= 0 {
		return
	}

	c.mu.Lock()
	// Don't prune too frequently
	if time.Since(c.lastPruned) < pruneInterval {
		c.mu.Unlock()
		return
	}
	c.lastPruned = time.Now()
	c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return
	}

	cutoff := time.Now().Add(-c.maxAge)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(c.dir, entry.Name())) //nolint:errcheck // best-effort cleanup
		}
	}
}
