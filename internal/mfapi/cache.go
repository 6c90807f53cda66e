package mfapi

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// diskCache stores raw API responses as one file per key under a directory,
// with freshness decided by file modification time. NAVs publish once a day,
// so a stale-by-TTL file is simply refetched.
type diskCache struct {
	dir string
	ttl time.Duration
}

func newDiskCache(dir string, ttl time.Duration) (*diskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &diskCache{dir: dir, ttl: ttl}, nil
}

func (c *diskCache) path(key string) string {
	replacer := strings.NewReplacer("/", "_", ":", "_")
	return filepath.Join(c.dir, replacer.Replace(key)+".json")
}

// get returns the cached body for key, or ok=false when absent or expired.
func (c *diskCache) get(key string) ([]byte, bool) {
	path := c.path(key)

	info, err := os.Stat(path)
	if err != nil || time.Since(info.ModTime()) >= c.ttl {
		return nil, false
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return raw, true
}

// put writes the body for key. Cache write failures are not fatal: the
// caller already has the data.
func (c *diskCache) put(key string, body []byte) error {
	return os.WriteFile(c.path(key), body, 0o644)
}

// clear removes every cached response.
func (c *diskCache) clear() error {
	entries, err := filepath.Glob(filepath.Join(c.dir, "*.json"))
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.Remove(entry); err != nil {
			return err
		}
	}
	return nil
}
