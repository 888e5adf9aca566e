// Package cache keeps archive listings so large archives are only read once.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/klauspost/compress/zstd"
)

// Cache stores archive listings under a base directory as zstd-compressed JSON
type Cache struct {
	basePath string
}

// New creates a new cache manager
func New(basePath string) *Cache {
	return &Cache{basePath: basePath}
}

// listing is the on-disk form of a cached listing
type listing struct {
	Archive string   `json:"archive"`
	Files   []string `json:"files"`
}

// EntryPath returns where the listing of archive is stored. The key covers the
// archive's absolute path, size and modification time, so a changed archive
// misses the cache.
func (c *Cache) EntryPath(archive string) (string, error) {
	abs, err := filepath.Abs(archive)
	if err != nil {
		return "", fmt.Errorf("resolving archive path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("stat archive: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(abs))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatInt(info.Size(), 10)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatInt(info.ModTime().UnixNano(), 10)))
	return filepath.Join(c.basePath, hex.EncodeToString(h.Sum(nil))+".json.zst"), nil
}

// Get returns the cached listing of archive
func (c *Cache) Get(archive string) ([]string, bool) {
	path, err := c.EntryPath(archive)
	if err != nil {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, false
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, false
	}

	var l listing
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, false
	}
	if l.Files == nil {
		l.Files = []string{}
	}
	return l.Files, true
}

// Store saves the listing of archive
func (c *Cache) Store(archive string, files []string) error {
	path, err := c.EntryPath(archive)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(listing{Archive: archive, Files: files})
	if err != nil {
		return fmt.Errorf("encoding listing: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return fmt.Errorf("creating encoder: %w", err)
	}
	data := enc.EncodeAll(raw, nil)
	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing encoder: %w", err)
	}

	if err := os.MkdirAll(c.basePath, 0755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing cached listing: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("writing cached listing: %w", err)
	}

	return nil
}

// Clear removes every cached listing
func (c *Cache) Clear() error {
	if err := os.RemoveAll(c.basePath); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}

// Size returns the total size of cached listings
func (c *Cache) Size() (int64, error) {
	var totalSize int64
	err := filepath.WalkDir(c.basePath, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		totalSize += info.Size()
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("calculating cache size: %w", err)
	}

	return totalSize, nil
}
