package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"lispfmt/internal/version"
)

// Current schema version - increment when CacheEntry format changes
const cacheSchemaVersion uint16 = 1

// CacheKey identifies one (content, width, formatter version) combination.
type CacheKey [32]byte

// NewCacheKey hashes the raw file bytes together with the width and the
// formatter version, so a new release or a different width never reuses an
// old verdict.
func NewCacheKey(raw []byte, width int) CacheKey {
	h := sha256.New()
	_, _ = h.Write([]byte(version.Version))
	_, _ = h.Write([]byte{0})
	var w [8]byte
	binary.LittleEndian.PutUint64(w[:], uint64(max(width, 0))) //nolint:gosec // non-negative
	_, _ = h.Write(w[:])
	_, _ = h.Write(raw)
	var out CacheKey
	copy(out[:], h.Sum(nil))
	return out
}

// CacheEntry records that a file content is already formatted.
type CacheEntry struct {
	Schema    uint16
	Version   string
	Width     int
	Size      int
	CheckedAt time.Time
}

// FormatCache хранит на диске отметки "уже отформатировано", чтобы повторные
// прогоны по неизменным файлам не парсили их заново.
// Thread-safe for concurrent access.
type FormatCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenFormatCache opens the cache under $XDG_CACHE_HOME/<app> (or
// ~/.cache/<app>), creating it if needed.
func OpenFormatCache(app string) (*FormatCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenFormatCacheAt(filepath.Join(base, app))
}

// OpenFormatCacheAt opens a cache rooted at dir.
func OpenFormatCacheAt(dir string) (*FormatCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FormatCache{dir: dir}, nil
}

func (c *FormatCache) pathFor(key CacheKey) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "fmt", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes an entry. The file is replaced atomically.
func (c *FormatCache) Put(key CacheKey, entry *CacheEntry) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entry.Schema = cacheSchemaVersion
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(entry); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads an entry. Entries with a different schema count as misses.
func (c *FormatCache) Get(key CacheKey, out *CacheEntry) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, err
	}
	return out.Schema == cacheSchemaVersion, nil
}

// DropAll invalidates the cache.
func (c *FormatCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "fmt"))
}
