// Package cache provides the bounded TTL caches that keep directory
// listings, sidecar parses and file digests hot between requests.
package cache

import (
	"io/fs"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Version identifies the content state of the filesystem object governing a
// cached value. Any change to the governing file rotates its version and
// invalidates the entry regardless of TTL.
type Version struct {
	MTime int64 // modification time in nanoseconds
	Size  int64
}

// VersionOf derives the version key from a stat result.
func VersionOf(fi fs.FileInfo) Version {
	return Version{MTime: fi.ModTime().UnixNano(), Size: fi.Size()}
}

type entry[V any] struct {
	value     V
	version   Version
	expiresAt time.Time
}

// Cache is a bounded, approximately-LRU map whose entries carry both a TTL
// and a filesystem version key. A read returns a value only while the entry
// is unexpired and the caller-observed version still matches; otherwise the
// entry is dropped and the read misses. Entries are never mutated in place,
// replacement is the sole form of update.
type Cache[K comparable, V any] struct {
	name string
	ttl  time.Duration
	lru  *lru.Cache[K, entry[V]]

	// now is replaceable for expiry tests.
	now func() time.Time
}

// New builds a cache bucket holding at most capacity entries, each valid for
// at most ttl.
func New[K comparable, V any](name string, capacity int, ttl time.Duration) (*Cache[K, V], error) {
	l, err := lru.New[K, entry[V]](capacity)
	if err != nil {
		return nil, err
	}
	return &Cache[K, V]{
		name: name,
		ttl:  ttl,
		lru:  l,
		now:  time.Now,
	}, nil
}

// Get returns the cached value for key if it is fresh: present, unexpired
// and recorded under the same version the caller just observed.
func (c *Cache[K, V]) Get(key K, version Version) (V, bool) {
	var zero V

	e, ok := c.lru.Get(key)
	if !ok {
		lookups.WithValues(c.name, "miss").Inc(1)
		return zero, false
	}
	if c.now().After(e.expiresAt) || e.version != version {
		c.lru.Remove(key)
		lookups.WithValues(c.name, "miss").Inc(1)
		return zero, false
	}

	lookups.WithValues(c.name, "hit").Inc(1)
	return e.value, true
}

// Add records value under key and version. Insertion past capacity evicts
// the least recently used entry.
func (c *Cache[K, V]) Add(key K, version Version, value V) {
	c.lru.Add(key, entry[V]{
		value:     value,
		version:   version,
		expiresAt: c.now().Add(c.ttl),
	})
}

// Len reports the number of resident entries, expired or not.
func (c *Cache[K, V]) Len() int {
	return c.lru.Len()
}
