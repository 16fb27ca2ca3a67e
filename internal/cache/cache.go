// internal/cache/cache.go

// Package cache keeps fetched documents and images in a bbolt file so screens
// open without a network round trip while their entries are fresh.
package cache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	// ErrMiss is returned by Get when there is no entry for the key.
	ErrMiss = errors.New("cache: miss")
	// ErrExpired is returned by Get when the entry is older than the TTL.
	// The stale value is returned alongside it.
	ErrExpired = errors.New("cache: entry expired")
)

const bucketEntries = "entries"

// stampSize is the length of the store-time prefix of every entry.
const stampSize = 8

// Cache is a key/value store whose entries expire after a TTL. A zero TTL
// keeps entries forever.
type Cache struct {
	db  *bolt.DB
	ttl time.Duration
	now func() time.Time
}

// Open opens or creates the cache file at path.
func Open(path string, ttl time.Duration) (*Cache, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketEntries))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: initialize %s: %w", path, err)
	}
	return &Cache{db: db, ttl: ttl, now: time.Now}, nil
}

// TTL returns the configured time to live.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get returns the value stored under key.
func (c *Cache) Get(key string) ([]byte, error) {
	var (
		value  []byte
		stored time.Time
	)
	err := c.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket([]byte(bucketEntries)).Get([]byte(key))
		if len(raw) < stampSize {
			return ErrMiss
		}
		stored = time.Unix(0, int64(binary.BigEndian.Uint64(raw[:stampSize])))
		// bbolt values are only valid inside the transaction.
		value = append([]byte(nil), raw[stampSize:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if c.expired(stored) {
		return value, ErrExpired
	}
	return value, nil
}

// Put stores value under key, stamped with the current time.
func (c *Cache) Put(key string, value []byte) error {
	buf := make([]byte, stampSize+len(value))
	binary.BigEndian.PutUint64(buf, uint64(c.now().UnixNano()))
	copy(buf[stampSize:], value)
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketEntries)).Put([]byte(key), buf)
	})
}

// Delete removes the entry for key.
func (c *Cache) Delete(key string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketEntries)).Delete([]byte(key))
	})
}

// Purge removes every expired entry and returns how many were removed.
func (c *Cache) Purge() (int, error) {
	if c.ttl <= 0 {
		return 0, nil
	}
	removed := 0
	err := c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketEntries))
		var stale [][]byte
		cur := b.Cursor()
		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			if len(v) < stampSize || c.expired(time.Unix(0, int64(binary.BigEndian.Uint64(v[:stampSize])))) {
				stale = append(stale, append([]byte(nil), k...))
			}
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	return removed, err
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() (int, error) {
	n := 0
	err := c.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket([]byte(bucketEntries)).Stats().KeyN
		return nil
	})
	return n, err
}

// Close releases the cache file.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) expired(stored time.Time) bool {
	return c.ttl > 0 && c.now().Sub(stored) > c.ttl
}
