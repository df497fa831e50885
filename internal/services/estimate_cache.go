package services

import (
	"crypto/md5"
	"fmt"
	"log"
	"sync"
	"time"
)

// EstimateCache handles caching of drive-time estimates to reduce API calls.
// Keys are hashed origin/destination address pairs.
type EstimateCache struct {
	cache      map[string]*estimateEntry
	mutex      sync.RWMutex
	maxEntries int
	ttl        time.Duration
	stats      cacheStats
}

type estimateEntry struct {
	Minutes      int
	CreatedAt    time.Time
	LastAccessed time.Time
	HitCount     int
}

type cacheStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	mutex     sync.RWMutex
}

// NewEstimateCache creates a new estimate cache
func NewEstimateCache() *EstimateCache {
	cache := &EstimateCache{
		cache:      make(map[string]*estimateEntry),
		maxEntries: 1000,           // Store up to 1000 unique address pairs
		ttl:        24 * time.Hour, // Traffic patterns shift day to day
	}

	// Start cleanup goroutine
	go cache.cleanupExpired()

	return cache
}

// pairKey creates a cache key for an origin/destination pair
func pairKey(origin, destination string) string {
	hash := md5.Sum([]byte(origin + "|" + destination))
	return fmt.Sprintf("%x", hash[:8])
}

// Get retrieves a cached estimate if available and unexpired
func (c *EstimateCache) Get(origin, destination string) (int, bool) {
	key := pairKey(origin, destination)

	c.mutex.RLock()
	entry, found := c.cache[key]
	c.mutex.RUnlock()

	if !found {
		c.recordMiss()
		return 0, false
	}

	if time.Since(entry.CreatedAt) > c.ttl {
		c.mutex.Lock()
		delete(c.cache, key)
		c.mutex.Unlock()
		c.recordMiss()
		c.recordEviction()
		return 0, false
	}

	c.mutex.Lock()
	entry.LastAccessed = time.Now()
	entry.HitCount++
	c.mutex.Unlock()

	c.recordHit()
	return entry.Minutes, true
}

// Set stores an estimate in the cache
func (c *EstimateCache) Set(origin, destination string, minutes int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	// Evict the least recently used entry if the cache is full
	if len(c.cache) >= c.maxEntries {
		c.evictOldest()
	}

	c.cache[pairKey(origin, destination)] = &estimateEntry{
		Minutes:      minutes,
		CreatedAt:    time.Now(),
		LastAccessed: time.Now(),
	}
}

func (c *EstimateCache) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range c.cache {
		if oldestKey == "" || entry.LastAccessed.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.LastAccessed
		}
	}

	if oldestKey != "" {
		delete(c.cache, oldestKey)
		c.recordEviction()
		log.Printf("🗑️  Evicted oldest estimate cache entry: %s", oldestKey)
	}
}

// cleanupExpired periodically removes expired entries
func (c *EstimateCache) cleanupExpired() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for key, entry := range c.cache {
			if now.Sub(entry.CreatedAt) > c.ttl {
				delete(c.cache, key)
				c.recordEviction()
			}
		}
		c.mutex.Unlock()
	}
}

func (c *EstimateCache) recordHit() {
	c.stats.mutex.Lock()
	defer c.stats.mutex.Unlock()
	c.stats.Hits++
}

func (c *EstimateCache) recordMiss() {
	c.stats.mutex.Lock()
	defer c.stats.mutex.Unlock()
	c.stats.Misses++
}

func (c *EstimateCache) recordEviction() {
	c.stats.mutex.Lock()
	defer c.stats.mutex.Unlock()
	c.stats.Evictions++
}

// GetStats returns cache statistics
func (c *EstimateCache) GetStats() map[string]interface{} {
	c.stats.mutex.RLock()
	defer c.stats.mutex.RUnlock()

	c.mutex.RLock()
	cacheSize := len(c.cache)
	c.mutex.RUnlock()

	hitRate := 0.0
	total := c.stats.Hits + c.stats.Misses
	if total > 0 {
		hitRate = float64(c.stats.Hits) / float64(total)
	}

	return map[string]interface{}{
		"size":      cacheSize,
		"hits":      c.stats.Hits,
		"misses":    c.stats.Misses,
		"evictions": c.stats.Evictions,
		"hit_rate":  hitRate,
	}
}
