package common

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache is a TTL cache injected into the services that need one. Entries can be dropped early through Invalidate.
type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

// Invalidate removes the given keys. A nil cache is a no-op so services can run without one.
func (c *Cache) Invalidate(keys ...string) {
	if c == nil {
		return
	}
	for _, key := range keys {
		c.Cache.Delete(key)
	}
}

func (c *Cache) Flush() {
	c.Cache.Flush()
}

func CacheKeyOverview(userID int) string {
	return "overview:" + strconv.Itoa(userID)
}

func CacheKeyUserByExternalID(externalID string) string {
	return "user_by_external_id:" + externalID
}
