package search

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// responseCache keeps raw provider responses for a short TTL so repeated
// query variants inside one burst of requests do not hammer the search
// hosts. The pipeline itself stays stateless; this lives entirely below
// the provider boundary.
type responseCache struct {
	cache *gocache.Cache
}

func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{cache: gocache.New(ttl, 2*ttl)}
}

func (c *responseCache) get(url string) ([]byte, bool) {
	if val, found := c.cache.Get(cacheKey(url)); found {
		return val.([]byte), true
	}
	return nil, false
}

func (c *responseCache) set(url string, body []byte) {
	c.cache.Set(cacheKey(url), body, gocache.DefaultExpiration)
}

func cacheKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "serp:v1:" + hex.EncodeToString(hash[:])
}
