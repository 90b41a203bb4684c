package kzg

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jellydator/ttlcache/v2"
	"github.com/minio/sha256-simd"
)

// commitmentCache caches blob commitments keyed by the SHA-256 digest of the blob.
type commitmentCache struct {
	cache *ttlcache.Cache
}

func newCommitmentCache(size int, ttl time.Duration) (*commitmentCache, error) {
	cache := ttlcache.NewCache()
	cache.SetCacheSizeLimit(size)
	cache.SkipTTLExtensionOnHit(true)
	if ttl > 0 {
		if err := cache.SetTTL(ttl); err != nil {
			return nil, errors.Wrap(err, "configuring commitment cache failed")
		}
	}

	return &commitmentCache{cache: cache}, nil
}

func cacheKey(blob []byte) string {
	digest := sha256.Sum256(blob)

	return string(digest[:])
}

func (c *commitmentCache) get(blob []byte) (Commitment, bool) {
	value, err := c.cache.Get(cacheKey(blob))
	if err != nil {
		return Commitment{}, false
	}

	commitment, ok := value.(Commitment)

	return commitment, ok
}

func (c *commitmentCache) set(blob []byte, commitment Commitment) {
	_ = c.cache.Set(cacheKey(blob), commitment)
}

func (c *commitmentCache) metrics() ttlcache.Metrics {
	return c.cache.GetMetrics()
}

func (c *commitmentCache) close() {
	_ = c.cache.Close()
}
