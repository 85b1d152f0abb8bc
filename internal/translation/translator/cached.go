package translator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Store is the cache backend consumed by Cached. pkg/cache satisfies it with
// Redis; tests use an in-memory map.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// CacheStats receives hit/miss notifications. Optional.
type CacheStats interface {
	RecordCacheHit()
	RecordCacheMiss()
}

// Cached memoizes successful translations. Keys hash the masked text so the
// cache never stores clinical text as a key; values hold only the translated
// narrative with its placeholders, which is re-verified on every restore.
type Cached struct {
	inner Translator
	store Store
	ttl   time.Duration
	stats CacheStats
}

// NewCached wraps inner with a cache. stats may be nil.
func NewCached(inner Translator, store Store, ttl time.Duration, stats CacheStats) *Cached {
	return &Cached{inner: inner, store: store, ttl: ttl, stats: stats}
}

// Translate serves repeated (text, source, target) requests from the cache.
func (c *Cached) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	key := cacheKey(text, sourceLang, targetLang)

	if cached, ok := c.store.Get(ctx, key); ok {
		if c.stats != nil {
			c.stats.RecordCacheHit()
		}
		return cached, nil
	}
	if c.stats != nil {
		c.stats.RecordCacheMiss()
	}

	out, err := c.inner.Translate(ctx, text, sourceLang, targetLang)
	if err != nil {
		return "", err
	}

	c.store.Set(ctx, key, out, c.ttl)
	return out, nil
}

func cacheKey(text, sourceLang, targetLang string) string {
	sum := sha256.Sum256([]byte(sourceLang + "\x00" + targetLang + "\x00" + text))
	return "translation:" + hex.EncodeToString(sum[:])
}
