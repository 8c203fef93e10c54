// internal/embedding/cache.go
package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedProvider memoizes successful embeddings in Redis. Cache errors
// are logged and absorbed so a dead Redis never blocks embedding.
type CachedProvider struct {
	inner Provider
	rdb   *redis.Client
	model string
	ttl   time.Duration
}

func NewCachedProvider(inner Provider, rdb *redis.Client, model string, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		rdb:   rdb,
		model: model,
		ttl:   ttl,
	}
}

func (p *CachedProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	key := p.cacheKey(text)

	raw, err := p.rdb.Get(ctx, key).Result()
	if err == nil {
		var vec []float32
		if err := json.Unmarshal([]byte(raw), &vec); err == nil && len(vec) > 0 {
			return vec, nil
		}
		log.Printf("[Embedding] WARNING: ignoring unreadable cache entry %s", key)
	} else if err != redis.Nil {
		log.Printf("[Embedding] WARNING: cache read failed: %v", err)
	}

	vec, err := p.inner.Embed(ctx, text)
	if err != nil || len(vec) == 0 {
		return vec, err
	}

	if data, err := json.Marshal(vec); err == nil {
		if err := p.rdb.Set(ctx, key, data, p.ttl).Err(); err != nil {
			log.Printf("[Embedding] WARNING: cache write failed: %v", err)
		}
	}

	return vec, nil
}

func (p *CachedProvider) cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("embed:%s:%s", p.model, hex.EncodeToString(sum[:]))
}
