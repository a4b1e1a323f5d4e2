package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/fjod/agromarket/internal/domain"
	"github.com/redis/go-redis/v9"
)

// setIfGeneration stores ARGV[2] under KEYS[2] for ARGV[3] milliseconds
// only while the counter at KEYS[1] still reads ARGV[1].
var setIfGeneration = redis.NewScript(`
local current = redis.call('GET', KEYS[1]) or '0'
if current ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 2 * time.Minute,
	}
}

type RedisCache struct {
	client  redis.UniversalClient
	baseTTL time.Duration
}

func (r *RedisCache) Get(ctx context.Context, userID string) ([]*domain.CartItemView, error) {
	data, err := r.client.Get(ctx, cacheKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var items []*domain.CartItemView
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	if items == nil {
		items = []*domain.CartItemView{}
	}
	return items, nil
}

// Generation returns zero for a user whose cart was never invalidated.
func (r *RedisCache) Generation(ctx context.Context, userID string) (int64, error) {
	gen, err := r.client.Get(ctx, generationKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation failed: %w", err)
	}
	return gen, nil
}

func (r *RedisCache) Set(ctx context.Context, userID string, gen int64, items []*domain.CartItemView) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	// jitter spreads expiry of carts cached in the same burst
	ttl := r.baseTTL + time.Duration(rand.IntN(60))*time.Second
	keys := []string{generationKey(userID), cacheKey(userID)}
	stored, err := setIfGeneration.Run(ctx, r.client, keys, gen, data, ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	if stored == 0 {
		return ErrStaleGeneration
	}
	return nil
}

// Delete drops the cached listing and advances the generation in one
// transaction. Generation keys never expire: an expired counter would
// restart at zero and could repeat a value a reader still holds.
func (r *RedisCache) Delete(ctx context.Context, userID string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(userID))
		pipe.Del(ctx, cacheKey(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// Both keys of a user share a hash tag so the script and the transaction
// stay on one cluster slot.
func cacheKey(userID string) string {
	return fmt.Sprintf("cart:{%s}", userID)
}

func generationKey(userID string) string {
	return fmt.Sprintf("cart:{%s}:gen", userID)
}
