package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"

	"github.com/totegamma/portalgun"
)

// MemcachedListCache stores character listings in memcached. Invalidation
// bumps a generation counter that is part of every key, so stale listings
// are never read again and simply expire.
type MemcachedListCache struct {
	mc  *memcache.Client
	ttl time.Duration
}

func NewMemcachedListCache(mc *memcache.Client, ttl time.Duration) *MemcachedListCache {
	return &MemcachedListCache{mc: mc, ttl: ttl}
}

// generation reads the current generation. A missing counter, never set or
// evicted, is seeded from the clock so it cannot fall back to a generation
// whose listings are still stored.
func (c *MemcachedListCache) generation() (uint64, error) {
	item, err := c.mc.Get(generationKey)
	if errors.Is(err, memcache.ErrCacheMiss) {
		err = c.mc.Add(&memcache.Item{Key: generationKey, Value: seedGeneration()})
		if err != nil && !errors.Is(err, memcache.ErrNotStored) {
			return 0, err
		}
		item, err = c.mc.Get(generationKey)
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(strings.TrimSpace(string(item.Value)), 10, 64)
}

func seedGeneration() []byte {
	return []byte(strconv.FormatInt(time.Now().UnixNano(), 10))
}

func (c *MemcachedListCache) Get(ctx context.Context, dimension string) ([]portalgun.Character, uint64, bool) {
	gen, err := c.generation()
	if err != nil {
		return nil, 0, false
	}

	item, err := c.mc.Get(listKey(gen, dimension))
	if err != nil {
		return nil, gen, false
	}

	var characters []portalgun.Character
	if err := json.Unmarshal(item.Value, &characters); err != nil {
		return nil, gen, false
	}
	return characters, gen, true
}

// Set writes under the generation the caller read before loading the rows.
// After an Invalidate that key is dead, so a stale listing is never served.
func (c *MemcachedListCache) Set(ctx context.Context, dimension string, token uint64, characters []portalgun.Character) error {
	if token == 0 {
		return nil
	}

	value, err := json.Marshal(characters)
	if err != nil {
		return err
	}

	return c.mc.Set(&memcache.Item{
		Key:        listKey(token, dimension),
		Value:      value,
		Expiration: int32(c.ttl / time.Second),
	})
}

func (c *MemcachedListCache) Invalidate(ctx context.Context) error {
	_, err := c.mc.Increment(generationKey, 1)
	if err == nil {
		return nil
	}
	if !errors.Is(err, memcache.ErrCacheMiss) {
		return err
	}

	err = c.mc.Add(&memcache.Item{Key: generationKey, Value: seedGeneration()})
	if errors.Is(err, memcache.ErrNotStored) {
		// created concurrently
		_, err = c.mc.Increment(generationKey, 1)
	}
	return err
}
