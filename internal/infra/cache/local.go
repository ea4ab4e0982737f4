package cache

import (
	"context"
	"slices"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/totegamma/portalgun"
)

// LocalListCache keeps character listings in process memory. It is used when
// no memcached address is configured.
type LocalListCache struct {
	c   *gocache.Cache
	gen atomic.Uint64
}

func NewLocalListCache(ttl time.Duration) *LocalListCache {
	l := &LocalListCache{c: gocache.New(ttl, 2*ttl)}
	l.gen.Store(1)
	return l
}

func (l *LocalListCache) Get(ctx context.Context, dimension string) ([]portalgun.Character, uint64, bool) {
	gen := l.gen.Load()
	value, ok := l.c.Get(listKey(gen, dimension))
	if !ok {
		return nil, gen, false
	}
	characters, ok := value.([]portalgun.Character)
	if !ok {
		return nil, gen, false
	}
	return slices.Clone(characters), gen, true
}

// Set drops the listing when an Invalidate happened after token was read. A
// racing Invalidate can still slip in after the check, but then the listing
// lands under the old generation's key, which Get no longer reads.
func (l *LocalListCache) Set(ctx context.Context, dimension string, token uint64, characters []portalgun.Character) error {
	if token == 0 || token != l.gen.Load() {
		return nil
	}
	l.c.SetDefault(listKey(token, dimension), slices.Clone(characters))
	return nil
}

func (l *LocalListCache) Invalidate(ctx context.Context) error {
	l.gen.Add(1)
	l.c.Flush()
	return nil
}
