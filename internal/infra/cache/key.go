package cache

import (
	"fmt"

	"github.com/zeebo/xxh3"
)

const (
	keyPrefix     = "portalgun:characters"
	generationKey = keyPrefix + ":gen"
)

// listKey names the listing for dimension under generation gen. The dimension
// is hashed so arbitrary user input always yields a valid memcached key.
func listKey(gen uint64, dimension string) string {
	return fmt.Sprintf("%s:%d:%016x", keyPrefix, gen, xxh3.HashString(dimension))
}
