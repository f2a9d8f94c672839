// Package cache stores serialized parse results keyed by record kind,
// identifier and locale.
package cache

import (
	"context"
	"strings"
)

// Store is a byte cache. A miss is reported as ok == false with a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

const keySeparator = "|"

// Key builds the cache key of a record, e.g. "title|tt0133093|en".
func Key(kind, id, locale string) string {
	return strings.Join([]string{kind, id, locale}, keySeparator)
}

// KindPrefix is the key prefix shared by every record of kind.
func KindPrefix(kind string) string {
	return kind + keySeparator
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)
