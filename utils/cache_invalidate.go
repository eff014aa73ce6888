package utils

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// CacheInvalidator purges cached event listings after writes, so approval
// flips and edits become visible without waiting out the TTL.
type CacheInvalidator struct{ rdb *redis.Client }

func NewCacheInvalidator(rdb *redis.Client) *CacheInvalidator { return &CacheInvalidator{rdb} }

func (ci *CacheInvalidator) purge(ctx context.Context, pattern string) {
	iter := ci.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		_ = ci.rdb.Del(ctx, iter.Val()).Err()
	}
}

func (ci *CacheInvalidator) PurgeEventLists(ctx context.Context) {
	ci.purge(ctx, "cache:events:list:*")
}

func (ci *CacheInvalidator) PurgeColleges(ctx context.Context) {
	ci.purge(ctx, "cache:colleges:*")
}
