package services

import (
	"context"

	gocache "github.com/patrickmn/go-cache"

	"spendwise/internal/cache"
	"spendwise/internal/models"
)

type CategoryStore interface {
	MCCs(ctx context.Context) ([]models.MCC, error)
}

// CategoryCache serves the valid MCC code set, memoized process-wide under a
// single cache key. Racing loaders all compute the same set, so a concurrent
// overwrite is harmless.
type CategoryCache struct {
	Store CategoryStore
	Cache *gocache.Cache
}

func NewCategoryCache(store CategoryStore, c *gocache.Cache) *CategoryCache {
	return &CategoryCache{Store: store, Cache: c}
}

// Codes returns the valid code set, loading it from the database on first
// use or after the entry has been deleted.
func (c *CategoryCache) Codes(ctx context.Context) (map[int]struct{}, error) {
	if cached, ok := c.Cache.Get(cache.MCCCodesKey); ok {
		if codes, ok := cached.(map[int]struct{}); ok {
			return codes, nil
		}
	}
	return c.Refresh(ctx)
}

// Refresh reloads the set from the database and overwrites the cache entry.
// The daily cron job calls this; deleting the key by hand has the same
// effect on the next read.
func (c *CategoryCache) Refresh(ctx context.Context) (map[int]struct{}, error) {
	mccs, err := c.Store.MCCs(ctx)
	if err != nil {
		return nil, err
	}

	codes := make(map[int]struct{}, len(mccs))
	for _, mcc := range mccs {
		codes[mcc.Code] = struct{}{}
	}
	c.Cache.Set(cache.MCCCodesKey, codes, gocache.NoExpiration)
	return codes, nil
}
