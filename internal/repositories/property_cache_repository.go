package repositories

import (
	"context"
	"time"

	"geocortex/internal/models"
	"geocortex/internal/utils"
	"geocortex/pkg/cache"
	"geocortex/pkg/nominatim"
)

type propertyCache struct {
	store      cache.CacheOperations
	pinger     func(ctx context.Context) error
	listTTL    time.Duration
	geocodeTTL time.Duration
}

// NewPropertyCache wraps store. ping may be nil when health checks are not needed.
func NewPropertyCache(store cache.CacheOperations, ping func(ctx context.Context) error, listTTL, geocodeTTL time.Duration) PropertyCache {
	return &propertyCache{
		store:      store,
		pinger:     ping,
		listTTL:    listTTL,
		geocodeTTL: geocodeTTL,
	}
}

func (c *propertyCache) ListGeneration(ctx context.Context) (int64, error) {
	return c.store.GetInt(ctx, cache.AddressListGenerationKey())
}

func (c *propertyCache) GetList(ctx context.Context, gen int64) ([]*models.PropertyRecord, error) {
	var records []*models.PropertyRecord
	if err := c.store.Get(ctx, cache.AddressListKey(gen), &records); err != nil {
		if cache.IsMiss(err) {
			utils.RecordCacheMiss("list")
		}
		return nil, err
	}
	utils.RecordCacheHit("list")
	return records, nil
}

func (c *propertyCache) SetList(ctx context.Context, gen int64, records []*models.PropertyRecord) error {
	return c.store.Set(ctx, cache.AddressListKey(gen), records, c.listTTL)
}

// InvalidateList moves readers to a fresh generation. Older snapshots are
// left to expire.
func (c *propertyCache) InvalidateList(ctx context.Context) error {
	_, err := c.store.Incr(ctx, cache.AddressListGenerationKey())
	return err
}

func (c *propertyCache) GetGeocode(ctx context.Context, address string) ([]nominatim.Place, error) {
	var places []nominatim.Place
	if err := c.store.Get(ctx, cache.GeocodeKey(address), &places); err != nil {
		if cache.IsMiss(err) {
			utils.RecordCacheMiss("geocode")
		}
		return nil, err
	}
	utils.RecordCacheHit("geocode")
	return places, nil
}

func (c *propertyCache) SetGeocode(ctx context.Context, address string, places []nominatim.Place) error {
	return c.store.Set(ctx, cache.GeocodeKey(address), places, c.geocodeTTL)
}

func (c *propertyCache) Ping(ctx context.Context) error {
	if c.pinger == nil {
		return nil
	}
	start := time.Now()
	err := c.pinger(ctx)
	utils.RecordRedisOperationDuration("ping", start)
	if err != nil {
		utils.RecordRedisError("ping")
	}
	return err
}
