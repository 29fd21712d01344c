package services

import (
	"context"
	"fmt"
	"sync"

	apperrors "geocortex/internal/errors"
	"geocortex/internal/models"
	"geocortex/pkg/cache"
	"geocortex/pkg/nominatim"
)

type memRepo struct {
	mu      sync.Mutex
	seq     int
	records []*models.PropertyRecord
	failOn  map[string]bool
}

func newMemRepo() *memRepo {
	return &memRepo{failOn: map[string]bool{}}
}

func (r *memRepo) Insert(ctx context.Context, record *models.PropertyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn[record.Address] {
		return fmt.Errorf("%w: insert: connection reset", apperrors.ErrStoreUnavailable)
	}
	r.seq++
	record.ID = fmt.Sprintf("%024x", r.seq)
	r.records = append(r.records, record)
	return nil
}

func (r *memRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(id) != 24 {
		return 0, apperrors.ErrInvalidID
	}
	for i, rec := range r.records {
		if rec.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *memRepo) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.records))
	r.records = nil
	return n, nil
}

func (r *memRepo) FindAll(ctx context.Context) ([]*models.PropertyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.PropertyRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *memRepo) FindByID(ctx context.Context, id string) (*models.PropertyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(id) != 24 {
		return nil, apperrors.ErrInvalidID
	}
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memRepo) Ping(ctx context.Context) error { return nil }

type memCache struct {
	mu       sync.Mutex
	gen      int64
	lists    map[int64][]*models.PropertyRecord
	geocodes map[string][]nominatim.Place
	sets     int
}

func newMemCache() *memCache {
	return &memCache{
		lists:    map[int64][]*models.PropertyRecord{},
		geocodes: map[string][]nominatim.Place{},
	}
}

func (c *memCache) ListGeneration(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen, nil
}

func (c *memCache) GetList(ctx context.Context, gen int64) ([]*models.PropertyRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	list, ok := c.lists[gen]
	if !ok {
		return nil, cache.ErrMiss
	}
	return list, nil
}

func (c *memCache) SetList(ctx context.Context, gen int64, records []*models.PropertyRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists[gen] = records
	c.sets++
	return nil
}

func (c *memCache) InvalidateList(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	return nil
}

func (c *memCache) GetGeocode(ctx context.Context, address string) ([]nominatim.Place, error) {
	p, ok := c.geocodes[cache.NormalizeAddress(address)]
	if !ok {
		return nil, cache.ErrMiss
	}
	return p, nil
}

func (c *memCache) SetGeocode(ctx context.Context, address string, places []nominatim.Place) error {
	c.geocodes[cache.NormalizeAddress(address)] = places
	return nil
}

func (c *memCache) Ping(ctx context.Context) error { return nil }

type stubGeocoder struct {
	calls  int
	places []nominatim.Place
	err    error
}

func (g *stubGeocoder) Search(ctx context.Context, address string) ([]nominatim.Place, error) {
	g.calls++
	return g.places, g.err
}
