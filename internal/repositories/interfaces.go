package repositories

import (
	"context"

	"geocortex/internal/models"
	"geocortex/pkg/nominatim"
)

// PropertyRepository is the record store. It is the single source of truth.
type PropertyRepository interface {
	// Insert stores record and sets its ID.
	Insert(ctx context.Context, record *models.PropertyRecord) error
	// DeleteByID returns the number of records removed, 0 or 1.
	DeleteByID(ctx context.Context, id string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
	// FindAll returns every record in insertion order.
	FindAll(ctx context.Context) ([]*models.PropertyRecord, error)
	FindByID(ctx context.Context, id string) (*models.PropertyRecord, error)
	Ping(ctx context.Context) error
}

// PropertyCache holds derived copies of store data. A miss is reported as
// cache.ErrMiss.
//
// The list is versioned by a generation counter. Readers take the generation
// before reading the store and cache their snapshot under it; InvalidateList
// bumps the counter, so a snapshot taken before a mutation is never served
// after it.
type PropertyCache interface {
	ListGeneration(ctx context.Context) (int64, error)
	GetList(ctx context.Context, gen int64) ([]*models.PropertyRecord, error)
	SetList(ctx context.Context, gen int64, records []*models.PropertyRecord) error
	InvalidateList(ctx context.Context) error
	GetGeocode(ctx context.Context, address string) ([]nominatim.Place, error)
	SetGeocode(ctx context.Context, address string, places []nominatim.Place) error
	Ping(ctx context.Context) error
}
