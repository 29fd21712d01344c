package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	apperrors "geocortex/internal/errors"
	"geocortex/internal/models"
	"geocortex/pkg/nominatim"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocodeRecordCaches(t *testing.T) {
	assert := assert.New(t)
	repo, c := newMemRepo(), newMemCache()
	rec := &models.PropertyRecord{Address: "1 Main St"}
	require.NoError(t, repo.Insert(context.Background(), rec))

	geo := &stubGeocoder{places: []nominatim.Place{{PlaceID: 1, Lat: "53.5", Lon: "-113.5"}}}
	svc := NewGeocodeService(repo, c, geo)

	resp, err := svc.GeocodeRecord(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal("1 Main St", resp.Address)
	assert.Equal(geo.places, resp.Geocode)

	_, err = svc.GeocodeRecord(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(1, geo.calls)
}

func TestGeocodeRecordErrors(t *testing.T) {
	repo, c := newMemRepo(), newMemCache()
	rec := &models.PropertyRecord{Address: "1 Main St"}
	require.NoError(t, repo.Insert(context.Background(), rec))
	geo := &stubGeocoder{err: fmt.Errorf("dial tcp: refused")}
	svc := NewGeocodeService(repo, c, geo)

	_, err := svc.GeocodeRecord(context.Background(), "000000000000000000000099")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, 0, geo.calls)

	_, err = svc.GeocodeRecord(context.Background(), rec.ID)
	assert.True(t, errors.Is(err, apperrors.ErrUpstreamGeocode))
	assert.Equal(t, 1, geo.calls)
}

func TestGeocodeRecordDoesNotCacheEmptyAnswer(t *testing.T) {
	assert := assert.New(t)
	repo, c := newMemRepo(), newMemCache()
	rec := &models.PropertyRecord{Address: "1 Main St"}
	require.NoError(t, repo.Insert(context.Background(), rec))
	geo := &stubGeocoder{}
	svc := NewGeocodeService(repo, c, geo)

	resp, err := svc.GeocodeRecord(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal([]nominatim.Place{}, resp.Geocode)
	assert.Empty(c.geocodes)

	geo.places = []nominatim.Place{{PlaceID: 2, Lat: "53.5", Lon: "-113.5"}}
	resp, err = svc.GeocodeRecord(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(geo.places, resp.Geocode)
	assert.Equal(2, geo.calls)
	assert.Len(c.geocodes, 1)
}
