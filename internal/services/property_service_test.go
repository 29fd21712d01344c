package services

import (
	"context"
	"errors"
	"testing"

	apperrors "geocortex/internal/errors"
	"geocortex/internal/models"
	"geocortex/internal/transformers"
	"geocortex/internal/validators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPropertyService() (*PropertyService, *memRepo, *memCache) {
	repo, c := newMemRepo(), newMemCache()
	svc := NewPropertyService(repo, c, transformers.NewRecordTransformer(transformers.DefaultFieldSources), validators.NewPropertyValidator())
	return svc, repo, c
}

func TestCreateAndListReadsThroughCache(t *testing.T) {
	assert := assert.New(t)
	svc, repo, c := newTestPropertyService()
	ctx := context.Background()

	rec, err := svc.CreateRecord(ctx, models.RawRow{"address": "1 Main", "lat": "53.5N"})
	require.NoError(t, err)
	assert.NotEmpty(rec.ID)
	assert.Equal(53.5, *rec.Lat)

	list, err := svc.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(list, 1)
	assert.Equal(1, c.sets)

	// served from cache: a direct store write is not visible until invalidation
	repo.records = append(repo.records, &models.PropertyRecord{ID: "x", Address: "hidden"})
	list, err = svc.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(list, 1)

	svc.InvalidateCache(ctx)
	list, err = svc.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(list, 2)
}

func TestCreateMissingAddress(t *testing.T) {
	svc, repo, _ := newTestPropertyService()

	_, err := svc.CreateRecord(context.Background(), models.RawRow{"City": "Edmonton"})
	assert.True(t, errors.Is(err, apperrors.ErrMissingAddress))
	assert.Empty(t, repo.records)
}

func TestDeleteAndClearInvalidate(t *testing.T) {
	assert := assert.New(t)
	svc, _, c := newTestPropertyService()
	ctx := context.Background()

	rec, err := svc.CreateRecord(ctx, models.RawRow{"address": "1 Main"})
	require.NoError(t, err)
	_, err = svc.CreateRecord(ctx, models.RawRow{"address": "2 Main"})
	require.NoError(t, err)
	_, _ = svc.ListRecords(ctx)
	gen := c.gen

	n, err := svc.DeleteRecord(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(int64(1), n)
	assert.Equal(gen+1, c.gen)

	n, err = svc.DeleteRecord(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(int64(0), n)

	_, err = svc.DeleteRecord(ctx, "bad")
	assert.True(errors.Is(err, apperrors.ErrInvalidID))

	n, err = svc.ClearRecords(ctx)
	require.NoError(t, err)
	assert.Equal(int64(1), n)
	list, err := svc.ListRecords(ctx)
	require.NoError(t, err)
	assert.Empty(list)
}

// racingRepo runs afterFindAll once, between the store read and the cache write.
type racingRepo struct {
	*memRepo
	afterFindAll func()
}

func (r *racingRepo) FindAll(ctx context.Context) ([]*models.PropertyRecord, error) {
	records, err := r.memRepo.FindAll(ctx)
	if hook := r.afterFindAll; hook != nil {
		r.afterFindAll = nil
		hook()
	}
	return records, err
}

func TestListDoesNotCacheSnapshotOlderThanAWrite(t *testing.T) {
	assert := assert.New(t)
	repo := &racingRepo{memRepo: newMemRepo()}
	c := newMemCache()
	svc := NewPropertyService(repo, c, transformers.NewRecordTransformer(transformers.DefaultFieldSources), validators.NewPropertyValidator())
	ctx := context.Background()

	repo.afterFindAll = func() {
		_, err := svc.CreateRecord(ctx, models.RawRow{"address": "1 Main"})
		require.NoError(t, err)
	}
	list, err := svc.ListRecords(ctx)
	require.NoError(t, err)
	assert.Empty(list)

	list, err = svc.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(list, 1)

	// the fresh generation is cached now
	list, err = svc.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(list, 1)
	assert.Equal(2, c.sets)
}
