package services

import (
	"context"

	"geocortex/internal/models"
	"geocortex/internal/repositories"
	"geocortex/internal/transformers"
	"geocortex/internal/validators"
	"geocortex/pkg/cache"
	"geocortex/pkg/logger"
)

// PropertyService owns record mutations and the list cache that mirrors them.
type PropertyService struct {
	repo      repositories.PropertyRepository
	cache     repositories.PropertyCache
	trans     transformers.RecordTransformer
	validator validators.PropertyValidator
}

func NewPropertyService(
	repo repositories.PropertyRepository,
	cache repositories.PropertyCache,
	trans transformers.RecordTransformer,
	validator validators.PropertyValidator,
) *PropertyService {
	return &PropertyService{
		repo:      repo,
		cache:     cache,
		trans:     trans,
		validator: validator,
	}
}

// CreateRecord normalizes row and stores it.
func (s *PropertyService) CreateRecord(ctx context.Context, row models.RawRow) (*models.PropertyRecord, error) {
	record, err := s.trans.Normalize(row)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateCreate(record); err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, record); err != nil {
		logger.GlobalLogger.Errorf("Insert failed: address=%q, error=%v", record.Address, err)
		return nil, err
	}
	s.invalidate(ctx)
	return record, nil
}

// Insert stores an already normalized record without touching the list
// cache, so a batch can invalidate once at the end.
func (s *PropertyService) Insert(ctx context.Context, record *models.PropertyRecord) error {
	if err := s.validator.ValidateCreate(record); err != nil {
		return err
	}
	return s.repo.Insert(ctx, record)
}

func (s *PropertyService) DeleteRecord(ctx context.Context, id string) (int64, error) {
	n, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.invalidate(ctx)
	}
	return n, nil
}

func (s *PropertyService) ClearRecords(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	logger.GlobalLogger.Printf("Cleared %d records", n)
	return n, nil
}

// ListRecords returns every record in insertion order, reading through the
// Redis list cache. Cache failures fall back to the store.
func (s *PropertyService) ListRecords(ctx context.Context) ([]*models.PropertyRecord, error) {
	gen, err := s.cache.ListGeneration(ctx)
	if err != nil {
		logger.GlobalLogger.Errorf("List cache generation read failed, using store: %v", err)
		return s.findAll(ctx)
	}

	records, err := s.cache.GetList(ctx, gen)
	if err == nil {
		return records, nil
	}
	if !cache.IsMiss(err) {
		logger.GlobalLogger.Errorf("List cache read failed, using store: %v", err)
	}

	records, err = s.findAll(ctx)
	if err != nil {
		return nil, err
	}
	// gen was read before the store; a mutation since then has moved
	// readers past it.
	if err := s.cache.SetList(ctx, gen, records); err != nil {
		logger.GlobalLogger.Errorf("List cache write failed: %v", err)
	}
	return records, nil
}

func (s *PropertyService) findAll(ctx context.Context) ([]*models.PropertyRecord, error) {
	records, err := s.repo.FindAll(ctx)
	if err != nil {
		logger.GlobalLogger.Errorf("DB query failed: error=%v", err)
		return nil, err
	}
	return records, nil
}

func (s *PropertyService) GetRecord(ctx context.Context, id string) (*models.PropertyRecord, error) {
	return s.repo.FindByID(ctx, id)
}

// InvalidateCache drops derived list data after out-of-band mutations.
func (s *PropertyService) InvalidateCache(ctx context.Context) {
	s.invalidate(ctx)
}

func (s *PropertyService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateList(ctx); err != nil {
		logger.GlobalLogger.Errorf("List cache invalidation failed: %v", err)
	}
}

// Health pings the store and the cache. Only the store is fatal.
func (s *PropertyService) Health(ctx context.Context) (map[string]string, error) {
	status := map[string]string{"mongo": "ok", "redis": "ok"}
	if err := s.cache.Ping(ctx); err != nil {
		status["redis"] = err.Error()
	}
	if err := s.repo.Ping(ctx); err != nil {
		status["mongo"] = err.Error()
		return status, err
	}
	return status, nil
}
