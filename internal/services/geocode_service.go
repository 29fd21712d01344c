package services

import (
	"context"
	"fmt"

	apperrors "geocortex/internal/errors"
	"geocortex/internal/models"
	"geocortex/internal/repositories"
	"geocortex/pkg/cache"
	"geocortex/pkg/logger"
	"geocortex/pkg/nominatim"
)

// Geocoder resolves a free-form address to candidate places.
type Geocoder interface {
	Search(ctx context.Context, address string) ([]nominatim.Place, error)
}

type GeocodeService struct {
	repo     repositories.PropertyRepository
	cache    repositories.PropertyCache
	geocoder Geocoder
}

func NewGeocodeService(repo repositories.PropertyRepository, cache repositories.PropertyCache, geocoder Geocoder) *GeocodeService {
	return &GeocodeService{
		repo:     repo,
		cache:    cache,
		geocoder: geocoder,
	}
}

// GeocodeRecord looks up the stored address of id. Non-empty answers are
// cached per address; upstream failures are not retried.
func (s *GeocodeService) GeocodeRecord(ctx context.Context, id string) (*models.GeocodeResponse, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	places, err := s.cache.GetGeocode(ctx, record.Address)
	if err == nil {
		return &models.GeocodeResponse{Address: record.Address, Geocode: places}, nil
	}
	if !cache.IsMiss(err) {
		logger.GlobalLogger.Errorf("Geocode cache read failed: address=%q, error=%v", record.Address, err)
	}

	places, err = s.geocoder.Search(ctx, record.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUpstreamGeocode, err)
	}
	if len(places) == 0 {
		return &models.GeocodeResponse{Address: record.Address, Geocode: []nominatim.Place{}}, nil
	}
	if err := s.cache.SetGeocode(ctx, record.Address, places); err != nil {
		logger.GlobalLogger.Errorf("Geocode cache write failed: address=%q, error=%v", record.Address, err)
	}
	return &models.GeocodeResponse{Address: record.Address, Geocode: places}, nil
}
