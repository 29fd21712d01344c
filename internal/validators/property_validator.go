package validators

import (
	"fmt"
	"math"
	"strings"

	apperrors "geocortex/internal/errors"
	"geocortex/internal/models"
)

type coordinateValidator struct{}

func NewCoordinateValidator() CoordinateValidator {
	return &coordinateValidator{}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (v *coordinateValidator) ValidLatitude(lat float64) bool {
	return finite(lat) && lat >= -90 && lat <= 90
}

func (v *coordinateValidator) ValidLongitude(lon float64) bool {
	return finite(lon) && lon >= -180 && lon <= 180
}

type propertyValidator struct {
	coords CoordinateValidator
}

func NewPropertyValidator() PropertyValidator {
	return &propertyValidator{coords: NewCoordinateValidator()}
}

// ValidateCreate checks a normalized record before it is stored.
func (v *propertyValidator) ValidateCreate(record *models.PropertyRecord) error {
	if strings.TrimSpace(record.Address) == "" {
		return apperrors.ErrMissingAddress
	}
	if record.Lat != nil && !v.coords.ValidLatitude(*record.Lat) {
		return fmt.Errorf("latitude %v out of range: %w", *record.Lat, apperrors.ErrInvalidParameters)
	}
	if record.Lon != nil && !v.coords.ValidLongitude(*record.Lon) {
		return fmt.Errorf("longitude %v out of range: %w", *record.Lon, apperrors.ErrInvalidParameters)
	}
	return nil
}
