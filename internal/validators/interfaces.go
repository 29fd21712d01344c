package validators

import (
	"geocortex/internal/models"
)

type CoordinateValidator interface {
	ValidLatitude(lat float64) bool
	ValidLongitude(lon float64) bool
}

type PropertyValidator interface {
	ValidateCreate(record *models.PropertyRecord) error
}
