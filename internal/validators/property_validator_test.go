package validators

import (
	"errors"
	"math"
	"testing"

	apperrors "geocortex/internal/errors"
	"geocortex/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCoordinateValidator(t *testing.T) {
	assert := assert.New(t)
	v := NewCoordinateValidator()

	assert.True(v.ValidLatitude(90))
	assert.True(v.ValidLatitude(-90))
	assert.False(v.ValidLatitude(95))
	assert.False(v.ValidLatitude(math.NaN()))
	assert.True(v.ValidLongitude(-180))
	assert.False(v.ValidLongitude(180.0001))
	assert.False(v.ValidLongitude(math.Inf(1)))
}

func TestValidateCreate(t *testing.T) {
	v := NewPropertyValidator()

	assert.NoError(t, v.ValidateCreate(&models.PropertyRecord{Address: "1 Main"}))
	assert.True(t, errors.Is(v.ValidateCreate(&models.PropertyRecord{Address: "  "}), apperrors.ErrMissingAddress))

	err := v.ValidateCreate(&models.PropertyRecord{Address: "1 Main", Lat: models.Float(91)})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidParameters))
}
