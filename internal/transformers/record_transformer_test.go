package transformers

import (
	"encoding/json"
	"errors"
	"testing"

	apperrors "geocortex/internal/errors"
	"geocortex/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAddressOnly(t *testing.T) {
	assert := assert.New(t)

	rec, err := Normalize(models.RawRow{"address": "  123 Main St "})
	require.NoError(t, err)
	assert.Equal("123 Main St", rec.Address)
	assert.Nil(rec.Lat)
	assert.Nil(rec.Lon)
	assert.Empty(rec.Attributes)
	assert.Empty(rec.ID)
}

func TestNormalizeAlternateAddressKey(t *testing.T) {
	assert := assert.New(t)

	rec, err := Normalize(models.RawRow{
		"Lot Number / Address": "Lot 7, 45 Ridge Way",
		"Builder Name":         "Acme Homes",
	})
	require.NoError(t, err)
	assert.Equal("Lot 7, 45 Ridge Way", rec.Address)
	assert.Equal("Lot 7, 45 Ridge Way", rec.Attributes["Lot Number / Address"])
	assert.Equal("Acme Homes", rec.Attributes["Builder Name"])

	rec, err = Normalize(models.RawRow{"address": " ", "Lot Number / Address": 42.0})
	require.NoError(t, err)
	assert.Equal("42", rec.Address)
}

func TestNormalizeMissingAddress(t *testing.T) {
	for _, row := range []models.RawRow{
		{},
		{"address": ""},
		{"address": "   ", "Lot Number / Address": nil},
		{"address": map[string]interface{}{"street": "x"}},
		{"City": "Edmonton", "lat": 53.5},
	} {
		_, err := Normalize(row)
		assert.True(t, errors.Is(err, apperrors.ErrMissingAddress), "%v", row)
	}
}

func TestNormalizeCoordinates(t *testing.T) {
	assert := assert.New(t)

	rec, err := Normalize(models.RawRow{"address": "a", "Latitude": "53.5N", "Longitude": "113.5W"})
	require.NoError(t, err)
	require.True(t, rec.HasCoordinates())
	assert.Equal(53.5, *rec.Lat)
	assert.Equal(-113.5, *rec.Lon)
	assert.Equal("53.5N", rec.Attributes["Latitude"])

	rec, err = Normalize(models.RawRow{"address": "a", "lat": json.Number("53.25"), "lon": int64(-113)})
	require.NoError(t, err)
	assert.Equal(53.25, *rec.Lat)
	assert.Equal(-113.0, *rec.Lon)
}

func TestNormalizeInvalidCoordinatesBecomeAbsent(t *testing.T) {
	assert := assert.New(t)

	rec, err := Normalize(models.RawRow{"address": "a", "lat": 95.0, "lon": "east-ish"})
	require.NoError(t, err)
	assert.Nil(rec.Lat)
	assert.Nil(rec.Lon)

	rec, err = Normalize(models.RawRow{"address": "a", "lat": "abc", "lon": true})
	require.NoError(t, err)
	assert.Nil(rec.Lat)
	assert.Nil(rec.Lon)
}

func TestNormalizeFallsThroughInvalidSource(t *testing.T) {
	rec, err := Normalize(models.RawRow{"address": "a", "lat": 95.0, "Latitude": "53.5"})
	require.NoError(t, err)
	require.NotNil(t, rec.Lat)
	assert.Equal(t, 53.5, *rec.Lat)
}

func TestNormalizeDropsCanonicalKeysFromAttributes(t *testing.T) {
	rec, err := Normalize(models.RawRow{"id": "x", "_id": "y", "address": "a", "lat": 1.0, "lon": 2.0, "Status": "Sold"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"Status": "Sold"}, rec.Attributes)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	rows := []models.RawRow{
		{"address": "1 Main"},
		{"Lot Number / Address": " Lot 3 ", "Latitude": "53.5S", "Longitude": "113.5E", "Bedrooms": 3.0},
		{"address": "2 Main", "lat": 95.0, "latitude": "12.5", "lon": "garbage"},
		{"address": "3 Main", "lat": "53.5N", "lon": "113.5W", "Listing Price": "$500,000"},
		{"address": 17.0, "Latitude": "N/A", "longitude": -200.0},
	}
	for _, row := range rows {
		first, err := Normalize(row)
		require.NoError(t, err)
		second, err := Normalize(first.ToRow())
		require.NoError(t, err)
		assert.Equal(t, first, second, "%v", row)
	}
}

func TestCustomFieldSources(t *testing.T) {
	tr := NewRecordTransformer(FieldSources{
		Address: []string{"Street"},
		Lat:     []string{"Y"},
		Lon:     []string{"X"},
	})
	rec, err := tr.Normalize(models.RawRow{"Street": "9 Elm", "Y": "10", "X": "20W"})
	require.NoError(t, err)
	assert.Equal(t, "9 Elm", rec.Address)
	assert.Equal(t, 10.0, *rec.Lat)
	assert.Equal(t, -20.0, *rec.Lon)
}
