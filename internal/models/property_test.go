package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyRecordJSONIsFlat(t *testing.T) {
	assert := assert.New(t)

	rec := PropertyRecord{
		ID:      "66f0c0ffee0000000000abcd",
		Address: "123 Main St",
		Lat:     Float(53.5),
		Attributes: map[string]interface{}{
			"Builder Name": "Acme Homes",
			"Bedrooms":     float64(3),
			"lat":          "ignored",
		},
	}
	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var flat map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal("66f0c0ffee0000000000abcd", flat["id"])
	assert.Equal("123 Main St", flat["address"])
	assert.Equal(53.5, flat["lat"])
	assert.NotContains(flat, "lon")
	assert.Equal("Acme Homes", flat["Builder Name"])
	assert.Equal(float64(3), flat["Bedrooms"])
}

func TestPropertyRecordUnmarshal(t *testing.T) {
	assert := assert.New(t)

	var rec PropertyRecord
	err := json.Unmarshal([]byte(`{"id":"abc","address":"9 Elm","lat":1.5,"lon":"bad","City":"Edmonton"}`), &rec)
	require.NoError(t, err)
	assert.Equal("abc", rec.ID)
	assert.Equal("9 Elm", rec.Address)
	require.NotNil(t, rec.Lat)
	assert.Equal(1.5, *rec.Lat)
	assert.Nil(rec.Lon)
	assert.False(rec.HasCoordinates())
	assert.Equal("Edmonton", rec.Attribute("City"))
	assert.Equal("", rec.Attribute("Status"))
}

func TestIsCanonical(t *testing.T) {
	assert.True(t, IsCanonical("_id"))
	assert.True(t, IsCanonical("lon"))
	assert.False(t, IsCanonical("Latitude"))
	assert.False(t, IsCanonical(FieldLotAddress))
}
