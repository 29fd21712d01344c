package transformers

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "geocortex/internal/errors"
	"geocortex/internal/models"
	"geocortex/internal/validators"
)

// FieldSources lists, per canonical field, the input keys consulted in order.
type FieldSources struct {
	Address []string
	Lat     []string
	Lon     []string
}

var DefaultFieldSources = FieldSources{
	Address: []string{models.FieldAddress, models.FieldLotAddress},
	Lat:     []string{models.FieldLat, "Latitude", "latitude"},
	Lon:     []string{models.FieldLon, "Longitude", "longitude"},
}

type recordTransformer struct {
	sources FieldSources
	coords  validators.CoordinateValidator
}

func NewRecordTransformer(sources FieldSources) RecordTransformer {
	return &recordTransformer{
		sources: sources,
		coords:  validators.NewCoordinateValidator(),
	}
}

var defaultTransformer = NewRecordTransformer(DefaultFieldSources)

// Normalize applies the default field sources to row.
func Normalize(row models.RawRow) (*models.PropertyRecord, error) {
	return defaultTransformer.Normalize(row)
}

// Normalize resolves the address and coordinates of row and copies every
// other key into the record's attributes. Rows without an address fail with
// ErrMissingAddress; bad coordinates only make that axis absent.
func (t *recordTransformer) Normalize(row models.RawRow) (*models.PropertyRecord, error) {
	address := ""
	for _, key := range t.sources.Address {
		if s, ok := scalarString(row[key]); ok {
			address = s
			break
		}
	}
	if address == "" {
		return nil, apperrors.ErrMissingAddress
	}

	record := &models.PropertyRecord{
		Address:    address,
		Lat:        t.resolve(row, t.sources.Lat, ParseLatitude, t.coords.ValidLatitude),
		Lon:        t.resolve(row, t.sources.Lon, ParseLongitude, t.coords.ValidLongitude),
		Attributes: make(map[string]interface{}, len(row)),
	}
	for k, v := range row {
		if !models.IsCanonical(k) {
			record.Attributes[k] = v
		}
	}
	return record, nil
}

// resolve returns the first source value that parses to a valid coordinate.
func (t *recordTransformer) resolve(row models.RawRow, keys []string, parse func(string) *float64, valid func(float64) bool) *float64 {
	for _, key := range keys {
		v, ok := row[key]
		if !ok || v == nil {
			continue
		}
		f := coordinate(v, parse)
		if f != nil && valid(*f) {
			return f
		}
	}
	return nil
}

func coordinate(v interface{}, parse func(string) *float64) *float64 {
	var f float64
	switch n := v.(type) {
	case string:
		return parse(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return parse(n.String())
		}
		f = parsed
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return nil
	}
	return &f
}

// scalarString renders a scalar as trimmed text. Blank text, nil and
// composite values report false.
func scalarString(v interface{}) (string, bool) {
	var s string
	switch n := v.(type) {
	case nil:
		return "", false
	case string:
		s = n
	case json.Number:
		s = n.String()
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return "", false
		}
		s = strconv.FormatFloat(n, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(n), 'f', -1, 32)
	case int, int32, int64, uint, uint32, uint64, bool:
		s = fmt.Sprint(n)
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}
