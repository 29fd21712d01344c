package models

import (
	"encoding/json"
	"fmt"
)

// Canonical field names. Everything else in an input row is an attribute.
const (
	FieldID         = "id"
	FieldMongoID    = "_id"
	FieldAddress    = "address"
	FieldLat        = "lat"
	FieldLon        = "lon"
	FieldLotAddress = "Lot Number / Address"
)

// RawRow is one untyped input row, from a JSON body or a spreadsheet line.
type RawRow map[string]interface{}

// IsCanonical reports whether key is owned by PropertyRecord rather than its attributes.
func IsCanonical(key string) bool {
	switch key {
	case FieldID, FieldMongoID, FieldAddress, FieldLat, FieldLon:
		return true
	}
	return false
}

// PropertyRecord is the canonical property listing stored and served by the API.
// On the wire it is flat: {id, address, lat, lon, ...attributes}.
type PropertyRecord struct {
	ID         string
	Address    string
	Lat        *float64
	Lon        *float64
	Attributes map[string]interface{}
}

// HasCoordinates reports whether both axes are set.
func (p *PropertyRecord) HasCoordinates() bool {
	return p.Lat != nil && p.Lon != nil
}

// Attribute returns an attribute formatted for display, or "" when absent.
func (p *PropertyRecord) Attribute(key string) string {
	v, ok := p.Attributes[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// ToRow flattens the record back into a RawRow. Canonical fields win over
// same-named attributes.
func (p *PropertyRecord) ToRow() RawRow {
	row := make(RawRow, len(p.Attributes)+4)
	for k, v := range p.Attributes {
		row[k] = v
	}
	if p.ID != "" {
		row[FieldID] = p.ID
	} else {
		delete(row, FieldID)
	}
	delete(row, FieldMongoID)
	row[FieldAddress] = p.Address
	if p.Lat != nil {
		row[FieldLat] = *p.Lat
	} else {
		delete(row, FieldLat)
	}
	if p.Lon != nil {
		row[FieldLon] = *p.Lon
	} else {
		delete(row, FieldLon)
	}
	return row
}

func (p PropertyRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToRow())
}

// UnmarshalJSON decodes the flat wire shape. It does not normalize: coordinates
// must already be numbers, as the API serves them.
func (p *PropertyRecord) UnmarshalJSON(data []byte) error {
	var row map[string]interface{}
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}
	*p = PropertyRecord{Attributes: make(map[string]interface{}, len(row))}
	for k, v := range row {
		switch k {
		case FieldID, FieldMongoID:
			if s, ok := v.(string); ok {
				p.ID = s
			}
		case FieldAddress:
			if s, ok := v.(string); ok {
				p.Address = s
			}
		case FieldLat:
			if f, ok := v.(float64); ok {
				p.Lat = &f
			}
		case FieldLon:
			if f, ok := v.(float64); ok {
				p.Lon = &f
			}
		default:
			p.Attributes[k] = v
		}
	}
	return nil
}

// Float returns a pointer to f, for building records in code.
func Float(f float64) *float64 {
	return &f
}

// GeocodeResponse is the body of GET /api/geocode/:id.
type GeocodeResponse struct {
	Address string      `json:"address"`
	Geocode interface{} `json:"geocode"`
}
