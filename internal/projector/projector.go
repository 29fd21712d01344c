// Package projector derives the map and list presentation of a record set.
// It holds no state; every call recomputes from the records given.
package projector

import (
	"fmt"

	"geocortex/internal/models"
	"geocortex/internal/validators"
)

const (
	SinglePointZoom = 14
	FitPadding      = 60
	FitMaxZoom      = 16
	// Boxes narrower than MinSpan degrees on either axis are widened by
	// SpanBuffer on every side.
	MinSpan    = 0.001
	SpanBuffer = 0.01
)

type Marker struct {
	Index   int     `json:"index"`
	ID      string  `json:"id"`
	Address string  `json:"address"`
	Lon     float64 `json:"lon"`
	Lat     float64 `json:"lat"`
}

type BoundingBox struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

// Viewport is either a centered view at a fixed zoom or a box to fit.
type Viewport struct {
	Center  *[2]float64  `json:"center,omitempty"`
	Zoom    int          `json:"zoom,omitempty"`
	Bounds  *BoundingBox `json:"bounds,omitempty"`
	Padding int          `json:"padding,omitempty"`
	MaxZoom int          `json:"maxZoom,omitempty"`
}

type Row struct {
	Index       int    `json:"index"`
	ID          string `json:"id"`
	Address     string `json:"address"`
	Status      string `json:"status"`
	Builder     string `json:"builder"`
	City        string `json:"city"`
	Coordinates string `json:"coordinates"`
}

type View struct {
	Markers  []Marker  `json:"markers"`
	Viewport *Viewport `json:"viewport"`
	Rows     []Row     `json:"rows"`
}

var coords = validators.NewCoordinateValidator()

// Project builds markers, viewport and list rows. Indexes are 1-based
// positions in records, shared by a record's marker and row.
func Project(records []*models.PropertyRecord) *View {
	view := &View{
		Markers: []Marker{},
		Rows:    make([]Row, 0, len(records)),
	}
	for i, rec := range records {
		view.Rows = append(view.Rows, row(i+1, rec))
		if !rec.HasCoordinates() || !coords.ValidLatitude(*rec.Lat) || !coords.ValidLongitude(*rec.Lon) {
			continue
		}
		view.Markers = append(view.Markers, Marker{
			Index:   i + 1,
			ID:      rec.ID,
			Address: rec.Address,
			Lon:     *rec.Lon,
			Lat:     *rec.Lat,
		})
	}
	view.Viewport = Fit(view.Markers)
	return view
}

// Fit computes the viewport for markers, or nil when there are none.
func Fit(markers []Marker) *Viewport {
	if len(markers) == 0 {
		return nil
	}
	box := BoundingBox{West: markers[0].Lon, East: markers[0].Lon, South: markers[0].Lat, North: markers[0].Lat}
	for _, m := range markers[1:] {
		box.West = min(box.West, m.Lon)
		box.East = max(box.East, m.Lon)
		box.South = min(box.South, m.Lat)
		box.North = max(box.North, m.Lat)
	}

	if box.North == box.South && box.East == box.West {
		return &Viewport{
			Center: &[2]float64{markers[0].Lon, markers[0].Lat},
			Zoom:   SinglePointZoom,
		}
	}
	if box.North-box.South < MinSpan || box.East-box.West < MinSpan {
		box = BoundingBox{
			West:  box.West - SpanBuffer,
			South: box.South - SpanBuffer,
			East:  box.East + SpanBuffer,
			North: box.North + SpanBuffer,
		}
	}
	return &Viewport{Bounds: &box, Padding: FitPadding, MaxZoom: FitMaxZoom}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func row(index int, rec *models.PropertyRecord) Row {
	r := Row{
		Index:       index,
		ID:          rec.ID,
		Address:     rec.Address,
		Status:      orDefault(rec.Attribute("Status"), "Unknown"),
		Builder:     orDefault(rec.Attribute("Builder Name"), "Unknown Builder"),
		City:        orDefault(rec.Attribute("City"), "Unknown City"),
		Coordinates: "No coordinates",
	}
	if rec.HasCoordinates() {
		r.Coordinates = fmt.Sprintf("%.4f, %.4f", *rec.Lat, *rec.Lon)
	}
	return r
}
