package projector

import (
	"fmt"

	"geocortex/internal/models"
)

type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Section struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

type Detail struct {
	ID       string    `json:"id"`
	Address  string    `json:"address"`
	Status   string    `json:"status"`
	Sections []Section `json:"sections"`
}

type fieldSpec struct {
	label, key string
}

var detailLayout = []struct {
	title  string
	fields []fieldSpec
}{
	{"Property Info", []fieldSpec{
		{"Builder", "Builder Name"},
		{"City", "City"},
		{"Community", "Community Name"},
		{"Model", "Model Name / Plan"},
	}},
	{"Specifications", []fieldSpec{
		{"Square Footage", "Square Footage"},
		{"Bedrooms", "Bedrooms"},
		{"Bathrooms", "Bathrooms"},
		{"Garage", "Garage Type"},
	}},
	{"Pricing & Timeline", []fieldSpec{
		{"Listing Price", "Listing Price"},
		{"Possession Date", "Possession Date"},
	}},
	{"Contact Information", []fieldSpec{
		{"Agent", "Agent Name"},
		{"Phone", "Agent Phone"},
		{"Email", "Agent Email"},
	}},
}

// DetailOf lays out the known listing attributes of rec. Missing values show as "-".
func DetailOf(rec *models.PropertyRecord) *Detail {
	d := &Detail{
		ID:       rec.ID,
		Address:  rec.Address,
		Status:   orDefault(rec.Attribute("Status"), "Unknown"),
		Sections: make([]Section, 0, len(detailLayout)+1),
	}
	for _, sec := range detailLayout {
		s := Section{Title: sec.title, Fields: make([]Field, 0, len(sec.fields))}
		for _, f := range sec.fields {
			s.Fields = append(s.Fields, Field{Label: f.label, Value: orDefault(rec.Attribute(f.key), "-")})
		}
		d.Sections = append(d.Sections, s)
	}

	location := "-"
	if rec.HasCoordinates() {
		location = fmt.Sprintf("%v, %v", *rec.Lat, *rec.Lon)
	}
	d.Sections = append(d.Sections, Section{Title: "Location", Fields: []Field{{Label: "Coordinates", Value: location}}})
	return d
}
