package main

import (
	"fmt"
	"io"
	"strings"

	"geocortex/internal/models"
	"geocortex/internal/projector"
	"geocortex/pkg/api"

	"github.com/fatih/color"
)

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	headColor = color.New(color.FgCyan, color.Bold)
)

func printBatch(w io.Writer, name string, result *models.BatchResult) {
	okColor.Fprintf(w, "%s: %d accepted", name, result.Accepted)
	fmt.Fprintf(w, " (batch %s)\n", result.BatchID)
	for _, r := range result.Rejected {
		failColor.Fprintf(w, "  line %d: %s", r.Row, r.Reason)
		if r.Message != "" {
			fmt.Fprintf(w, " (%s)", r.Message)
		}
		fmt.Fprintln(w)
	}
}

func rowLine(r projector.Row) string {
	return fmt.Sprintf("%3d. %-40s %-10s %-20s %-14s %s", r.Index, r.Address, r.Status, r.Builder, r.City, r.Coordinates)
}

func printRows(w io.Writer, rows []projector.Row) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "no records")
		return
	}
	for _, r := range rows {
		fmt.Fprintln(w, rowLine(r))
	}
}

func printDetail(w io.Writer, d *projector.Detail) {
	headColor.Fprintln(w, d.Address)
	if d.Status != "" {
		fmt.Fprintf(w, "Status: %s\n", d.Status)
	}
	for _, s := range d.Sections {
		fmt.Fprintf(w, "\n%s\n%s\n", s.Title, strings.Repeat("-", len(s.Title)))
		for _, f := range s.Fields {
			fmt.Fprintf(w, "  %-22s %s\n", f.Label+":", f.Value)
		}
	}
}

func printGeocode(w io.Writer, result *api.GeocodeResult) {
	headColor.Fprintln(w, result.Address)
	if len(result.Geocode) == 0 {
		fmt.Fprintln(w, "no matches")
		return
	}
	for _, p := range result.Geocode {
		fmt.Fprintf(w, "  %s, %s  %s\n", p.Lat, p.Lon, p.DisplayName)
	}
}
