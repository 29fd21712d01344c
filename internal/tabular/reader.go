// Package tabular turns uploaded spreadsheets into raw input rows.
package tabular

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"geocortex/internal/models"
)

var ErrUnsupportedFormat = errors.New("unsupported file type, expected .csv or .xlsx")

// Sheet is a parsed spreadsheet. Lines[i] is the 1-based line of Rows[i] in
// the file; the header is line 1.
type Sheet struct {
	Rows  []models.RawRow
	Lines []int
}

// Line returns the file line of the 1-based row n, or n itself when out of range.
func (s *Sheet) Line(n int) int {
	if n < 1 || n > len(s.Lines) {
		return n
	}
	return s.Lines[n-1]
}

// Read dispatches on the extension of filename.
func Read(filename string, r io.Reader) (*Sheet, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx":
		return ReadXLSX(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
}

// rowsFromRecords maps every record after the header onto the header names.
// Columns with a blank header are skipped, cells past the end of a short
// record are absent, and records with no content at all are ignored.
// lines holds the file line of each record; nil means records[i] is line i+1.
func rowsFromRecords(records [][]string, lines []int) *Sheet {
	if len(records) == 0 {
		return &Sheet{Rows: []models.RawRow{}, Lines: []int{}}
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	sheet := &Sheet{
		Rows:  make([]models.RawRow, 0, len(records)-1),
		Lines: make([]int, 0, len(records)-1),
	}
	for i, rec := range records[1:] {
		row := make(models.RawRow, len(header))
		blank := true
		for col, name := range header {
			if name == "" || col >= len(rec) {
				continue
			}
			row[name] = rec[col]
			if strings.TrimSpace(rec[col]) != "" {
				blank = false
			}
		}
		if !blank {
			line := i + 2
			if lines != nil {
				line = lines[i+1]
			}
			sheet.Rows = append(sheet.Rows, row)
			sheet.Lines = append(sheet.Lines, line)
		}
	}
	return sheet
}

// FilterAddressRows keeps rows that carry a non-blank value under at least
// one of keys. It returns the kept rows with their file lines and the lines
// of the dropped ones.
func FilterAddressRows(sheet *Sheet, keys []string) (*Sheet, []int) {
	kept := &Sheet{
		Rows:  make([]models.RawRow, 0, len(sheet.Rows)),
		Lines: make([]int, 0, len(sheet.Rows)),
	}
	dropped := []int{}
	for i, row := range sheet.Rows {
		if hasAny(row, keys) {
			kept.Rows = append(kept.Rows, row)
			kept.Lines = append(kept.Lines, sheet.Line(i+1))
		} else {
			dropped = append(dropped, sheet.Line(i+1))
		}
	}
	return kept, dropped
}

func hasAny(row models.RawRow, keys []string) bool {
	for _, k := range keys {
		if present(row[k]) {
			return true
		}
	}
	return false
}

func present(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	}
	return true
}
