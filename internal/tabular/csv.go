package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ReadCSV parses a header-first CSV document. Ragged lines are accepted.
func ReadCSV(r io.Reader) (*Sheet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var records [][]string
	var lines []int
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV parsing error: %w", err)
		}
		line, _ := cr.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}
	return rowsFromRecords(records, lines), nil
}
