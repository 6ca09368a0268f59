package render

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/stockpad/stockpad/pkg/stockpad/columns"
	"github.com/stockpad/stockpad/pkg/stockpad/project"
)

// CSVRenderer writes the projection as CSV: header row is the active
// column labels in display order, one row per projected record, every
// value the formatted display string.
type CSVRenderer struct{}

func NewCSVRenderer() *CSVRenderer { return &CSVRenderer{} }

func (r *CSVRenderer) Render(w io.Writer, active []columns.Descriptor, rows []project.Row, _ Options) error {
	cw := csv.NewWriter(w)

	hdr := make([]string, len(active))
	for i, d := range active {
		hdr[i] = d.Label
	}
	if err := cw.Write(hdr); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.Cells); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseCSV reads a CSV produced by CSVRenderer (possibly hand-edited)
// back into its header labels and label-keyed row maps.
func ParseCSV(r io.Reader) (header []string, rows []map[string]string, err error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("parse csv: empty file")
	}

	header = records[0]
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, label := range header {
			if i < len(rec) {
				row[label] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}
