package render

import (
	"encoding/json"
	"io"

	"github.com/stockpad/stockpad/pkg/stockpad/columns"
	"github.com/stockpad/stockpad/pkg/stockpad/project"
)

// jsonModel is the output shape for JSONRenderer.
type jsonModel struct {
	Columns []string  `json:"columns"`
	Rows    []jsonRow `json:"rows"`
}

type jsonRow struct {
	Ticker string            `json:"ticker"`
	Fields map[string]string `json:"fields"`
}

// JSONRenderer emits the projection as JSON with formatted values keyed
// by storage column.
type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (r *JSONRenderer) Render(w io.Writer, active []columns.Descriptor, rows []project.Row, opts Options) error {
	keys := make([]string, len(active))
	for i, d := range active {
		keys[i] = d.Key
	}

	out := jsonModel{Columns: keys, Rows: make([]jsonRow, 0, len(rows))}
	for _, row := range rows {
		jr := jsonRow{Ticker: row.Ticker, Fields: make(map[string]string, len(active))}
		for i, d := range active {
			jr.Fields[d.Key] = row.Cells[i]
		}
		out.Rows = append(out.Rows, jr)
	}

	enc := json.NewEncoder(w)
	if opts.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
