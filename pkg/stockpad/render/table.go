package render

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/stockpad/stockpad/pkg/stockpad/columns"
	"github.com/stockpad/stockpad/pkg/stockpad/project"
)

// TableRenderer draws the projection as a terminal table; price and
// change cells are colored by the sign of the raw change.
type TableRenderer struct{}

func NewTableRenderer() *TableRenderer { return &TableRenderer{} }

func (r *TableRenderer) Render(w io.Writer, active []columns.Descriptor, rows []project.Row, opts Options) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleColoredDark)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false

	hdr := make(table.Row, len(active))
	for i, d := range active {
		hdr[i] = strings.ToUpper(d.Label)
	}
	tw.AppendHeader(hdr)

	maxWidth := opts.MaxColWidth
	if maxWidth <= 0 {
		maxWidth = 40
	}
	cfgs := make([]table.ColumnConfig, 0, len(active))
	for i, d := range active {
		width := d.Width
		if width <= 0 || width > maxWidth {
			width = maxWidth
		}
		cfgs = append(cfgs, table.ColumnConfig{
			Number:      i + 1,
			WidthMax:    width,
			Align:       d.Align,
			AlignHeader: d.Align,
		})
	}
	tw.SetColumnConfigs(cfgs)

	for _, row := range rows {
		out := make(table.Row, len(active))
		for i, d := range active {
			cell := row.Cells[i]
			if opts.Color && (d.Key == "price" || d.Key == "change_pct") && row.Chg != nil {
				if *row.Chg > 0 {
					cell = text.Colors{text.FgGreen}.Sprint(cell)
				} else if *row.Chg < 0 {
					cell = text.Colors{text.FgRed}.Sprint(cell)
				}
			}
			out[i] = cell
		}
		tw.AppendRow(out)
	}

	tw.Render()
	return nil
}
