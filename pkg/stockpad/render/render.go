// Package render writes a projection to an output: colored terminal
// table, CSV export, or JSON.
package render

import (
	"io"

	"github.com/stockpad/stockpad/pkg/stockpad/columns"
	"github.com/stockpad/stockpad/pkg/stockpad/project"
)

// Renderer renders projected rows under the active columns.
type Renderer interface {
	Render(w io.Writer, active []columns.Descriptor, rows []project.Row, opts Options) error
}

type Options struct {
	Color       bool
	PrettyJSON  bool
	MaxColWidth int
}
