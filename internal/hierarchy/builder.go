package hierarchy

import (
	"strings"

	"github.com/nlitools/almagraph/internal/ident"
	"github.com/nlitools/almagraph/internal/tabular"
)

// ParentSeparator joins multiple parent identifiers inside a single cell of
// the child/parent table.
const ParentSeparator = "|||"

// BuildStats reports what the builder observed while ingesting a table.
type BuildStats struct {
	Rows        int // data rows in the source
	SkippedRows int // rows with no extractable child identifier
}

// Build constructs a Graph from a table carrying a child column and a parent
// column. The columns are located by name: the first whose name contains
// "child" and the first containing "parent", case-insensitively; a
// tabular.SchemaError is returned when either is absent.
//
// Rows whose child cell yields no identifier are skipped entirely. The parent
// cell may hold zero or more identifiers joined by ParentSeparator; segments
// that fail to normalize are discarded. A child whose cell normalizes to zero
// parents is still recorded with an empty parent set. Parent sets accumulate
// across rows for the same child.
func Build(t *tabular.Table) (*Graph, BuildStats, error) {
	childCol, err := t.FindColumn("child")
	if err != nil {
		return nil, BuildStats{}, err
	}
	parentCol, err := t.FindColumn("parent")
	if err != nil {
		return nil, BuildStats{}, err
	}

	g := newGraph()
	stats := BuildStats{Rows: t.Len()}

	for row := 0; row < t.Len(); row++ {
		child, ok := ident.Normalize(t.Cell(row, childCol))
		if !ok {
			stats.SkippedRows++
			continue
		}

		g.addChild(child)
		for _, segment := range strings.Split(t.Cell(row, parentCol), ParentSeparator) {
			if parent, ok := ident.Normalize(segment); ok {
				g.addEdge(child, parent)
			}
		}
	}

	return g, stats, nil
}
