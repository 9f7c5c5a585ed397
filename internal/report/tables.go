package report

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/nlitools/almagraph/internal/hierarchy"
	"github.com/nlitools/almagraph/internal/model"
)

// RankedParentsTable renders parents ranked by the number of submitted
// children that map to them.
func RankedParentsTable(ranked []model.ParentCount) string {
	rows := make([][]string, 0, len(ranked))
	for _, pc := range ranked {
		rows = append(rows, []string{pc.Parent, strconv.Itoa(pc.Children)})
	}
	return renderTable(
		[]string{"Parent", "Children in upload"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	)
}

// MappingTable renders the child-to-parents audit mapping.
func MappingTable(mapping []model.ChildLink) string {
	rows := make([][]string, 0, len(mapping))
	for _, link := range mapping {
		rows = append(rows, []string{
			link.Child,
			strings.Join(link.Parents, " "+hierarchy.ParentSeparator+" "),
		})
	}
	return renderTable(
		[]string{"Child", "Parents"},
		rows,
		[]columnAlignment{alignLeft, alignLeft},
	)
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
