package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// tableLayout describes one rendered table. An empty Title omits the title row.
type tableLayout struct {
	Title    string
	Headers  []string
	Rows     [][]string
	Aligns   []columnAlignment
	Colorize bool
}

func renderTable(layout tableLayout) string {
	columns := len(layout.Headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	style := table.StyleRounded
	if layout.Colorize {
		style.Title.Colors = text.Colors{text.Bold, text.FgHiBlue}
		style.Color.Header = text.Colors{text.Bold}
	}
	tw.SetStyle(style)
	if layout.Title != "" {
		tw.SetTitle(layout.Title)
	}

	header := make(table.Row, columns)
	for i, h := range layout.Headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range layout.Rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(layout.Aligns) && layout.Aligns[i] == alignRight {
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
