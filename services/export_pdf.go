package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// pdfColumn is one table column: its header, grid width and how a row
// fills it.
type pdfColumn struct {
	header string
	width  int
	align  align.Type
	value  func(ExportRow) string
}

var (
	colIndex      = pdfColumn{"#", 1, align.Center, func(r ExportRow) string { return r.Index }}
	colAmount     = pdfColumn{"Qtd.", 1, align.Right, func(r ExportRow) string { return FormatAmount(r.Amount) }}
	colUnit       = pdfColumn{"Unidade", 1, align.Center, func(r ExportRow) string { return r.UnitLabel }}
	colDedication = pdfColumn{"Dedicação", 1, align.Right, func(r ExportRow) string { return FormatPercent(r.Dedication) }}
)

func pdfColumns(full bool) []pdfColumn {
	if !full {
		return []pdfColumn{
			colIndex,
			{"Função", 4, align.Left, func(r ExportRow) string { return r.Function }},
			colAmount,
			colUnit,
			colDedication,
			{"Total", 2, align.Right, func(r ExportRow) string { return FormatBRL(r.Total) }},
			{"Comissão", 2, align.Right, func(r ExportRow) string { return FormatBRL(r.Commission) }},
		}
	}
	return []pdfColumn{
		colIndex,
		{"Função", 3, align.Left, func(r ExportRow) string { return r.Function }},
		colAmount,
		colUnit,
		colDedication,
		{"Custo base", 1, align.Right, func(r ExportRow) string { return FormatBRL(r.UnitCost) }},
		{"Margem", 1, align.Right, func(r ExportRow) string { return FormatPercent(r.ProfitMargin) }},
		{"Total", 2, align.Right, func(r ExportRow) string { return FormatBRL(r.Total) }},
		{"Comissão", 1, align.Right, func(r ExportRow) string { return FormatBRL(r.Commission) }},
	}
}

// GeneratePDF renders a budget document with maroto/v2 and returns the raw
// PDF bytes.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)
	columns := pdfColumns(data.Full)

	addHeader(m, data)
	addTableHeader(m, columns)
	for i, r := range data.Rows {
		addTableRow(m, columns, r, i%2 == 1)
	}
	addSummary(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addHeader(m core.Maroto, data ExportData) {
	grey := &props.Color{Red: 80, Green: 80, Blue: 80}

	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(data.CompanyName, props.Text{Size: 10, Style: fontstyle.Bold, Color: grey}),
			),
		),
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center}),
			),
		),
		row.New(8).Add(
			col.New(6).Add(
				text.New("Cliente: "+data.CustomerName, props.Text{Size: 9, Align: align.Left, Color: grey}),
			),
			col.New(6).Add(
				text.New("Data: "+data.CreatedDate, props.Text{Size: 9, Align: align.Right, Color: grey}),
			),
		),
		row.New(4),
	)
}

func addTableHeader(m core.Maroto, columns []pdfColumn) {
	headerCell := &props.Cell{BackgroundColor: &props.Color{Red: 33, Green: 37, Blue: 41}}

	r := row.New(8)
	for _, c := range columns {
		r.Add(col.New(c.width).Add(
			text.New(c.header, props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Align: c.align,
				Color: &props.Color{Red: 255, Green: 255, Blue: 255},
			}),
		).WithStyle(headerCell))
	}
	m.AddRows(r)
}

// addTableRow adds one line; odd rows get a light grey band.
func addTableRow(m core.Maroto, columns []pdfColumn, line ExportRow, banded bool) {
	var cellStyle *props.Cell
	if banded {
		cellStyle = &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}
	}

	r := row.New(7)
	for _, c := range columns {
		cell := col.New(c.width).Add(text.New(c.value(line), props.Text{Size: 7, Align: c.align}))
		if cellStyle != nil {
			cell = cell.WithStyle(cellStyle)
		}
		r.Add(cell)
	}
	m.AddRows(r)
}

func addSummary(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))

	summaryCell := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	style := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	for _, l := range SummaryLines(data) {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(text.New(l.Label, style)).WithStyle(summaryCell),
				col.New(4).Add(text.New(FormatBRL(l.Value), style)).WithStyle(summaryCell),
			),
		)
	}
}
