package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// excelColumn mirrors pdfColumn, but writes typed cell values so the sheet
// stays usable for further calculation.
type excelColumn struct {
	header string
	width  float64
	money  bool
	value  func(ExportRow) any
}

func excelColumns(full bool) []excelColumn {
	cols := []excelColumn{
		{"#", 6, false, func(r ExportRow) any { return r.Index }},
		{"Função", 32, false, func(r ExportRow) any { return sanitizeExcelCell(r.Function) }},
		{"Quantidade", 12, false, func(r ExportRow) any { return r.Amount }},
		{"Unidade", 12, false, func(r ExportRow) any { return r.UnitLabel }},
		{"Dedicação (%)", 14, false, func(r ExportRow) any { return r.Dedication * 100 }},
	}
	if full {
		cols = append(cols,
			excelColumn{"Custo base", 16, true, func(r ExportRow) any { return r.UnitCost }},
			excelColumn{"Margem (%)", 12, false, func(r ExportRow) any { return r.ProfitMargin * 100 }},
			excelColumn{"Custo", 16, true, func(r ExportRow) any { return r.Cost }},
		)
	}
	return append(cols,
		excelColumn{"Total", 16, true, func(r ExportRow) any { return r.Total }},
		excelColumn{"Comissão", 16, true, func(r ExportRow) any { return r.Commission }},
	)
}

// GenerateExcel writes a budget into a single-sheet workbook and returns the
// file contents.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Orçamento"
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := excelColumns(data.Full)
	lastCol, _ := excelize.ColumnNumberToName(len(columns))
	for i, c := range columns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, name, name, c.width); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", name, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	moneyFmt := `"R$" #,##0.00`
	rowStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 10},
		Border:       thinBorders(),
		CustomNumFmt: &moneyFmt,
	})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}
	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}
	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 11},
		CustomNumFmt: &moneyFmt,
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// Rows 1-3: title, customer, date.
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", data.Title)
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)
	f.SetCellValue(sheetName, "A2", "Cliente: "+sanitizeExcelCell(data.CustomerName))
	f.SetCellValue(sheetName, "A3", "Data: "+data.CreatedDate)

	for i, c := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 5)
		f.SetCellValue(sheetName, cell, c.header)
	}
	f.SetCellStyle(sheetName, "A5", lastCol+"5", headerStyle)

	rowNum := 6
	for _, r := range data.Rows {
		for i, c := range columns {
			cell, _ := excelize.CoordinatesToCellName(i+1, rowNum)
			f.SetCellValue(sheetName, cell, c.value(r))
			style := rowStyle
			if c.money {
				style = moneyStyle
			}
			f.SetCellStyle(sheetName, cell, cell, style)
		}
		rowNum++
	}

	// Summary block, one blank row below the table.
	rowNum++
	labelCol, _ := excelize.ColumnNumberToName(len(columns) - 1)
	for _, s := range SummaryLines(data) {
		labelCell := fmt.Sprintf("%s%d", labelCol, rowNum)
		valueCell := fmt.Sprintf("%s%d", lastCol, rowNum)
		f.SetCellValue(sheetName, labelCell, s.Label)
		f.SetCellStyle(sheetName, labelCell, labelCell, summaryLabelStyle)
		f.SetCellValue(sheetName, valueCell, s.Value)
		f.SetCellStyle(sheetName, valueCell, valueCell, summaryValueStyle)
		rowNum++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}
