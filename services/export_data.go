package services

import "fmt"

// ExportRow is one line of an exported budget. The cost-side fields are
// only filled for the full variant.
type ExportRow struct {
	Index      string
	Function   string
	Amount     float64
	UnitLabel  string
	Dedication float64
	Total      float64
	Commission float64

	UnitCost     float64
	ProfitMargin float64
	Cost         float64
}

// ExportData holds everything the PDF and Excel generators print.
type ExportData struct {
	CompanyName  string
	Title        string
	Code         int
	CustomerName string
	CreatedDate  string
	Full         bool
	Rows         []ExportRow

	TotalRevenue    float64
	CommissionRate  float64
	CommissionValue float64
	TaxRate         float64
	TaxValue        float64
	TotalCost       float64
	NetProfit       float64
}

// BuildExportData flattens a valuation into export rows. The full variant is
// downgraded to simple when the valuation was computed for a session that may
// not see net profit.
func BuildExportData(v Valuation, variant PDFVariant, companyName, createdDate string) ExportData {
	full := variant == VariantFull && v.ShowsNetProfit
	b := v.Budget

	data := ExportData{
		CompanyName:     companyName,
		Title:           fmt.Sprintf("Orçamento #%d", b.PipedriveCode),
		Code:            b.PipedriveCode,
		CustomerName:    b.CustomerName,
		CreatedDate:     createdDate,
		Full:            full,
		Rows:            make([]ExportRow, 0, len(v.Lines)),
		TotalRevenue:    v.TotalRevenue,
		CommissionRate:  b.CommissionRate,
		CommissionValue: v.CommissionValue,
	}

	for i, l := range v.Lines {
		r := ExportRow{
			Index:      fmt.Sprintf("%d", i+1),
			Function:   l.Function.Name,
			Amount:     l.Allocation.Amount,
			UnitLabel:  l.Allocation.AmountUnit.Label(),
			Dedication: l.Allocation.Dedication,
			Total:      l.Revenue,
			Commission: l.Revenue * b.CommissionRate,
		}
		if full {
			r.UnitCost = l.UnitCost
			r.ProfitMargin = l.Allocation.ProfitMargin
			r.Cost = l.Cost
		}
		data.Rows = append(data.Rows, r)
	}

	if full {
		data.TaxRate = b.TaxRate
		data.TaxValue = v.TaxValue
		data.TotalCost = v.TotalCost
		data.NetProfit = v.NetProfit
	}
	return data
}

// SummaryLine is one labelled total of an exported document.
type SummaryLine struct {
	Label string
	Value float64
}

// SummaryLines lists the totals block shared by every export format.
// Tax, cost and net profit only appear on the full variant.
func SummaryLines(data ExportData) []SummaryLine {
	lines := []SummaryLine{
		{"Total", data.TotalRevenue},
		{fmt.Sprintf("Comissão (%s)", FormatPercent(data.CommissionRate)), data.CommissionValue},
	}
	if data.Full {
		lines = append(lines,
			SummaryLine{fmt.Sprintf("Imposto (%s)", FormatPercent(data.TaxRate)), data.TaxValue},
			SummaryLine{"Custo", data.TotalCost},
			SummaryLine{"Lucro líquido", data.NetProfit},
		)
	}
	return lines
}

// ExportFilename returns the download name of a budget document.
// ext is "pdf" or "xlsx".
func ExportFilename(code int, full bool, ext string) string {
	if full {
		return fmt.Sprintf("orcamento-%d.%s", code, ext)
	}
	return fmt.Sprintf("orcamento-simplificado-%d.%s", code, ext)
}
