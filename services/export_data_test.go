package services

import (
	"math"
	"testing"
)

func sampleValuation(s Session) Valuation {
	catalog := NewCatalog([]EmployeeFunction{
		{ID: "dev", Name: "Desenvolvedor", MonthlyCost: 3000},
		{ID: "pm", Name: "Gerente", MonthlyCost: 1600},
	})
	b := Budget{
		PipedriveCode:  1234,
		CustomerName:   "ACME Ltda",
		CommissionRate: 0.1,
		TaxRate:        0.19,
		LineItems: []EmployeeAllocation{
			{FunctionID: "dev", Amount: 10, AmountUnit: UnitHour, Dedication: 0.5, ProfitMargin: 1},
			{FunctionID: "pm", Amount: 1, AmountUnit: UnitMonth, Dedication: 1, ProfitMargin: 0.5},
		},
	}
	return Valuate(b, catalog, s)
}

func TestBuildExportData_Full(t *testing.T) {
	v := sampleValuation(Session{Tier: PrivilegedTier})
	data := BuildExportData(v, VariantFull, "Hybriun", "16/10/2026")

	if !data.Full {
		t.Fatal("expected full export for privileged valuation")
	}
	if data.Title != "Orçamento #1234" || data.Code != 1234 {
		t.Errorf("title/code = %q/%d", data.Title, data.Code)
	}
	if len(data.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(data.Rows))
	}
	first := data.Rows[0]
	if first.Index != "1" || first.Function != "Desenvolvedor" || first.UnitLabel != "Horas" {
		t.Errorf("first row = %+v", first)
	}
	if math.Abs(first.UnitCost-18.75) > tolerance || math.Abs(first.Total-187.5) > tolerance {
		t.Errorf("first row figures = unit %v total %v, want 18.75/187.5", first.UnitCost, first.Total)
	}
	if math.Abs(first.Commission-18.75) > tolerance {
		t.Errorf("first row commission = %v, want 18.75", first.Commission)
	}
	if data.NetProfit != v.NetProfit || data.TaxValue != v.TaxValue || data.TotalCost != v.TotalCost {
		t.Errorf("full export dropped financials: %+v", data)
	}
	if got := len(SummaryLines(data)); got != 5 {
		t.Errorf("full summary has %d lines, want 5", got)
	}
}

func TestBuildExportData_SimpleHidesCostSide(t *testing.T) {
	v := sampleValuation(Session{Tier: PrivilegedTier})
	data := BuildExportData(v, VariantSimple, "Hybriun", "16/10/2026")

	if data.Full {
		t.Fatal("simple variant must not be full")
	}
	for _, r := range data.Rows {
		if r.UnitCost != 0 || r.Cost != 0 || r.ProfitMargin != 0 {
			t.Errorf("simple row leaks cost data: %+v", r)
		}
	}
	if data.NetProfit != 0 || data.TotalCost != 0 || data.TaxValue != 0 {
		t.Errorf("simple export leaks totals: %+v", data)
	}
	if got := len(SummaryLines(data)); got != 2 {
		t.Errorf("simple summary has %d lines, want 2", got)
	}
}

func TestBuildExportData_StandardTierNeverFull(t *testing.T) {
	v := sampleValuation(Session{Tier: 1, Commission: 0.05})
	data := BuildExportData(v, VariantFull, "Hybriun", "16/10/2026")
	if data.Full {
		t.Error("standard-tier valuation must be downgraded to the simple variant")
	}
	if data.CommissionRate != 0.05 {
		t.Errorf("CommissionRate = %v, want gated 0.05", data.CommissionRate)
	}
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		code   int
		full   bool
		ext    string
		expect string
	}{
		{42, true, "pdf", "orcamento-42.pdf"},
		{42, false, "pdf", "orcamento-simplificado-42.pdf"},
		{7, false, "xlsx", "orcamento-simplificado-7.xlsx"},
	}
	for _, tt := range tests {
		if got := ExportFilename(tt.code, tt.full, tt.ext); got != tt.expect {
			t.Errorf("ExportFilename(%d, %v, %q) = %q, want %q", tt.code, tt.full, tt.ext, got, tt.expect)
		}
	}
}
