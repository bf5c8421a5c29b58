package services

import (
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func testCatalog() Catalog {
	return NewCatalog([]EmployeeFunction{
		{ID: "dev", Name: "Desenvolvedor", MonthlyCost: 9000},
		{ID: "pm", Name: "Gerente", MonthlyCost: 12000},
	})
}

func fieldError(t *testing.T, err error, field string) string {
	t.Helper()
	var errs validation.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation.Errors, got %T: %v", err, err)
	}
	fe, ok := errs[field]
	if !ok {
		t.Fatalf("expected an error on %q, got %v", field, errs)
	}
	return fe.Error()
}

func TestNewAllocation_Defaults(t *testing.T) {
	a := NewAllocation()
	if a.AmountUnit != UnitMonth || a.Dedication != 1 || a.ProfitMargin != 1 {
		t.Errorf("NewAllocation() = %+v, want month/1/1", a)
	}
	if a.FunctionID != "" || a.Amount != 0 {
		t.Errorf("NewAllocation() should start without function and amount, got %+v", a)
	}
}

func TestEmployeeAllocation_Validate(t *testing.T) {
	valid := EmployeeAllocation{FunctionID: "dev", Amount: 2, AmountUnit: UnitWeek, Dedication: 1, ProfitMargin: 1}

	tests := []struct {
		name    string
		mutate  func(*EmployeeAllocation)
		field   string
		message string
	}{
		{"missing function", func(a *EmployeeAllocation) { a.FunctionID = "" }, "employee_id", "Selecione um cargo"},
		{"zero amount", func(a *EmployeeAllocation) { a.Amount = 0 }, "amount", "Informe a quantidade"},
		{"negative amount", func(a *EmployeeAllocation) { a.Amount = -1 }, "amount", "Informe a quantidade"},
		{"bad unit", func(a *EmployeeAllocation) { a.AmountUnit = 9 }, "amount_type", "Tipo de quantidade inválido"},
		{"negative dedication", func(a *EmployeeAllocation) { a.Dedication = -0.1 }, "dedication", "Dedicação não pode ser negativa"},
		{"negative margin", func(a *EmployeeAllocation) { a.ProfitMargin = -1 }, "profit_margin", "Margem não pode ser negativa"},
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("valid allocation rejected: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.mutate(&a)
			err := a.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if got := fieldError(t, err, tt.field); got != tt.message {
				t.Errorf("error on %s = %q, want %q", tt.field, got, tt.message)
			}
		})
	}
}

func TestEmployeeAllocation_ValidateFor_UnknownFunction(t *testing.T) {
	a := EmployeeAllocation{FunctionID: "ghost", Amount: 1, AmountUnit: UnitMonth, Dedication: 1}
	err := a.ValidateFor(testCatalog())
	if err == nil {
		t.Fatal("expected unknown function to be rejected")
	}
	if got := fieldError(t, err, "employee_id"); got != "Cargo não encontrado" {
		t.Errorf("error = %q, want %q", got, "Cargo não encontrado")
	}
}

func TestBudget_AddLine(t *testing.T) {
	b := NewBudget(Session{Commission: 0.03})
	if b.CommissionRate != 0.03 || b.TaxRate != DefaultTaxRate {
		t.Errorf("NewBudget fees = %v/%v, want 0.03/%v", b.CommissionRate, b.TaxRate, DefaultTaxRate)
	}
	if b.CanSubmit() {
		t.Error("empty budget must not be submittable")
	}

	if err := b.AddLine(EmployeeAllocation{FunctionID: "dev"}, testCatalog()); err == nil {
		t.Error("expected line without amount to be rejected")
	}
	if len(b.LineItems) != 0 {
		t.Fatalf("rejected line was added: %+v", b.LineItems)
	}

	line := NewAllocation()
	line.FunctionID = "dev"
	line.Amount = 3
	if err := b.AddLine(line, testCatalog()); err != nil {
		t.Fatalf("AddLine() error = %v", err)
	}
	if !b.CanSubmit() {
		t.Error("budget with a line should be submittable")
	}
}

func TestBudget_RemoveLine(t *testing.T) {
	b := Budget{LineItems: []EmployeeAllocation{
		{FunctionID: "a"}, {FunctionID: "b"}, {FunctionID: "c"},
	}}

	if b.RemoveLine(3) || b.RemoveLine(-1) {
		t.Error("out of range removal should report false")
	}
	if !b.RemoveLine(1) {
		t.Fatal("RemoveLine(1) = false, want true")
	}
	if len(b.LineItems) != 2 || b.LineItems[0].FunctionID != "a" || b.LineItems[1].FunctionID != "c" {
		t.Errorf("LineItems after removal = %+v, want [a c]", b.LineItems)
	}

	b.RemoveLine(0)
	b.RemoveLine(0)
	if b.CanSubmit() {
		t.Error("budget should be back to empty")
	}
}

func TestBudget_Validate(t *testing.T) {
	b := Budget{CustomerName: "ACME", CommissionRate: 0.1, TaxRate: 0.19}
	if got := fieldError(t, b.Validate(), "budget_employee"); got != "Adicione pelo menos um funcionário" {
		t.Errorf("empty budget error = %q", got)
	}

	b.LineItems = []EmployeeAllocation{{FunctionID: "dev", Amount: 1, AmountUnit: UnitMonth, Dedication: 1}}
	if err := b.Validate(); err != nil {
		t.Errorf("valid budget rejected: %v", err)
	}

	b.CustomerName = ""
	fieldError(t, b.Validate(), "customer_name")

	b.CustomerName = "ACME"
	b.TaxRate = 1.5
	fieldError(t, b.Validate(), "tax")
}
