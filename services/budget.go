package services

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrEmptyBudget is returned when a budget without line items is submitted.
var ErrEmptyBudget = errors.New("budget has no line items")

// EmployeeFunction is a role catalog entry. MonthlyCost is the cost of one
// month of full-time dedication.
type EmployeeFunction struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	MonthlyCost float64 `json:"cost"`
}

// Catalog indexes employee functions by id.
type Catalog map[string]EmployeeFunction

// NewCatalog builds a Catalog from a list of functions.
func NewCatalog(functions []EmployeeFunction) Catalog {
	c := make(Catalog, len(functions))
	for _, f := range functions {
		c[f.ID] = f
	}
	return c
}

// Lookup returns the function with the given id.
func (c Catalog) Lookup(id string) (EmployeeFunction, bool) {
	f, ok := c[id]
	return f, ok
}

// EmployeeAllocation is one budget line: an amount of time of a given
// function, at a dedication fraction, marked up by ProfitMargin.
type EmployeeAllocation struct {
	FunctionID   string     `json:"employee_id"`
	Amount       float64    `json:"amount"`
	AmountUnit   AmountUnit `json:"amount_type"`
	Dedication   float64    `json:"dedication"`
	ProfitMargin float64    `json:"profit_margin"`
}

// NewAllocation returns the blank line the create form starts from.
func NewAllocation() EmployeeAllocation {
	return EmployeeAllocation{
		AmountUnit:   UnitMonth,
		Dedication:   1,
		ProfitMargin: DefaultProfitMargin,
	}
}

// Validate implements validation.Validatable.
func (a EmployeeAllocation) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.FunctionID, validation.Required.Error("Selecione um cargo")),
		validation.Field(&a.Amount,
			validation.Required.Error("Informe a quantidade"),
			validation.Min(0.0).Exclusive().Error("Informe a quantidade"),
		),
		validation.Field(&a.AmountUnit,
			validation.In(UnitHour, UnitDay, UnitWeek, UnitMonth).Error("Tipo de quantidade inválido"),
		),
		validation.Field(&a.Dedication, validation.Min(0.0).Error("Dedicação não pode ser negativa")),
		validation.Field(&a.ProfitMargin, validation.Min(0.0).Error("Margem não pode ser negativa")),
	)
}

// ValidateFor validates the line and checks that its function exists in catalog.
func (a EmployeeAllocation) ValidateFor(catalog Catalog) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if _, ok := catalog.Lookup(a.FunctionID); !ok {
		return validation.Errors{
			"employee_id": validation.NewError("validation_unknown_function", "Cargo não encontrado"),
		}
	}
	return nil
}

// Budget is the aggregate root. Totals are never stored on it; they are
// derived from LineItems with BudgetTotals.
type Budget struct {
	ID             string               `json:"id,omitempty"`
	PipedriveCode  int                  `json:"pipedrive_code"`
	CustomerName   string               `json:"customer_name"`
	CommissionRate float64              `json:"commission"`
	TaxRate        float64              `json:"tax"`
	LineItems      []EmployeeAllocation `json:"budget_employee"`
	CreatedBy      string               `json:"-"`
	Created        time.Time            `json:"-"`
}

// NewBudget returns an empty draft carrying the session's fee defaults.
func NewBudget(s Session) Budget {
	return Budget{
		CommissionRate: s.Commission,
		TaxRate:        DefaultTaxRate,
	}
}

// Validate implements validation.Validatable. Every line is validated too.
func (b Budget) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.CustomerName, validation.Required.Error("Informe o cliente")),
		validation.Field(&b.CommissionRate,
			validation.Min(0.0).Error("Comissão deve estar entre 0 e 100%"),
			validation.Max(1.0).Error("Comissão deve estar entre 0 e 100%"),
		),
		validation.Field(&b.TaxRate,
			validation.Min(0.0).Error("Imposto deve estar entre 0 e 100%"),
			validation.Max(1.0).Error("Imposto deve estar entre 0 e 100%"),
		),
		validation.Field(&b.LineItems, validation.Required.Error("Adicione pelo menos um funcionário")),
	)
}

// CanSubmit reports whether the draft has left the empty state.
func (b Budget) CanSubmit() bool {
	return len(b.LineItems) > 0
}

// AddLine validates a against catalog and appends it.
func (b *Budget) AddLine(a EmployeeAllocation, catalog Catalog) error {
	if err := a.ValidateFor(catalog); err != nil {
		return err
	}
	b.LineItems = append(b.LineItems, a)
	return nil
}

// RemoveLine drops the line at index i, keeping the order of the rest.
// It reports false when i is out of range.
func (b *Budget) RemoveLine(i int) bool {
	if i < 0 || i >= len(b.LineItems) {
		return false
	}
	lines := make([]EmployeeAllocation, 0, len(b.LineItems)-1)
	lines = append(lines, b.LineItems[:i]...)
	lines = append(lines, b.LineItems[i+1:]...)
	b.LineItems = lines
	return true
}
