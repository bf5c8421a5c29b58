// Package services holds the budget valuation engine, the access policy,
// record loading and the export generators.
package services

// AmountUnit is the time unit of an allocation's amount. The numeric codes
// are persisted as-is in budget_employees.amount_type and sent on the wire.
type AmountUnit int

const (
	UnitHour AmountUnit = iota
	UnitDay
	UnitWeek
	UnitMonth
)

// Commercial conversion constants from a monthly cost. They are fixed
// business policy, not derived from a calendar.
const (
	HoursPerMonth = 160
	DaysPerMonth  = 30
	WeeksPerMonth = 4
)

// Label returns the Portuguese plural used on screens and documents.
func (u AmountUnit) Label() string {
	switch u {
	case UnitHour:
		return "Horas"
	case UnitDay:
		return "Dias"
	case UnitWeek:
		return "Semanas"
	default:
		return "Meses"
	}
}

// Valid reports whether u is one of the four known codes.
func (u AmountUnit) Valid() bool {
	return u >= UnitHour && u <= UnitMonth
}

// NormalizeCost converts a monthly cost into the cost of one unit.
// Unknown units leave the monthly cost unchanged.
func NormalizeCost(monthlyCost float64, unit AmountUnit) float64 {
	switch unit {
	case UnitHour:
		return monthlyCost / HoursPerMonth
	case UnitDay:
		return monthlyCost / DaysPerMonth
	case UnitWeek:
		return monthlyCost / WeeksPerMonth
	default:
		return monthlyCost
	}
}

func LineCost(a EmployeeAllocation, f EmployeeFunction) float64 {
	return NormalizeCost(f.MonthlyCost, a.AmountUnit) * a.Amount * a.Dedication
}

func LineRevenue(a EmployeeAllocation, f EmployeeFunction) float64 {
	return LineCost(a, f) * (1 + a.ProfitMargin)
}

type Totals struct {
	TotalCost    float64
	TotalRevenue float64
}

// BudgetTotals sums cost and revenue over lines. A line whose function is
// not in catalog contributes nothing.
func BudgetTotals(lines []EmployeeAllocation, catalog Catalog) Totals {
	var totals Totals
	for _, a := range lines {
		f, ok := catalog.Lookup(a.FunctionID)
		if !ok {
			continue
		}
		totals.TotalCost += LineCost(a, f)
		totals.TotalRevenue += LineRevenue(a, f)
	}
	return totals
}

// NetProfit is revenue minus cost, commission and tax. A negative result is
// a loss and is returned as is.
func NetProfit(totalRevenue, totalCost, commissionRate, taxRate float64) float64 {
	return totalRevenue - totalCost - totalRevenue*commissionRate - totalRevenue*taxRate
}

// LineValuation is one line with its derived figures.
type LineValuation struct {
	Allocation EmployeeAllocation
	Function   EmployeeFunction
	UnitCost   float64
	Cost       float64
	Revenue    float64
}

// Valuation is everything a view or export displays for a budget.
// Budget holds the gated inputs the figures were computed from.
type Valuation struct {
	Budget Budget
	Lines  []LineValuation
	Totals
	CommissionValue float64
	TaxValue        float64
	NetProfit       float64
	ShowsNetProfit  bool
}

// Valuate applies the session's policy gate to b and derives all figures.
// NetProfit is left at zero when the session may not see it.
func Valuate(b Budget, catalog Catalog, s Session) Valuation {
	gated := s.Gate(b)

	v := Valuation{
		Budget:         gated,
		Lines:          make([]LineValuation, 0, len(gated.LineItems)),
		ShowsNetProfit: s.Privileged(),
	}
	for _, a := range gated.LineItems {
		f, ok := catalog.Lookup(a.FunctionID)
		if !ok {
			f = EmployeeFunction{ID: a.FunctionID}
		}
		v.Lines = append(v.Lines, LineValuation{
			Allocation: a,
			Function:   f,
			UnitCost:   NormalizeCost(f.MonthlyCost, a.AmountUnit),
			Cost:       LineCost(a, f),
			Revenue:    LineRevenue(a, f),
		})
	}

	v.Totals = BudgetTotals(gated.LineItems, catalog)
	v.CommissionValue = v.TotalRevenue * gated.CommissionRate
	v.TaxValue = v.TotalRevenue * gated.TaxRate
	if v.ShowsNetProfit {
		v.NetProfit = NetProfit(v.TotalRevenue, v.TotalCost, gated.CommissionRate, gated.TaxRate)
	}
	return v
}
