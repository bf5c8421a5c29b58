package services

const (
	// PrivilegedTier is the pv code with full financial visibility.
	PrivilegedTier = 9
	// DefaultTaxRate is forced on standard-tier budgets and pre-filled for everyone.
	DefaultTaxRate = 0.19
	// DefaultProfitMargin (100% markup) is forced on standard-tier lines.
	DefaultProfitMargin = 1.0
)

// Session carries the two stored fields of the signed-in user that the
// valuation depends on. It is passed explicitly, never looked up.
type Session struct {
	UserID     string
	Tier       int
	Commission float64
}

// Privileged reports whether the session belongs to the privileged tier.
func (s Session) Privileged() bool {
	return s.Tier == PrivilegedTier
}

// GateLine returns a as the session is allowed to submit or see it.
// Standard-tier lines always carry the default margin.
func (s Session) GateLine(a EmployeeAllocation) EmployeeAllocation {
	if s.Privileged() {
		return a
	}
	a.ProfitMargin = DefaultProfitMargin
	return a
}

// Gate returns a copy of b with the standard-tier overrides applied:
// default margin on every line, the session's own commission and the
// default tax. User-entered values are replaced silently, not rejected.
// The same gate runs when a budget is submitted and when it is displayed.
func (s Session) Gate(b Budget) Budget {
	if s.Privileged() {
		return b
	}
	out := b
	out.CommissionRate = s.Commission
	out.TaxRate = DefaultTaxRate
	out.LineItems = make([]EmployeeAllocation, len(b.LineItems))
	for i, a := range b.LineItems {
		out.LineItems[i] = s.GateLine(a)
	}
	return out
}
