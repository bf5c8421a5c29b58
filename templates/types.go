package templates

// UserBadge is the signed-in user shown in the header.
type UserBadge struct {
	Email      string
	Privileged bool
}

// BudgetListItem is one row of the budget list. Money values are already
// formatted; the cost-side fields are empty for standard-tier viewers.
type BudgetListItem struct {
	ID             string
	Code           int
	Customer       string
	Created        string
	Total          string
	CommissionRate string
	Commission     string
	TaxRate        string
	Cost           string
	NetProfit      string
	NetNegative    bool
}

type BudgetListData struct {
	User  UserBadge
	Items []BudgetListItem
}

// FunctionOption is one entry of the function dropdown.
type FunctionOption struct {
	ID   string
	Name string
	Cost string
}

// UnitOption is one entry of the amount unit dropdown.
type UnitOption struct {
	Code  int
	Label string
}

// FormLine is a draft line as the create form carries it. Percent fields
// hold whole-number percentages.
type FormLine struct {
	FunctionID   string
	FunctionName string
	Amount       string
	Unit         int
	UnitLabel    string
	Dedication   string
	ProfitMargin string
	UnitCost     string
	Revenue      string
}

// FormTotals is the live summary under the draft lines.
type FormTotals struct {
	Revenue    string
	Cost       string
	Commission string
	Tax        string
	NetProfit  string
	ShowNet    bool
}

type BudgetFormData struct {
	User         UserBadge
	Code         string
	Customer     string
	Commission   string
	Tax          string
	Lines        []FormLine
	Entry        FormLine
	Functions    []FunctionOption
	Units        []UnitOption
	Totals       FormTotals
	Errors       map[string]string
	CanSubmit    bool
	FeesEditable bool
}

// ViewLine is one line on the detail page.
type ViewLine struct {
	Index        int
	Function     string
	Amount       string
	UnitLabel    string
	Dedication   string
	UnitCost     string
	ProfitMargin string
	Total        string
	Commission   string
}

type BudgetViewData struct {
	User           UserBadge
	ID             string
	Code           int
	Customer       string
	Created        string
	Lines          []ViewLine
	Total          string
	CommissionRate string
	Commission     string
	TaxRate        string
	Tax            string
	Cost           string
	NetProfit      string
	NetNegative    bool
	ShowFinancials bool
}
