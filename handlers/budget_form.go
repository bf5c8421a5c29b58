package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"orcamentos/services"
	"orcamentos/templates"
)

// parseAllocation reads one line from form fields sharing prefix. Percent
// fields arrive as whole numbers and become fractions here.
func parseAllocation(r *http.Request, prefix string) services.EmployeeAllocation {
	return services.EmployeeAllocation{
		FunctionID:   strings.TrimSpace(r.FormValue(prefix + "employee_id")),
		Amount:       services.ParseNumber(r.FormValue(prefix + "amount")),
		AmountUnit:   services.AmountUnit(int(services.ParseNumber(r.FormValue(prefix + "amount_type")))),
		Dedication:   services.ParsePercent(r.FormValue(prefix + "dedication")),
		ProfitMargin: services.ParsePercent(r.FormValue(prefix + "profit_margin")),
	}
}

// parseDraft rebuilds the draft budget from the create form: header fields,
// items[i].* for accepted lines and entry.* for the pending line.
func parseDraft(r *http.Request) (services.Budget, services.EmployeeAllocation) {
	b := services.Budget{
		PipedriveCode:  int(services.ParseNumber(r.FormValue("pipedrive_code"))),
		CustomerName:   strings.TrimSpace(r.FormValue("customer_name")),
		CommissionRate: services.ParsePercent(r.FormValue("commission")),
		TaxRate:        services.ParsePercent(r.FormValue("tax")),
	}
	for i := 0; ; i++ {
		prefix := fmt.Sprintf("items[%d].", i)
		if r.FormValue(prefix+"employee_id") == "" {
			break
		}
		b.LineItems = append(b.LineItems, parseAllocation(r, prefix))
	}
	return b, parseAllocation(r, "entry.")
}

// formErrors flattens ozzo field errors into the map the form template reads.
// Nested line errors surface under their parent key with the first message.
func formErrors(err error) map[string]string {
	out := make(map[string]string)
	var errs validation.Errors
	if !errors.As(err, &errs) {
		if err != nil {
			out["form"] = err.Error()
		}
		return out
	}
	for field, fe := range errs {
		var nested validation.Errors
		if errors.As(fe, &nested) {
			out[field] = firstMessage(nested)
			continue
		}
		out[field] = fe.Error()
	}
	return out
}

// firstMessage returns the message of the lowest sorted key, so the toast
// text is stable across map iteration order.
func firstMessage(errs validation.Errors) string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var nested validation.Errors
		if errors.As(errs[k], &nested) {
			return firstMessage(nested)
		}
		return errs[k].Error()
	}
	return ""
}

// validateDraft checks the header and every line against catalog. Line
// errors are reported under budget_employee with their 1-based position.
func validateDraft(b services.Budget, catalog services.Catalog) map[string]string {
	errs := make(map[string]string)
	if err := b.Validate(); err != nil {
		errs = formErrors(err)
	}
	if _, ok := errs["budget_employee"]; ok {
		return errs
	}
	for i, a := range b.LineItems {
		if err := a.ValidateFor(catalog); err != nil {
			errs["budget_employee"] = fmt.Sprintf("Linha %d: %s", i+1, entryFirstError(formErrors(err)))
			break
		}
	}
	return errs
}

// entryFirstError picks the toast for a rejected pending line, in the order
// the fields appear on screen.
func entryFirstError(errs map[string]string) string {
	for _, key := range []string{"employee_id", "amount", "amount_type", "dedication", "profit_margin"} {
		if msg, ok := errs[key]; ok {
			return msg
		}
	}
	return msgInvalidRequest
}

func unitOptions() []templates.UnitOption {
	opts := make([]templates.UnitOption, 0, len(services.AmountUnitOptions))
	for _, u := range services.AmountUnitOptions {
		opts = append(opts, templates.UnitOption{Code: int(u), Label: u.Label()})
	}
	return opts
}

func functionOptions(functions []services.EmployeeFunction) []templates.FunctionOption {
	opts := make([]templates.FunctionOption, 0, len(functions))
	for _, f := range functions {
		opts = append(opts, templates.FunctionOption{ID: f.ID, Name: f.Name, Cost: services.FormatBRL(f.MonthlyCost)})
	}
	return opts
}

func entryLine(a services.EmployeeAllocation) templates.FormLine {
	amount := ""
	if a.Amount != 0 {
		amount = services.FormatAmount(a.Amount)
	}
	return templates.FormLine{
		FunctionID:   a.FunctionID,
		Amount:       amount,
		Unit:         int(a.AmountUnit),
		Dedication:   services.PercentInput(a.Dedication),
		ProfitMargin: services.PercentInput(a.ProfitMargin),
	}
}

// buildFormData valuates the draft under the session's gate so the form
// shows exactly what would be saved.
func buildFormData(r *http.Request, s services.Session, draft services.Budget, entry services.EmployeeAllocation,
	functions []services.EmployeeFunction, errs map[string]string) templates.BudgetFormData {

	v := services.Valuate(draft, services.NewCatalog(functions), s)

	lines := make([]templates.FormLine, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, templates.FormLine{
			FunctionID:   l.Allocation.FunctionID,
			FunctionName: l.Function.Name,
			Amount:       services.FormatAmount(l.Allocation.Amount),
			Unit:         int(l.Allocation.AmountUnit),
			UnitLabel:    l.Allocation.AmountUnit.Label(),
			Dedication:   services.PercentInput(l.Allocation.Dedication),
			ProfitMargin: services.PercentInput(l.Allocation.ProfitMargin),
			UnitCost:     services.FormatBRL(l.UnitCost),
			Revenue:      services.FormatBRL(l.Revenue),
		})
	}

	code := ""
	if draft.PipedriveCode != 0 {
		code = strconv.Itoa(draft.PipedriveCode)
	}
	if errs == nil {
		errs = make(map[string]string)
	}

	return templates.BudgetFormData{
		User:       GetUserBadge(r),
		Code:       code,
		Customer:   draft.CustomerName,
		Commission: services.PercentInput(v.Budget.CommissionRate),
		Tax:        services.PercentInput(v.Budget.TaxRate),
		Lines:      lines,
		Entry:      entryLine(s.GateLine(entry)),
		Functions:  functionOptions(functions),
		Units:      unitOptions(),
		Totals: templates.FormTotals{
			Revenue:    services.FormatBRL(v.TotalRevenue),
			Cost:       services.FormatBRL(v.TotalCost),
			Commission: services.FormatBRL(v.CommissionValue),
			Tax:        services.FormatBRL(v.TaxValue),
			NetProfit:  services.FormatBRL(v.NetProfit),
			ShowNet:    v.ShowsNetProfit,
		},
		Errors:       errs,
		CanSubmit:    draft.CanSubmit(),
		FeesEditable: s.Privileged(),
	}
}
