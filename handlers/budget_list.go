package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orcamentos/services"
	"orcamentos/templates"
)

const dateLayout = "02/01/2006"

// listItem valuates b for the viewer. Stored totals are not trusted; every
// figure is derived again under the viewer's gate.
func listItem(b services.Budget, catalog services.Catalog, s services.Session) templates.BudgetListItem {
	v := services.Valuate(b, catalog, s)
	item := templates.BudgetListItem{
		ID:             b.ID,
		Code:           b.PipedriveCode,
		Customer:       b.CustomerName,
		Total:          services.FormatBRL(v.TotalRevenue),
		CommissionRate: services.FormatPercent(v.Budget.CommissionRate),
		Commission:     services.FormatBRL(v.CommissionValue),
	}
	if !b.Created.IsZero() {
		item.Created = b.Created.Format(dateLayout)
	}
	if v.ShowsNetProfit {
		item.TaxRate = services.FormatPercent(v.Budget.TaxRate)
		item.Cost = services.FormatBRL(v.TotalCost)
		item.NetProfit = services.FormatBRL(v.NetProfit)
		item.NetNegative = v.NetProfit < 0
	}
	return item
}

// HandleBudgetList renders every budget, newest first.
func HandleBudgetList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, ok := GetSession(e.Request)
		if !ok {
			return unauthorized(e)
		}

		budgets, catalog, err := services.ListBudgets(app)
		if err != nil {
			log.Printf("budget_list: could not load budgets: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, msgLoadFailed)
		}

		data := templates.BudgetListData{
			User:  GetUserBadge(e.Request),
			Items: make([]templates.BudgetListItem, 0, len(budgets)),
		}
		for _, b := range budgets {
			data.Items = append(data.Items, listItem(b, catalog, s))
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.BudgetListContent(data)
		} else {
			component = templates.BudgetListPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
