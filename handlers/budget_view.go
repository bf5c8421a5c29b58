package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orcamentos/services"
	"orcamentos/templates"
)

func buildViewData(r *http.Request, b services.Budget, catalog services.Catalog, s services.Session) templates.BudgetViewData {
	v := services.Valuate(b, catalog, s)

	data := templates.BudgetViewData{
		User:           GetUserBadge(r),
		ID:             b.ID,
		Code:           b.PipedriveCode,
		Customer:       b.CustomerName,
		Lines:          make([]templates.ViewLine, 0, len(v.Lines)),
		Total:          services.FormatBRL(v.TotalRevenue),
		CommissionRate: services.FormatPercent(v.Budget.CommissionRate),
		Commission:     services.FormatBRL(v.CommissionValue),
		ShowFinancials: v.ShowsNetProfit,
	}
	if !b.Created.IsZero() {
		data.Created = b.Created.Format(dateLayout)
	}

	for i, l := range v.Lines {
		line := templates.ViewLine{
			Index:      i + 1,
			Function:   l.Function.Name,
			Amount:     services.FormatAmount(l.Allocation.Amount),
			UnitLabel:  l.Allocation.AmountUnit.Label(),
			Dedication: services.FormatPercent(l.Allocation.Dedication),
			Total:      services.FormatBRL(l.Revenue),
			Commission: services.FormatBRL(l.Revenue * v.Budget.CommissionRate),
		}
		if v.ShowsNetProfit {
			line.UnitCost = services.FormatBRL(l.UnitCost)
			line.ProfitMargin = services.FormatPercent(l.Allocation.ProfitMargin)
		}
		data.Lines = append(data.Lines, line)
	}

	if v.ShowsNetProfit {
		data.TaxRate = services.FormatPercent(v.Budget.TaxRate)
		data.Tax = services.FormatBRL(v.TaxValue)
		data.Cost = services.FormatBRL(v.TotalCost)
		data.NetProfit = services.FormatBRL(v.NetProfit)
		data.NetNegative = v.NetProfit < 0
	}
	return data
}

// HandleBudgetView renders one budget under the viewer's gate.
func HandleBudgetView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, ok := GetSession(e.Request)
		if !ok {
			return unauthorized(e)
		}

		id := e.Request.PathValue("id")
		b, catalog, err := services.LoadBudget(app, id)
		if err != nil {
			if errors.Is(err, services.ErrBudgetNotFound) {
				e.Response.WriteHeader(http.StatusNotFound)
				return templates.NotFoundPage(GetUserBadge(e.Request), msgNotFound).Render(e.Request.Context(), e.Response)
			}
			log.Printf("budget_view: could not load budget %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, msgLoadFailed)
		}

		return templates.BudgetViewPage(buildViewData(e.Request, b, catalog, s)).Render(e.Request.Context(), e.Response)
	}
}
