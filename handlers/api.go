package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orcamentos/services"
)

// apiBudget is a budget as the JSON API returns it. Cost-side figures are
// nil, and therefore omitted, for standard-tier sessions.
type apiBudget struct {
	services.Budget
	Total     float64  `json:"total"`
	Cost      *float64 `json:"cost,omitempty"`
	NetProfit *float64 `json:"net_profit,omitempty"`
	Created   string   `json:"created,omitempty"`
}

func toAPIBudget(b services.Budget, catalog services.Catalog, s services.Session) apiBudget {
	v := services.Valuate(b, catalog, s)
	out := apiBudget{Budget: v.Budget, Total: v.TotalRevenue}
	if out.LineItems == nil {
		out.LineItems = []services.EmployeeAllocation{}
	}
	if !b.Created.IsZero() {
		out.Created = b.Created.UTC().Format("2006-01-02T15:04:05Z")
	}
	if v.ShowsNetProfit {
		cost, net := v.TotalCost, v.NetProfit
		out.Cost = &cost
		out.NetProfit = &net
	}
	return out
}

func apiError(e *core.RequestEvent, status int, message string) error {
	return e.JSON(status, map[string]string{"error": message})
}

// HandleAPIFunctions lists the function catalog.
func HandleAPIFunctions(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if _, ok := GetSession(e.Request); !ok {
			return apiError(e, http.StatusUnauthorized, msgLoginRequired)
		}
		functions, err := services.ListFunctions(app)
		if err != nil {
			log.Printf("api: could not load functions: %v", err)
			return apiError(e, http.StatusInternalServerError, msgLoadFailed)
		}
		return e.JSON(http.StatusOK, functions)
	}
}

// HandleAPIBudgets lists every budget, gated for the caller.
func HandleAPIBudgets(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, ok := GetSession(e.Request)
		if !ok {
			return apiError(e, http.StatusUnauthorized, msgLoginRequired)
		}
		budgets, catalog, err := services.ListBudgets(app)
		if err != nil {
			log.Printf("api: could not load budgets: %v", err)
			return apiError(e, http.StatusInternalServerError, msgLoadFailed)
		}
		out := make([]apiBudget, 0, len(budgets))
		for _, b := range budgets {
			out = append(out, toAPIBudget(b, catalog, s))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleAPIBudgetCreate stores a budget posted as JSON. The caller's gate is
// applied before validation, so standard-tier overrides never fail it.
func HandleAPIBudgetCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, ok := GetSession(e.Request)
		if !ok {
			return apiError(e, http.StatusUnauthorized, msgLoginRequired)
		}

		var in services.Budget
		if err := e.BindBody(&in); err != nil {
			log.Printf("api: invalid budget body: %v", err)
			return apiError(e, http.StatusBadRequest, msgInvalidRequest)
		}
		in.ID = ""

		catalog, err := services.LoadCatalog(app)
		if err != nil {
			log.Printf("api: could not load catalog: %v", err)
			return apiError(e, http.StatusInternalServerError, msgCreateFailed)
		}

		budget := s.Gate(in)
		if errs := validateDraft(budget, catalog); len(errs) > 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{"errors": errs})
		}
		if !sessionUserExists(app, s) {
			log.Printf("api: session user %q no longer exists", s.UserID)
			return apiError(e, http.StatusUnauthorized, msgLoginRequired)
		}
		budget.CreatedBy = s.UserID

		id, err := services.SaveBudget(app, budget, catalog)
		if err != nil {
			log.Printf("api: could not save budget: %v", err)
			return apiError(e, http.StatusInternalServerError, msgCreateFailed)
		}
		return e.JSON(http.StatusCreated, map[string]string{"id": id})
	}
}

// HandleAPIBudgetView returns the budget at ?id= wrapped in a one-element
// array.
func HandleAPIBudgetView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, ok := GetSession(e.Request)
		if !ok {
			return apiError(e, http.StatusUnauthorized, msgLoginRequired)
		}

		id := e.Request.URL.Query().Get("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, msgInvalidRequest)
		}
		b, catalog, err := services.LoadBudget(app, id)
		if err != nil {
			if errors.Is(err, services.ErrBudgetNotFound) {
				return apiError(e, http.StatusNotFound, msgNotFound)
			}
			log.Printf("api: could not load budget %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, msgLoadFailed)
		}
		return e.JSON(http.StatusOK, []apiBudget{toAPIBudget(b, catalog, s)})
	}
}

// HandleAPIBudgetDelete deletes the budget at ?id=. Privileged only.
func HandleAPIBudgetDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, ok := GetSession(e.Request)
		if !ok {
			return apiError(e, http.StatusUnauthorized, msgLoginRequired)
		}
		if !s.Privileged() {
			return apiError(e, http.StatusForbidden, msgForbidden)
		}

		id := e.Request.URL.Query().Get("id")
		if err := services.DeleteBudget(app, id); err != nil {
			if errors.Is(err, services.ErrBudgetNotFound) {
				return apiError(e, http.StatusNotFound, msgNotFound)
			}
			log.Printf("api: could not delete budget %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, msgDeleteFailed)
		}
		return e.NoContent(http.StatusNoContent)
	}
}
