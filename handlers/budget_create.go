package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orcamentos/services"
	"orcamentos/templates"
)

// renderForm swaps the draft form in place for HTMX requests and renders the
// whole create page otherwise.
func renderForm(e *core.RequestEvent, data templates.BudgetFormData) error {
	var component templ.Component
	if e.Request.Header.Get("HX-Request") == "true" {
		component = templates.BudgetForm(data)
	} else {
		component = templates.BudgetCreatePage(data)
	}
	return component.Render(e.Request.Context(), e.Response)
}

// HandleBudgetCreate renders an empty draft pre-filled with the session's
// commission and the default tax.
func HandleBudgetCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, ok := GetSession(e.Request)
		if !ok {
			return unauthorized(e)
		}

		functions, err := services.ListFunctions(app)
		if err != nil {
			log.Printf("budget_create: could not load functions: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, msgLoadFailed)
		}

		data := buildFormData(e.Request, s, services.NewBudget(s), services.NewAllocation(), functions, nil)
		return renderForm(e, data)
	}
}

// HandleBudgetAddLine validates the pending entry and appends it to the
// draft. A rejected entry keeps its values and is reported with a toast.
// Validation failures answer 200 so HTMX still swaps the form.
func HandleBudgetAddLine(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, ok := GetSession(e.Request)
		if !ok {
			return unauthorized(e)
		}

		functions, err := services.ListFunctions(app)
		if err != nil {
			log.Printf("budget_create: could not load functions: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, msgLoadFailed)
		}

		draft, entry := parseDraft(e.Request)
		entry = s.GateLine(entry)

		if err := draft.AddLine(entry, services.NewCatalog(functions)); err != nil {
			errs := formErrors(err)
			SetToast(e, "error", entryFirstError(errs))
			return renderForm(e, buildFormData(e.Request, s, draft, entry, functions, errs))
		}

		return renderForm(e, buildFormData(e.Request, s, draft, services.NewAllocation(), functions, nil))
	}
}

// HandleBudgetRemoveLine drops the draft line at {index}.
func HandleBudgetRemoveLine(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, ok := GetSession(e.Request)
		if !ok {
			return unauthorized(e)
		}

		index, err := strconv.Atoi(e.Request.PathValue("index"))
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, msgInvalidRequest)
		}

		functions, err := services.ListFunctions(app)
		if err != nil {
			log.Printf("budget_create: could not load functions: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, msgLoadFailed)
		}

		draft, entry := parseDraft(e.Request)
		if !draft.RemoveLine(index) {
			log.Printf("budget_create: remove index %d out of range (%d lines)", index, len(draft.LineItems))
		}
		return renderForm(e, buildFormData(e.Request, s, draft, entry, functions, nil))
	}
}

// HandleBudgetPreview re-renders the form so the totals follow fee edits.
func HandleBudgetPreview(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, ok := GetSession(e.Request)
		if !ok {
			return unauthorized(e)
		}

		functions, err := services.ListFunctions(app)
		if err != nil {
			log.Printf("budget_create: could not load functions: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, msgLoadFailed)
		}

		draft, entry := parseDraft(e.Request)
		return renderForm(e, buildFormData(e.Request, s, draft, entry, functions, nil))
	}
}

// HandleBudgetSave gates and validates the draft, persists it and sends the
// browser to the new budget.
func HandleBudgetSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, ok := GetSession(e.Request)
		if !ok {
			return unauthorized(e)
		}

		functions, err := services.ListFunctions(app)
		if err != nil {
			log.Printf("budget_create: could not load functions: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, msgLoadFailed)
		}
		catalog := services.NewCatalog(functions)

		draft, entry := parseDraft(e.Request)
		if !draft.CanSubmit() {
			return ErrorToast(e, http.StatusBadRequest, msgEmptyBudget)
		}

		budget := s.Gate(draft)
		if errs := validateDraft(budget, catalog); len(errs) > 0 {
			SetToast(e, "error", msgCreateFailed)
			return renderForm(e, buildFormData(e.Request, s, draft, entry, functions, errs))
		}
		if !sessionUserExists(app, s) {
			log.Printf("budget_create: session user %q no longer exists", s.UserID)
			clearAuthCookie(e)
			return unauthorized(e)
		}
		budget.CreatedBy = s.UserID

		id, err := services.SaveBudget(app, budget, catalog)
		if err != nil {
			if errors.Is(err, services.ErrEmptyBudget) {
				return ErrorToast(e, http.StatusBadRequest, msgEmptyBudget)
			}
			log.Printf("budget_create: could not save budget: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, msgCreateFailed)
		}

		SetToast(e, "success", msgCreated)
		return redirectTo(e, "/budgets/"+id)
	}
}
