package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orcamentos/services"
)

// HandleBudgetDelete removes a budget. Only the privileged tier may delete.
func HandleBudgetDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, ok := GetSession(e.Request)
		if !ok {
			return unauthorized(e)
		}
		if !s.Privileged() {
			return forbidden(e)
		}

		id := e.Request.PathValue("id")
		if err := services.DeleteBudget(app, id); err != nil {
			if errors.Is(err, services.ErrBudgetNotFound) {
				return ErrorToast(e, http.StatusNotFound, msgNotFound)
			}
			log.Printf("budget_delete: could not delete budget %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, msgDeleteFailed)
		}

		log.Printf("budget_delete: budget %s deleted by %s", id, s.UserID)
		SetToast(e, "success", msgDeleted)
		return redirectTo(e, "/budgets")
	}
}
