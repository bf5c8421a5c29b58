package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"orcamentos/services"
	"orcamentos/testhelpers"
)

func deleteRequest(id string, s services.Session) *http.Request {
	req := WithSession(httptest.NewRequest(http.MethodDelete, "/budgets/"+id, nil), s, s.UserID+"@example.com")
	req.Header.Set("HX-Request", "true")
	req.SetPathValue("id", id)
	return req
}

func TestHandleBudgetDelete_Privileged(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	fx := seedBudget(t, app)

	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, deleteRequest(fx.BudgetID, privilegedSession), rec)

	if err := HandleBudgetDelete(app)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/budgets")

	if _, err := app.FindRecordById(services.CollectionBudgets, fx.BudgetID); err == nil {
		t.Error("budget still exists after delete")
	}
	if n, _ := app.CountRecords(services.CollectionBudgetLines); n != 0 {
		t.Errorf("expected lines to cascade, %d left", n)
	}
}

func TestHandleBudgetDelete_StandardForbidden(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	fx := seedBudget(t, app)

	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, deleteRequest(fx.BudgetID, standardSession), rec)

	if err := HandleBudgetDelete(app)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
	if _, err := app.FindRecordById(services.CollectionBudgets, fx.BudgetID); err != nil {
		t.Errorf("budget must survive a forbidden delete: %v", err)
	}
}

func TestHandleBudgetDelete_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, deleteRequest("missing", privilegedSession), rec)

	if err := HandleBudgetDelete(app)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
