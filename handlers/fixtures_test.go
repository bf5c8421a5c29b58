package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orcamentos/services"
	"orcamentos/testhelpers"
)

var (
	privilegedSession = services.Session{UserID: "admin", Tier: services.PrivilegedTier, Commission: 0.1}
	standardSession   = services.Session{UserID: "seller", Tier: 1, Commission: 0.05}
)

// budgetFixture is one stored budget: a 3000/month developer, one month at
// full dedication with a 50% margin, commission 10% and tax 19%.
type budgetFixture struct {
	BudgetID   string
	FunctionID string
}

func seedBudget(t *testing.T, app *pocketbase.PocketBase) budgetFixture {
	t.Helper()
	fn := testhelpers.CreateTestFunction(t, app, "Desenvolvedor", 3000)
	b := testhelpers.CreateTestBudget(t, app, 1234, "ACME Ltda", 0.1, 0.19)
	testhelpers.CreateTestBudgetLine(t, app, b.Id, fn.Id, 1, services.EmployeeAllocation{
		Amount: 1, AmountUnit: services.UnitMonth, Dedication: 1, ProfitMargin: 0.5,
	})
	return budgetFixture{BudgetID: b.Id, FunctionID: fn.Id}
}

// newTestRequestEvent wraps req and rec the way the router would, without
// any middleware having run.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// formRequest builds an HTMX form post carrying s.
func formRequest(target string, form url.Values, s services.Session) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	return WithSession(req, s, s.UserID+"@example.com")
}

func getRequest(target string, s services.Session) *http.Request {
	return WithSession(httptest.NewRequest(http.MethodGet, target, nil), s, s.UserID+"@example.com")
}
