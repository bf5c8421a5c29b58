// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orcamentos/collections"
	"orcamentos/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestUser creates a user with the given pv tier and commission rate.
func CreateTestUser(t *testing.T, app *pocketbase.PocketBase, email string, pv int, commission float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collections.UsersCollection)
	if err != nil {
		t.Fatalf("failed to find users collection: %v", err)
	}

	record := core.NewRecord(col)
	record.SetEmail(email)
	record.SetPassword("test-password-123")
	record.Set("pv", pv)
	record.Set("commission", commission)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test user: %v", err)
	}

	return record
}

// CreateTestFunction creates an employee function with the given monthly cost.
func CreateTestFunction(t *testing.T, app *pocketbase.PocketBase, name string, cost float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(services.CollectionFunctions)
	if err != nil {
		t.Fatalf("failed to find employee_functions collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("cost", cost)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test function: %v", err)
	}

	return record
}

// CreateTestBudget creates a budget header without lines. Stored totals are
// left at zero; use CreateTestBudgetLine to add lines.
func CreateTestBudget(t *testing.T, app *pocketbase.PocketBase, code int, customer string, commission, tax float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(services.CollectionBudgets)
	if err != nil {
		t.Fatalf("failed to find budgets collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("pipedrive_code", code)
	record.Set("customer_name", customer)
	record.Set("commission", commission)
	record.Set("tax", tax)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test budget: %v", err)
	}

	return record
}

// CreateTestBudgetLine appends a line to a budget. sortOrder positions it
// among the budget's other lines.
func CreateTestBudgetLine(t *testing.T, app *pocketbase.PocketBase, budgetID, functionID string, sortOrder int, a services.EmployeeAllocation) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(services.CollectionBudgetLines)
	if err != nil {
		t.Fatalf("failed to find budget_employees collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("budget", budgetID)
	record.Set("employee_function", functionID)
	record.Set("sort_order", sortOrder)
	record.Set("amount", a.Amount)
	record.Set("amount_type", int(a.AmountUnit))
	record.Set("dedication", a.Dedication)
	record.Set("profit_margin", a.ProfitMargin)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test budget line: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHTMLNotContains checks that body contains none of the fragments.
func AssertHTMLNotContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if strings.Contains(body, frag) {
			t.Errorf("expected HTML not to contain %q\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
