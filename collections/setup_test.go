package collections_test

import (
	"testing"

	"orcamentos/collections"
	"orcamentos/services"
	"orcamentos/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	collections.UsersCollection,
	services.CollectionFunctions,
	services.CollectionBudgets,
	services.CollectionBudgetLines,
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	ids := make(map[string]string)
	for _, name := range expectedCollections {
		col, _ := app.FindCollectionByNameOrId(name)
		ids[name] = col.Id
	}

	collections.Setup(app)

	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
			continue
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q ID changed: %s -> %s", name, ids[name], col.Id)
		}
	}
}

func TestSetup_UserFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	users, err := app.FindCollectionByNameOrId(collections.UsersCollection)
	if err != nil {
		t.Fatalf("users collection missing: %v", err)
	}
	if !users.IsAuth() {
		t.Error("users must be an auth collection")
	}
	for _, name := range []string{"pv", "commission"} {
		if users.Fields.GetByName(name) == nil {
			t.Errorf("users is missing field %q", name)
		}
	}
}

func TestSetup_BudgetLineFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, err := app.FindCollectionByNameOrId(services.CollectionBudgetLines)
	if err != nil {
		t.Fatalf("budget_employees missing: %v", err)
	}

	budget, ok := col.Fields.GetByName("budget").(*core.RelationField)
	if !ok {
		t.Fatal("budget field is not a relation")
	}
	if !budget.CascadeDelete {
		t.Error("lines must be cascade deleted with their budget")
	}

	amountType, ok := col.Fields.GetByName("amount_type").(*core.NumberField)
	if !ok {
		t.Fatal("amount_type field is not a number")
	}
	if amountType.Required {
		t.Error("amount_type cannot be required, hour is code 0")
	}
	if amountType.Max == nil || *amountType.Max != float64(services.UnitMonth) {
		t.Errorf("amount_type max = %v, want %d", amountType.Max, services.UnitMonth)
	}
}

func TestSetup_AmountTypeRejectsUnknownCode(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	fn := testhelpers.CreateTestFunction(t, app, "Dev", 1000)
	b := testhelpers.CreateTestBudget(t, app, 1, "ACME", 0.1, 0.19)

	col, _ := app.FindCollectionByNameOrId(services.CollectionBudgetLines)
	rec := core.NewRecord(col)
	rec.Set("budget", b.Id)
	rec.Set("employee_function", fn.Id)
	rec.Set("sort_order", 1)
	rec.Set("amount", 1)
	rec.Set("amount_type", 4)
	if err := app.Save(rec); err == nil {
		t.Error("expected amount_type 4 to be rejected")
	}
}
