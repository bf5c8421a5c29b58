package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/pocketbase/pocketbase/core"
)

// Collection names shared by the store, the schema setup and the tests.
const (
	CollectionFunctions   = "employee_functions"
	CollectionBudgets     = "budgets"
	CollectionBudgetLines = "budget_employees"
)

// ErrBudgetNotFound is returned when a budget id does not resolve.
var ErrBudgetNotFound = errors.New("budget not found")

func functionFromRecord(rec *core.Record) EmployeeFunction {
	return EmployeeFunction{
		ID:          rec.Id,
		Name:        rec.GetString("name"),
		MonthlyCost: rec.GetFloat("cost"),
	}
}

func allocationFromRecord(rec *core.Record) EmployeeAllocation {
	return EmployeeAllocation{
		FunctionID:   rec.GetString("employee_function"),
		Amount:       rec.GetFloat("amount"),
		AmountUnit:   AmountUnit(rec.GetInt("amount_type")),
		Dedication:   rec.GetFloat("dedication"),
		ProfitMargin: rec.GetFloat("profit_margin"),
	}
}

func budgetFromRecord(rec *core.Record) Budget {
	b := Budget{
		ID:             rec.Id,
		PipedriveCode:  rec.GetInt("pipedrive_code"),
		CustomerName:   rec.GetString("customer_name"),
		CommissionRate: rec.GetFloat("commission"),
		TaxRate:        rec.GetFloat("tax"),
		CreatedBy:      rec.GetString("created_by"),
	}
	if dt := rec.GetDateTime("created"); !dt.IsZero() {
		b.Created = dt.Time()
	}
	return b
}

// ListFunctions returns the whole function catalog sorted by name.
func ListFunctions(app core.App) ([]EmployeeFunction, error) {
	records, err := app.FindAllRecords(CollectionFunctions)
	if err != nil {
		return nil, fmt.Errorf("query employee functions: %w", err)
	}
	functions := make([]EmployeeFunction, 0, len(records))
	for _, rec := range records {
		functions = append(functions, functionFromRecord(rec))
	}
	sort.Slice(functions, func(i, j int) bool {
		return functions[i].Name < functions[j].Name
	})
	return functions, nil
}

// LoadCatalog returns the function catalog indexed by id.
func LoadCatalog(app core.App) (Catalog, error) {
	functions, err := ListFunctions(app)
	if err != nil {
		return nil, err
	}
	return NewCatalog(functions), nil
}

// LoadBudget fetches one budget with its lines in insertion order, plus the
// catalog its lines are joined against.
func LoadBudget(app core.App, id string) (Budget, Catalog, error) {
	rec, err := app.FindRecordById(CollectionBudgets, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Budget{}, nil, fmt.Errorf("%w: %s", ErrBudgetNotFound, id)
		}
		return Budget{}, nil, fmt.Errorf("find budget %s: %w", id, err)
	}

	lines, err := app.FindRecordsByFilter(
		CollectionBudgetLines,
		"budget = {:budgetId}",
		"sort_order",
		0,
		0,
		map[string]any{"budgetId": id},
	)
	if err != nil {
		return Budget{}, nil, fmt.Errorf("query lines of budget %s: %w", id, err)
	}

	catalog, err := LoadCatalog(app)
	if err != nil {
		return Budget{}, nil, err
	}

	b := budgetFromRecord(rec)
	for _, line := range lines {
		b.LineItems = append(b.LineItems, allocationFromRecord(line))
	}
	return b, catalog, nil
}

// ListBudgets returns every budget, newest first, each with its lines.
func ListBudgets(app core.App) ([]Budget, Catalog, error) {
	records, err := app.FindAllRecords(CollectionBudgets)
	if err != nil {
		return nil, nil, fmt.Errorf("query budgets: %w", err)
	}

	lineRecords, err := app.FindAllRecords(CollectionBudgetLines)
	if err != nil {
		return nil, nil, fmt.Errorf("query budget lines: %w", err)
	}
	sort.SliceStable(lineRecords, func(i, j int) bool {
		return lineRecords[i].GetInt("sort_order") < lineRecords[j].GetInt("sort_order")
	})
	linesByBudget := make(map[string][]EmployeeAllocation, len(records))
	for _, line := range lineRecords {
		budgetID := line.GetString("budget")
		linesByBudget[budgetID] = append(linesByBudget[budgetID], allocationFromRecord(line))
	}

	catalog, err := LoadCatalog(app)
	if err != nil {
		return nil, nil, err
	}

	budgets := make([]Budget, 0, len(records))
	for _, rec := range records {
		b := budgetFromRecord(rec)
		b.LineItems = linesByBudget[rec.Id]
		budgets = append(budgets, b)
	}
	sort.SliceStable(budgets, func(i, j int) bool {
		return budgets[i].Created.After(budgets[j].Created)
	})
	return budgets, catalog, nil
}

// SaveBudget persists b and its lines in one transaction. The stored total
// and cost columns are written from BudgetTotals; callers gate b first.
func SaveBudget(app core.App, b Budget, catalog Catalog) (string, error) {
	if !b.CanSubmit() {
		return "", ErrEmptyBudget
	}
	totals := BudgetTotals(b.LineItems, catalog)

	var budgetID string
	err := app.RunInTransaction(func(txApp core.App) error {
		budgetsCol, err := txApp.FindCollectionByNameOrId(CollectionBudgets)
		if err != nil {
			return fmt.Errorf("find budgets collection: %w", err)
		}
		linesCol, err := txApp.FindCollectionByNameOrId(CollectionBudgetLines)
		if err != nil {
			return fmt.Errorf("find budget lines collection: %w", err)
		}

		rec := core.NewRecord(budgetsCol)
		rec.Set("pipedrive_code", b.PipedriveCode)
		rec.Set("customer_name", b.CustomerName)
		rec.Set("commission", b.CommissionRate)
		rec.Set("tax", b.TaxRate)
		rec.Set("total", totals.TotalRevenue)
		rec.Set("cost", totals.TotalCost)
		if b.CreatedBy != "" {
			rec.Set("created_by", b.CreatedBy)
		}
		if err := txApp.Save(rec); err != nil {
			return fmt.Errorf("save budget: %w", err)
		}

		for i, a := range b.LineItems {
			line := core.NewRecord(linesCol)
			line.Set("budget", rec.Id)
			line.Set("employee_function", a.FunctionID)
			line.Set("sort_order", i+1)
			line.Set("amount", a.Amount)
			line.Set("amount_type", int(a.AmountUnit))
			line.Set("dedication", a.Dedication)
			line.Set("profit_margin", a.ProfitMargin)
			if err := txApp.Save(line); err != nil {
				return fmt.Errorf("save line %d: %w", i+1, err)
			}
		}

		budgetID = rec.Id
		return nil
	})
	if err != nil {
		return "", err
	}

	log.Printf("budget_store: saved budget %s with %d line(s)", budgetID, len(b.LineItems))
	return budgetID, nil
}

// DeleteBudget removes a budget; its lines go with it through cascade delete.
func DeleteBudget(app core.App, id string) error {
	rec, err := app.FindRecordById(CollectionBudgets, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrBudgetNotFound, id)
		}
		return fmt.Errorf("find budget %s: %w", id, err)
	}
	if err := app.Delete(rec); err != nil {
		return fmt.Errorf("delete budget %s: %w", id, err)
	}
	return nil
}
