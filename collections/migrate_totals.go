package collections

import (
	"fmt"
	"log"
	"math"

	"github.com/pocketbase/pocketbase/core"

	"orcamentos/services"
)

// totalsTolerance absorbs float noise between stored and recomputed totals.
const totalsTolerance = 0.005

// MigrateStoredTotals rewrites the total and cost columns of budgets whose
// stored values drifted from the sum of their lines (for example records
// written by an older client). Safe to call on every startup -- it only
// touches budgets that disagree with BudgetTotals.
func MigrateStoredTotals(app core.App) error {
	budgets, catalog, err := services.ListBudgets(app)
	if err != nil {
		return fmt.Errorf("migrate: could not load budgets: %w", err)
	}

	fixed := 0
	for _, b := range budgets {
		totals := services.BudgetTotals(b.LineItems, catalog)

		rec, err := app.FindRecordById(services.CollectionBudgets, b.ID)
		if err != nil {
			log.Printf("migrate: budget %s disappeared: %v\n", b.ID, err)
			continue
		}
		if math.Abs(rec.GetFloat("total")-totals.TotalRevenue) < totalsTolerance &&
			math.Abs(rec.GetFloat("cost")-totals.TotalCost) < totalsTolerance {
			continue
		}

		rec.Set("total", totals.TotalRevenue)
		rec.Set("cost", totals.TotalCost)
		if err := app.Save(rec); err != nil {
			log.Printf("migrate: failed to update totals of budget %s: %v\n", b.ID, err)
			continue
		}
		fixed++
	}

	if fixed > 0 {
		log.Printf("migrate: recomputed stored totals of %d budget(s).\n", fixed)
	}
	return nil
}
