package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"

	"orcamentos/services"
)

// UsersCollection is PocketBase's default auth collection; it carries the
// pv tier and commission rate of each seller.
const UsersCollection = "users"

// Setup programmatically creates/ensures the employee_functions, budgets and
// budget_employees collections exist, and adds the pv/commission fields to
// the users auth collection.
func Setup(app core.App) {
	users := ensureUserFields(app)

	functions := ensureCollection(app, services.CollectionFunctions, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "cost", Min: types.Pointer(0.0)})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	budgets := ensureCollection(app, services.CollectionBudgets, func(c *core.Collection) {
		c.Fields.Add(&core.NumberField{Name: "pipedrive_code", OnlyInt: true})
		c.Fields.Add(&core.TextField{Name: "customer_name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "total"})
		c.Fields.Add(&core.NumberField{Name: "cost"})
		c.Fields.Add(&core.NumberField{Name: "commission", Min: types.Pointer(0.0), Max: types.Pointer(1.0)})
		c.Fields.Add(&core.NumberField{Name: "tax", Min: types.Pointer(0.0), Max: types.Pointer(1.0)})
		if users != nil {
			c.Fields.Add(&core.RelationField{
				Name:         "created_by",
				CollectionId: users.Id,
				MaxSelect:    1,
			})
		}
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, services.CollectionBudgetLines, func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "budget",
			Required:      true,
			CollectionId:  budgets.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "employee_function",
			Required:     true,
			CollectionId: functions.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		// amount must be > 0, which Required enforces for numbers.
		c.Fields.Add(&core.NumberField{Name: "amount", Required: true, Min: types.Pointer(0.0)})
		// 0 (hour) is a valid code, so this one cannot be Required.
		c.Fields.Add(&core.NumberField{
			Name:    "amount_type",
			OnlyInt: true,
			Min:     types.Pointer(float64(services.UnitHour)),
			Max:     types.Pointer(float64(services.UnitMonth)),
		})
		c.Fields.Add(&core.NumberField{Name: "dedication", Min: types.Pointer(0.0)})
		c.Fields.Add(&core.NumberField{Name: "profit_margin", Min: types.Pointer(0.0)})
	})
}

// ensureUserFields adds pv and commission to the users auth collection,
// creating the collection when the app has none.
func ensureUserFields(app core.App) *core.Collection {
	users, err := app.FindCollectionByNameOrId(UsersCollection)
	if err != nil || users == nil {
		users = core.NewAuthCollection(UsersCollection)
	}

	changed := users.IsNew()
	if users.Fields.GetByName("pv") == nil {
		users.Fields.Add(&core.NumberField{Name: "pv", OnlyInt: true})
		changed = true
	}
	if users.Fields.GetByName("commission") == nil {
		users.Fields.Add(&core.NumberField{Name: "commission", Min: types.Pointer(0.0), Max: types.Pointer(1.0)})
		changed = true
	}
	if !changed {
		return users
	}

	if err := app.Save(users); err != nil {
		log.Printf("setup: could not update %q collection: %v", UsersCollection, err)
		return nil
	}
	return users
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app core.App, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
