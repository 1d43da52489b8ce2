package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the cost_params, history,
// print_failures, material_consumption and waitlist collections exist.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, "cost_params", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "filament_cost_per_kg", Required: true})
		c.Fields.Add(&core.NumberField{Name: "power_watts", Required: true})
		c.Fields.Add(&core.NumberField{Name: "energy_cost_per_kwh", Required: true})
		c.Fields.Add(&core.NumberField{Name: "labor_per_hour", Required: true})
		c.Fields.Add(&core.NumberField{Name: "wear_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "operational_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "profit_percent", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "history", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "product_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "category", Required: false})
		c.Fields.Add(&core.TextField{Name: "date", Required: false})
		c.Fields.Add(&core.JSONField{Name: "inputs"})
		c.Fields.Add(&core.JSONField{Name: "params"})
		c.Fields.Add(&core.JSONField{Name: "breakdown"})
		c.Fields.Add(&core.NumberField{Name: "total", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  false,
			Values:    []string{"draft", "sold"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.JSONField{Name: "stock_changes"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "print_failures", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "product_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "material_type", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"terminada", "fallida"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "hours", Required: false})
		c.Fields.Add(&core.NumberField{Name: "material_grams", Required: false})
		c.Fields.Add(&core.NumberField{Name: "energy_kwh", Required: false})
		c.Fields.Add(&core.NumberField{Name: "completion", Required: false})
		c.Fields.Add(&core.NumberField{Name: "pieces_failed", Required: false})
		c.Fields.Add(&core.NumberField{Name: "material_cost_lost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "energy_cost_lost", Required: false})
		c.Fields.Add(&core.TextField{Name: "date", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "material_consumption", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "material_type", Required: false})
		c.Fields.Add(&core.NumberField{Name: "grams", Required: true})
		c.Fields.Add(&core.TextField{Name: "date", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "waitlist", func(c *core.Collection) {
		c.Fields.Add(&core.EmailField{Name: "email", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"pending", "approved", "rejected"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
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
