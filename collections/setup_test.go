package collections_test

import (
	"testing"

	"printcost/collections"
	"printcost/testhelpers"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	"cost_params",
	"history",
	"print_failures",
	"material_consumption",
	"waitlist",
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
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Fatalf("collection %q not found: %v", name, err)
		}
		ids[name] = col.Id
	}

	// Running Setup again must not recreate or replace collections
	collections.Setup(app)

	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Fatalf("collection %q missing after second Setup(): %v", name, err)
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q was recreated: id %s != %s", name, col.Id, ids[name])
		}
	}
}

func TestSetup_HistoryFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	col, err := app.FindCollectionByNameOrId("history")
	if err != nil {
		t.Fatalf("history collection not found: %v", err)
	}

	for _, field := range []string{
		"product_name", "category", "date", "inputs", "params",
		"breakdown", "total", "quantity", "status", "stock_changes",
	} {
		if col.Fields.GetByName(field) == nil {
			t.Errorf("history collection is missing field %q", field)
		}
	}
}
