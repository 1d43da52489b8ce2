package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"

	"printcost/services"
)

// MigrateHistoryStatus backfills the status field on history records saved
// before the status select existed. A record whose stock changes contain a
// sale becomes "sold", everything else becomes "draft".
// Safe to call on every startup -- returns early if nothing to migrate.
func MigrateHistoryStatus(app *pocketbase.PocketBase) error {
	historyCol, err := app.FindCollectionByNameOrId("history")
	if err != nil {
		return fmt.Errorf("migrate: could not find history collection: %w", err)
	}

	missing, err := app.FindRecordsByFilter(
		historyCol,
		"status = ''",
		"",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query history records: %w", err)
	}

	if len(missing) == 0 {
		return nil
	}

	log.Printf("migrate: found %d history record(s) without a status -- backfilling...\n", len(missing))

	for _, rec := range missing {
		status := services.StatusDraft

		var changes []services.StockChange
		if err := rec.UnmarshalJSONField("stock_changes", &changes); err == nil {
			for _, ch := range changes {
				if ch.Reason == services.ReasonSold {
					status = services.StatusSold
					break
				}
			}
		}

		rec.Set("status", status)
		if err := app.Save(rec); err != nil {
			log.Printf("migrate: failed to backfill status for record %s: %v\n", rec.Id, err)
			continue
		}
	}

	log.Println("migrate: history status backfill complete.")
	return nil
}
