package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleHistoryList returns a handler that serves the full calculation
// history in canonical shape, newest first.
func HandleHistoryList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := loadHistory(app)
		if err != nil {
			log.Printf("history_list: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudo leer el historial"})
		}
		return e.JSON(http.StatusOK, records)
	}
}
