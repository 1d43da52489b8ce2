package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleHistoryDelete returns a handler that removes a history record.
func HandleHistoryDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Falta el ID del registro"})
		}

		record, err := app.FindRecordById("history", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Registro no encontrado"})
		}

		if err := app.Delete(record); err != nil {
			log.Printf("history_delete: could not delete record %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudo eliminar el registro"})
		}

		return e.JSON(http.StatusOK, map[string]string{"deleted": id})
	}
}
