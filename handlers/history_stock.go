package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"printcost/services"
)

type stockRequest struct {
	Quantity int `json:"quantity"`
}

// HandleHistorySell returns a handler that registers a sale against a history
// record: appends a negative stock change and marks the record sold.
func HandleHistorySell(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return applyStockChange(app, e, services.ReasonSold)
	}
}

// HandleHistoryRestock returns a handler that registers produced stock
// against a history record by appending a positive stock change.
func HandleHistoryRestock(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return applyStockChange(app, e, services.ReasonRestock)
	}
}

// applyStockChange appends one inventory delta to a record's stock change
// log. The log is append-only: existing entries are never rewritten, the
// running stock level is carried in each entry's stock_after.
func applyStockChange(app *pocketbase.PocketBase, e *core.RequestEvent, reason string) error {
	id := e.Request.PathValue("id")
	if id == "" {
		return e.JSON(http.StatusBadRequest, map[string]string{"error": "Falta el ID del registro"})
	}

	var req stockRequest
	if err := e.BindBody(&req); err != nil {
		log.Printf("history_stock: could not decode body: %v", err)
		return e.JSON(http.StatusBadRequest, map[string]string{"error": "Cuerpo JSON inválido"})
	}
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return e.JSON(http.StatusBadRequest, map[string]string{"error": "La cantidad debe ser positiva"})
	}

	record, err := app.FindRecordById("history", id)
	if err != nil {
		return e.JSON(http.StatusNotFound, map[string]string{"error": "Registro no encontrado"})
	}

	rec := services.NormalizeRecord(recordToRaw(record), loadDefaultParams(app))

	current := int(rec.Quantity)
	if n := len(rec.StockChanges); n > 0 {
		current = rec.StockChanges[n-1].StockAfter
	}

	change := qty
	if reason == services.ReasonSold {
		if qty > current {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Stock insuficiente"})
		}
		change = -qty
		rec.Status = services.StatusSold
	}

	rec.StockChanges = append(rec.StockChanges, services.StockChange{
		Timestamp:  time.Now().Format(time.RFC3339),
		Change:     change,
		StockAfter: current + change,
		Reason:     reason,
		Type:       reason,
	})

	if err := setHistoryFields(record, rec); err != nil {
		log.Printf("history_stock: %v", err)
		return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudo actualizar el registro"})
	}
	if err := app.Save(record); err != nil {
		log.Printf("history_stock: could not save record %s: %v", id, err)
		return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudo actualizar el registro"})
	}

	return e.JSON(http.StatusOK, rec)
}
