package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"printcost/services"
)

type jobOutcomeRequest struct {
	ProductName      string  `json:"product_name"`
	MaterialType     string  `json:"material_type"`
	Status           string  `json:"status"`
	Hours            float64 `json:"hours"`
	MaterialGrams    float64 `json:"material_grams"`
	EnergyKwh        float64 `json:"energy_kwh"`
	Completion       float64 `json:"completion"`
	PiecesFailed     float64 `json:"pieces_failed"`
	MaterialCostLost float64 `json:"material_cost_lost"`
	EnergyCostLost   float64 `json:"energy_cost_lost"`
	Date             string  `json:"date"`
}

// HandleJobOutcomeSave returns a handler that records a finished or failed
// print job for the consumption and loss reports.
func HandleJobOutcomeSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req jobOutcomeRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("job_save: could not decode body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Cuerpo JSON inválido"})
		}
		if req.Status != services.JobFinished && req.Status != services.JobFailed {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "El estado debe ser terminada o fallida"})
		}

		col, err := app.FindCollectionByNameOrId("print_failures")
		if err != nil {
			return fmt.Errorf("job_save: could not find print_failures collection: %w", err)
		}

		if req.Date == "" {
			req.Date = time.Now().Format("02/01/2006")
		}

		record := core.NewRecord(col)
		record.Set("product_name", req.ProductName)
		record.Set("material_type", req.MaterialType)
		record.Set("status", req.Status)
		record.Set("hours", req.Hours)
		record.Set("material_grams", req.MaterialGrams)
		record.Set("energy_kwh", req.EnergyKwh)
		record.Set("completion", req.Completion)
		record.Set("pieces_failed", req.PiecesFailed)
		record.Set("material_cost_lost", req.MaterialCostLost)
		record.Set("energy_cost_lost", req.EnergyCostLost)
		record.Set("date", req.Date)

		if err := app.Save(record); err != nil {
			log.Printf("job_save: could not save record: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudo guardar el trabajo"})
		}

		return e.JSON(http.StatusCreated, map[string]string{"id": record.Id})
	}
}

type consumptionRequest struct {
	MaterialType string  `json:"material_type"`
	Grams        float64 `json:"grams"`
	Date         string  `json:"date"`
}

// HandleConsumptionSave returns a handler that records material consumption.
func HandleConsumptionSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req consumptionRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("consumption_save: could not decode body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Cuerpo JSON inválido"})
		}
		if req.Grams <= 0 {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Los gramos deben ser positivos"})
		}

		col, err := app.FindCollectionByNameOrId("material_consumption")
		if err != nil {
			return fmt.Errorf("consumption_save: could not find material_consumption collection: %w", err)
		}

		if req.Date == "" {
			req.Date = time.Now().Format("02/01/2006")
		}
		if req.MaterialType == "" {
			req.MaterialType = services.DefaultMaterialName
		}

		record := core.NewRecord(col)
		record.Set("material_type", req.MaterialType)
		record.Set("grams", req.Grams)
		record.Set("date", req.Date)

		if err := app.Save(record); err != nil {
			log.Printf("consumption_save: could not save record: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudo guardar el consumo"})
		}

		return e.JSON(http.StatusCreated, map[string]string{"id": record.Id})
	}
}
