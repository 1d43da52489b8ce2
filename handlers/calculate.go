package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"printcost/services"
)

type calculateRequest struct {
	Inputs services.JobInputs   `json:"inputs"`
	Params *services.CostParams `json:"params"`
}

type calculateResponse struct {
	Inputs    services.JobInputs     `json:"inputs"`
	Params    services.CostParams    `json:"params"`
	Breakdown services.CostBreakdown `json:"breakdown"`
}

// HandleCalculate returns a handler that computes a cost breakdown for one
// print job. When the request carries no parameter snapshot the stored
// defaults are used.
func HandleCalculate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req calculateRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("calculate: could not decode body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Cuerpo JSON inválido"})
		}

		if req.Inputs.TimeMinutes < 0 || req.Inputs.MaterialGrams < 0 || req.Inputs.AssemblyMinutes < 0 {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Los valores de entrada no pueden ser negativos"})
		}

		params := loadDefaultParams(app)
		if req.Params != nil {
			params = *req.Params
		}

		return e.JSON(http.StatusOK, calculateResponse{
			Inputs:    req.Inputs,
			Params:    params,
			Breakdown: services.ComputeBreakdown(req.Inputs, params),
		})
	}
}
