package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"printcost/services"
)

type scenarioCompareRequest struct {
	Scenarios        []services.ScenarioInput `json:"scenarios"`
	SharedFixedCosts float64                  `json:"shared_fixed_costs"`
}

// HandleReportScenarios returns a handler that compares production scenarios
// sent in the request body. Stateless: nothing is persisted.
func HandleReportScenarios(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req scenarioCompareRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("report_scenarios: could not decode body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Cuerpo JSON inválido"})
		}

		return e.JSON(http.StatusOK, services.CompareScenarios(req.Scenarios, req.SharedFixedCosts))
	}
}
