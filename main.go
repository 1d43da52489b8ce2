package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"printcost/collections"
	"printcost/handlers"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}
	cfg := handlers.LoadConfig()

	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateHistoryStatus(app); err != nil {
			log.Printf("Warning: history status migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Cost engine ──────────────────────────────────────────
		se.Router.POST("/api/calculate", handlers.HandleCalculate(app))
		se.Router.GET("/api/params", handlers.HandleParamsGet(app))
		se.Router.PUT("/api/params", handlers.HandleParamsSave(app))

		// ── History ──────────────────────────────────────────────
		se.Router.GET("/api/history", handlers.HandleHistoryList(app))
		se.Router.POST("/api/history", handlers.HandleHistorySave(app))
		se.Router.POST("/api/history/{id}/sell", handlers.HandleHistorySell(app))
		se.Router.POST("/api/history/{id}/restock", handlers.HandleHistoryRestock(app))
		se.Router.DELETE("/api/history/{id}", handlers.HandleHistoryDelete(app))
		se.Router.GET("/api/history/template", handlers.HandleHistoryTemplateDownload(app))
		se.Router.POST("/api/history/import", handlers.HandleHistoryImport(app))
		se.Router.POST("/api/history/import/errors", handlers.HandleHistoryImportErrors(app))

		// ── Job outcomes & consumption ───────────────────────────
		se.Router.POST("/api/jobs", handlers.HandleJobOutcomeSave(app))
		se.Router.POST("/api/consumption", handlers.HandleConsumptionSave(app))

		// ── Reports ──────────────────────────────────────────────
		se.Router.GET("/api/reports/profitability", handlers.HandleReportProfitability(app))
		se.Router.POST("/api/reports/scenarios", handlers.HandleReportScenarios(app))
		se.Router.GET("/api/reports/consumption", handlers.HandleReportConsumption(app))
		se.Router.GET("/api/reports/monthly", handlers.HandleReportMonthly(app))

		// ── Exports (PRO) ────────────────────────────────────────
		se.Router.GET("/api/exports/report/pdf", handlers.RequireProExports(cfg, handlers.HandleReportExportPDF(app)))
		se.Router.GET("/api/exports/report/xlsx", handlers.RequireProExports(cfg, handlers.HandleReportExportExcel(app)))
		se.Router.GET("/api/exports/report/csv", handlers.RequireProExports(cfg, handlers.HandleReportExportCSV(app)))
		se.Router.GET("/api/exports/history/csv", handlers.RequireProExports(cfg, handlers.HandleHistoryExportCSV(app)))
		se.Router.GET("/api/exports/history/xlsx", handlers.RequireProExports(cfg, handlers.HandleHistoryExportExcel(app)))

		// ── Waitlist ─────────────────────────────────────────────
		se.Router.POST("/api/waitlist", handlers.HandleWaitlistJoin(app))
		se.Router.GET("/api/admin/waitlist", handlers.RequireAdmin(cfg, handlers.HandleWaitlistList(app)))
		se.Router.PATCH("/api/admin/waitlist/{id}", handlers.RequireAdmin(cfg, handlers.HandleWaitlistUpdate(app)))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
