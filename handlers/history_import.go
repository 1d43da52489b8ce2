package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"printcost/services"
)

// HandleHistoryTemplateDownload returns a handler that serves the Excel
// template for bulk history imports.
func HandleHistoryTemplateDownload(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		xlsxBytes, err := services.GenerateHistoryTemplate()
		if err != nil {
			log.Printf("history_template: failed to generate: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudo generar la plantilla"})
		}
		return writeDownload(e, contentTypeXLSX, "Plantilla_Historial.xlsx", xlsxBytes)
	}
}

// HandleHistoryImport returns a handler that validates an uploaded history
// file (.csv or .xlsx) and saves its valid rows. With ?dry_run=true the file
// is only validated and nothing is persisted.
func HandleHistoryImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Falta el archivo a importar"})
		}
		defer file.Close()

		result, err := services.ValidateHistoryFile(file, header.Filename)
		if err != nil {
			log.Printf("history_import: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		if e.Request.URL.Query().Get("dry_run") == "true" {
			return e.JSON(http.StatusOK, result)
		}

		records := services.HistoryRecordsFromImport(result, loadDefaultParams(app))

		col, err := app.FindCollectionByNameOrId("history")
		if err != nil {
			return fmt.Errorf("history_import: could not find history collection: %w", err)
		}

		imported := 0
		for _, rec := range records {
			record := core.NewRecord(col)
			if err := setHistoryFields(record, rec); err != nil {
				log.Printf("history_import: %v", err)
				continue
			}
			if err := app.Save(record); err != nil {
				log.Printf("history_import: could not save row for %q: %v", rec.ProductName, err)
				continue
			}
			imported++
		}

		return e.JSON(http.StatusOK, map[string]any{
			"imported":   imported,
			"total_rows": result.TotalRows,
			"error_rows": result.ErrorRows,
			"errors":     result.Errors,
		})
	}
}

// HandleHistoryImportErrors returns a handler that re-validates an uploaded
// file and downloads its validation errors as an Excel report.
func HandleHistoryImportErrors(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Falta el archivo a importar"})
		}
		defer file.Close()

		result, err := services.ValidateHistoryFile(file, header.Filename)
		if err != nil {
			log.Printf("history_import_errors: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		xlsxBytes, err := services.GenerateErrorReport(result.Errors)
		if err != nil {
			log.Printf("history_import_errors: failed to generate: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudo generar el reporte"})
		}

		return writeDownload(e, contentTypeXLSX, "Errores_Importacion.xlsx", xlsxBytes)
	}
}
