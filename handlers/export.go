package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"printcost/services"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
	contentTypeCSV  = "text/csv; charset=utf-8"
)

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

func writeDownload(e *core.RequestEvent, contentType, filename string, body []byte) error {
	e.Response.Header().Set("Content-Type", contentType)
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	_, err := e.Response.Write(body)
	return err
}

// HandleReportExportPDF returns a handler that generates and downloads the
// monthly report as a PDF.
func HandleReportExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := buildMonthlyReportData(app, e.Request.URL.Query().Get("month"))
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudo generar el informe"})
		}

		pdfBytes, err := services.GenerateReportPDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudo generar el PDF"})
		}

		filename := fmt.Sprintf("Informe_%s.pdf", sanitizeFilename(data.Period))
		return writeDownload(e, contentTypePDF, filename, pdfBytes)
	}
}

// HandleReportExportExcel returns a handler that generates and downloads the
// monthly report as an XLSX workbook.
func HandleReportExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := buildMonthlyReportData(app, e.Request.URL.Query().Get("month"))
		if err != nil {
			log.Printf("export_excel: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudo generar el informe"})
		}

		xlsxBytes, err := services.GenerateReportExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudo generar el Excel"})
		}

		filename := fmt.Sprintf("Informe_%s.xlsx", sanitizeFilename(data.Period))
		return writeDownload(e, contentTypeXLSX, filename, xlsxBytes)
	}
}

// HandleReportExportCSV returns a handler that downloads the monthly report's
// product table as CSV.
func HandleReportExportCSV(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := buildMonthlyReportData(app, e.Request.URL.Query().Get("month"))
		if err != nil {
			log.Printf("export_csv: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudo generar el informe"})
		}

		csvBytes, err := services.GenerateReportCSV(data)
		if err != nil {
			log.Printf("export_csv: failed to generate: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudo generar el CSV"})
		}

		filename := fmt.Sprintf("Informe_%s.csv", sanitizeFilename(data.Period))
		return writeDownload(e, contentTypeCSV, filename, csvBytes)
	}
}

// HandleHistoryExportCSV returns a handler that downloads the full history
// as CSV.
func HandleHistoryExportCSV(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rows, err := historyExportRows(app)
		if err != nil {
			log.Printf("history_export_csv: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudo leer el historial"})
		}

		csvBytes, err := services.GenerateHistoryCSV(rows)
		if err != nil {
			log.Printf("history_export_csv: failed to generate: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudo generar el CSV"})
		}

		filename := fmt.Sprintf("Historial_%d.csv", time.Now().Year())
		return writeDownload(e, contentTypeCSV, filename, csvBytes)
	}
}

// HandleHistoryExportExcel returns a handler that downloads the full history
// as an XLSX workbook.
func HandleHistoryExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rows, err := historyExportRows(app)
		if err != nil {
			log.Printf("history_export_excel: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudo leer el historial"})
		}

		xlsxBytes, err := services.GenerateHistoryExcel(rows)
		if err != nil {
			log.Printf("history_export_excel: failed to generate: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudo generar el Excel"})
		}

		filename := fmt.Sprintf("Historial_%d.xlsx", time.Now().Year())
		return writeDownload(e, contentTypeXLSX, filename, xlsxBytes)
	}
}

func historyExportRows(app *pocketbase.PocketBase) ([]services.HistoryExportRow, error) {
	records, err := loadHistory(app)
	if err != nil {
		return nil, err
	}

	flat := make([]services.HistoryRecord, 0, len(records))
	for _, rec := range records {
		flat = append(flat, *rec)
	}
	return services.HistoryExportRows(flat), nil
}
