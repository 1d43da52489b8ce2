package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xuri/excelize/v2"

	"printcost/testhelpers"
)

const importCSV = "Fecha,Producto,Categoría,Cantidad,Tiempo de impresión (min),Material (g),Ensamblado (min),Precio de venta\n" +
	"15/08/2026,Maceta,Decoración,2,120,60,30,3500\n" +
	"16/08/2026,Llavero,General,5,30,10,5,800\n" +
	",,,,abc,,,\n"

func newImportRequest(t *testing.T, target, filename, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("could not create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("could not write form file: %v", err)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHandleHistoryImport_SavesValidRows(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleHistoryImport(app)

	req := newImportRequest(t, "/api/history/import", "historial.csv", importCSV)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Imported  int `json:"imported"`
		TotalRows int `json:"total_rows"`
		ErrorRows int `json:"error_rows"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if resp.Imported != 2 || resp.TotalRows != 3 || resp.ErrorRows != 1 {
		t.Errorf("expected 2 imported of 3 with 1 error row, got %+v", resp)
	}

	records, err := app.FindAllRecords("history")
	if err != nil {
		t.Fatalf("could not query history: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 stored records, got %d", len(records))
	}
}

func TestHandleHistoryImport_DryRunDoesNotPersist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleHistoryImport(app)

	req := newImportRequest(t, "/api/history/import?dry_run=true", "historial.csv", importCSV)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	records, err := app.FindAllRecords("history")
	if err != nil {
		t.Fatalf("could not query history: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected dry run to persist nothing, got %d records", len(records))
	}
}

func TestHandleHistoryImport_MissingFile(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleHistoryImport(app)

	req := httptest.NewRequest(http.MethodPost, "/api/history/import", nil)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without file, got %d", rec.Code)
	}
}

func TestHandleHistoryImportErrors_DownloadsReport(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleHistoryImportErrors(app)

	req := newImportRequest(t, "/api/history/import/errors", "historial.csv", importCSV)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes())); err != nil {
		t.Fatalf("error report is not a valid workbook: %v", err)
	}
}

func TestHandleHistoryTemplateDownload(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleHistoryTemplateDownload(app)

	req := httptest.NewRequest(http.MethodGet, "/api/history/template", nil)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("template is not a valid workbook: %v", err)
	}
	defer f.Close()
	if f.GetSheetName(0) != "Historial" {
		t.Errorf("expected Historial sheet, got %q", f.GetSheetName(0))
	}
}
