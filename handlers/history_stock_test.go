package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"

	"printcost/services"
	"printcost/testhelpers"
)

func createDraftWithStock(t *testing.T, app *pocketbase.PocketBase, qty float64) string {
	t.Helper()
	rec := testhelpers.CreateTestHistoryRecord(t, app, services.HistoryRecord{
		ProductName: "Maceta",
		Quantity:    qty,
		Status:      services.StatusDraft,
	})
	return rec.Id
}

func sell(t *testing.T, app *pocketbase.PocketBase, id, body string) *httptest.ResponseRecorder {
	t.Helper()
	handler := HandleHistorySell(app)
	req := newJSONRequest(http.MethodPost, "/api/history/"+id+"/sell", body)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestHandleHistorySell_AppendsChangeAndMarksSold(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	id := createDraftWithStock(t, app, 5)

	rec := sell(t, app, id, `{"quantity": 2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var updated services.HistoryRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if updated.Status != services.StatusSold {
		t.Errorf("expected status sold, got %q", updated.Status)
	}
	if len(updated.StockChanges) != 1 {
		t.Fatalf("expected 1 stock change, got %d", len(updated.StockChanges))
	}
	ch := updated.StockChanges[0]
	if ch.Change != -2 || ch.StockAfter != 3 {
		t.Errorf("expected change -2 leaving 3, got %+v", ch)
	}
	if ch.Reason != services.ReasonSold || ch.Type != services.ReasonSold {
		t.Errorf("expected sold reason and type, got %+v", ch)
	}
	if ch.Timestamp == "" {
		t.Error("expected a timestamp on the stock change")
	}
}

func TestHandleHistorySell_LogIsAppendOnly(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	id := createDraftWithStock(t, app, 5)

	sell(t, app, id, `{"quantity": 2}`)
	rec := sell(t, app, id, `{"quantity": 1}`)

	var updated services.HistoryRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if len(updated.StockChanges) != 2 {
		t.Fatalf("expected 2 stock changes, got %d", len(updated.StockChanges))
	}
	// First entry untouched, second carries the running level
	if updated.StockChanges[0].StockAfter != 3 {
		t.Errorf("expected first entry to remain stock_after 3, got %d", updated.StockChanges[0].StockAfter)
	}
	if updated.StockChanges[1].StockAfter != 2 {
		t.Errorf("expected running stock 2, got %d", updated.StockChanges[1].StockAfter)
	}
}

func TestHandleHistorySell_InsufficientStock(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	id := createDraftWithStock(t, app, 1)

	rec := sell(t, app, id, `{"quantity": 4}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for overselling, got %d", rec.Code)
	}
}

func TestHandleHistorySell_DefaultsToOne(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	id := createDraftWithStock(t, app, 3)

	rec := sell(t, app, id, `{}`)
	var updated services.HistoryRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if updated.StockChanges[0].Change != -1 {
		t.Errorf("expected default sale of 1, got %d", updated.StockChanges[0].Change)
	}
}

func TestHandleHistoryRestock_IncreasesStock(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	id := createDraftWithStock(t, app, 2)

	handler := HandleHistoryRestock(app)
	req := newJSONRequest(http.MethodPost, "/api/history/"+id+"/restock", `{"quantity": 5}`)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var updated services.HistoryRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	ch := updated.StockChanges[0]
	if ch.Change != 5 || ch.StockAfter != 7 {
		t.Errorf("expected +5 leaving 7, got %+v", ch)
	}
	if ch.Reason != services.ReasonRestock {
		t.Errorf("expected restock reason, got %q", ch.Reason)
	}
	if updated.Status != services.StatusDraft {
		t.Errorf("expected restock to leave status untouched, got %q", updated.Status)
	}
}

func TestHandleHistorySell_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rec := sell(t, app, "missing123", `{"quantity": 1}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown record, got %d", rec.Code)
	}
}
