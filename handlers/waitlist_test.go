package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"printcost/testhelpers"
)

func TestHandleWaitlistJoin_CreatesPendingEntry(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleWaitlistJoin(app)

	req := newJSONRequest(http.MethodPost, "/api/waitlist",
		`{"email": "Ana@Example.com", "name": "Ana"}`)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var entry waitlistEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entry); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if entry.Email != "ana@example.com" {
		t.Errorf("expected lowercased email, got %q", entry.Email)
	}
	if entry.Status != WaitlistPending {
		t.Errorf("expected pending status, got %q", entry.Status)
	}
}

func TestHandleWaitlistJoin_DuplicateIsIdempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	existing := testhelpers.CreateTestWaitlistEntry(t, app, "ana@example.com", WaitlistApproved)

	handler := HandleWaitlistJoin(app)
	req := newJSONRequest(http.MethodPost, "/api/waitlist", `{"email": "ana@example.com"}`)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for existing email, got %d", rec.Code)
	}

	var entry waitlistEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entry); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if entry.ID != existing.Id {
		t.Errorf("expected existing entry to be returned, got %q", entry.ID)
	}
	if entry.Status != WaitlistApproved {
		t.Errorf("expected existing status to be preserved, got %q", entry.Status)
	}

	records, _ := app.FindAllRecords("waitlist")
	if len(records) != 1 {
		t.Errorf("expected no duplicate entry, got %d records", len(records))
	}
}

func TestHandleWaitlistJoin_InvalidEmail(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleWaitlistJoin(app)

	req := newJSONRequest(http.MethodPost, "/api/waitlist", `{"email": "not-an-email"}`)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid email, got %d", rec.Code)
	}
}

func TestHandleWaitlistList_FiltersByStatus(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestWaitlistEntry(t, app, "ana@example.com", WaitlistPending)
	testhelpers.CreateTestWaitlistEntry(t, app, "juan@example.com", WaitlistApproved)
	testhelpers.CreateTestWaitlistEntry(t, app, "sofia@example.com", WaitlistPending)

	handler := HandleWaitlistList(app)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/waitlist?status=pending", nil)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var entries []waitlistEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 pending entries, got %d", len(entries))
	}
	for _, entry := range entries {
		if entry.Status != WaitlistPending {
			t.Errorf("expected only pending entries, got %q", entry.Status)
		}
	}
}

func TestHandleWaitlistList_UnknownStatus(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleWaitlistList(app)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/waitlist?status=bogus", nil)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown status, got %d", rec.Code)
	}
}

func TestHandleWaitlistUpdate_Approves(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	entry := testhelpers.CreateTestWaitlistEntry(t, app, "ana@example.com", WaitlistPending)

	handler := HandleWaitlistUpdate(app)
	req := newJSONRequest(http.MethodPatch, "/api/admin/waitlist/"+entry.Id, `{"status": "approved"}`)
	req.SetPathValue("id", entry.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	updated, err := app.FindRecordById("waitlist", entry.Id)
	if err != nil {
		t.Fatalf("could not reload entry: %v", err)
	}
	if got := updated.GetString("status"); got != WaitlistApproved {
		t.Errorf("expected approved, got %q", got)
	}
}

func TestHandleWaitlistUpdate_RejectsInvalidStatus(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	entry := testhelpers.CreateTestWaitlistEntry(t, app, "ana@example.com", WaitlistPending)

	handler := HandleWaitlistUpdate(app)
	req := newJSONRequest(http.MethodPatch, "/api/admin/waitlist/"+entry.Id, `{"status": "pending"}`)
	req.SetPathValue("id", entry.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non approve/reject status, got %d", rec.Code)
	}
}

func TestHandleWaitlistUpdate_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleWaitlistUpdate(app)
	req := newJSONRequest(http.MethodPatch, "/api/admin/waitlist/missing123", `{"status": "approved"}`)
	req.SetPathValue("id", "missing123")
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
