package handlers

import (
	"fmt"
	"log"
	"net/http"
	"net/mail"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Waitlist entry statuses.
const (
	WaitlistPending  = "pending"
	WaitlistApproved = "approved"
	WaitlistRejected = "rejected"
)

type waitlistJoinRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type waitlistEntry struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Created string `json:"created"`
}

func waitlistEntryFromRecord(rec *core.Record) waitlistEntry {
	return waitlistEntry{
		ID:      rec.Id,
		Email:   rec.GetString("email"),
		Name:    rec.GetString("name"),
		Status:  rec.GetString("status"),
		Created: rec.GetDateTime("created").Time().Format("2006-01-02 15:04:05"),
	}
}

// HandleWaitlistJoin returns a handler that registers an email on the
// waitlist. Joining twice with the same email is idempotent: the existing
// entry is returned unchanged.
func HandleWaitlistJoin(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req waitlistJoinRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("waitlist_join: could not decode body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Cuerpo JSON inválido"})
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Email inválido"})
		}

		existing, _ := app.FindRecordsByFilter("waitlist", "email = {:email}", "", 1, 0, map[string]any{"email": email})
		if len(existing) > 0 {
			return e.JSON(http.StatusOK, waitlistEntryFromRecord(existing[0]))
		}

		col, err := app.FindCollectionByNameOrId("waitlist")
		if err != nil {
			return fmt.Errorf("waitlist_join: could not find waitlist collection: %w", err)
		}

		record := core.NewRecord(col)
		record.Set("email", email)
		record.Set("name", strings.TrimSpace(req.Name))
		record.Set("status", WaitlistPending)

		if err := app.Save(record); err != nil {
			log.Printf("waitlist_join: could not save entry: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudo registrar el email"})
		}

		return e.JSON(http.StatusCreated, waitlistEntryFromRecord(record))
	}
}

// HandleWaitlistList returns an admin handler that lists waitlist entries,
// optionally filtered by the "status" query parameter.
func HandleWaitlistList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		status := e.Request.URL.Query().Get("status")

		filter := "id != ''"
		params := map[string]any{}
		if status != "" {
			if status != WaitlistPending && status != WaitlistApproved && status != WaitlistRejected {
				return e.JSON(http.StatusBadRequest, map[string]string{"error": "Estado desconocido"})
			}
			filter = "status = {:status}"
			params["status"] = status
		}

		records, err := app.FindRecordsByFilter("waitlist", filter, "-created", 0, 0, params)
		if err != nil {
			log.Printf("waitlist_list: could not query waitlist: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudo leer la lista de espera"})
		}

		entries := make([]waitlistEntry, 0, len(records))
		for _, rec := range records {
			entries = append(entries, waitlistEntryFromRecord(rec))
		}
		return e.JSON(http.StatusOK, entries)
	}
}

type waitlistUpdateRequest struct {
	Status string `json:"status"`
}

// HandleWaitlistUpdate returns an admin handler that approves or rejects a
// waitlist entry.
func HandleWaitlistUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Falta el ID de la entrada"})
		}

		var req waitlistUpdateRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("waitlist_update: could not decode body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Cuerpo JSON inválido"})
		}
		if req.Status != WaitlistApproved && req.Status != WaitlistRejected {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "El estado debe ser approved o rejected"})
		}

		record, err := app.FindRecordById("waitlist", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Entrada no encontrada"})
		}

		record.Set("status", req.Status)
		if err := app.Save(record); err != nil {
			log.Printf("waitlist_update: could not save entry %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudo actualizar la entrada"})
		}

		return e.JSON(http.StatusOK, waitlistEntryFromRecord(record))
	}
}
