package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"printcost/services"
)

// recordToRaw converts a stored history record into the loose map shape the
// normalizer accepts, so reads tolerate legacy field layouts.
func recordToRaw(rec *core.Record) services.RawRecord {
	raw := services.RawRecord{
		"id":           rec.Id,
		"date":         rec.GetString("date"),
		"product_name": rec.GetString("product_name"),
		"category":     rec.GetString("category"),
		"total":        rec.GetFloat("total"),
		"quantity":     rec.GetFloat("quantity"),
		"status":       rec.GetString("status"),
	}

	for _, key := range []string{"inputs", "params", "breakdown"} {
		var m map[string]any
		if err := rec.UnmarshalJSONField(key, &m); err == nil && m != nil {
			raw[key] = m
		}
	}

	var changes []any
	if err := rec.UnmarshalJSONField("stock_changes", &changes); err == nil && changes != nil {
		raw["stock_changes"] = changes
	}

	return raw
}

// loadHistory fetches all history records, newest first, in canonical shape.
func loadHistory(app *pocketbase.PocketBase) ([]*services.HistoryRecord, error) {
	records, err := app.FindRecordsByFilter("history", "id != ''", "-created", 0, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("could not query history: %w", err)
	}

	fallback := loadDefaultParams(app)
	normalized := make([]*services.HistoryRecord, 0, len(records))
	for _, rec := range records {
		normalized = append(normalized, services.NormalizeRecord(recordToRaw(rec), fallback))
	}
	return normalized, nil
}

// setHistoryFields writes a canonical record onto a PocketBase record.
func setHistoryFields(rec *core.Record, h *services.HistoryRecord) error {
	inputs, err := json.Marshal(h.Inputs)
	if err != nil {
		return fmt.Errorf("could not marshal inputs: %w", err)
	}
	params, err := json.Marshal(h.Params)
	if err != nil {
		return fmt.Errorf("could not marshal params: %w", err)
	}
	breakdown, err := json.Marshal(h.Breakdown)
	if err != nil {
		return fmt.Errorf("could not marshal breakdown: %w", err)
	}

	rec.Set("product_name", h.ProductName)
	rec.Set("category", h.Category)
	rec.Set("date", h.Date)
	rec.Set("inputs", string(inputs))
	rec.Set("params", string(params))
	rec.Set("breakdown", string(breakdown))
	rec.Set("total", h.Total)
	rec.Set("quantity", h.Quantity)
	rec.Set("status", h.Status)

	if h.StockChanges != nil {
		changes, err := json.Marshal(h.StockChanges)
		if err != nil {
			return fmt.Errorf("could not marshal stock changes: %w", err)
		}
		rec.Set("stock_changes", string(changes))
	}

	return nil
}
