package services

import (
	"bytes"
	"encoding/csv"
	"testing"
)

func TestGenerateHistoryCSV(t *testing.T) {
	rows := []HistoryExportRow{
		{Date: "15/08/2026", ProductName: "Maceta", Category: "Decoración", Quantity: 2, UnitCost: 2217.6, UnitPrice: 3104.64, Total: 6209.28, Status: StatusSold},
	}

	result, err := GenerateHistoryCSV(rows)
	if err != nil {
		t.Fatalf("GenerateHistoryCSV() error = %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(result)).ReadAll()
	if err != nil {
		t.Fatalf("result is not valid CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(records))
	}
	if records[0][0] != "fecha" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][1] != "Maceta" {
		t.Errorf("product column = %q, want Maceta", records[1][1])
	}
	if records[1][6] != "6209.28" {
		t.Errorf("total column = %q, want 6209.28", records[1][6])
	}
}

func TestGenerateHistoryCSV_Empty(t *testing.T) {
	result, err := GenerateHistoryCSV(nil)
	if err != nil {
		t.Fatalf("GenerateHistoryCSV() error = %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(result)).ReadAll()
	if err != nil {
		t.Fatalf("result is not valid CSV: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected header only, got %d rows", len(records))
	}
}

func TestGenerateReportCSV(t *testing.T) {
	result, err := GenerateReportCSV(sampleReportData())
	if err != nil {
		t.Fatalf("GenerateReportCSV() error = %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(result)).ReadAll()
	if err != nil {
		t.Fatalf("result is not valid CSV: %v", err)
	}

	// Header + 2 products + totals row.
	if len(records) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(records))
	}
	last := records[len(records)-1]
	if last[0] != "TOTAL" {
		t.Errorf("last row = %v, want totals row", last)
	}
}

func TestHistoryExportRows(t *testing.T) {
	records := []HistoryRecord{
		{
			Date:        "15/08/2026",
			ProductName: "Maceta",
			Category:    "Decoración",
			Quantity:    2,
			Total:       3500,
			Breakdown:   CostBreakdown{Subtotal: 2217.6, TotalFinal: 3104.64},
			Status:      StatusSold,
		},
		{
			ProductName: "Llavero",
			Quantity:    1,
			Breakdown:   CostBreakdown{Subtotal: 500, TotalFinal: 700},
			Status:      StatusDraft,
		},
	}

	rows := HistoryExportRows(records)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// Explicit total wins as the unit price.
	if rows[0].UnitPrice != 3500 || rows[0].Total != 7000 {
		t.Errorf("row 0 = %+v, want unit price 3500 and total 7000", rows[0])
	}
	// Without a stored total the breakdown's final price is used.
	if rows[1].UnitPrice != 700 || rows[1].Total != 700 {
		t.Errorf("row 1 = %+v, want unit price 700 and total 700", rows[1])
	}
}
