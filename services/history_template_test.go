package services

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGenerateHistoryTemplate_Headers(t *testing.T) {
	data, err := GenerateHistoryTemplate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(data))
	if err != nil {
		t.Fatalf("template is not a valid workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Historial")
	if err != nil {
		t.Fatalf("could not read Historial sheet: %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("expected a header row")
	}

	fields := HistoryTemplateFields()
	headers := rows[0]
	if len(headers) != len(fields) {
		t.Fatalf("expected %d header columns, got %d", len(fields), len(headers))
	}
	for i, field := range fields {
		want := field.Label
		if field.Required {
			want += " *"
		}
		if headers[i] != want {
			t.Errorf("column %d: expected %q, got %q", i, want, headers[i])
		}
	}
}

func TestGenerateHistoryTemplate_HeadersMapBack(t *testing.T) {
	data, err := GenerateHistoryTemplate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(data))
	if err != nil {
		t.Fatalf("template is not a valid workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Historial")
	if err != nil {
		t.Fatalf("could not read Historial sheet: %v", err)
	}

	mapped, unrecognized := mapHeadersToFields(rows[0], HistoryTemplateFields())
	if len(unrecognized) != 0 {
		t.Errorf("template headers should all map back, unrecognized: %v", unrecognized)
	}
	for i, key := range mapped {
		if key == "" {
			t.Errorf("column %d did not map to a field key", i)
		}
	}
}

func TestGenerateHistoryTemplate_InstructionsHidden(t *testing.T) {
	data, err := GenerateHistoryTemplate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(data))
	if err != nil {
		t.Fatalf("template is not a valid workbook: %v", err)
	}
	defer f.Close()

	visible, err := f.GetSheetVisible("Instrucciones")
	if err != nil {
		t.Fatalf("missing Instrucciones sheet: %v", err)
	}
	if visible {
		t.Error("expected Instrucciones sheet to be hidden")
	}

	rows, err := f.GetRows("Instrucciones")
	if err != nil {
		t.Fatalf("could not read Instrucciones sheet: %v", err)
	}
	var found bool
	for _, row := range rows {
		if len(row) > 0 && strings.Contains(row[0], "Producto") {
			found = true
		}
	}
	if !found {
		t.Error("expected instructions to describe the Producto field")
	}
}

func TestHistoryTemplateFields_RequiredSet(t *testing.T) {
	required := map[string]bool{}
	for _, f := range HistoryTemplateFields() {
		if f.Required {
			required[f.Key] = true
		}
	}
	for _, key := range []string{"product_name", "time", "material"} {
		if !required[key] {
			t.Errorf("expected %s to be required", key)
		}
	}
	if required["date"] || required["total"] {
		t.Error("date and total should be optional")
	}
}
