package services

// TemplateField describes one column in a history import template.
type TemplateField struct {
	Key          string // internal name, matches the canonical record field
	Label        string // human-readable header shown in Excel
	Description  string // shown on the Instrucciones sheet
	FormatRule   string // e.g. "dd/mm/aaaa", "número >= 0", ""
	ExampleValue string // shown on the Instrucciones sheet
	Required     bool
	Numeric      bool
}

// HistoryTemplateFields returns the ordered list of columns for history
// import files.
func HistoryTemplateFields() []TemplateField {
	return []TemplateField{
		{Key: "date", Label: "Fecha", Description: "Fecha del trabajo", FormatRule: "dd/mm/aaaa", ExampleValue: "15/08/2026"},
		{Key: "product_name", Label: "Producto", Description: "Nombre de la pieza o producto", ExampleValue: "Maceta hexagonal", Required: true},
		{Key: "category", Label: "Categoría", Description: "Categoría del producto (elegir de la lista)", ExampleValue: "Decoración"},
		{Key: "quantity", Label: "Cantidad", Description: "Unidades producidas", FormatRule: "Número >= 0", ExampleValue: "3", Numeric: true},
		{Key: "time", Label: "Tiempo de impresión (min)", Description: "Minutos de impresión por unidad", FormatRule: "Número >= 0", ExampleValue: "120", Required: true, Numeric: true},
		{Key: "material", Label: "Material (g)", Description: "Gramos de filamento por unidad", FormatRule: "Número >= 0", ExampleValue: "60", Required: true, Numeric: true},
		{Key: "assembly", Label: "Ensamblado (min)", Description: "Minutos de trabajo manual por unidad", FormatRule: "Número >= 0", ExampleValue: "30", Numeric: true},
		{Key: "total", Label: "Precio de venta", Description: "Precio unitario cobrado; vacío usa el precio sugerido", FormatRule: "Número >= 0", ExampleValue: "3500", Numeric: true},
	}
}

// CategoryOptions returns the product category suggestions offered in the
// template dropdown. Free-form values are still accepted on import.
var CategoryOptions = []string{
	"General",
	"Decoración",
	"Funcional",
	"Repuestos",
	"Juguetes",
	"Prototipos",
	"Cosplay",
	"Otros",
}

// MaterialOptions returns the filament/resin types offered for consumption
// and failure records.
var MaterialOptions = []string{
	"PLA",
	"PETG",
	"ABS",
	"TPU",
	"ASA",
	"Nylon",
	"Resina",
}
