package formrec

// AnalyzeResult is the outcome of a completed analysis operation. Sections
// not produced by the requested analysis kind are empty, never nil maps on
// a per-document basis.
type AnalyzeResult struct {
	// Version of the service schema that produced the result.
	Version string
	// Pages holds the recognised text content, one entry per document page.
	Pages []Page
	// Tables holds the tables detected across all pages.
	Tables []Table
	// Documents holds the structured field extractions. Receipts produce one
	// entry per receipt; custom-form analysis one entry per recognised form.
	Documents []RecognizedDocument
}

// Page is the text content of a single page.
type Page struct {
	// Number is the 1-based page number.
	Number int
	// Angle is the detected text rotation in degrees.
	Angle  float64
	Width  float64
	Height float64
	// Unit is the unit of Width/Height, "pixel" or "inch".
	Unit  string
	Lines []Line
}

// Line is a contiguous line of recognised text.
type Line struct {
	Text        string
	BoundingBox []float64
	Words       []Word
}

// Word is a single recognised word with its confidence score.
type Word struct {
	Text        string
	BoundingBox []float64
	Confidence  float64
}

// Table is a table detected on a page.
type Table struct {
	// Page is the 1-based page number the table appears on.
	Page     int
	RowCount int
	ColCount int
	Cells    []TableCell
}

// TableCell is a single cell within a detected table.
type TableCell struct {
	Text        string
	RowIndex    int
	ColumnIndex int
	RowSpan     int
	ColumnSpan  int
	Confidence  float64
}

// RecognizedDocument is a structured extraction over a page range.
type RecognizedDocument struct {
	// DocType identifies the extraction schema, for example
	// "prebuilt:receipt" or "custom:<modelID>".
	DocType string
	// FirstPage and LastPage bound the pages the extraction covers.
	FirstPage int
	LastPage  int
	// Fields maps field names to their extracted values. Never nil.
	Fields map[string]Field
}

// Field is a single extracted value.
type Field struct {
	// Type is the service value type, for example "string" or "number".
	Type string
	// Text is the raw text the value was read from.
	Text string
	// ValueString is the typed value for string fields.
	ValueString string
	// ValueNumber is the typed value for number fields.
	ValueNumber float64
	Confidence  float64
}
