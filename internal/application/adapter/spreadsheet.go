package adapter

// Sheet is a single worksheet ready to be rendered.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
	Footer []any // Written after one blank row when not empty
	Widths []float64
}

// SpreadsheetRenderer renders worksheets into a downloadable workbook.
type SpreadsheetRenderer interface {
	// Render writes the sheet into a new workbook and returns its bytes.
	Render(sheet Sheet) ([]byte, error)

	// ContentType returns the MIME type of rendered workbooks.
	ContentType() string
}
