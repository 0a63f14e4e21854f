package export

// Table is one tabular export section: a named sheet with a header row and
// ordered data rows.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// Workbook is an ordered collection of tables rendered into one artifact.
type Workbook struct {
	Tables []Table
}
