package domain

import "context"

// WorkbookAccessor reads and rewrites one spreadsheet file. Every method
// opens the file, does its work, and closes it before returning; no handle
// outlives a call.
// Implemented by workbook.Accessor.
type WorkbookAccessor interface {
	// Path returns the workbook file path this accessor is bound to.
	Path() string
	// ListSheets returns sheet names in workbook file order.
	ListSheets(ctx context.Context) ([]string, error)
	// ReadSheet materializes one sheet as a table. Row 0 supplies the
	// column names (normalized via NormalizeHeaders); the remaining rows
	// become data rows sized to the header width.
	ReadSheet(ctx context.Context, name string) (*Table, error)
	// ReplaceSheet discards the named sheet's content, writes the table
	// in its place, and persists the whole file.
	ReplaceSheet(ctx context.Context, name string, table *Table) error
}
