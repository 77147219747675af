// Package workbook implements spreadsheet file access on top of excelize.
package workbook

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"

	"sheetdesk/internal/domain"
)

// Accessor reads and rewrites a single .xlsx file. Each method opens the
// file, works on it, and closes it before returning, so the file on disk is
// the only state between calls. Writers are serialized through mu; readers
// never block because saves replace the file atomically via rename.
type Accessor struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

var _ domain.WorkbookAccessor = (*Accessor)(nil)

// NewAccessor creates an accessor bound to the workbook at path. The file
// does not have to exist yet; every operation re-checks and reports
// WorkbookNotFoundError when it is absent.
func NewAccessor(path string, logger *slog.Logger) *Accessor {
	return &Accessor{path: path, logger: logger.With("component", "workbook")}
}

// Path returns the workbook file path this accessor is bound to.
func (a *Accessor) Path() string { return a.path }

// ListSheets returns sheet names in workbook file order.
func (a *Accessor) ListSheets(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := a.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

// ReadSheet materializes one sheet as a table. Row 0 becomes the column
// names (normalized to be unique and non-empty), every following row is
// sized to the header width. An empty sheet yields a zero-column,
// zero-row table.
func (a *Accessor) ReadSheet(ctx context.Context, name string) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := a.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !hasSheet(f, name) {
		return nil, domain.ErrNotFound("sheet %q not found", name)
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	return tableFromRows(rows), nil
}

// ReplaceSheet discards the named sheet's content, writes the table in its
// place, and persists the whole workbook. The sheet keeps its position and
// the other sheets are left untouched.
func (a *Accessor) ReplaceSheet(ctx context.Context, name string, table *domain.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := a.open()
	if err != nil {
		return err
	}
	defer f.Close()

	if !hasSheet(f, name) {
		return domain.ErrNotFound("sheet %q not found", name)
	}
	if err := rewriteSheet(f, name, table); err != nil {
		return domain.ErrWorkbookWrite("rewrite sheet %q: %v", name, err)
	}
	if err := a.saveAtomic(f); err != nil {
		return err
	}
	a.logger.Info("workbook saved", "path", a.path, "sheet", name, "rows", table.RowCount())
	return nil
}

// open stats the path first so a missing file and an unreadable file stay
// distinct failures. excelize reports zip and XML errors for anything that
// is not a real .xlsx; all of those mean the same thing to callers.
func (a *Accessor) open() (*excelize.File, error) {
	if _, err := os.Stat(a.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrWorkbookNotFound(a.path)
		}
		return nil, err
	}
	f, err := excelize.OpenFile(a.path)
	if err != nil {
		a.logger.Debug("workbook open failed", "path", a.path, "error", err)
		return nil, domain.ErrCorruptWorkbook(a.path)
	}
	return f, nil
}

func tableFromRows(rows [][]string) *domain.Table {
	if len(rows) == 0 {
		return &domain.Table{Columns: []string{}, Rows: [][]string{}}
	}
	columns := domain.NormalizeHeaders(rows[0])
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		data = append(data, fitRow(row, len(columns)))
	}
	return &domain.Table{Columns: columns, Rows: data}
}

// fitRow pads or truncates a raw row to exactly width cells.
func fitRow(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}

// rewriteSheet overwrites the sheet's cells with the table content (header
// row first) and drops surplus rows left over from the old content. Stale
// cells inside kept rows are cleared by writing every row at the combined
// width of old and new content.
func rewriteSheet(f *excelize.File, name string, table *domain.Table) error {
	existing, err := f.GetRows(name)
	if err != nil {
		return err
	}
	width := table.ColumnCount()
	for _, row := range existing {
		if len(row) > width {
			width = len(row)
		}
	}

	var content [][]string
	if table.ColumnCount() > 0 {
		content = make([][]string, 0, table.RowCount()+1)
		content = append(content, table.Columns)
		content = append(content, table.Rows...)
	}
	for i, row := range content {
		cells := make([]interface{}, width)
		for j := range cells {
			cells[j] = ""
		}
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &cells); err != nil {
			return err
		}
	}
	for extra := len(existing) - len(content); extra > 0; extra-- {
		if err := f.RemoveRow(name, len(content)+1); err != nil {
			return err
		}
	}
	return nil
}

// saveAtomic writes the workbook to a temp file in the same directory,
// syncs it, and renames it over the original so readers never observe a
// half-written file.
func (a *Accessor) saveAtomic(f *excelize.File) error {
	tmp, err := os.CreateTemp(filepath.Dir(a.path), ".sheetdesk-*.xlsx")
	if err != nil {
		return domain.ErrWorkbookWrite("save workbook %q: %v", a.path, err)
	}
	err = f.Write(tmp)
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), a.path)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return domain.ErrWorkbookWrite("save workbook %q: %v", a.path, err)
	}
	return nil
}

func hasSheet(f *excelize.File, name string) bool {
	for _, s := range f.GetSheetList() {
		if s == name {
			return true
		}
	}
	return false
}
