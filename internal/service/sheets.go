// Package service implements the application services between transport and storage.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"sheetdesk/internal/domain"
)

// WorkbookSummary describes the workbook for overview surfaces.
type WorkbookSummary struct {
	Path       string
	SheetCount int
	Sheets     []string
}

// SheetService exposes workbook sheet operations. Each call goes through
// the accessor's open-work-close cycle; the activity log is best-effort
// and never fails the user operation.
type SheetService struct {
	accessor domain.WorkbookAccessor
	activity domain.ActivityRepository
	logger   *slog.Logger
}

// NewSheetService creates a new SheetService.
func NewSheetService(accessor domain.WorkbookAccessor, activity domain.ActivityRepository, logger *slog.Logger) *SheetService {
	return &SheetService{
		accessor: accessor,
		activity: activity,
		logger:   logger.With("component", "sheets"),
	}
}

// Summary returns the workbook path and its sheet names in file order.
func (s *SheetService) Summary(ctx context.Context) (*WorkbookSummary, error) {
	sheets, err := s.accessor.ListSheets(ctx)
	if err != nil {
		return nil, err
	}
	return &WorkbookSummary{
		Path:       s.accessor.Path(),
		SheetCount: len(sheets),
		Sheets:     sheets,
	}, nil
}

// ListSheets returns sheet names in workbook file order.
func (s *SheetService) ListSheets(ctx context.Context) ([]string, error) {
	return s.accessor.ListSheets(ctx)
}

// GetSheet returns one sheet as a table and records the view.
func (s *SheetService) GetSheet(ctx context.Context, name string) (*domain.Table, error) {
	table, err := s.accessor.ReadSheet(ctx, name)
	if err != nil {
		return nil, err
	}
	s.recordActivity(ctx, &domain.ActivityEntry{
		Action:    domain.ActivityActionSheetViewed,
		SheetName: name,
		Detail:    fmt.Sprintf("viewed %d rows", table.RowCount()),
		RowCount:  table.RowCount(),
	})
	return table, nil
}

// AppendRow reads the sheet, appends one row built from values keyed by
// column name, and writes the sheet back. It returns the sheet's new row
// count. A sheet without columns rejects the append.
func (s *SheetService) AppendRow(ctx context.Context, name string, values map[string]string) (int, error) {
	table, err := s.accessor.ReadSheet(ctx, name)
	if err != nil {
		return 0, err
	}
	if table.ColumnCount() == 0 {
		return 0, domain.ErrValidation("sheet %q has no columns to append to", name)
	}

	table.AppendRow(values)
	if err := s.accessor.ReplaceSheet(ctx, name, table); err != nil {
		return 0, err
	}

	s.recordActivity(ctx, &domain.ActivityEntry{
		Action:    domain.ActivityActionRowAppended,
		SheetName: name,
		Detail:    fmt.Sprintf("appended 1 row, sheet now has %d", table.RowCount()),
		RowCount:  table.RowCount(),
	})
	return table.RowCount(), nil
}

// recordActivity inserts best-effort: a failure is logged, never surfaced.
func (s *SheetService) recordActivity(ctx context.Context, e *domain.ActivityEntry) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Insert(ctx, e); err != nil {
		s.logger.Warn("record activity", "action", e.Action, "sheet", e.SheetName, "error", err)
	}
}
