package service

import (
	"context"
	"fmt"

	"sheetdesk/internal/domain"
)

// === Workbook Accessor Mock ===

type mockAccessor struct {
	path           string
	listSheetsFn   func(ctx context.Context) ([]string, error)
	readSheetFn    func(ctx context.Context, name string) (*domain.Table, error)
	replaceSheetFn func(ctx context.Context, name string, table *domain.Table) error
	replacedTables []*domain.Table
}

func (m *mockAccessor) Path() string { return m.path }

func (m *mockAccessor) ListSheets(ctx context.Context) ([]string, error) {
	if m.listSheetsFn != nil {
		return m.listSheetsFn(ctx)
	}
	panic("unexpected call to mockAccessor.ListSheets")
}

func (m *mockAccessor) ReadSheet(ctx context.Context, name string) (*domain.Table, error) {
	if m.readSheetFn != nil {
		return m.readSheetFn(ctx, name)
	}
	panic("unexpected call to mockAccessor.ReadSheet")
}

func (m *mockAccessor) ReplaceSheet(ctx context.Context, name string, table *domain.Table) error {
	if m.replaceSheetFn != nil {
		m.replacedTables = append(m.replacedTables, table)
		return m.replaceSheetFn(ctx, name, table)
	}
	panic("unexpected call to mockAccessor.ReplaceSheet")
}

// === Activity Repository Mock ===

type mockActivityRepo struct {
	entries   []*domain.ActivityEntry
	insertErr error
}

func (m *mockActivityRepo) Insert(_ context.Context, e *domain.ActivityEntry) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *mockActivityRepo) ListRecent(_ context.Context, _ int) ([]domain.ActivityEntry, error) {
	panic("unexpected call to mockActivityRepo.ListRecent")
}

func (m *mockActivityRepo) lastEntry() *domain.ActivityEntry {
	if len(m.entries) == 0 {
		return nil
	}
	return m.entries[len(m.entries)-1]
}

func (m *mockActivityRepo) hasAction(action string) bool {
	for _, e := range m.entries {
		if e.Action == action {
			return true
		}
	}
	return false
}

var errTest = fmt.Errorf("test error")
