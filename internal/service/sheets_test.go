package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetdesk/internal/domain"
)

func newSheetService(accessor *mockAccessor, activity *mockActivityRepo) *SheetService {
	return NewSheetService(accessor, activity, slog.New(slog.DiscardHandler))
}

func TestSheetService_Summary(t *testing.T) {
	t.Run("happy_path", func(t *testing.T) {
		accessor := &mockAccessor{
			path: "/data/workbook.xlsx",
			listSheetsFn: func(_ context.Context) ([]string, error) {
				return []string{"Data", "Summary"}, nil
			},
		}
		svc := newSheetService(accessor, &mockActivityRepo{})

		summary, err := svc.Summary(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "/data/workbook.xlsx", summary.Path)
		assert.Equal(t, 2, summary.SheetCount)
		assert.Equal(t, []string{"Data", "Summary"}, summary.Sheets)
	})

	t.Run("accessor_error", func(t *testing.T) {
		accessor := &mockAccessor{
			listSheetsFn: func(_ context.Context) ([]string, error) {
				return nil, errTest
			},
		}
		svc := newSheetService(accessor, &mockActivityRepo{})

		_, err := svc.Summary(context.Background())

		assert.ErrorIs(t, err, errTest)
	})
}

func TestSheetService_GetSheet(t *testing.T) {
	t.Run("happy_path_records_view", func(t *testing.T) {
		accessor := &mockAccessor{
			readSheetFn: func(_ context.Context, name string) (*domain.Table, error) {
				assert.Equal(t, "Data", name)
				return &domain.Table{Columns: []string{"A"}, Rows: [][]string{{"1"}}}, nil
			},
		}
		activity := &mockActivityRepo{}
		svc := newSheetService(accessor, activity)

		table, err := svc.GetSheet(context.Background(), "Data")

		require.NoError(t, err)
		assert.Equal(t, 1, table.RowCount())
		require.True(t, activity.hasAction(domain.ActivityActionSheetViewed))
		assert.Equal(t, "Data", activity.lastEntry().SheetName)
	})

	t.Run("read_error_skips_activity", func(t *testing.T) {
		accessor := &mockAccessor{
			readSheetFn: func(_ context.Context, _ string) (*domain.Table, error) {
				return nil, errTest
			},
		}
		activity := &mockActivityRepo{}
		svc := newSheetService(accessor, activity)

		_, err := svc.GetSheet(context.Background(), "Data")

		assert.ErrorIs(t, err, errTest)
		assert.Empty(t, activity.entries)
	})

	t.Run("activity_failure_does_not_fail_read", func(t *testing.T) {
		accessor := &mockAccessor{
			readSheetFn: func(_ context.Context, _ string) (*domain.Table, error) {
				return &domain.Table{Columns: []string{"A"}}, nil
			},
		}
		activity := &mockActivityRepo{insertErr: errTest}
		svc := newSheetService(accessor, activity)

		_, err := svc.GetSheet(context.Background(), "Data")

		assert.NoError(t, err)
	})
}

func TestSheetService_AppendRow(t *testing.T) {
	t.Run("happy_path", func(t *testing.T) {
		accessor := &mockAccessor{
			readSheetFn: func(_ context.Context, _ string) (*domain.Table, error) {
				return &domain.Table{Columns: []string{"A", "B"}, Rows: [][]string{{"1", "2"}}}, nil
			},
			replaceSheetFn: func(_ context.Context, name string, table *domain.Table) error {
				assert.Equal(t, "Data", name)
				return nil
			},
		}
		activity := &mockActivityRepo{}
		svc := newSheetService(accessor, activity)

		count, err := svc.AppendRow(context.Background(), "Data", map[string]string{"A": "3", "B": "4"})

		require.NoError(t, err)
		assert.Equal(t, 2, count)
		require.Len(t, accessor.replacedTables, 1)
		assert.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, accessor.replacedTables[0].Rows)
		require.True(t, activity.hasAction(domain.ActivityActionRowAppended))
		assert.Equal(t, 2, activity.lastEntry().RowCount)
	})

	t.Run("zero_columns_rejected", func(t *testing.T) {
		accessor := &mockAccessor{
			readSheetFn: func(_ context.Context, _ string) (*domain.Table, error) {
				return &domain.Table{Columns: []string{}, Rows: [][]string{}}, nil
			},
		}
		activity := &mockActivityRepo{}
		svc := newSheetService(accessor, activity)

		_, err := svc.AppendRow(context.Background(), "Data", map[string]string{"A": "3"})

		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Empty(t, activity.entries)
	})

	t.Run("write_error_surfaces_raw", func(t *testing.T) {
		accessor := &mockAccessor{
			readSheetFn: func(_ context.Context, _ string) (*domain.Table, error) {
				return &domain.Table{Columns: []string{"A"}}, nil
			},
			replaceSheetFn: func(_ context.Context, _ string, _ *domain.Table) error {
				return domain.ErrWorkbookWrite("save workbook: disk full")
			},
		}
		activity := &mockActivityRepo{}
		svc := newSheetService(accessor, activity)

		_, err := svc.AppendRow(context.Background(), "Data", map[string]string{"A": "3"})

		var writeErr *domain.WorkbookWriteError
		require.ErrorAs(t, err, &writeErr)
		assert.Contains(t, writeErr.Message, "disk full")
		assert.Empty(t, activity.entries, "activity should not be logged on failed write")
	})

	t.Run("missing_sheet", func(t *testing.T) {
		accessor := &mockAccessor{
			readSheetFn: func(_ context.Context, _ string) (*domain.Table, error) {
				return nil, domain.ErrNotFound("sheet %q not found", "Ghost")
			},
		}
		svc := newSheetService(accessor, &mockActivityRepo{})

		_, err := svc.AppendRow(context.Background(), "Ghost", nil)

		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}

func TestActivityService_Recent(t *testing.T) {
	t.Run("happy_path", func(t *testing.T) {
		repo := &recentStubRepo{entries: []domain.ActivityEntry{
			{ID: "1", Action: domain.ActivityActionRowAppended},
		}}
		svc := NewActivityService(repo)

		entries, err := svc.Recent(context.Background(), 10)

		require.NoError(t, err)
		assert.Len(t, entries, 1)
		assert.Equal(t, 10, repo.gotLimit)
	})

	t.Run("repo_error", func(t *testing.T) {
		svc := NewActivityService(&recentStubRepo{err: errTest})

		_, err := svc.Recent(context.Background(), 10)

		assert.ErrorIs(t, err, errTest)
	})
}

// recentStubRepo only serves ListRecent; mockActivityRepo panics there on
// purpose so insert-path tests stay strict.
type recentStubRepo struct {
	entries  []domain.ActivityEntry
	err      error
	gotLimit int
}

func (r *recentStubRepo) Insert(_ context.Context, _ *domain.ActivityEntry) error {
	panic("unexpected call to recentStubRepo.Insert")
}

func (r *recentStubRepo) ListRecent(_ context.Context, limit int) ([]domain.ActivityEntry, error) {
	r.gotLimit = limit
	if r.err != nil {
		return nil, r.err
	}
	return r.entries, nil
}
