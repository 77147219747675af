package workbook

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sheetdesk/internal/domain"
)

type sheetFixture struct {
	name string
	rows [][]interface{}
}

// writeWorkbook builds a real .xlsx file at path with the given sheets in
// order. Cell values keep their native type so tests cover the string
// conversion done on read.
func writeWorkbook(t *testing.T, path string, sheets []sheetFixture) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		for r, row := range s.rows {
			cells := make([]interface{}, len(row))
			copy(cells, row)
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(s.name, cell, &cells))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func newTestAccessor(t *testing.T, sheets []sheetFixture) *Accessor {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.xlsx")
	writeWorkbook(t, path, sheets)
	return NewAccessor(path, slog.New(slog.DiscardHandler))
}

func TestAccessorOpenFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		a := NewAccessor(filepath.Join(t.TempDir(), "nope.xlsx"), slog.New(slog.DiscardHandler))

		_, err := a.ListSheets(ctx)

		var notFound *domain.WorkbookNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Contains(t, notFound.Message, "does not exist")
	})

	t.Run("file that is not a spreadsheet", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bogus.xlsx")
		require.NoError(t, os.WriteFile(path, []byte("this is just text\n"), 0o644))
		a := NewAccessor(path, slog.New(slog.DiscardHandler))

		_, err := a.ListSheets(ctx)

		var corrupt *domain.CorruptWorkbookError
		require.ErrorAs(t, err, &corrupt)
		assert.Contains(t, corrupt.Message, "re-export")
	})
}

func TestListSheets(t *testing.T) {
	a := newTestAccessor(t, []sheetFixture{
		{name: "Data"},
		{name: "Summary"},
		{name: "Archive"},
	})

	sheets, err := a.ListSheets(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Data", "Summary", "Archive"}, sheets)
}

func TestReadSheet(t *testing.T) {
	ctx := context.Background()

	t.Run("headers and typed cells become text", func(t *testing.T) {
		a := newTestAccessor(t, []sheetFixture{{
			name: "Data",
			rows: [][]interface{}{
				{"A", "B"},
				{1, 2},
			},
		}})

		table, err := a.ReadSheet(ctx, "Data")

		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, table.Columns)
		assert.Equal(t, [][]string{{"1", "2"}}, table.Rows)
	})

	t.Run("duplicate and empty headers are normalized", func(t *testing.T) {
		a := newTestAccessor(t, []sheetFixture{{
			name: "Data",
			rows: [][]interface{}{
				{"Name", "", "Name"},
				{"a", "b", "c"},
			},
		}})

		table, err := a.ReadSheet(ctx, "Data")

		require.NoError(t, err)
		assert.Equal(t, []string{"Name", "col_2", "Name_1"}, table.Columns)
	})

	t.Run("short rows are padded to header width", func(t *testing.T) {
		a := newTestAccessor(t, []sheetFixture{{
			name: "Data",
			rows: [][]interface{}{
				{"A", "B", "C"},
				{"only"},
			},
		}})

		table, err := a.ReadSheet(ctx, "Data")

		require.NoError(t, err)
		assert.Equal(t, [][]string{{"only", "", ""}}, table.Rows)
	})

	t.Run("empty sheet yields zero columns and rows", func(t *testing.T) {
		a := newTestAccessor(t, []sheetFixture{{name: "Empty"}})

		table, err := a.ReadSheet(ctx, "Empty")

		require.NoError(t, err)
		assert.Equal(t, 0, table.ColumnCount())
		assert.Equal(t, 0, table.RowCount())
	})

	t.Run("unknown sheet", func(t *testing.T) {
		a := newTestAccessor(t, []sheetFixture{{name: "Data"}})

		_, err := a.ReadSheet(ctx, "Missing")

		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}

func TestReplaceSheet(t *testing.T) {
	ctx := context.Background()

	t.Run("append round trip", func(t *testing.T) {
		a := newTestAccessor(t, []sheetFixture{{
			name: "Data",
			rows: [][]interface{}{
				{"A", "B"},
				{1, 2},
			},
		}})

		table, err := a.ReadSheet(ctx, "Data")
		require.NoError(t, err)
		table.AppendRow(map[string]string{"A": "3", "B": "4"})
		require.NoError(t, a.ReplaceSheet(ctx, "Data", table))

		// Fresh accessor so the read cannot reuse anything in memory.
		reread, err := NewAccessor(a.Path(), slog.New(slog.DiscardHandler)).ReadSheet(ctx, "Data")
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, reread.Columns)
		assert.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, reread.Rows)
	})

	t.Run("shrinking content drops stale rows and cells", func(t *testing.T) {
		a := newTestAccessor(t, []sheetFixture{{
			name: "Data",
			rows: [][]interface{}{
				{"A", "B", "C"},
				{"1", "2", "3"},
				{"4", "5", "6"},
				{"7", "8", "9"},
			},
		}})

		err := a.ReplaceSheet(ctx, "Data", &domain.Table{
			Columns: []string{"A"},
			Rows:    [][]string{{"x"}},
		})
		require.NoError(t, err)

		reread, err := a.ReadSheet(ctx, "Data")
		require.NoError(t, err)
		assert.Equal(t, []string{"A"}, reread.Columns)
		assert.Equal(t, [][]string{{"x"}}, reread.Rows)
	})

	t.Run("other sheets and their order survive", func(t *testing.T) {
		a := newTestAccessor(t, []sheetFixture{
			{name: "First", rows: [][]interface{}{{"H"}, {"keep"}}},
			{name: "Data", rows: [][]interface{}{{"A"}, {"old"}}},
			{name: "Last", rows: [][]interface{}{{"H"}, {"keep"}}},
		})

		err := a.ReplaceSheet(ctx, "Data", &domain.Table{
			Columns: []string{"A"},
			Rows:    [][]string{{"new"}},
		})
		require.NoError(t, err)

		sheets, err := a.ListSheets(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"First", "Data", "Last"}, sheets)

		first, err := a.ReadSheet(ctx, "First")
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"keep"}}, first.Rows)
	})

	t.Run("replace with empty table clears the sheet", func(t *testing.T) {
		a := newTestAccessor(t, []sheetFixture{{
			name: "Data",
			rows: [][]interface{}{{"A"}, {"1"}},
		}})

		err := a.ReplaceSheet(ctx, "Data", &domain.Table{Columns: []string{}, Rows: [][]string{}})
		require.NoError(t, err)

		reread, err := a.ReadSheet(ctx, "Data")
		require.NoError(t, err)
		assert.Equal(t, 0, reread.ColumnCount())
		assert.Equal(t, 0, reread.RowCount())
	})

	t.Run("unknown sheet", func(t *testing.T) {
		a := newTestAccessor(t, []sheetFixture{{name: "Data"}})

		err := a.ReplaceSheet(ctx, "Missing", &domain.Table{Columns: []string{"A"}})

		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("concurrent writers leave a whole file", func(t *testing.T) {
		a := newTestAccessor(t, []sheetFixture{{
			name: "Data",
			rows: [][]interface{}{{"A"}, {"seed"}},
		}})
		candidates := []*domain.Table{
			{Columns: []string{"A"}, Rows: [][]string{{"one"}}},
			{Columns: []string{"A"}, Rows: [][]string{{"two"}}},
		}

		var wg sync.WaitGroup
		for _, tbl := range candidates {
			wg.Add(1)
			go func(tbl *domain.Table) {
				defer wg.Done()
				assert.NoError(t, a.ReplaceSheet(ctx, "Data", tbl))
			}(tbl)
		}
		wg.Wait()

		reread, err := a.ReadSheet(ctx, "Data")
		require.NoError(t, err)
		assert.Contains(t, [][][]string{candidates[0].Rows, candidates[1].Rows}, reread.Rows)
	})
}
