package ui

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetdesk/internal/domain"
	"sheetdesk/internal/service"
)

// === Workbook Accessor Fake ===

type fakeAccessor struct {
	path           string
	listSheetsFn   func(ctx context.Context) ([]string, error)
	readSheetFn    func(ctx context.Context, name string) (*domain.Table, error)
	replaceSheetFn func(ctx context.Context, name string, table *domain.Table) error
	replaced       []*domain.Table
}

func (f *fakeAccessor) Path() string { return f.path }

func (f *fakeAccessor) ListSheets(ctx context.Context) ([]string, error) {
	if f.listSheetsFn == nil {
		panic("unexpected call to ListSheets")
	}
	return f.listSheetsFn(ctx)
}

func (f *fakeAccessor) ReadSheet(ctx context.Context, name string) (*domain.Table, error) {
	if f.readSheetFn == nil {
		panic("unexpected call to ReadSheet")
	}
	return f.readSheetFn(ctx, name)
}

func (f *fakeAccessor) ReplaceSheet(ctx context.Context, name string, table *domain.Table) error {
	f.replaced = append(f.replaced, table)
	if f.replaceSheetFn == nil {
		return nil
	}
	return f.replaceSheetFn(ctx, name, table)
}

// === Activity Repository Fake ===

type fakeActivity struct {
	entries []domain.ActivityEntry
}

func (f *fakeActivity) Insert(_ context.Context, e *domain.ActivityEntry) error {
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeActivity) ListRecent(_ context.Context, limit int) ([]domain.ActivityEntry, error) {
	if limit > 0 && limit < len(f.entries) {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

func newTestRouter(t *testing.T, accessor domain.WorkbookAccessor, activity domain.ActivityRepository) chi.Router {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	h := NewHandler(service.NewSheetService(accessor, activity, logger), service.NewActivityService(activity), false)
	r := chi.NewRouter()
	MountRoutes(r, h)
	return r
}

func doGet(t *testing.T, router chi.Router, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func postForm(t *testing.T, router chi.Router, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	form.Set("csrf_token", "test-token")
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "test-token"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, r)
	return rr
}

func TestHomePage(t *testing.T) {
	t.Run("shows_workbook_summary", func(t *testing.T) {
		accessor := &fakeAccessor{
			path: "/data/book.xlsx",
			listSheetsFn: func(context.Context) ([]string, error) {
				return []string{"Data", "Notes"}, nil
			},
		}
		router := newTestRouter(t, accessor, &fakeActivity{})

		rr := doGet(t, router, "/")
		require.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, "/data/book.xlsx")
		assert.Contains(t, body, "Data")
		assert.Contains(t, body, "Notes")
		assert.Contains(t, body, "2 sheet(s)")
	})

	t.Run("missing_workbook_shows_guidance", func(t *testing.T) {
		accessor := &fakeAccessor{
			path: "/data/missing.xlsx",
			listSheetsFn: func(context.Context) ([]string, error) {
				return nil, domain.ErrWorkbookNotFound("/data/missing.xlsx")
			},
		}
		router := newTestRouter(t, accessor, &fakeActivity{})

		rr := doGet(t, router, "/")
		require.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, "Missing")
		assert.Contains(t, body, "does not exist")
	})

	t.Run("corrupt_workbook_renders_error_page", func(t *testing.T) {
		accessor := &fakeAccessor{
			path: "/data/broken.xlsx",
			listSheetsFn: func(context.Context) ([]string, error) {
				return nil, domain.ErrCorruptWorkbook("/data/broken.xlsx")
			},
		}
		router := newTestRouter(t, accessor, &fakeActivity{})

		rr := doGet(t, router, "/")
		require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, rr.Body.String(), "re-export")
	})
}

func TestSheetsPage(t *testing.T) {
	dataTable := func() *domain.Table {
		return &domain.Table{
			Columns: []string{"A", "B"},
			Rows:    [][]string{{"1", "2"}},
		}
	}

	t.Run("renders_table_and_form", func(t *testing.T) {
		accessor := &fakeAccessor{
			path:         "/data/book.xlsx",
			listSheetsFn: func(context.Context) ([]string, error) { return []string{"Data"}, nil },
			readSheetFn: func(_ context.Context, name string) (*domain.Table, error) {
				require.Equal(t, "Data", name)
				return dataTable(), nil
			},
		}
		activity := &fakeActivity{}
		router := newTestRouter(t, accessor, activity)

		rr := doGet(t, router, "/sheets?sheet=Data")
		require.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, "<th>A</th>")
		assert.Contains(t, body, "<th>B</th>")
		assert.Contains(t, body, "<td>1</td>")
		assert.Contains(t, body, "1 row(s)")
		assert.Contains(t, body, `name="cell_A"`)
		assert.Contains(t, body, "Add Row")

		require.Len(t, activity.entries, 1)
		assert.Equal(t, domain.ActivityActionSheetViewed, activity.entries[0].Action)
		assert.Equal(t, "Data", activity.entries[0].SheetName)
	})

	t.Run("defaults_to_first_sheet", func(t *testing.T) {
		var gotName string
		accessor := &fakeAccessor{
			path:         "/data/book.xlsx",
			listSheetsFn: func(context.Context) ([]string, error) { return []string{"Data", "Notes"}, nil },
			readSheetFn: func(_ context.Context, name string) (*domain.Table, error) {
				gotName = name
				return dataTable(), nil
			},
		}
		router := newTestRouter(t, accessor, &fakeActivity{})

		rr := doGet(t, router, "/sheets")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Data", gotName)
	})

	t.Run("zero_columns_hides_form", func(t *testing.T) {
		accessor := &fakeAccessor{
			path:         "/data/book.xlsx",
			listSheetsFn: func(context.Context) ([]string, error) { return []string{"Empty"}, nil },
			readSheetFn: func(context.Context, string) (*domain.Table, error) {
				return &domain.Table{}, nil
			},
		}
		router := newTestRouter(t, accessor, &fakeActivity{})

		rr := doGet(t, router, "/sheets?sheet=Empty")
		require.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, "has no columns yet")
		assert.NotContains(t, body, "Add Row")
		assert.NotContains(t, body, `name="cell_`)
	})

	t.Run("unknown_sheet_is_not_found", func(t *testing.T) {
		accessor := &fakeAccessor{
			path:         "/data/book.xlsx",
			listSheetsFn: func(context.Context) ([]string, error) { return []string{"Data"}, nil },
			readSheetFn: func(_ context.Context, name string) (*domain.Table, error) {
				return nil, domain.ErrNotFound("sheet %q not found", name)
			},
		}
		router := newTestRouter(t, accessor, &fakeActivity{})

		rr := doGet(t, router, "/sheets?sheet=Ghost")
		require.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "not found")
	})
}

func TestSheetRowsCreate(t *testing.T) {
	t.Run("appends_row_and_renders_outcome", func(t *testing.T) {
		accessor := &fakeAccessor{
			path: "/data/book.xlsx",
			readSheetFn: func(context.Context, string) (*domain.Table, error) {
				return &domain.Table{Columns: []string{"A", "B"}, Rows: [][]string{{"1", "2"}}}, nil
			},
		}
		activity := &fakeActivity{}
		router := newTestRouter(t, accessor, activity)

		form := url.Values{}
		form.Set("cell_A", "3")
		form.Set("cell_B", "4")
		rr := postForm(t, router, "/sheets/Data/rows", form)

		require.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, "Appended 1 row to sheet Data")
		assert.Contains(t, body, "2 row(s)")

		require.Len(t, accessor.replaced, 1)
		assert.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, accessor.replaced[0].Rows)
		require.Len(t, activity.entries, 1)
		assert.Equal(t, domain.ActivityActionRowAppended, activity.entries[0].Action)
	})

	t.Run("write_error_shows_raw_message", func(t *testing.T) {
		accessor := &fakeAccessor{
			path: "/data/book.xlsx",
			readSheetFn: func(context.Context, string) (*domain.Table, error) {
				return &domain.Table{Columns: []string{"A"}, Rows: nil}, nil
			},
			replaceSheetFn: func(context.Context, string, *domain.Table) error {
				return domain.ErrWorkbookWrite("save workbook: disk full")
			},
		}
		activity := &fakeActivity{}
		router := newTestRouter(t, accessor, activity)

		form := url.Values{}
		form.Set("cell_A", "x")
		rr := postForm(t, router, "/sheets/Data/rows", form)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "disk full")
		assert.Empty(t, activity.entries)
	})

	t.Run("zero_columns_rejected", func(t *testing.T) {
		accessor := &fakeAccessor{
			path: "/data/book.xlsx",
			readSheetFn: func(context.Context, string) (*domain.Table, error) {
				return &domain.Table{}, nil
			},
		}
		router := newTestRouter(t, accessor, &fakeActivity{})

		rr := postForm(t, router, "/sheets/Empty/rows", url.Values{})
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "no columns")
	})

	t.Run("missing_csrf_token_rejected", func(t *testing.T) {
		accessor := &fakeAccessor{path: "/data/book.xlsx"}
		router := newTestRouter(t, accessor, &fakeActivity{})

		r := httptest.NewRequest(http.MethodPost, "/sheets/Data/rows", strings.NewReader("cell_A=3"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, r)

		require.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestActivityPage(t *testing.T) {
	t.Run("lists_entries", func(t *testing.T) {
		activity := &fakeActivity{entries: []domain.ActivityEntry{
			{ID: "1", Action: domain.ActivityActionRowAppended, SheetName: "Data", Detail: "appended 1 row, sheet now has 2", RowCount: 2},
		}}
		router := newTestRouter(t, &fakeAccessor{}, activity)

		rr := doGet(t, router, "/activity")
		require.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, "ROW_APPENDED")
		assert.Contains(t, body, "Data")
	})

	t.Run("empty_state", func(t *testing.T) {
		router := newTestRouter(t, &fakeAccessor{}, &fakeActivity{})

		rr := doGet(t, router, "/activity")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "No activity recorded yet")
	})
}

func TestStaticAssets(t *testing.T) {
	router := newTestRouter(t, &fakeAccessor{}, &fakeActivity{})

	rr := doGet(t, router, "/static/app.css")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), ".app-shell")
}
