package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"sheetdesk/internal/domain"
	"sheetdesk/internal/service"
)

var errTest = fmt.Errorf("test error")

// === Workbook Accessor Mock ===

type mockAccessor struct {
	path           string
	listSheetsFn   func(ctx context.Context) ([]string, error)
	readSheetFn    func(ctx context.Context, name string) (*domain.Table, error)
	replaceSheetFn func(ctx context.Context, name string, table *domain.Table) error
	replaced       []*domain.Table
}

func (m *mockAccessor) Path() string { return m.path }

func (m *mockAccessor) ListSheets(ctx context.Context) ([]string, error) {
	if m.listSheetsFn == nil {
		panic("unexpected call to ListSheets")
	}
	return m.listSheetsFn(ctx)
}

func (m *mockAccessor) ReadSheet(ctx context.Context, name string) (*domain.Table, error) {
	if m.readSheetFn == nil {
		panic("unexpected call to ReadSheet")
	}
	return m.readSheetFn(ctx, name)
}

func (m *mockAccessor) ReplaceSheet(ctx context.Context, name string, table *domain.Table) error {
	m.replaced = append(m.replaced, table)
	if m.replaceSheetFn == nil {
		return nil
	}
	return m.replaceSheetFn(ctx, name, table)
}

// === Activity Repository Mock ===

type mockActivityRepo struct {
	entries  []domain.ActivityEntry
	gotLimit int
	listErr  error
}

func (m *mockActivityRepo) Insert(_ context.Context, e *domain.ActivityEntry) error {
	m.entries = append(m.entries, *e)
	return nil
}

func (m *mockActivityRepo) ListRecent(_ context.Context, limit int) ([]domain.ActivityEntry, error) {
	m.gotLimit = limit
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.entries, nil
}

// === Helpers ===

func newAPIRouter(t *testing.T, accessor domain.WorkbookAccessor, activity domain.ActivityRepository) chi.Router {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	h := NewHandler(service.NewSheetService(accessor, activity, logger), service.NewActivityService(activity))
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

func doPost(t *testing.T, router chi.Router, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, r)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return env
}
