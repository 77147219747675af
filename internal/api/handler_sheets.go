package api

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

type workbookResponse struct {
	Path       string   `json:"path"`
	SheetCount int      `json:"sheet_count"`
	Sheets     []string `json:"sheets"`
}

func (h *Handler) GetWorkbook(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Sheets.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	sheets := summary.Sheets
	if sheets == nil {
		sheets = []string{}
	}
	writeJSON(w, http.StatusOK, workbookResponse{
		Path:       summary.Path,
		SheetCount: summary.SheetCount,
		Sheets:     sheets,
	})
}

type sheetRef struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

type sheetListResponse struct {
	Sheets []sheetRef `json:"sheets"`
}

func (h *Handler) ListSheets(w http.ResponseWriter, r *http.Request) {
	names, err := h.Sheets.ListSheets(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	sheets := make([]sheetRef, len(names))
	for i, name := range names {
		sheets[i] = sheetRef{Name: name, Position: i + 1}
	}
	writeJSON(w, http.StatusOK, sheetListResponse{Sheets: sheets})
}

type sheetResponse struct {
	Name     string     `json:"name"`
	Columns  []string   `json:"columns"`
	Rows     [][]string `json:"rows"`
	RowCount int        `json:"row_count"`
}

func (h *Handler) GetSheet(w http.ResponseWriter, r *http.Request) {
	name := sheetParam(r)
	table, err := h.Sheets.GetSheet(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	columns := table.Columns
	if columns == nil {
		columns = []string{}
	}
	rows := table.Rows
	if rows == nil {
		rows = [][]string{}
	}
	writeJSON(w, http.StatusOK, sheetResponse{
		Name:     name,
		Columns:  columns,
		Rows:     rows,
		RowCount: table.RowCount(),
	})
}

type appendRowRequest struct {
	Values map[string]string `json:"values"`
}

type appendRowResponse struct {
	Sheet    string `json:"sheet"`
	RowCount int    `json:"row_count"`
}

func (h *Handler) AppendRow(w http.ResponseWriter, r *http.Request) {
	var req appendRowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, codeValidationFailed, "invalid request body: "+err.Error())
		return
	}

	name := sheetParam(r)
	rowCount, err := h.Sheets.AppendRow(r.Context(), name, req.Values)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, appendRowResponse{Sheet: name, RowCount: rowCount})
}

// sheetParam returns the sheet path parameter with URL escapes resolved, so
// names with spaces or slashes round-trip through the route.
func sheetParam(r *http.Request) string {
	name := chi.URLParam(r, "sheet")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	return name
}
