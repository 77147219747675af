package ui

import (
	"errors"
	"net/http"
	"strings"

	"sheetdesk/internal/domain"
)

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Sheets.Summary(r.Context())
	if err != nil {
		var notFound *domain.WorkbookNotFoundError
		if errors.As(err, &notFound) {
			renderHTML(w, http.StatusOK, missingWorkbookPage(notFound.Path, notFound.Message))
			return
		}
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, overviewPage(overviewPageData{
		Path:       summary.Path,
		SheetCount: summary.SheetCount,
		Sheets:     summary.Sheets,
	}))
}

func (h *Handler) SheetsPage(w http.ResponseWriter, r *http.Request) {
	sheets, err := h.Sheets.ListSheets(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	selected := strings.TrimSpace(r.URL.Query().Get("sheet"))
	if selected == "" && len(sheets) > 0 {
		selected = sheets[0]
	}

	d := sheetsPageData{
		Sheets:    sheets,
		Selected:  selected,
		CSRFField: csrfFieldProvider(r),
	}
	if selected != "" {
		table, err := h.Sheets.GetSheet(r.Context(), selected)
		if err != nil {
			h.renderServiceError(w, r, err)
			return
		}
		d.Columns = table.Columns
		d.Rows = table.Rows
		d.RowCount = table.RowCount()
	}

	renderHTML(w, http.StatusOK, sheetsPage(d))
}

func (h *Handler) ActivityPage(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Activity.Recent(r.Context(), domain.DefaultActivityLimit)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, activityPage(entries))
}

// renderServiceError maps domain errors to an error page. Write failures and
// unknown errors keep their raw message so the user sees what actually broke.
func (h *Handler) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	title := "Unexpected Error"
	message := err.Error()

	var notFound *domain.WorkbookNotFoundError
	var corrupt *domain.CorruptWorkbookError
	var missing *domain.NotFoundError
	var validation *domain.ValidationError
	var write *domain.WorkbookWriteError
	if errors.As(err, &notFound) {
		status = http.StatusNotFound
		title = "Workbook Not Found"
		message = notFound.Error()
	} else if errors.As(err, &corrupt) {
		status = http.StatusUnprocessableEntity
		title = "Workbook Not Readable"
		message = corrupt.Error()
	} else if errors.As(err, &missing) {
		status = http.StatusNotFound
		title = "Not Found"
		message = missing.Error()
	} else if errors.As(err, &validation) {
		status = http.StatusBadRequest
		title = "Invalid Request"
		message = validation.Error()
	} else if errors.As(err, &write) {
		title = "Save Failed"
		message = write.Error()
	}

	renderHTML(w, status, errorPage(title, message))
}
