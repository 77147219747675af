package ui

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) SheetRowsCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderHTML(w, http.StatusBadRequest, errorPage("Invalid Request", "Unable to parse form."))
		return
	}

	values := make(map[string]string)
	for key := range r.Form {
		if strings.HasPrefix(key, "cell_") {
			values[strings.TrimPrefix(key, "cell_")] = formString(r.Form, key)
		}
	}

	sheet := sheetParam(r)
	rowCount, err := h.Sheets.AppendRow(r.Context(), sheet, values)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	// Render the outcome instead of redirecting back to the table. The sheet
	// view is only re-read when the user navigates to it.
	renderHTML(w, http.StatusOK, rowAddedPage(sheet, rowCount))
}

func sheetParam(r *http.Request) string {
	name := chi.URLParam(r, "sheet")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	return name
}
