// Package ui renders the server-side HTML interface for browsing the
// workbook and appending rows. Pages are built with gomponents and share
// one service layer with the JSON API.
package ui

import (
	"net/http"

	"sheetdesk/internal/service"

	gomponents "maragu.dev/gomponents"
)

type Handler struct {
	Sheets     *service.SheetService
	Activity   *service.ActivityService
	Production bool
}

func NewHandler(sheets *service.SheetService, activity *service.ActivityService, production bool) *Handler {
	return &Handler{
		Sheets:     sheets,
		Activity:   activity,
		Production: production,
	}
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}
