package ui

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sheetdesk/internal/ui/assets"
)

func MountRoutes(r chi.Router, h *Handler) {
	staticFS, err := fs.Sub(assets.StaticFS(), "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	r.Group(func(r chi.Router) {
		r.Use(h.EnsureCSRFToken)
		r.Use(h.RequireCSRF)
		r.Get("/", h.Home)
		r.Get("/sheets", h.SheetsPage)
		r.Post("/sheets/{sheet}/rows", h.SheetRowsCreate)
		r.Get("/activity", h.ActivityPage)
	})
}
