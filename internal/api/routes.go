package api

import "github.com/go-chi/chi/v5"

// MountRoutes attaches the /v1 API routes to the given router.
func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/workbook", h.GetWorkbook)
	r.Route("/sheets", func(r chi.Router) {
		r.Get("/", h.ListSheets)
		r.Get("/{sheet}", h.GetSheet)
		r.Post("/{sheet}/rows", h.AppendRow)
	})
	r.Get("/activity", h.ListActivity)
}
