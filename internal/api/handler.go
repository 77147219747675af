// Package api implements the versioned JSON API mounted under /v1.
package api

import (
	"encoding/json"
	"net/http"

	"sheetdesk/internal/service"
)

type Handler struct {
	Sheets   *service.SheetService
	Activity *service.ActivityService
}

func NewHandler(sheets *service.SheetService, activity *service.ActivityService) *Handler {
	return &Handler{Sheets: sheets, Activity: activity}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
