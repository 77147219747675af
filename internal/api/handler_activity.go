package api

import (
	"net/http"
	"strconv"
	"time"
)

type activityEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Sheet     string    `json:"sheet"`
	Detail    string    `json:"detail"`
	RowCount  int       `json:"row_count"`
	CreatedAt time.Time `json:"created_at"`
}

type activityListResponse struct {
	Data []activityEntry `json:"data"`
}

func (h *Handler) ListActivity(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeErrorCode(w, http.StatusBadRequest, codeValidationFailed, "limit must be an integer")
			return
		}
		limit = parsed
	}

	entries, err := h.Activity.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	data := make([]activityEntry, len(entries))
	for i, e := range entries {
		data[i] = activityEntry{
			ID:        e.ID,
			Action:    e.Action,
			Sheet:     e.SheetName,
			Detail:    e.Detail,
			RowCount:  e.RowCount,
			CreatedAt: e.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, activityListResponse{Data: data})
}
