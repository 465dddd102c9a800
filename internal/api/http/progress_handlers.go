package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alphaquiz/monthlyquiz/internal/progress"
)

// SaveProgressHandler upserts one progress blob.
// POST /progress/save {"userId":..., "progressType":..., "data":...}
func SaveProgressHandler(store progress.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID       string          `json:"userId"`
			ProgressType string          `json:"progressType"`
			Data         json.RawMessage `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		if req.UserID == "" || req.ProgressType == "" || len(req.Data) == 0 {
			writeErr(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		if err := store.Save(r.Context(), req.UserID, req.ProgressType, req.Data); err != nil {
			writeErr(w, http.StatusInternalServerError, "could not save progress")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// LoadProgressHandler fetches one progress blob.
// GET /progress/load?userId=...&progressType=...
func LoadProgressHandler(store progress.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("userId")
		progressType := r.URL.Query().Get("progressType")
		if userID == "" || progressType == "" {
			writeErr(w, http.StatusBadRequest, "Missing required parameters")
			return
		}
		e, err := store.Load(r.Context(), userID, progressType)
		if err != nil {
			if errors.Is(err, progress.ErrNotFound) {
				writeErr(w, http.StatusNotFound, "Progress not found")
				return
			}
			writeErr(w, http.StatusInternalServerError, "could not load progress")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"data":      e.Data,
			"timestamp": e.Timestamp,
		})
	}
}
