package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps repo sentinels to their status codes; anything else is a
// 500 with the failing operation in front of the cause.
func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, models.ErrConflict):
		http.Error(w, "conflict", http.StatusConflict)
	default:
		http.Error(w, op+": "+err.Error(), http.StatusInternalServerError)
	}
}

// fieldErrors is the flattened field -> message map a failed validation
// renders as 400 JSON.
type fieldErrors map[string]string

func (fe fieldErrors) write(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"errors": fe})
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writePage(w http.ResponseWriter, r *http.Request, data any, p ports.ListParams, total int64) {
	writeJSON(w, http.StatusOK,
		models.Envelope(responseFormat(r), data, models.NewPagination(p.Page, p.PageSize, total)))
}

func publishAction(at *time.Time) string {
	if at != nil {
		return ports.ActionPublished
	}
	return ports.ActionUnpublished
}
