package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/justestif/go-fan-missions/internal/db"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Detail string `json:"detail"`
}

// messageResponse confirms a deletion.
type messageResponse struct {
	Message string `json:"message"`
}

// writeJSON writes data as a JSON response.
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("encoding response", "error", err)
	}
}

// writeDetail writes a JSON error body.
func (h *Handlers) writeDetail(w http.ResponseWriter, status int, detail string) {
	h.writeJSON(w, status, errorResponse{Detail: detail})
}

// storeError maps a repository error onto a status code. notFound and
// conflict are the messages for ErrNotFound and ErrConflict; a missing
// parent row reports its own message.
func (h *Handlers) storeError(w http.ResponseWriter, r *http.Request, err error, notFound, conflict string) {
	switch {
	case errors.Is(err, db.ErrUserNotFound):
		h.writeDetail(w, http.StatusNotFound, "User not found")
	case errors.Is(err, db.ErrTrackNotFound):
		h.writeDetail(w, http.StatusNotFound, "Track not found")
	case errors.Is(err, db.ErrMissionNotFound):
		h.writeDetail(w, http.StatusNotFound, "Mission not found")
	case errors.Is(err, db.ErrNotFound):
		h.writeDetail(w, http.StatusNotFound, notFound)
	case errors.Is(err, db.ErrConflict):
		h.writeDetail(w, http.StatusBadRequest, conflict)
	default:
		h.logger.Error("store failure",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		h.writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}

// paramError reports a missing or malformed request parameter.
func (h *Handlers) paramError(w http.ResponseWriter, err error) {
	var bodyErr *bodyError
	if errors.As(err, &bodyErr) {
		h.writeDetail(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	h.writeDetail(w, http.StatusUnprocessableEntity, err.Error())
}
