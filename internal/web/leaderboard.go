package web

import "net/http"

// UserPoints handles GET /user-points/{user_id}. The body is a bare integer.
func (h *Handlers) UserPoints(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		h.paramError(w, err)
		return
	}

	points, err := h.store.Leaderboard.UserPoints(r.Context(), userID)
	if err != nil {
		h.storeError(w, r, err, "", "")
		return
	}
	h.writeJSON(w, http.StatusOK, points)
}

// Leaderboard handles GET /leaderboard/.
func (h *Handlers) Leaderboard(w http.ResponseWriter, r *http.Request) {
	standings, err := h.store.Leaderboard.Standings(r.Context())
	if err != nil {
		h.storeError(w, r, err, "", "")
		return
	}
	h.writeJSON(w, http.StatusOK, standings)
}
