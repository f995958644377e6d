package web

import "net/http"

// CompleteMission handles POST /completed-missions/.
func (h *Handlers) CompleteMission(w http.ResponseWriter, r *http.Request) {
	p, err := readParams(r)
	if err != nil {
		h.paramError(w, err)
		return
	}
	userID, err := p.RequireInt("user_id", 64)
	if err != nil {
		h.paramError(w, err)
		return
	}
	missionID, err := p.RequireInt("mission_id", 64)
	if err != nil {
		h.paramError(w, err)
		return
	}

	completed, err := h.store.Completions.Complete(r.Context(), userID, missionID)
	if err != nil {
		h.storeError(w, r, err, "Mission not found", "Mission already completed by this user")
		return
	}
	h.logger.Info("mission completed", "user_id", userID, "mission_id", missionID)
	h.writeJSON(w, http.StatusOK, completed)
}

// ListCompletedMissions handles GET /completed-missions/.
func (h *Handlers) ListCompletedMissions(w http.ResponseWriter, r *http.Request) {
	completions, err := h.store.Completions.List(r.Context())
	if err != nil {
		h.storeError(w, r, err, "", "")
		return
	}
	h.writeJSON(w, http.StatusOK, completions)
}

// ListCompletedMissionsByUser handles GET /completed-missions/by-user/{user_id}.
func (h *Handlers) ListCompletedMissionsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		h.paramError(w, err)
		return
	}

	completions, err := h.store.Completions.ListByUser(r.Context(), userID)
	if err != nil {
		h.storeError(w, r, err, "", "")
		return
	}
	h.writeJSON(w, http.StatusOK, completions)
}

// GetCompletedMission handles GET /completed-missions/{id}.
func (h *Handlers) GetCompletedMission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.paramError(w, err)
		return
	}

	completed, err := h.store.Completions.Get(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err, "Completed mission not found", "")
		return
	}
	h.writeJSON(w, http.StatusOK, completed)
}

// DeleteCompletedMission handles DELETE /completed-missions/{id}.
func (h *Handlers) DeleteCompletedMission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.paramError(w, err)
		return
	}

	if err := h.store.Completions.Delete(r.Context(), id); err != nil {
		h.storeError(w, r, err, "Completed mission not found", "")
		return
	}
	h.logger.Info("completion deleted", "completion_id", id)
	h.writeJSON(w, http.StatusOK, messageResponse{Message: "Completed mission deleted"})
}
