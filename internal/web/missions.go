package web

import (
	"net/http"

	"github.com/justestif/go-fan-missions/internal/db"
)

// CreateMission handles POST /missions/.
func (h *Handlers) CreateMission(w http.ResponseWriter, r *http.Request) {
	p, err := readParams(r)
	if err != nil {
		h.paramError(w, err)
		return
	}
	trackID, err := p.RequireInt("track_id", 64)
	if err != nil {
		h.paramError(w, err)
		return
	}
	title, err := p.RequireString("title")
	if err != nil {
		h.paramError(w, err)
		return
	}
	points, err := p.RequireInt("points", 32)
	if err != nil {
		h.paramError(w, err)
		return
	}

	mission, err := h.store.Missions.Create(r.Context(), trackID, title, int(points))
	if err != nil {
		h.storeError(w, r, err, "Track not found", "Mission already exists for this track")
		return
	}
	h.logger.Info("mission created", "mission_id", mission.ID, "track_id", trackID)
	h.writeJSON(w, http.StatusOK, mission)
}

// ListMissions handles GET /missions/.
func (h *Handlers) ListMissions(w http.ResponseWriter, r *http.Request) {
	missions, err := h.store.Missions.List(r.Context())
	if err != nil {
		h.storeError(w, r, err, "", "")
		return
	}
	h.writeJSON(w, http.StatusOK, missions)
}

// ListMissionsByTrack handles GET /missions/by-track/{track_id}.
func (h *Handlers) ListMissionsByTrack(w http.ResponseWriter, r *http.Request) {
	trackID, err := pathID(r, "track_id")
	if err != nil {
		h.paramError(w, err)
		return
	}

	missions, err := h.store.Missions.ListByTrack(r.Context(), trackID)
	if err != nil {
		h.storeError(w, r, err, "Track not found", "")
		return
	}
	h.writeJSON(w, http.StatusOK, missions)
}

// GetMission handles GET /missions/{id}.
func (h *Handlers) GetMission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.paramError(w, err)
		return
	}

	mission, err := h.store.Missions.Get(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err, "Mission not found", "")
		return
	}
	h.writeJSON(w, http.StatusOK, mission)
}

// UpdateMission handles PUT /missions/{id}. Only supplied fields change.
func (h *Handlers) UpdateMission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.paramError(w, err)
		return
	}
	p, err := readParams(r)
	if err != nil {
		h.paramError(w, err)
		return
	}

	var patch db.MissionPatch
	if title, ok, err := p.String("title"); err != nil {
		h.paramError(w, err)
		return
	} else if ok {
		patch.Title = &title
	}
	if points, ok, err := p.Int("points", 32); err != nil {
		h.paramError(w, err)
		return
	} else if ok {
		n := int(points)
		patch.Points = &n
	}

	// Nothing to change reads the current row.
	var mission *db.Mission
	if patch.Empty() {
		mission, err = h.store.Missions.Get(r.Context(), id)
	} else {
		mission, err = h.store.Missions.Update(r.Context(), id, patch)
	}
	if err != nil {
		h.storeError(w, r, err, "Mission not found", "Mission already exists for this track")
		return
	}
	h.writeJSON(w, http.StatusOK, mission)
}

// DeleteMission handles DELETE /missions/{id}.
func (h *Handlers) DeleteMission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.paramError(w, err)
		return
	}

	if err := h.store.Missions.Delete(r.Context(), id); err != nil {
		h.storeError(w, r, err, "Mission not found", "")
		return
	}
	h.logger.Info("mission deleted", "mission_id", id)
	h.writeJSON(w, http.StatusOK, messageResponse{Message: "Mission deleted"})
}
