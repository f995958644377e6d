package web

import (
	"net/http"

	"github.com/justestif/go-fan-missions/internal/db"
)

// CreateTrack handles POST /tracks/.
func (h *Handlers) CreateTrack(w http.ResponseWriter, r *http.Request) {
	p, err := readParams(r)
	if err != nil {
		h.paramError(w, err)
		return
	}
	title, err := p.RequireString("title")
	if err != nil {
		h.paramError(w, err)
		return
	}
	artist, err := p.RequireString("artist_name")
	if err != nil {
		h.paramError(w, err)
		return
	}

	track, err := h.store.Tracks.Create(r.Context(), title, artist)
	if err != nil {
		h.storeError(w, r, err, "Track not found", "Track already exists")
		return
	}
	h.logger.Info("track created", "track_id", track.ID, "title", track.Title)
	h.writeJSON(w, http.StatusOK, track)
}

// ListTracks handles GET /tracks/.
func (h *Handlers) ListTracks(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.store.Tracks.List(r.Context())
	if err != nil {
		h.storeError(w, r, err, "", "")
		return
	}
	h.writeJSON(w, http.StatusOK, tracks)
}

// GetTrack handles GET /tracks/{id}.
func (h *Handlers) GetTrack(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.paramError(w, err)
		return
	}

	track, err := h.store.Tracks.Get(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err, "Track not found", "")
		return
	}
	h.writeJSON(w, http.StatusOK, track)
}

// UpdateTrack handles PUT /tracks/{id}. Only supplied fields change.
func (h *Handlers) UpdateTrack(w http.ResponseWriter, r *http.Request) {
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

	var patch db.TrackPatch
	if title, ok, err := p.String("title"); err != nil {
		h.paramError(w, err)
		return
	} else if ok {
		patch.Title = &title
	}
	if artist, ok, err := p.String("artist_name"); err != nil {
		h.paramError(w, err)
		return
	} else if ok {
		patch.ArtistName = &artist
	}

	// Nothing to change reads the current row.
	var track *db.Track
	if patch.Empty() {
		track, err = h.store.Tracks.Get(r.Context(), id)
	} else {
		track, err = h.store.Tracks.Update(r.Context(), id, patch)
	}
	if err != nil {
		h.storeError(w, r, err, "Track not found", "Track already exists")
		return
	}
	h.writeJSON(w, http.StatusOK, track)
}

// DeleteTrack handles DELETE /tracks/{id}. Missions and their completions
// are removed with the track.
func (h *Handlers) DeleteTrack(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.paramError(w, err)
		return
	}

	if err := h.store.Tracks.Delete(r.Context(), id); err != nil {
		h.storeError(w, r, err, "Track not found", "")
		return
	}
	h.logger.Info("track deleted", "track_id", id)
	h.writeJSON(w, http.StatusOK, messageResponse{Message: "Track deleted"})
}
