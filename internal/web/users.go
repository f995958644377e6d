package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CreateUser handles POST /users/.
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	p, err := readParams(r)
	if err != nil {
		h.paramError(w, err)
		return
	}
	nickname, err := p.RequireString("nickname")
	if err != nil {
		h.paramError(w, err)
		return
	}

	user, err := h.store.Users.Create(r.Context(), nickname)
	if err != nil {
		h.storeError(w, r, err, "User not found", "Nickname already exists")
		return
	}
	h.logger.Info("user created", "user_id", user.ID, "nickname", user.Nickname)
	h.writeJSON(w, http.StatusOK, user)
}

// ListUsers handles GET /users/.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.Users.List(r.Context())
	if err != nil {
		h.storeError(w, r, err, "", "")
		return
	}
	h.writeJSON(w, http.StatusOK, users)
}

// GetUser handles GET /users/{id}.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.paramError(w, err)
		return
	}

	user, err := h.store.Users.Get(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err, "User not found", "")
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}

// GetUserByNickname handles GET /users/by-nickname/{nickname}.
func (h *Handlers) GetUserByNickname(w http.ResponseWriter, r *http.Request) {
	nickname := chi.URLParam(r, "nickname")

	user, err := h.store.Users.GetByNickname(r.Context(), nickname)
	if err != nil {
		h.storeError(w, r, err, "User not found", "")
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /users/{id}. The user's completions go with it.
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.paramError(w, err)
		return
	}

	if err := h.store.Users.Delete(r.Context(), id); err != nil {
		h.storeError(w, r, err, "User not found", "")
		return
	}
	h.logger.Info("user deleted", "user_id", id)
	h.writeJSON(w, http.StatusOK, messageResponse{Message: "User deleted"})
}
