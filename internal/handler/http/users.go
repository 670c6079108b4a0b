package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-guardian/internal/utils"
	"github.com/MKhiriev/go-guardian/models"
	"github.com/go-chi/chi/v5"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) error {
	query := models.ListUsersQuery{
		Page:  queryUint(r, "page", defaultPage),
		Limit: queryUint(r, "limit", defaultLimit),
	}

	list, err := h.services.UserService.ListUsers(r.Context(), query)
	if err != nil {
		return err
	}

	_, err = utils.WriteJSON(w, list, http.StatusOK)
	return err
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) error {
	user, err := h.services.UserService.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	_, err = utils.WriteJSON(w, userResponse{User: user}, http.StatusOK)
	return err
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) error {
	var req models.UpdateUserRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	user, err := h.services.UserService.UpdateUser(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		return err
	}

	_, err = utils.WriteJSON(w, userResponse{User: user}, http.StatusOK)
	return err
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) error {
	if err := h.services.UserService.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// queryUint parses a non-negative query parameter. A missing parameter
// yields def, a malformed one yields 0 so validation rejects it.
func queryUint(r *http.Request, name string, def uint64) uint64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
