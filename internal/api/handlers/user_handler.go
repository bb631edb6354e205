// filepath: internal/api/handlers/user_handler.go
package handlers

import (
	"flexnas/internal/logging"
	"flexnas/internal/models"
	"net/http"

	"github.com/gorilla/mux"
)

// @Summary Get current user
// @Description Get the currently authenticated user's details.
// @Tags Users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse
// @Router /me [get]
// @Security BearerAuth
func (h *Handlers) GetUserMe(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	logging.Log.Debugf("GetUserMe: Handler started for user '%s' (ID: %d)", user.Username, user.ID)
	respondWithJSON(w, http.StatusOK, user)
}

// @Summary Update current user's password
// @Description Allows a user to change their own password.
// @Tags Users
// @Accept json
// @Produce json
// @Param password body models.PasswordUpdateRequest true "Password update request"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /me [patch]
// @Security BearerAuth
func (h *Handlers) UpdateUserMe(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.PasswordUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "Password cannot be empty")
		return
	}

	if err := h.User.UpdateOwnPassword(r.Context(), user, req.Password); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Password updated successfully."})
}

// @Summary List users
// @Description Lists every account. Admin only.
// @Tags Users
// @Produce json
// @Success 200 {array} models.User
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /users [get]
// @Security BearerAuth
func (h *Handlers) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.User.GetUsers(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, users)
}

// @Summary Create user
// @Description Creates an account. Admin only.
// @Tags Users
// @Accept json
// @Produce json
// @Param user body models.UserCreatePayload true "New user"
// @Success 201 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /users [post]
// @Security BearerAuth
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	var payload models.UserCreatePayload
	if !decodeBody(w, r, &payload) {
		return
	}
	user, err := h.User.CreateUser(r.Context(), actor, payload)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, user)
}

// @Summary Update user
// @Description Updates email, role, status, permissions or password of an account. Admin only.
// @Tags Users
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param user body models.UserUpdatePayload true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /users/{username} [put]
// @Security BearerAuth
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	var payload models.UserUpdatePayload
	if !decodeBody(w, r, &payload) {
		return
	}
	user, err := h.User.UpdateUser(r.Context(), actor, mux.Vars(r)["username"], payload)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// @Summary Get a user's quotas
// @Description Lists quota rows of one user. Callers may read their own; admins may read anyone's.
// @Tags Quotas
// @Produce json
// @Param username path string true "Username"
// @Success 200 {array} models.Quota
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{username}/quota [get]
// @Security BearerAuth
func (h *Handlers) GetUserQuota(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	quotas, err := h.Quota.GetUserQuotas(r.Context(), actor, mux.Vars(r)["username"])
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, quotas)
}
