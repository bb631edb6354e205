// filepath: internal/api/handlers/auth_handler.go
package handlers

import (
	"flexnas/internal/logging"
	"flexnas/internal/models"
	"net/http"
)

// @Summary Log in
// @Description Exchanges a username and password for a bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /login [post]
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	resp, err := h.Session.Login(r.Context(), req.Username, req.Password, clientIP(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// @Summary Log out
// @Description Records the logout. Tokens stay valid until they expire.
// @Tags Auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse
// @Router /logout [post]
// @Security BearerAuth
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	logging.Log.Debugf("Logout: user '%s'", user.Username)
	h.Session.Logout(r.Context(), user)
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Logged out successfully."})
}
