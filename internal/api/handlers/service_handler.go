// filepath: internal/api/handlers/service_handler.go
package handlers

import (
	"flexnas/internal/models"
	"net/http"

	"github.com/gorilla/mux"
)

// @Summary List services
// @Tags Services
// @Produce json
// @Success 200 {array} models.ServiceView
// @Router /services [get]
// @Security BearerAuth
func (h *Handlers) GetServices(w http.ResponseWriter, r *http.Request) {
	list, err := h.Services.ListServices(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

// @Summary Get service
// @Tags Services
// @Produce json
// @Param id path int true "Service ID"
// @Success 200 {object} models.ServiceView
// @Failure 404 {object} ErrorResponse
// @Router /services/{id} [get]
// @Security BearerAuth
func (h *Handlers) GetService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	view, err := h.Services.GetService(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// @Summary Update service
// @Description Sets the enabled flag and optionally replaces the config. Requires manage_system.
// @Tags Services
// @Accept json
// @Produce json
// @Param id path int true "Service ID"
// @Param service body models.ServiceUpdatePayload true "Update"
// @Success 200 {object} models.ServiceView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /services/{id} [put]
// @Security BearerAuth
func (h *Handlers) UpdateService(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var payload models.ServiceUpdatePayload
	if !decodeBody(w, r, &payload) {
		return
	}
	view, err := h.Services.UpdateService(r.Context(), actor, id, payload)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// @Summary Control service
// @Description start, stop or restart. Restart leaves the service enabled. Requires manage_system.
// @Tags Services
// @Produce json
// @Param id path int true "Service ID"
// @Param action path string true "start, stop or restart"
// @Success 200 {object} models.ServiceView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /services/{id}/{action} [post]
// @Security BearerAuth
func (h *Handlers) ControlService(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	view, err := h.Services.ControlService(r.Context(), actor, id, mux.Vars(r)["action"])
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}
