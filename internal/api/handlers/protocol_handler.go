// filepath: internal/api/handlers/protocol_handler.go
package handlers

import (
	"flexnas/internal/models"
	"net/http"

	"github.com/gorilla/mux"
)

// @Summary List file-sharing protocols
// @Description Public unless server.protect_protocol_status is set.
// @Tags Protocols
// @Produce json
// @Success 200 {array} models.ProtocolView
// @Router /protocols [get]
func (h *Handlers) GetProtocols(w http.ResponseWriter, r *http.Request) {
	list, err := h.Protocol.ListProtocols(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

// @Summary Get protocol
// @Description Public unless server.protect_protocol_status is set.
// @Tags Protocols
// @Produce json
// @Param name path string true "Protocol name"
// @Success 200 {object} models.ProtocolView
// @Failure 404 {object} ErrorResponse
// @Router /protocols/{name} [get]
func (h *Handlers) GetProtocol(w http.ResponseWriter, r *http.Request) {
	view, err := h.Protocol.GetProtocol(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// @Summary Update protocol
// @Description Sets enabled, port and config. Known config keys are type-checked. Requires manage_system.
// @Tags Protocols
// @Accept json
// @Produce json
// @Param name path string true "Protocol name"
// @Param protocol body models.ProtocolUpdatePayload true "Update"
// @Success 200 {object} models.ProtocolView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /protocols/{name} [put]
// @Security BearerAuth
func (h *Handlers) UpdateProtocol(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	var payload models.ProtocolUpdatePayload
	if !decodeBody(w, r, &payload) {
		return
	}
	view, err := h.Protocol.UpdateProtocol(r.Context(), actor, mux.Vars(r)["name"], payload)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// @Summary Control protocol
// @Description start, stop or restart. Restart only refreshes lastUpdated. Requires manage_system.
// @Tags Protocols
// @Produce json
// @Param name path string true "Protocol name"
// @Param action path string true "start, stop or restart"
// @Success 200 {object} models.ProtocolView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /protocols/{name}/{action} [post]
// @Security BearerAuth
func (h *Handlers) ControlProtocol(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	view, err := h.Protocol.ControlProtocol(r.Context(), actor, vars["name"], vars["action"])
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// @Summary List shares with protocol overrides
// @Tags Protocols
// @Produce json
// @Param name path string true "Protocol name"
// @Success 200 {array} models.ProtocolShare
// @Failure 404 {object} ErrorResponse
// @Router /protocols/{name}/shares [get]
// @Security BearerAuth
func (h *Handlers) GetProtocolShares(w http.ResponseWriter, r *http.Request) {
	shares, err := h.Protocol.ListProtocolShares(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, shares)
}

// @Summary Get one share's protocol override
// @Tags Protocols
// @Produce json
// @Param name path string true "Protocol name"
// @Param id path int true "Share ID"
// @Success 200 {object} models.ProtocolShare
// @Failure 404 {object} ErrorResponse
// @Router /protocols/{name}/shares/{id} [get]
// @Security BearerAuth
func (h *Handlers) GetProtocolShare(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	share, err := h.Protocol.GetProtocolShare(r.Context(), mux.Vars(r)["name"], id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, share)
}

// @Summary Set one share's protocol override
// @Description Other shares' overrides are preserved. Requires manage_shares.
// @Tags Protocols
// @Accept json
// @Produce json
// @Param name path string true "Protocol name"
// @Param id path int true "Share ID"
// @Param override body models.ProtocolSharePayload true "Override"
// @Success 200 {object} models.ProtocolShare
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /protocols/{name}/shares/{id} [put]
// @Security BearerAuth
func (h *Handlers) UpdateProtocolShare(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var payload models.ProtocolSharePayload
	if !decodeBody(w, r, &payload) {
		return
	}
	share, err := h.Protocol.UpdateProtocolShare(r.Context(), actor, mux.Vars(r)["name"], id, payload)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, share)
}
