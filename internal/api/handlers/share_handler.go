// filepath: internal/api/handlers/share_handler.go
package handlers

import (
	"flexnas/internal/models"
	"net/http"
)

// @Summary List shares
// @Description Admins see every share; other users see public shares and shares they are listed on.
// @Tags Shares
// @Produce json
// @Success 200 {array} models.Share
// @Failure 401 {object} ErrorResponse
// @Router /shares [get]
// @Security BearerAuth
func (h *Handlers) GetShares(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	shares, err := h.Share.ListShares(r.Context(), actor)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, shares)
}

// @Summary Get share
// @Tags Shares
// @Produce json
// @Param id path int true "Share ID"
// @Success 200 {object} models.Share
// @Failure 404 {object} ErrorResponse
// @Router /shares/{id} [get]
// @Security BearerAuth
func (h *Handlers) GetShare(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	share, err := h.Share.GetShare(r.Context(), actor, id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, share)
}

// @Summary Create share
// @Description Requires manage_shares.
// @Tags Shares
// @Accept json
// @Produce json
// @Param share body models.SharePayload true "Share"
// @Success 201 {object} models.Share
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /shares [post]
// @Security BearerAuth
func (h *Handlers) CreateShare(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	var payload models.SharePayload
	if !decodeBody(w, r, &payload) {
		return
	}
	share, err := h.Share.CreateShare(r.Context(), actor, payload)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, share)
}

// @Summary Update share
// @Description Replaces every mutable field. Requires manage_shares.
// @Tags Shares
// @Accept json
// @Produce json
// @Param id path int true "Share ID"
// @Param share body models.SharePayload true "Share"
// @Success 200 {object} models.Share
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /shares/{id} [put]
// @Security BearerAuth
func (h *Handlers) UpdateShare(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var payload models.SharePayload
	if !decodeBody(w, r, &payload) {
		return
	}
	share, err := h.Share.UpdateShare(r.Context(), actor, id, payload)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, share)
}

// @Summary Delete share
// @Description Requires manage_shares.
// @Tags Shares
// @Produce json
// @Param id path int true "Share ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /shares/{id} [delete]
// @Security BearerAuth
func (h *Handlers) DeleteShare(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Share.DeleteShare(r.Context(), actor, id); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Share deleted successfully."})
}
