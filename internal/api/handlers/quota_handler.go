// filepath: internal/api/handlers/quota_handler.go
package handlers

import (
	"flexnas/internal/models"
	"net/http"
)

// @Summary List quotas
// @Description Admins see every quota; other users see their own.
// @Tags Quotas
// @Produce json
// @Success 200 {array} models.Quota
// @Router /quotas [get]
// @Security BearerAuth
func (h *Handlers) GetQuotas(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	quotas, err := h.Quota.ListQuotas(r.Context(), actor)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, quotas)
}

// @Summary Get quota
// @Tags Quotas
// @Produce json
// @Param id path int true "Quota ID"
// @Success 200 {object} models.Quota
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /quotas/{id} [get]
// @Security BearerAuth
func (h *Handlers) GetQuota(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	quota, err := h.Quota.GetQuota(r.Context(), actor, id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, quota)
}

// @Summary Create quota
// @Description Admin only.
// @Tags Quotas
// @Accept json
// @Produce json
// @Param quota body models.QuotaCreatePayload true "Quota"
// @Success 201 {object} models.Quota
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /quotas [post]
// @Security BearerAuth
func (h *Handlers) CreateQuota(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	var payload models.QuotaCreatePayload
	if !decodeBody(w, r, &payload) {
		return
	}
	quota, err := h.Quota.CreateQuota(r.Context(), actor, payload)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, quota)
}

// @Summary Update quota
// @Description Admin only.
// @Tags Quotas
// @Accept json
// @Produce json
// @Param id path int true "Quota ID"
// @Param quota body models.QuotaUpdatePayload true "Limits"
// @Success 200 {object} models.Quota
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /quotas/{id} [put]
// @Security BearerAuth
func (h *Handlers) UpdateQuota(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var payload models.QuotaUpdatePayload
	if !decodeBody(w, r, &payload) {
		return
	}
	quota, err := h.Quota.UpdateQuota(r.Context(), actor, id, payload)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, quota)
}

// @Summary Delete quota
// @Description Admin only.
// @Tags Quotas
// @Produce json
// @Param id path int true "Quota ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /quotas/{id} [delete]
// @Security BearerAuth
func (h *Handlers) DeleteQuota(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Quota.DeleteQuota(r.Context(), actor, id); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Quota deleted successfully."})
}
