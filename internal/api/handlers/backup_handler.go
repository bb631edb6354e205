// filepath: internal/api/handlers/backup_handler.go
package handlers

import (
	"flexnas/internal/models"
	"net/http"
)

// @Summary List backup jobs
// @Tags Backups
// @Produce json
// @Success 200 {array} models.Backup
// @Router /backups [get]
// @Security BearerAuth
func (h *Handlers) GetBackups(w http.ResponseWriter, r *http.Request) {
	backups, err := h.Backup.ListBackups(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, backups)
}

// @Summary Get backup job
// @Tags Backups
// @Produce json
// @Param id path int true "Backup ID"
// @Success 200 {object} models.Backup
// @Failure 404 {object} ErrorResponse
// @Router /backups/{id} [get]
// @Security BearerAuth
func (h *Handlers) GetBackup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	backup, err := h.Backup.GetBackup(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, backup)
}

// @Summary Create backup job
// @Description Requires manage_backups.
// @Tags Backups
// @Accept json
// @Produce json
// @Param backup body models.BackupPayload true "Backup job"
// @Success 201 {object} models.Backup
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /backups [post]
// @Security BearerAuth
func (h *Handlers) CreateBackup(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	var payload models.BackupPayload
	if !decodeBody(w, r, &payload) {
		return
	}
	backup, err := h.Backup.CreateBackup(r.Context(), actor, payload)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, backup)
}

// @Summary Run backup job
// @Description Stamps lastRun and nextRun. No data is copied. Requires manage_backups.
// @Tags Backups
// @Produce json
// @Param id path int true "Backup ID"
// @Success 200 {object} models.Backup
// @Failure 404 {object} ErrorResponse
// @Router /backups/{id}/run [post]
// @Security BearerAuth
func (h *Handlers) RunBackup(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	backup, err := h.Backup.RunBackup(r.Context(), actor, id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, backup)
}

// @Summary Delete backup job
// @Description Requires manage_backups.
// @Tags Backups
// @Produce json
// @Param id path int true "Backup ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /backups/{id} [delete]
// @Security BearerAuth
func (h *Handlers) DeleteBackup(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Backup.DeleteBackup(r.Context(), actor, id); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Backup deleted successfully."})
}
