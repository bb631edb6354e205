// filepath: internal/api/handlers/system_handler.go
package handlers

import (
	"flexnas/internal/models"
	"net/http"
	"strconv"
)

// @Summary Get activity log
// @Description Newest first. Requires view_logs.
// @Tags System
// @Produce json
// @Param limit query int false "Maximum entries (1-500, default 100)"
// @Success 200 {array} models.ActivityEntry
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /activity-log [get]
// @Security BearerAuth
func (h *Handlers) GetActivityLog(w http.ResponseWriter, r *http.Request) {
	limit := models.DefaultActivityLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = n
	}
	entries, err := h.Activity.ListRecent(r.Context(), limit)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, entries)
}

// @Summary Get system status
// @Description CPU, memory and root filesystem utilisation.
// @Tags System
// @Produce json
// @Success 200 {object} models.SystemStatus
// @Router /system-status [get]
// @Security BearerAuth
func (h *Handlers) GetSystemStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.Probe.Status(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, status)
}

// @Summary List volumes
// @Description Mounted partitions with usage.
// @Tags System
// @Produce json
// @Success 200 {array} models.Volume
// @Router /volumes [get]
// @Security BearerAuth
func (h *Handlers) GetVolumes(w http.ResponseWriter, r *http.Request) {
	volumes, err := h.Probe.Volumes(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, volumes)
}

// @Summary List directory
// @Description Lists a directory below the configured files root.
// @Tags System
// @Produce json
// @Param path query string false "Directory relative to the files root"
// @Success 200 {array} models.FileEntry
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /files [get]
// @Security BearerAuth
func (h *Handlers) GetFiles(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Files.List(r.URL.Query().Get("path"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, entries)
}
