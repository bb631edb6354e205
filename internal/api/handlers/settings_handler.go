// filepath: internal/api/handlers/settings_handler.go
package handlers

import (
	"flexnas/internal/models"
	"net/http"

	"github.com/gorilla/mux"
)

// Settings sections addressable under /settings/{section}.
const (
	SectionSystem  = "system"
	SectionNetwork = "network"
	SectionStorage = "storage"
)

// @Summary Get all settings
// @Description Returns the system, network and storage sections. Unset sections are reported with defaults.
// @Tags Settings
// @Produce json
// @Success 200 {object} models.Settings
// @Router /settings [get]
// @Security BearerAuth
func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.GetSettings(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}

// @Summary Update settings
// @Description Each supplied section replaces the stored record; omitted sections are untouched. Requires manage_system.
// @Tags Settings
// @Accept json
// @Produce json
// @Param settings body models.SettingsUpdatePayload true "Sections to replace"
// @Success 200 {object} models.Settings
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /settings [put]
// @Security BearerAuth
func (h *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	var payload models.SettingsUpdatePayload
	if !decodeBody(w, r, &payload) {
		return
	}
	settings, err := h.Settings.UpdateSettings(r.Context(), actor, payload)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}

// @Summary Get one settings section
// @Description Returns the stored record, or 404 when the section was never written.
// @Tags Settings
// @Produce json
// @Param section path string true "system, network or storage"
// @Success 200 {object} interface{}
// @Failure 404 {object} ErrorResponse
// @Router /settings/{section} [get]
// @Security BearerAuth
func (h *Handlers) GetSettingsSection(w http.ResponseWriter, r *http.Request) {
	var (
		record interface{}
		err    error
	)
	switch section := mux.Vars(r)["section"]; section {
	case SectionSystem:
		record, err = h.Settings.GetSystemSettings(r.Context())
	case SectionNetwork:
		record, err = h.Settings.GetNetworkSettings(r.Context())
	case SectionStorage:
		record, err = h.Settings.GetStorageSettings(r.Context())
	default:
		respondWithError(w, http.StatusNotFound, "Unknown settings section: "+section)
		return
	}
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, record)
}

// @Summary Replace one settings section
// @Description Replaces the whole record. Requires manage_system.
// @Tags Settings
// @Accept json
// @Produce json
// @Param section path string true "system, network or storage"
// @Success 200 {object} interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /settings/{section} [put]
// @Security BearerAuth
func (h *Handlers) UpdateSettingsSection(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	var (
		record interface{}
		err    error
	)
	switch section := mux.Vars(r)["section"]; section {
	case SectionSystem:
		var st models.SystemSettings
		if !decodeBody(w, r, &st) {
			return
		}
		record, err = h.Settings.UpdateSystemSettings(r.Context(), actor, st)
	case SectionNetwork:
		var ns models.NetworkSettings
		if !decodeBody(w, r, &ns) {
			return
		}
		record, err = h.Settings.UpdateNetworkSettings(r.Context(), actor, ns)
	case SectionStorage:
		var st models.StorageSettings
		if !decodeBody(w, r, &st) {
			return
		}
		record, err = h.Settings.UpdateStorageSettings(r.Context(), actor, st)
	default:
		respondWithError(w, http.StatusNotFound, "Unknown settings section: "+section)
		return
	}
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, record)
}
