package controllers

import (
	"net/http"

	"github.com/kikgames18/service-kpi-dashboard/models"
	"github.com/kikgames18/service-kpi-dashboard/services"
	"github.com/kikgames18/service-kpi-dashboard/userctx"
)

// BackupController handles database backup and restore requests
type BackupController struct {
	services *services.Services
}

// NewBackupController creates a new backup controller
func NewBackupController(services *services.Services) *BackupController {
	return &BackupController{services: services}
}

// Create handles POST /api/data/backup/create
func (c *BackupController) Create(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	backup, err := c.services.Backup.CreateBackup(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create backup")
		return
	}

	respondJSON(w, http.StatusOK, backup)
}

// Restore handles POST /api/data/backup/restore
func (c *BackupController) Restore(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var payload struct {
		Backup *models.Backup `json:"backup"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := c.services.Backup.RestoreBackup(r.Context(), payload.Backup); err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Backup restored successfully"})
}

// requireAdmin restricts full-database operations to admin accounts
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	user, ok := userctx.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return false
	}
	if user.Role != models.RoleAdmin {
		respondError(w, http.StatusForbidden, "Admin role required")
		return false
	}
	return true
}
