package controllers

import (
	"net/http"
	"strconv"

	"github.com/kikgames18/service-kpi-dashboard/services"
)

// AuditController handles change history requests
type AuditController struct {
	services *services.Services
}

// NewAuditController creates a new audit controller
func NewAuditController(services *services.Services) *AuditController {
	return &AuditController{services: services}
}

// Index handles GET /api/data/audit-log?entity_type=&entity_id=&limit=
func (c *AuditController) Index(w http.ResponseWriter, r *http.Request) {
	entityType := r.URL.Query().Get("entity_type")
	entityID := r.URL.Query().Get("entity_id")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := c.services.Audit.Query(r.Context(), entityType, entityID, limit)
	if err != nil {
		// A failed read must be visible: never degrade to an empty list
		respondError(w, http.StatusInternalServerError, "Failed to load audit log")
		return
	}

	respondJSON(w, http.StatusOK, entries)
}
