package controllers

import (
	"net/http"
	"strconv"

	"github.com/kikgames18/service-kpi-dashboard/models"
	"github.com/kikgames18/service-kpi-dashboard/services"
)

// KPIController handles KPI metric requests
type KPIController struct {
	services *services.Services
}

// NewKPIController creates a new KPI controller
func NewKPIController(services *services.Services) *KPIController {
	return &KPIController{services: services}
}

// Index handles GET /api/data/kpi-metrics?limit=
func (c *KPIController) Index(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	metrics, err := c.services.KPI.GetMetrics(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if metrics == nil {
		metrics = []models.KPIMetric{}
	}

	respondJSON(w, http.StatusOK, metrics)
}
