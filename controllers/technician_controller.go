package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kikgames18/service-kpi-dashboard/models"
	"github.com/kikgames18/service-kpi-dashboard/services"
)

// TechnicianController handles technician requests
type TechnicianController struct {
	services *services.Services
}

// NewTechnicianController creates a new technician controller
func NewTechnicianController(services *services.Services) *TechnicianController {
	return &TechnicianController{services: services}
}

// Index handles GET /api/data/technicians
func (c *TechnicianController) Index(w http.ResponseWriter, r *http.Request) {
	technicians, err := c.services.Technician.GetAllTechnicians(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if technicians == nil {
		technicians = []models.Technician{}
	}
	respondJSON(w, http.StatusOK, technicians)
}

// Create handles POST /api/data/technicians
func (c *TechnicianController) Create(w http.ResponseWriter, r *http.Request) {
	var form models.TechnicianForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	technician, err := c.services.Technician.CreateTechnician(r.Context(), &form)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, technician)
}

// Update handles PUT /api/data/technicians/{id}
func (c *TechnicianController) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var form models.TechnicianForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	technician, err := c.services.Technician.UpdateTechnician(r.Context(), id, &form)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, technician)
}

// Delete handles DELETE /api/data/technicians/{id}
func (c *TechnicianController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := c.services.Technician.DeleteTechnician(r.Context(), id); err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Technician deleted successfully"})
}
