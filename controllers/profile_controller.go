package controllers

import (
	"net/http"

	"github.com/kikgames18/service-kpi-dashboard/models"
	"github.com/kikgames18/service-kpi-dashboard/services"
	"github.com/kikgames18/service-kpi-dashboard/userctx"
)

// ProfileController handles the current user's profile requests
type ProfileController struct {
	services *services.Services
}

// NewProfileController creates a new profile controller
func NewProfileController(services *services.Services) *ProfileController {
	return &ProfileController{services: services}
}

// Show handles GET /api/data/profile
func (c *ProfileController) Show(w http.ResponseWriter, r *http.Request) {
	user, ok := userctx.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := c.services.Profile.GetProfile(r.Context(), user.ID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Profile not found")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// Update handles PUT /api/data/profile
func (c *ProfileController) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := userctx.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var form models.ProfileForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := c.services.Profile.UpdateProfile(r.Context(), user.ID, &form)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
