package controllers

import (
	"errors"
	"net/http"

	"github.com/kikgames18/service-kpi-dashboard/models"
	"github.com/kikgames18/service-kpi-dashboard/services"
	"github.com/kikgames18/service-kpi-dashboard/userctx"
)

// AuthController handles authentication requests
type AuthController struct {
	services *services.Services
}

// NewAuthController creates a new auth controller
func NewAuthController(services *services.Services) *AuthController {
	return &AuthController{services: services}
}

// Login handles POST /api/auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Email == "" || payload.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := c.services.Auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Register handles POST /api/auth/register
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var form models.RegisterForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := c.services.Auth.Register(r.Context(), &form)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// Me handles GET /api/auth/me
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := userctx.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := c.services.Profile.GetProfile(r.Context(), user.ID)
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"user": profile})
}

// ChangePassword handles POST /api/auth/change-password
func (c *AuthController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := userctx.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var payload struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := c.services.Auth.ChangePassword(r.Context(), user.ID, payload.CurrentPassword, payload.NewPassword); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}
