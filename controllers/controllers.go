package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/kikgames18/service-kpi-dashboard/services"
)

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError writes a JSON error body with the given status code
func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, map[string]string{"error": message})
}

// decodeJSON parses a JSON request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// Controllers holds all controller instances
type Controllers struct {
	Auth       *AuthController
	Order      *OrderController
	Technician *TechnicianController
	Profile    *ProfileController
	Audit      *AuditController
	KPI        *KPIController
	Backup     *BackupController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services) *Controllers {
	return &Controllers{
		Auth:       NewAuthController(services),
		Order:      NewOrderController(services),
		Technician: NewTechnicianController(services),
		Profile:    NewProfileController(services),
		Audit:      NewAuditController(services),
		KPI:        NewKPIController(services),
		Backup:     NewBackupController(services),
	}
}
