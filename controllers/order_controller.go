package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kikgames18/service-kpi-dashboard/models"
	"github.com/kikgames18/service-kpi-dashboard/services"
)

// OrderController handles service order requests
type OrderController struct {
	services *services.Services
}

// NewOrderController creates a new order controller
func NewOrderController(services *services.Services) *OrderController {
	return &OrderController{services: services}
}

// Index handles GET /api/data/orders
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	orders, err := c.services.Order.GetAllOrders(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if orders == nil {
		orders = []models.ServiceOrder{}
	}
	respondJSON(w, http.StatusOK, orders)
}

// Create handles POST /api/data/orders
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var form models.OrderForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := c.services.Order.CreateOrder(r.Context(), &form)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

// Update handles PUT /api/data/orders/{id}
func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var form models.OrderUpdateForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := c.services.Order.UpdateOrder(r.Context(), id, &form)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// Delete handles DELETE /api/data/orders/{id}
func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := c.services.Order.DeleteOrder(r.Context(), id); err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}

// statusForError maps service errors onto HTTP status codes by their shape
func statusForError(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "validation failed"),
		strings.Contains(msg, "required"),
		strings.Contains(msg, "invalid"),
		strings.Contains(msg, "already exists"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
