package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kikgames18/service-kpi-dashboard/models"
	"github.com/kikgames18/service-kpi-dashboard/repositories"
	"github.com/kikgames18/service-kpi-dashboard/userctx"
)

// OrderService interface defines service order business logic
type OrderService interface {
	GetAllOrders(ctx context.Context) ([]models.ServiceOrder, error)
	GetOrderByID(ctx context.Context, id string) (*models.ServiceOrder, error)
	CreateOrder(ctx context.Context, form *models.OrderForm) (*models.ServiceOrder, error)
	UpdateOrder(ctx context.Context, id string, form *models.OrderUpdateForm) (*models.ServiceOrder, error)
	DeleteOrder(ctx context.Context, id string) error
}

// orderService implements OrderService interface
type orderService struct {
	orderRepo repositories.OrderRepository
	techRepo  repositories.TechnicianRepository
	audit     AuditService
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo repositories.OrderRepository, techRepo repositories.TechnicianRepository, audit AuditService) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		techRepo:  techRepo,
		audit:     audit,
	}
}

// GetAllOrders retrieves all service orders
func (s *orderService) GetAllOrders(ctx context.Context) ([]models.ServiceOrder, error) {
	return s.orderRepo.GetAll(ctx)
}

// GetOrderByID retrieves a service order by ID
func (s *orderService) GetOrderByID(ctx context.Context, id string) (*models.ServiceOrder, error) {
	if id == "" {
		return nil, fmt.Errorf("order ID is required")
	}
	return s.orderRepo.GetByID(ctx, id)
}

// CreateOrder creates a new service order with a generated order number
// and records the creation in the change log
func (s *orderService) CreateOrder(ctx context.Context, form *models.OrderForm) (*models.ServiceOrder, error) {
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errors, ", "))
	}

	if form.AssignedTo != nil {
		if _, err := s.techRepo.GetByID(ctx, *form.AssignedTo); err != nil {
			return nil, fmt.Errorf("assigned technician not found: %w", err)
		}
	}

	orderNumber, err := s.generateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order := &models.ServiceOrder{
		OrderNumber:      orderNumber,
		CustomerName:     strings.TrimSpace(form.CustomerName),
		CustomerPhone:    strings.TrimSpace(form.CustomerPhone),
		DeviceType:       form.DeviceType,
		DeviceBrand:      form.DeviceBrand,
		DeviceModel:      form.DeviceModel,
		IssueDescription: form.IssueDescription,
		Status:           form.Status,
		Priority:         form.Priority,
		EstimatedCost:    form.EstimatedCost,
		AssignedTo:       form.AssignedTo,
	}
	if order.Status == "" {
		order.Status = models.StatusPending
	}
	if order.Priority == "" {
		order.Priority = models.PriorityNormal
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Re-read to pick up the resolved technician name for the snapshot
	created, err := s.orderRepo.GetByID(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created order: %w", err)
	}

	s.audit.Record(ctx, models.EntityOrder, created.ID, models.ActionCreate,
		actorID(ctx), nil, created.Snapshot())

	return created, nil
}

// UpdateOrder applies a partial update to an order, recording the before
// and after snapshots in the change log
func (s *orderService) UpdateOrder(ctx context.Context, id string, form *models.OrderUpdateForm) (*models.ServiceOrder, error) {
	if id == "" {
		return nil, fmt.Errorf("order ID is required")
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	before := order.Snapshot()

	if err := form.Apply(order); err != nil {
		return nil, fmt.Errorf("invalid order update: %w", err)
	}

	if form.AssignedTo != nil && *form.AssignedTo != "" {
		if _, err := s.techRepo.GetByID(ctx, *form.AssignedTo); err != nil {
			return nil, fmt.Errorf("assigned technician not found: %w", err)
		}
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	updated, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load updated order: %w", err)
	}

	s.audit.Record(ctx, models.EntityOrder, updated.ID, models.ActionUpdate,
		actorID(ctx), before, updated.Snapshot())

	return updated, nil
}

// DeleteOrder deletes a service order and records the deletion
func (s *orderService) DeleteOrder(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("order ID is required")
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("order not found: %w", err)
	}
	before := order.Snapshot()

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	s.audit.Record(ctx, models.EntityOrder, id, models.ActionDelete,
		actorID(ctx), before, nil)

	return nil
}

// generateOrderNumber produces ORD-YYYYMMDD-NNNN, numbered per day
func (s *orderService) generateOrderNumber(ctx context.Context) (string, error) {
	prefix := "ORD-" + time.Now().Format("20060102") + "-"

	count, err := s.orderRepo.CountByOrderNumberPrefix(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}

	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

// actorID returns the acting user's id from the request context, nil when
// the mutation runs without an authenticated user
func actorID(ctx context.Context) *string {
	if id := userctx.GetUserID(ctx); id != "" {
		return &id
	}
	return nil
}
