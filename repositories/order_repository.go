package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kikgames18/service-kpi-dashboard/models"
)

// OrderRepository interface defines service order database operations
type OrderRepository interface {
	GetAll(ctx context.Context) ([]models.ServiceOrder, error)
	GetByID(ctx context.Context, id string) (*models.ServiceOrder, error)
	Create(ctx context.Context, order *models.ServiceOrder) error
	Update(ctx context.Context, order *models.ServiceOrder) error
	Delete(ctx context.Context, id string) error
	CountByOrderNumberPrefix(ctx context.Context, prefix string) (int, error)
}

// orderRepository implements OrderRepository interface
type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `
	o.id, o.order_number, o.customer_name, o.customer_phone, o.device_type,
	o.device_brand, o.device_model, o.issue_description, o.status, o.priority,
	o.estimated_cost, o.final_cost, o.assigned_to, o.received_date,
	o.completed_date, o.updated_at, t.full_name
`

// GetAll retrieves all service orders, most recently received first,
// with the assigned technician's name resolved
func (r *orderRepository) GetAll(ctx context.Context) ([]models.ServiceOrder, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM service_orders o
		LEFT JOIN technicians t ON o.assigned_to = t.id
		ORDER BY o.received_date DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []models.ServiceOrder
	for rows.Next() {
		order, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// GetByID retrieves a service order by ID
func (r *orderRepository) GetByID(ctx context.Context, id string) (*models.ServiceOrder, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM service_orders o
		LEFT JOIN technicians t ON o.assigned_to = t.id
		WHERE o.id = ?
	`

	row := r.db.QueryRowContext(ctx, query, id)
	order, err := scanOrder(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order with ID %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}

// Create creates a new service order
func (r *orderRepository) Create(ctx context.Context, order *models.ServiceOrder) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.ReceivedDate.IsZero() {
		order.ReceivedDate = time.Now()
	}
	order.UpdatedAt = time.Now()

	query := `
		INSERT INTO service_orders (
			id, order_number, customer_name, customer_phone, device_type,
			device_brand, device_model, issue_description, status, priority,
			estimated_cost, final_cost, assigned_to, received_date,
			completed_date, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		order.ID,
		order.OrderNumber,
		order.CustomerName,
		order.CustomerPhone,
		order.DeviceType,
		order.DeviceBrand,
		order.DeviceModel,
		order.IssueDescription,
		order.Status,
		order.Priority,
		order.EstimatedCost,
		order.FinalCost,
		order.AssignedTo,
		order.ReceivedDate,
		order.CompletedDate,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// Update updates an existing service order
func (r *orderRepository) Update(ctx context.Context, order *models.ServiceOrder) error {
	order.UpdatedAt = time.Now()

	query := `
		UPDATE service_orders SET
			customer_name = ?, customer_phone = ?, device_type = ?,
			device_brand = ?, device_model = ?, issue_description = ?,
			status = ?, priority = ?, estimated_cost = ?, final_cost = ?,
			assigned_to = ?, completed_date = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		order.CustomerName,
		order.CustomerPhone,
		order.DeviceType,
		order.DeviceBrand,
		order.DeviceModel,
		order.IssueDescription,
		order.Status,
		order.Priority,
		order.EstimatedCost,
		order.FinalCost,
		order.AssignedTo,
		order.CompletedDate,
		order.UpdatedAt,
		order.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("order with ID %s not found", order.ID)
	}

	return nil
}

// Delete deletes a service order by ID
func (r *orderRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM service_orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("order with ID %s not found", id)
	}

	return nil
}

// CountByOrderNumberPrefix counts orders whose number starts with the given
// prefix, used for per-day order number generation
func (r *orderRepository) CountByOrderNumberPrefix(ctx context.Context, prefix string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM service_orders WHERE order_number LIKE ?`,
		prefix+"%",
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

func scanOrder(scan func(dest ...interface{}) error) (*models.ServiceOrder, error) {
	var order models.ServiceOrder
	var deviceBrand, deviceModel, assignedTo, technicianName sql.NullString
	var estimatedCost, finalCost sql.NullFloat64
	var completedDate sql.NullTime

	err := scan(
		&order.ID,
		&order.OrderNumber,
		&order.CustomerName,
		&order.CustomerPhone,
		&order.DeviceType,
		&deviceBrand,
		&deviceModel,
		&order.IssueDescription,
		&order.Status,
		&order.Priority,
		&estimatedCost,
		&finalCost,
		&assignedTo,
		&order.ReceivedDate,
		&completedDate,
		&order.UpdatedAt,
		&technicianName,
	)
	if err != nil {
		return nil, err
	}

	if deviceBrand.Valid {
		order.DeviceBrand = &deviceBrand.String
	}
	if deviceModel.Valid {
		order.DeviceModel = &deviceModel.String
	}
	if assignedTo.Valid {
		order.AssignedTo = &assignedTo.String
	}
	if technicianName.Valid {
		order.TechnicianName = &technicianName.String
	}
	if estimatedCost.Valid {
		order.EstimatedCost = &estimatedCost.Float64
	}
	if finalCost.Valid {
		order.FinalCost = &finalCost.Float64
	}
	if completedDate.Valid {
		order.CompletedDate = &completedDate.Time
	}

	return &order, nil
}
