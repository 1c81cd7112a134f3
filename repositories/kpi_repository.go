package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kikgames18/service-kpi-dashboard/models"
)

// KPIRepository interface defines KPI metric database operations
type KPIRepository interface {
	GetRecent(ctx context.Context, limit int) ([]models.KPIMetric, error)
	Upsert(ctx context.Context, metric *models.KPIMetric) error
}

// kpiRepository implements KPIRepository interface
type kpiRepository struct {
	db *sql.DB
}

// NewKPIRepository creates a new KPI repository
func NewKPIRepository(db *sql.DB) KPIRepository {
	return &kpiRepository{db: db}
}

// GetRecent retrieves the most recent daily metrics, newest first
func (r *kpiRepository) GetRecent(ctx context.Context, limit int) ([]models.KPIMetric, error) {
	query := `
		SELECT id, metric_date, total_orders, completed_orders, cancelled_orders,
		       revenue, avg_completion_time_hours, customer_satisfaction
		FROM kpi_metrics
		ORDER BY metric_date DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query KPI metrics: %w", err)
	}
	defer rows.Close()

	var metrics []models.KPIMetric
	for rows.Next() {
		var metric models.KPIMetric
		err := rows.Scan(
			&metric.ID,
			&metric.MetricDate,
			&metric.TotalOrders,
			&metric.CompletedOrders,
			&metric.CancelledOrders,
			&metric.Revenue,
			&metric.AvgCompletionTimeHours,
			&metric.CustomerSatisfaction,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan KPI metric: %w", err)
		}
		metrics = append(metrics, metric)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating KPI metrics: %w", err)
	}

	return metrics, nil
}

// Upsert inserts or replaces the metric row for its date
func (r *kpiRepository) Upsert(ctx context.Context, metric *models.KPIMetric) error {
	query := `
		INSERT INTO kpi_metrics (
			metric_date, total_orders, completed_orders, cancelled_orders,
			revenue, avg_completion_time_hours, customer_satisfaction
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(metric_date) DO UPDATE SET
			total_orders = excluded.total_orders,
			completed_orders = excluded.completed_orders,
			cancelled_orders = excluded.cancelled_orders,
			revenue = excluded.revenue,
			avg_completion_time_hours = excluded.avg_completion_time_hours,
			customer_satisfaction = excluded.customer_satisfaction
	`

	_, err := r.db.ExecContext(ctx, query,
		models.FormatDate(metric.MetricDate),
		metric.TotalOrders,
		metric.CompletedOrders,
		metric.CancelledOrders,
		metric.Revenue,
		metric.AvgCompletionTimeHours,
		metric.CustomerSatisfaction,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert KPI metric: %w", err)
	}

	return nil
}
