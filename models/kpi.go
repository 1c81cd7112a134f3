package models

import (
	"time"
)

// KPIMetric is one day of aggregated workshop performance numbers
type KPIMetric struct {
	ID                     int64     `json:"id"`
	MetricDate             time.Time `json:"metric_date"`
	TotalOrders            int       `json:"total_orders"`
	CompletedOrders        int       `json:"completed_orders"`
	CancelledOrders        int       `json:"cancelled_orders"`
	Revenue                float64   `json:"revenue"`
	AvgCompletionTimeHours float64   `json:"avg_completion_time_hours"`
	CustomerSatisfaction   float64   `json:"customer_satisfaction"`
}

// Backup is the full-database export produced by the backup endpoint and
// consumed by restore. Profiles are carried with their password hashes by
// the repository layer, not through this JSON-facing type.
type Backup struct {
	CreatedAt   time.Time       `json:"created_at"`
	Profiles    []BackupProfile `json:"profiles"`
	Technicians []Technician    `json:"technicians"`
	Orders      []ServiceOrder  `json:"orders"`
	KPIMetrics  []KPIMetric     `json:"kpi_metrics"`
}

// BackupProfile mirrors Profile but round-trips the password hash so
// restored accounts keep their credentials.
type BackupProfile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     *string   `json:"full_name"`
	Role         string    `json:"role"`
	PasswordHash *string   `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
