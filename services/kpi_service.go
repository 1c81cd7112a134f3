package services

import (
	"context"

	"github.com/kikgames18/service-kpi-dashboard/models"
	"github.com/kikgames18/service-kpi-dashboard/repositories"
)

// DefaultKPILimit is the dashboard's default window of daily metrics.
const DefaultKPILimit = 7

// KPIService interface defines KPI metric business logic
type KPIService interface {
	GetMetrics(ctx context.Context, limit int) ([]models.KPIMetric, error)
}

// kpiService implements KPIService interface
type kpiService struct {
	kpiRepo repositories.KPIRepository
}

// NewKPIService creates a new KPI service
func NewKPIService(kpiRepo repositories.KPIRepository) KPIService {
	return &kpiService{kpiRepo: kpiRepo}
}

// GetMetrics retrieves the most recent daily metrics, newest first
func (s *kpiService) GetMetrics(ctx context.Context, limit int) ([]models.KPIMetric, error) {
	if limit <= 0 {
		limit = DefaultKPILimit
	}
	return s.kpiRepo.GetRecent(ctx, limit)
}
