package services

import (
	"go.uber.org/zap"

	"github.com/kikgames18/service-kpi-dashboard/authenticator"
	"github.com/kikgames18/service-kpi-dashboard/repositories"
)

// Services holds all service instances
type Services struct {
	Audit      AuditService
	Auth       AuthService
	Order      OrderService
	Technician TechnicianService
	Profile    ProfileService
	KPI        KPIService
	Backup     BackupService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, tokens authenticator.TokenProvider, logger *zap.Logger) *Services {
	audit := NewAuditService(repos.Audit, logger)

	return &Services{
		Audit:      audit,
		Auth:       NewAuthService(repos.Profile, tokens, audit),
		Order:      NewOrderService(repos.Order, repos.Technician, audit),
		Technician: NewTechnicianService(repos.Technician, audit),
		Profile:    NewProfileService(repos.Profile, audit),
		KPI:        NewKPIService(repos.KPI),
		Backup:     NewBackupService(repos.Backup),
	}
}
