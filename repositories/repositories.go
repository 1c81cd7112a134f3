package repositories

import (
	"database/sql"
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	Audit      AuditRepository
	Order      OrderRepository
	Technician TechnicianRepository
	Profile    ProfileRepository
	KPI        KPIRepository
	Backup     BackupRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Audit:      NewAuditRepository(db),
		Order:      NewOrderRepository(db),
		Technician: NewTechnicianRepository(db),
		Profile:    NewProfileRepository(db),
		KPI:        NewKPIRepository(db),
		Backup:     NewBackupRepository(db),
	}
}
