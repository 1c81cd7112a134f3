package services

import (
	"context"
	"fmt"

	"github.com/kikgames18/service-kpi-dashboard/models"
	"github.com/kikgames18/service-kpi-dashboard/repositories"
)

// BackupService interface defines backup/restore business logic
type BackupService interface {
	CreateBackup(ctx context.Context) (*models.Backup, error)
	RestoreBackup(ctx context.Context, backup *models.Backup) error
}

// backupService implements BackupService interface
type backupService struct {
	backupRepo repositories.BackupRepository
}

// NewBackupService creates a new backup service
func NewBackupService(backupRepo repositories.BackupRepository) BackupService {
	return &backupService{backupRepo: backupRepo}
}

// CreateBackup exports the whole database into one document
func (s *backupService) CreateBackup(ctx context.Context) (*models.Backup, error) {
	return s.backupRepo.Export(ctx)
}

// RestoreBackup replaces all data with the backup's contents atomically
func (s *backupService) RestoreBackup(ctx context.Context, backup *models.Backup) error {
	if backup == nil {
		return fmt.Errorf("backup payload is required")
	}
	if len(backup.Profiles) == 0 {
		return fmt.Errorf("invalid backup: no profiles, restoring would lock everyone out")
	}
	return s.backupRepo.Restore(ctx, backup)
}
