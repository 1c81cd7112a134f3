package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kikgames18/service-kpi-dashboard/models"
)

func strPtr(s string) *string {
	return &s
}

// TestDescribeChanges_CreateReturnsPlaceholder tests that create records carry no change entries
func TestDescribeChanges_CreateReturnsPlaceholder(t *testing.T) {
	record := &models.ChangeRecord{
		EntityType: models.EntityOrder,
		EntityID:   "order-1",
		Action:     models.ActionCreate,
		NewValues: models.Snapshot{
			"status":        models.String(models.StatusPending),
			"customer_name": models.String("Петров П.П."),
		},
	}

	assert.Equal(t, []string{NoChanges}, DescribeChanges(record))
}

// TestDescribeChanges_MissingSnapshotReturnsPlaceholder tests records with no before snapshot
func TestDescribeChanges_MissingSnapshotReturnsPlaceholder(t *testing.T) {
	record := &models.ChangeRecord{
		EntityType: models.EntityOrder,
		EntityID:   "order-1",
		Action:     models.ActionUpdate,
		NewValues:  models.Snapshot{"status": models.String(models.StatusCompleted)},
	}

	assert.Equal(t, []string{NoChanges}, DescribeChanges(record))
}

// TestDescribeChanges_IdenticalSnapshotsReturnsPlaceholder tests updates that changed nothing
func TestDescribeChanges_IdenticalSnapshotsReturnsPlaceholder(t *testing.T) {
	snapshot := models.Snapshot{
		"status":   models.String(models.StatusInProgress),
		"priority": models.String(models.PriorityHigh),
	}
	record := &models.ChangeRecord{
		EntityType: models.EntityOrder,
		EntityID:   "order-1",
		Action:     models.ActionUpdate,
		OldValues:  snapshot,
		NewValues: models.Snapshot{
			"status":   models.String(models.StatusInProgress),
			"priority": models.String(models.PriorityHigh),
		},
	}

	assert.Equal(t, []string{NoChanges}, DescribeChanges(record))
}

// TestDescribeChanges_UntrackedFieldsIgnored tests that diffs outside the tracked set produce nothing
func TestDescribeChanges_UntrackedFieldsIgnored(t *testing.T) {
	record := &models.ChangeRecord{
		EntityType: models.EntityOrder,
		EntityID:   "order-1",
		Action:     models.ActionUpdate,
		OldValues: models.Snapshot{
			"status":         models.String(models.StatusPending),
			"estimated_cost": models.Number(1500),
		},
		NewValues: models.Snapshot{
			"status":         models.String(models.StatusPending),
			"estimated_cost": models.Number(2500),
		},
	}

	assert.Equal(t, []string{NoChanges}, DescribeChanges(record))
}

// TestDescribeChanges_StatusAndAssignment tests the rendered entries for a typical order update
func TestDescribeChanges_StatusAndAssignment(t *testing.T) {
	record := &models.ChangeRecord{
		EntityType: models.EntityOrder,
		EntityID:   "order-1",
		Action:     models.ActionUpdate,
		OldValues: models.Snapshot{
			"status":      models.String(models.StatusPending),
			"assigned_to": models.Null(),
		},
		NewValues: models.Snapshot{
			"status":          models.String(models.StatusCompleted),
			"assigned_to":     models.String("tech-7"),
			"technician_name": models.String("Иванов И.И."),
		},
	}

	assert.Equal(t, []string{
		"Статус: Ожидает → Завершено",
		"Был техник не назначен → стал Иванов И.И.",
	}, DescribeChanges(record))
}

// TestDescribeChanges_AssignmentRemoved tests unassigning a technician
func TestDescribeChanges_AssignmentRemoved(t *testing.T) {
	record := &models.ChangeRecord{
		EntityType: models.EntityOrder,
		EntityID:   "order-1",
		Action:     models.ActionUpdate,
		OldValues: models.Snapshot{
			"assigned_to":     models.String("tech-7"),
			"technician_name": models.String("Иванов И.И."),
		},
		NewValues: models.Snapshot{
			"assigned_to": models.Null(),
		},
	}

	assert.Equal(t, []string{"Был техник Иванов И.И. → стал не назначен"}, DescribeChanges(record))
}

// TestDescribeChanges_AssignmentIdentityAuthoritative tests that equal ids emit nothing
// even when the captured names differ (technician renamed between snapshots)
func TestDescribeChanges_AssignmentIdentityAuthoritative(t *testing.T) {
	record := &models.ChangeRecord{
		EntityType: models.EntityOrder,
		EntityID:   "order-1",
		Action:     models.ActionUpdate,
		OldValues: models.Snapshot{
			"assigned_to":     models.String("tech-7"),
			"technician_name": models.String("Иванов И."),
		},
		NewValues: models.Snapshot{
			"assigned_to":     models.String("tech-7"),
			"technician_name": models.String("Иванов Иван Иванович"),
		},
	}

	assert.Equal(t, []string{NoChanges}, DescribeChanges(record))
}

// TestDescribeChanges_AssignmentBothUnassignedSuppressed tests legacy records where
// both sides render as unassigned, including a stale name with no id behind it
func TestDescribeChanges_AssignmentBothUnassignedSuppressed(t *testing.T) {
	record := &models.ChangeRecord{
		EntityType: models.EntityOrder,
		EntityID:   "order-1",
		Action:     models.ActionUpdate,
		OldValues: models.Snapshot{
			"assigned_to": models.Null(),
			// stale name left behind by an old writer; no id, so unassigned
			"technician_name": models.String("Сидоров С.С."),
		},
		NewValues: models.Snapshot{
			"assigned_to": models.String(""),
		},
	}

	assert.Equal(t, []string{NoChanges}, DescribeChanges(record))
}

// TestDescribeChanges_AssignmentNamelessTechnician tests an assigned id with no
// captured name: it renders as unassigned rather than leaking the raw id
func TestDescribeChanges_AssignmentNamelessTechnician(t *testing.T) {
	record := &models.ChangeRecord{
		EntityType: models.EntityOrder,
		EntityID:   "order-1",
		Action:     models.ActionUpdate,
		OldValues:  models.Snapshot{"assigned_to": models.Null()},
		NewValues:  models.Snapshot{"assigned_to": models.String("tech-9")},
	}

	assert.Equal(t, []string{NoChanges}, DescribeChanges(record))
}

// TestDescribeChanges_PasswordChangeEntry tests that a password change renders as
// the fixed marker entry, first, with no credential material anywhere
func TestDescribeChanges_PasswordChangeEntry(t *testing.T) {
	record := &models.ChangeRecord{
		EntityType: models.EntityProfile,
		EntityID:   "user-1",
		Action:     models.ActionUpdate,
		OldValues: models.Snapshot{
			"email":            models.String("old@example.com"),
			"password_changed": models.Bool(true),
		},
		NewValues: models.Snapshot{
			"email":            models.String("new@example.com"),
			"password_changed": models.Bool(true),
		},
	}

	changes := DescribeChanges(record)

	assert.Equal(t, []string{
		"Смена пароля",
		"Email: old@example.com → new@example.com",
	}, changes)
	for _, entry := range changes {
		assert.NotContains(t, entry, "password_hash")
		assert.NotContains(t, entry, "$2a$")
	}
}

// TestDescribeChanges_PasswordMarkerNotAProfileField tests that a password_changed
// marker on a non-profile entity is ignored
func TestDescribeChanges_PasswordMarkerNotAProfileField(t *testing.T) {
	record := &models.ChangeRecord{
		EntityType: models.EntityOrder,
		EntityID:   "order-1",
		Action:     models.ActionUpdate,
		OldValues:  models.Snapshot{"password_changed": models.Bool(true)},
		NewValues:  models.Snapshot{"password_changed": models.Bool(true)},
	}

	assert.Equal(t, []string{NoChanges}, DescribeChanges(record))
}

// TestDescribeChanges_IsActiveRendering tests the technician activity toggle rendering
func TestDescribeChanges_IsActiveRendering(t *testing.T) {
	record := &models.ChangeRecord{
		EntityType: models.EntityTechnician,
		EntityID:   "tech-1",
		Action:     models.ActionUpdate,
		OldValues:  models.Snapshot{"is_active": models.Bool(true)},
		NewValues:  models.Snapshot{"is_active": models.Bool(false)},
	}

	assert.Equal(t, []string{"Статус: Активен → Неактивен"}, DescribeChanges(record))
}

// TestDescribeChanges_UnknownEnumCodePassesThrough tests that unmapped codes render as-is
func TestDescribeChanges_UnknownEnumCodePassesThrough(t *testing.T) {
	record := &models.ChangeRecord{
		EntityType: models.EntityOrder,
		EntityID:   "order-1",
		Action:     models.ActionUpdate,
		OldValues:  models.Snapshot{"status": models.String(models.StatusPending)},
		NewValues:  models.Snapshot{"status": models.String("on_hold")},
	}

	assert.Equal(t, []string{"Статус: Ожидает → on_hold"}, DescribeChanges(record))
}

// TestDescribeChanges_NullRendersAsDash tests null-to-value transitions
func TestDescribeChanges_NullRendersAsDash(t *testing.T) {
	record := &models.ChangeRecord{
		EntityType: models.EntityOrder,
		EntityID:   "order-1",
		Action:     models.ActionUpdate,
		OldValues:  models.Snapshot{"issue_description": models.Null()},
		NewValues:  models.Snapshot{"issue_description": models.String("Не включается")},
	}

	assert.Equal(t, []string{"Описание проблемы: — → Не включается"}, DescribeChanges(record))
}

// TestDescribeChanges_Deterministic tests that describing is pure: repeated calls
// yield identical output and the record's snapshots are untouched
func TestDescribeChanges_Deterministic(t *testing.T) {
	record := &models.ChangeRecord{
		EntityType: models.EntityOrder,
		EntityID:   "order-1",
		Action:     models.ActionUpdate,
		OldValues: models.Snapshot{
			"status":   models.String(models.StatusPending),
			"priority": models.String(models.PriorityNormal),
		},
		NewValues: models.Snapshot{
			"status":   models.String(models.StatusInProgress),
			"priority": models.String(models.PriorityUrgent),
		},
	}

	first := DescribeChanges(record)
	second := DescribeChanges(record)

	assert.Equal(t, first, second)
	assert.True(t, record.OldValues.Equal(models.Snapshot{
		"status":   models.String(models.StatusPending),
		"priority": models.String(models.PriorityNormal),
	}))
	assert.Equal(t, []string{
		"Статус: Ожидает → В работе",
		"Приоритет: Обычный → Срочный",
	}, first)
}

// TestEntityInfo_Order tests the order info block with device brand and model
func TestEntityInfo_Order(t *testing.T) {
	record := &models.ChangeRecord{
		EntityType: models.EntityOrder,
		EntityID:   "order-1",
		Action:     models.ActionUpdate,
		OldValues:  models.Snapshot{},
		NewValues: models.Snapshot{
			"customer_name": models.String("Петров П.П."),
			"device_type":   models.String(models.DeviceLaptop),
			"device_brand":  models.String("Lenovo"),
			"device_model":  models.String("ThinkPad X1"),
		},
	}

	assert.Equal(t, []InfoEntry{
		{Label: "Клиент", Value: "Петров П.П."},
		{Label: "Устройство", Value: "Ноутбук Lenovo ThinkPad X1"},
	}, EntityInfo(record))
}

// TestEntityInfo_DeleteUsesOldValues tests that delete records fall back to the before snapshot
func TestEntityInfo_DeleteUsesOldValues(t *testing.T) {
	record := &models.ChangeRecord{
		EntityType: models.EntityTechnician,
		EntityID:   "tech-1",
		Action:     models.ActionDelete,
		OldValues: models.Snapshot{
			"full_name": models.String("Иванов И.И."),
			"hire_date": models.String("2023-05-10"),
		},
	}

	assert.Equal(t, []InfoEntry{
		{Label: "ФИО", Value: "Иванов И.И."},
		{Label: "Дата найма", Value: "10.05.2023"},
	}, EntityInfo(record))
}

// TestEntityInfo_ProfileHasNoInfoBlock tests that profile records carry no info entries
func TestEntityInfo_ProfileHasNoInfoBlock(t *testing.T) {
	record := &models.ChangeRecord{
		EntityType: models.EntityProfile,
		EntityID:   "user-1",
		Action:     models.ActionUpdate,
		OldValues:  models.Snapshot{"email": models.String("a@b.com")},
		NewValues:  models.Snapshot{"email": models.String("c@d.com")},
	}

	assert.Empty(t, EntityInfo(record))
}

// TestProfileSnapshotExcludesHash tests the credential boundary: snapshots built
// from a profile never contain the password hash
func TestProfileSnapshotExcludesHash(t *testing.T) {
	profile := &models.Profile{
		ID:           "user-1",
		Email:        "user@example.com",
		FullName:     strPtr("Пользователь"),
		Role:         models.RoleUser,
		PasswordHash: strPtr("$2a$10$abcdefghijklmnopqrstuv"),
		CreatedAt:    time.Now(),
	}

	snapshot := profile.PasswordChangeSnapshot()

	_, hasHash := snapshot["password_hash"]
	assert.False(t, hasHash)
	for _, field := range []string{"id", "email", "full_name", "role"} {
		got, _ := snapshot.Get(field).Text()
		assert.NotContains(t, got, "$2a$")
	}
	assert.True(t, snapshot.Get("password_changed").Truthy())
}
