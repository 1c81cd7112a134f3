package repositories

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/kikgames18/service-kpi-dashboard/database"
	"github.com/kikgames18/service-kpi-dashboard/models"
	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	// Initialize test database using the actual migration system
	if err := database.InitializeDatabase(dbPath); err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() {
		database.CloseDB()
	})

	return database.GetDB()
}

func TestOrderRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	techRepo := NewTechnicianRepository(db)
	repo := NewOrderRepository(db)

	technician := &models.Technician{
		FullName: "Иванов И.И.",
		IsActive: true,
	}
	if err := techRepo.Create(ctx, technician); err != nil {
		t.Fatalf("Failed to create technician: %v", err)
	}

	// Test Create
	order := &models.ServiceOrder{
		OrderNumber:      "ORD-20260901-0001",
		CustomerName:     "Петров П.П.",
		CustomerPhone:    "+7 900 000-00-00",
		DeviceType:       models.DeviceLaptop,
		IssueDescription: "Не включается",
		Status:           models.StatusPending,
		Priority:         models.PriorityNormal,
		AssignedTo:       &technician.ID,
	}
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}
	if order.ID == "" {
		t.Error("Expected order ID to be set after creation")
	}

	// Test GetByID resolves the technician name
	retrieved, err := repo.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("Failed to get order by ID: %v", err)
	}
	if retrieved.CustomerName != order.CustomerName {
		t.Errorf("Expected customer %s, got %s", order.CustomerName, retrieved.CustomerName)
	}
	if retrieved.TechnicianName == nil || *retrieved.TechnicianName != technician.FullName {
		t.Errorf("Expected technician name %q to be resolved, got %v", technician.FullName, retrieved.TechnicianName)
	}

	// Test GetAll
	orders, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("Failed to get all orders: %v", err)
	}
	if len(orders) != 1 {
		t.Errorf("Expected 1 order, got %d", len(orders))
	}

	// Test CountByOrderNumberPrefix
	count, err := repo.CountByOrderNumberPrefix(ctx, "ORD-20260901-")
	if err != nil {
		t.Fatalf("Failed to count orders by prefix: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected prefix count 1, got %d", count)
	}
	count, err = repo.CountByOrderNumberPrefix(ctx, "ORD-19990101-")
	if err != nil {
		t.Fatalf("Failed to count orders by prefix: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected prefix count 0, got %d", count)
	}

	// Test Update
	retrieved.Status = models.StatusCompleted
	finalCost := 3500.0
	retrieved.FinalCost = &finalCost
	if err := repo.Update(ctx, retrieved); err != nil {
		t.Fatalf("Failed to update order: %v", err)
	}
	updated, err := repo.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("Failed to get updated order: %v", err)
	}
	if updated.Status != models.StatusCompleted {
		t.Errorf("Expected status %s, got %s", models.StatusCompleted, updated.Status)
	}
	if updated.FinalCost == nil || *updated.FinalCost != finalCost {
		t.Errorf("Expected final cost %v, got %v", finalCost, updated.FinalCost)
	}

	// Test Delete
	if err := repo.Delete(ctx, order.ID); err != nil {
		t.Fatalf("Failed to delete order: %v", err)
	}
	if _, err := repo.GetByID(ctx, order.ID); err == nil {
		t.Error("Expected error getting deleted order")
	}
}

func TestAuditRepositoryFilteringAndOrder(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	profileRepo := NewProfileRepository(db)
	repo := NewAuditRepository(db)

	fullName := "Администратор"
	hash := "$2a$10$abcdefghijklmnopqrstuv"
	actor := &models.Profile{
		Email:        "admin@example.com",
		FullName:     &fullName,
		Role:         models.RoleAdmin,
		PasswordHash: &hash,
	}
	if err := profileRepo.Create(ctx, actor); err != nil {
		t.Fatalf("Failed to create profile: %v", err)
	}

	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	records := []*models.ChangeRecord{
		{
			EntityType: models.EntityOrder,
			EntityID:   "order-1",
			Action:     models.ActionCreate,
			ChangedBy:  &actor.ID,
			NewValues:  models.Snapshot{"status": models.String(models.StatusPending)},
			CreatedAt:  base,
		},
		{
			EntityType: models.EntityOrder,
			EntityID:   "order-1",
			Action:     models.ActionUpdate,
			ChangedBy:  &actor.ID,
			OldValues:  models.Snapshot{"status": models.String(models.StatusPending)},
			NewValues:  models.Snapshot{"status": models.String(models.StatusCompleted)},
			CreatedAt:  base.Add(time.Hour),
		},
		{
			EntityType: models.EntityTechnician,
			EntityID:   "tech-1",
			Action:     models.ActionDelete,
			OldValues:  models.Snapshot{"full_name": models.String("Иванов И.И.")},
			CreatedAt:  base.Add(2 * time.Hour),
		},
	}
	for _, record := range records {
		if err := repo.Create(ctx, record); err != nil {
			t.Fatalf("Failed to create change record: %v", err)
		}
		if record.ID == "" {
			t.Error("Expected record ID to be set after creation")
		}
	}

	// Unfiltered query returns everything most recent first
	all, err := repo.Query(ctx, AuditFilter{Limit: 10})
	if err != nil {
		t.Fatalf("Failed to query audit log: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(all))
	}
	if all[0].EntityID != "tech-1" || all[2].EntityID != "order-1" {
		t.Errorf("Expected records most recent first, got %s .. %s", all[0].EntityID, all[2].EntityID)
	}
	if all[2].Action != models.ActionCreate {
		t.Errorf("Expected oldest record to be the create, got %s", all[2].Action)
	}

	// Actor identity resolved from profiles
	if all[1].ChangedByEmail == nil || *all[1].ChangedByEmail != actor.Email {
		t.Errorf("Expected actor email %q, got %v", actor.Email, all[1].ChangedByEmail)
	}
	if all[1].ChangedByName == nil || *all[1].ChangedByName != fullName {
		t.Errorf("Expected actor name %q, got %v", fullName, all[1].ChangedByName)
	}

	// Records without an actor resolve to nil, not an error
	if all[0].ChangedBy != nil || all[0].ChangedByEmail != nil {
		t.Error("Expected system record to have no actor identity")
	}

	// Snapshots round-trip through storage
	if all[1].OldValues == nil || !all[1].OldValues.Get("status").Equal(models.String(models.StatusPending)) {
		t.Error("Expected update record to carry its before snapshot")
	}
	if all[2].OldValues != nil {
		t.Error("Expected create record to have no before snapshot")
	}

	// Entity type filter
	orderOnly, err := repo.Query(ctx, AuditFilter{EntityType: "order", Limit: 10})
	if err != nil {
		t.Fatalf("Failed to query filtered audit log: %v", err)
	}
	if len(orderOnly) != 2 {
		t.Errorf("Expected 2 order records, got %d", len(orderOnly))
	}

	// Entity type and id filter
	techOnly, err := repo.Query(ctx, AuditFilter{EntityType: "technician", EntityID: "tech-1", Limit: 10})
	if err != nil {
		t.Fatalf("Failed to query filtered audit log: %v", err)
	}
	if len(techOnly) != 1 {
		t.Errorf("Expected 1 technician record, got %d", len(techOnly))
	}

	// Limit bounds the page
	limited, err := repo.Query(ctx, AuditFilter{Limit: 2})
	if err != nil {
		t.Fatalf("Failed to query limited audit log: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 records with limit 2, got %d", len(limited))
	}
	if limited[0].EntityID != "tech-1" {
		t.Errorf("Expected limit to keep the most recent records, got %s first", limited[0].EntityID)
	}
}

func TestAuditRepositoryActorDeleted(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewAuditRepository(db)

	// Dangling actor id, as after a profile deletion
	ghost := "no-such-profile"
	record := &models.ChangeRecord{
		EntityType: models.EntityOrder,
		EntityID:   "order-1",
		Action:     models.ActionCreate,
		ChangedBy:  &ghost,
		NewValues:  models.Snapshot{"status": models.String(models.StatusPending)},
	}
	if err := repo.Create(ctx, record); err != nil {
		t.Fatalf("Failed to create change record: %v", err)
	}

	results, err := repo.Query(ctx, AuditFilter{Limit: 10})
	if err != nil {
		t.Fatalf("Failed to query audit log: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(results))
	}
	if results[0].ChangedBy == nil || *results[0].ChangedBy != ghost {
		t.Error("Expected the raw actor id to survive")
	}
	if results[0].ChangedByEmail != nil || results[0].ChangedByName != nil {
		t.Error("Expected unresolvable actor to have nil email and name")
	}
}

func TestProfileRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewProfileRepository(db)

	hash := "$2a$10$abcdefghijklmnopqrstuv"
	profile := &models.Profile{
		Email:        "user@example.com",
		Role:         models.RoleUser,
		PasswordHash: &hash,
	}
	if err := repo.Create(ctx, profile); err != nil {
		t.Fatalf("Failed to create profile: %v", err)
	}

	byEmail, err := repo.GetByEmail(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("Failed to get profile by email: %v", err)
	}
	if byEmail.ID != profile.ID {
		t.Errorf("Expected profile %s, got %s", profile.ID, byEmail.ID)
	}

	newHash := "$2a$10$vutsrqponmlkjihgfedcba"
	if err := repo.UpdatePassword(ctx, profile.ID, newHash); err != nil {
		t.Fatalf("Failed to update password: %v", err)
	}
	updated, err := repo.GetByID(ctx, profile.ID)
	if err != nil {
		t.Fatalf("Failed to get updated profile: %v", err)
	}
	if updated.PasswordHash == nil || *updated.PasswordHash != newHash {
		t.Error("Expected password hash to be updated")
	}
}

func TestKPIRepositoryUpsert(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewKPIRepository(db)

	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	metric := &models.KPIMetric{
		MetricDate:      day,
		TotalOrders:     10,
		CompletedOrders: 6,
		Revenue:         42000,
	}
	if err := repo.Upsert(ctx, metric); err != nil {
		t.Fatalf("Failed to upsert metric: %v", err)
	}

	// Upserting the same day replaces, not duplicates
	metric.CompletedOrders = 7
	if err := repo.Upsert(ctx, metric); err != nil {
		t.Fatalf("Failed to upsert metric again: %v", err)
	}

	recent, err := repo.GetRecent(ctx, 7)
	if err != nil {
		t.Fatalf("Failed to get recent metrics: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("Expected 1 metric, got %d", len(recent))
	}
	if recent[0].CompletedOrders != 7 {
		t.Errorf("Expected 7 completed orders after upsert, got %d", recent[0].CompletedOrders)
	}
}
