package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/kikgames18/service-kpi-dashboard/models"
	"github.com/kikgames18/service-kpi-dashboard/repositories"
)

// fakeAuditRepo is an in-memory AuditRepository that can be set to fail
type fakeAuditRepo struct {
	createErr  error
	queryErr   error
	created    []*models.ChangeRecord
	queryRows  []models.ChangeRecord
	lastFilter repositories.AuditFilter
}

func (f *fakeAuditRepo) Create(ctx context.Context, record *models.ChangeRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, record)
	return nil
}

func (f *fakeAuditRepo) Query(ctx context.Context, filter repositories.AuditFilter) ([]models.ChangeRecord, error) {
	f.lastFilter = filter
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.queryRows, nil
}

// AuditServiceTestSuite is a test suite for the audit service
type AuditServiceTestSuite struct {
	suite.Suite
	service AuditService
	repo    *fakeAuditRepo
}

// SetupTest sets up the test suite before each test
func (suite *AuditServiceTestSuite) SetupTest() {
	suite.repo = &fakeAuditRepo{}
	suite.service = NewAuditService(suite.repo, zap.NewNop())
}

// TestRecord_StoresValidRecord tests the happy path of recording a change
func (suite *AuditServiceTestSuite) TestRecord_StoresValidRecord() {
	actor := "user-1"
	before := models.Snapshot{"status": models.String(models.StatusPending)}
	after := models.Snapshot{"status": models.String(models.StatusCompleted)}

	suite.service.Record(context.Background(), models.EntityOrder, "order-1", models.ActionUpdate, &actor, before, after)

	if assert.Len(suite.T(), suite.repo.created, 1) {
		record := suite.repo.created[0]
		assert.Equal(suite.T(), models.EntityOrder, record.EntityType)
		assert.Equal(suite.T(), "order-1", record.EntityID)
		assert.Equal(suite.T(), models.ActionUpdate, record.Action)
		assert.Equal(suite.T(), &actor, record.ChangedBy)
	}
}

// TestRecord_SwallowsStorageFailure tests that a failing audit store never
// propagates to the caller
func (suite *AuditServiceTestSuite) TestRecord_SwallowsStorageFailure() {
	suite.repo.createErr = errors.New("disk full")

	assert.NotPanics(suite.T(), func() {
		suite.service.Record(context.Background(), models.EntityOrder, "order-1", models.ActionDelete, nil,
			models.Snapshot{"status": models.String(models.StatusCancelled)}, nil)
	})
	assert.Empty(suite.T(), suite.repo.created)
}

// TestRecord_DropsInvalidRecord tests that a record violating the
// action/snapshot invariant is dropped before reaching storage
func (suite *AuditServiceTestSuite) TestRecord_DropsInvalidRecord() {
	// create must not carry a before snapshot
	suite.service.Record(context.Background(), models.EntityOrder, "order-1", models.ActionCreate, nil,
		models.Snapshot{"status": models.String(models.StatusPending)},
		models.Snapshot{"status": models.String(models.StatusPending)})

	assert.Empty(suite.T(), suite.repo.created)
}

// TestQuery_DefaultsLimit tests that a missing limit becomes the default page size
func (suite *AuditServiceTestSuite) TestQuery_DefaultsLimit() {
	_, err := suite.service.Query(context.Background(), "", "", 0)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), DefaultAuditLimit, suite.repo.lastFilter.Limit)
}

// TestQuery_ClampsLimit tests that oversized limits are capped
func (suite *AuditServiceTestSuite) TestQuery_ClampsLimit() {
	_, err := suite.service.Query(context.Background(), "order", "order-1", 99999)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), MaxAuditLimit, suite.repo.lastFilter.Limit)
	assert.Equal(suite.T(), "order", suite.repo.lastFilter.EntityType)
	assert.Equal(suite.T(), "order-1", suite.repo.lastFilter.EntityID)
}

// TestQuery_SurfacesStorageFailure tests that read failures, unlike write
// failures, reach the caller
func (suite *AuditServiceTestSuite) TestQuery_SurfacesStorageFailure() {
	suite.repo.queryErr = errors.New("database is locked")

	entries, err := suite.service.Query(context.Background(), "", "", 10)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), entries)
}

// TestQuery_RendersEntries tests that each record comes back annotated with
// its rendered summary, info block and raw snapshots
func (suite *AuditServiceTestSuite) TestQuery_RendersEntries() {
	email := "admin@example.com"
	name := "Администратор"
	suite.repo.queryRows = []models.ChangeRecord{
		{
			ID:         "rec-2",
			EntityType: models.EntityOrder,
			EntityID:   "order-1",
			Action:     models.ActionUpdate,
			OldValues: models.Snapshot{
				"status":        models.String(models.StatusPending),
				"customer_name": models.String("Петров П.П."),
			},
			NewValues: models.Snapshot{
				"status":        models.String(models.StatusCompleted),
				"customer_name": models.String("Петров П.П."),
			},
			ChangedByEmail: &email,
			ChangedByName:  &name,
			CreatedAt:      time.Now(),
		},
		{
			ID:         "rec-1",
			EntityType: models.EntityOrder,
			EntityID:   "order-1",
			Action:     models.ActionCreate,
			NewValues: models.Snapshot{
				"status": models.String(models.StatusPending),
			},
			CreatedAt: time.Now().Add(-time.Hour),
		},
	}

	entries, err := suite.service.Query(context.Background(), "order", "order-1", 10)

	assert.NoError(suite.T(), err)
	if assert.Len(suite.T(), entries, 2) {
		update := entries[0]
		assert.Equal(suite.T(), []string{"Статус: Ожидает → Завершено"}, update.Changes)
		assert.Equal(suite.T(), &email, update.ChangedByEmail)

		var oldVals map[string]interface{}
		assert.NoError(suite.T(), json.Unmarshal(update.OldValues, &oldVals))
		assert.Equal(suite.T(), "pending", oldVals["status"])

		create := entries[1]
		assert.Equal(suite.T(), []string{NoChanges}, create.Changes)
		assert.Equal(suite.T(), json.RawMessage("null"), create.OldValues)
	}
}

// TestAuditServiceTestSuite runs the test suite
func TestAuditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}
