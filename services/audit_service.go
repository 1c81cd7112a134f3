package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/kikgames18/service-kpi-dashboard/models"
	"github.com/kikgames18/service-kpi-dashboard/repositories"
)

// DefaultAuditLimit bounds an audit query when the caller gives no limit.
const DefaultAuditLimit = 50

// MaxAuditLimit is the hard ceiling on a single audit page.
const MaxAuditLimit = 500

// AuditLogEntry is a change record prepared for display: the raw snapshots
// plus the rendered change summary and entity info block.
type AuditLogEntry struct {
	ID             string            `json:"id"`
	EntityType     models.EntityType `json:"entity_type"`
	EntityID       string            `json:"entity_id"`
	Action         models.Action     `json:"action"`
	ChangedBy      *string           `json:"changed_by"`
	ChangedByEmail *string           `json:"changed_by_email"`
	ChangedByName  *string           `json:"changed_by_name"`
	OldValues      json.RawMessage   `json:"old_values"`
	NewValues      json.RawMessage   `json:"new_values"`
	Changes        []string          `json:"changes"`
	Info           []InfoEntry       `json:"info"`
	CreatedAt      time.Time         `json:"created_at"`
}

// AuditService records entity mutations and serves the change history feed.
//
// Recording is best-effort by contract: it happens after the primary write,
// outside its transaction, and a recording failure must never fail the
// mutation that triggered it. Do not move recording into a shared
// transaction: that would make audit outages fatal to user operations.
type AuditService interface {
	Record(ctx context.Context, entityType models.EntityType, entityID string, action models.Action, actorID *string, before, after models.Snapshot)
	Query(ctx context.Context, entityType, entityID string, limit int) ([]AuditLogEntry, error)
}

// auditService implements AuditService interface
type auditService struct {
	auditRepo repositories.AuditRepository
	logger    *zap.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repositories.AuditRepository, logger *zap.Logger) AuditService {
	return &auditService{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// Record appends one change record. Validation and storage failures are
// logged and swallowed.
func (s *auditService) Record(ctx context.Context, entityType models.EntityType, entityID string, action models.Action, actorID *string, before, after models.Snapshot) {
	record := &models.ChangeRecord{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		ChangedBy:  actorID,
		OldValues:  before,
		NewValues:  after,
	}

	if err := record.Validate(); err != nil {
		s.logger.Error("invalid change record dropped",
			zap.String("entity_type", string(entityType)),
			zap.String("entity_id", entityID),
			zap.String("action", string(action)),
			zap.Error(err),
		)
		return
	}

	if err := s.auditRepo.Create(ctx, record); err != nil {
		s.logger.Error("failed to record change",
			zap.String("entity_type", string(entityType)),
			zap.String("entity_id", entityID),
			zap.String("action", string(action)),
			zap.Error(err),
		)
	}
}

// Query retrieves a chronological page of change records, most recent
// first, each annotated with its rendered summary and info block. Unlike
// recording, read failures surface to the caller.
func (s *auditService) Query(ctx context.Context, entityType, entityID string, limit int) ([]AuditLogEntry, error) {
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	if limit > MaxAuditLimit {
		limit = MaxAuditLimit
	}

	records, err := s.auditRepo.Query(ctx, repositories.AuditFilter{
		EntityType: entityType,
		EntityID:   entityID,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]AuditLogEntry, 0, len(records))
	for i := range records {
		record := &records[i]
		entry := AuditLogEntry{
			ID:             record.ID,
			EntityType:     record.EntityType,
			EntityID:       record.EntityID,
			Action:         record.Action,
			ChangedBy:      record.ChangedBy,
			ChangedByEmail: record.ChangedByEmail,
			ChangedByName:  record.ChangedByName,
			Changes:        DescribeChanges(record),
			Info:           EntityInfo(record),
			CreatedAt:      record.CreatedAt,
		}

		entry.OldValues, err = marshalSnapshot(record.OldValues)
		if err != nil {
			return nil, err
		}
		entry.NewValues, err = marshalSnapshot(record.NewValues)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

func marshalSnapshot(s models.Snapshot) (json.RawMessage, error) {
	if s == nil {
		return json.RawMessage("null"), nil
	}
	return json.Marshal(s)
}
