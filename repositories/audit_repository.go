package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kikgames18/service-kpi-dashboard/models"
)

// AuditFilter narrows an audit log query. Zero values mean "no filter";
// Limit must be positive (callers bound it before reaching the repository).
type AuditFilter struct {
	EntityType string
	EntityID   string
	Limit      int
}

// AuditRepository handles change record persistence. Records are insert-only:
// there is deliberately no update or delete operation.
type AuditRepository interface {
	Create(ctx context.Context, record *models.ChangeRecord) error
	Query(ctx context.Context, filter AuditFilter) ([]models.ChangeRecord, error)
}

type auditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *sql.DB) AuditRepository {
	return &auditRepository{db: db}
}

// Create inserts a new change record. ID and CreatedAt are assigned here
// if the caller left them empty.
func (r *auditRepository) Create(ctx context.Context, record *models.ChangeRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	oldValues, err := models.EncodeSnapshot(record.OldValues)
	if err != nil {
		return fmt.Errorf("failed to encode old values: %w", err)
	}
	newValues, err := models.EncodeSnapshot(record.NewValues)
	if err != nil {
		return fmt.Errorf("failed to encode new values: %w", err)
	}

	query := `
		INSERT INTO audit_log (id, entity_type, entity_id, action, changed_by, old_values, new_values, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		record.ID,
		string(record.EntityType),
		record.EntityID,
		string(record.Action),
		record.ChangedBy,
		oldValues,
		newValues,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create change record: %w", err)
	}

	return nil
}

// Query retrieves change records most recent first, ties broken by insertion
// order. The actor's email and name are resolved from profiles in the same
// query; both stay NULL when the actor is absent or was deleted.
func (r *auditRepository) Query(ctx context.Context, filter AuditFilter) ([]models.ChangeRecord, error) {
	query := `
		SELECT a.id, a.entity_type, a.entity_id, a.action, a.changed_by,
		       a.old_values, a.new_values, a.created_at,
		       p.email, p.full_name
		FROM audit_log a
		LEFT JOIN profiles p ON a.changed_by = p.id
	`

	var conditions []string
	var args []interface{}
	if filter.EntityType != "" {
		conditions = append(conditions, "a.entity_type = ?")
		args = append(args, filter.EntityType)
	}
	if filter.EntityID != "" {
		conditions = append(conditions, "a.entity_id = ?")
		args = append(args, filter.EntityID)
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	query += " ORDER BY a.created_at DESC, a.rowid DESC LIMIT ?"
	args = append(args, filter.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	var records []models.ChangeRecord
	for rows.Next() {
		var record models.ChangeRecord
		var changedBy, oldValues, newValues sql.NullString
		var email, fullName sql.NullString

		err := rows.Scan(
			&record.ID,
			&record.EntityType,
			&record.EntityID,
			&record.Action,
			&changedBy,
			&oldValues,
			&newValues,
			&record.CreatedAt,
			&email,
			&fullName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan change record: %w", err)
		}

		if changedBy.Valid {
			record.ChangedBy = &changedBy.String
		}
		if email.Valid {
			record.ChangedByEmail = &email.String
		}
		if fullName.Valid {
			record.ChangedByName = &fullName.String
		}

		record.OldValues, err = models.DecodeSnapshot(nullStringPtr(oldValues))
		if err != nil {
			return nil, fmt.Errorf("failed to decode old values for record %s: %w", record.ID, err)
		}
		record.NewValues, err = models.DecodeSnapshot(nullStringPtr(newValues))
		if err != nil {
			return nil, fmt.Errorf("failed to decode new values for record %s: %w", record.ID, err)
		}

		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating change records: %w", err)
	}

	return records, nil
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
