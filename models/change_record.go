package models

import (
	"fmt"
	"time"
)

// EntityType identifies which domain object a change record tracks.
type EntityType string

const (
	EntityOrder      EntityType = "order"
	EntityTechnician EntityType = "technician"
	EntityProfile    EntityType = "profile"
)

// Valid reports whether the entity type is one of the tracked kinds.
func (t EntityType) Valid() bool {
	switch t {
	case EntityOrder, EntityTechnician, EntityProfile:
		return true
	}
	return false
}

// Action identifies the kind of mutation a change record describes.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Valid reports whether the action is one of the known kinds.
func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// ChangeRecord is the write-once fact of a single mutation: who changed
// which entity, how, and the full before/after snapshots. Records are never
// updated or deleted once stored.
type ChangeRecord struct {
	ID         string
	EntityType EntityType
	EntityID   string
	Action     Action
	ChangedBy  *string
	OldValues  Snapshot
	NewValues  Snapshot
	CreatedAt  time.Time

	// Actor identity resolved at query time from the profiles table.
	// Nil when the actor is unknown or was deleted ("the system").
	ChangedByEmail *string
	ChangedByName  *string
}

// Validate checks the enum tags and the action/snapshot presence invariant:
// create records carry only NewValues, delete records only OldValues,
// update records both.
func (r *ChangeRecord) Validate() error {
	if !r.EntityType.Valid() {
		return fmt.Errorf("unknown entity type %q", r.EntityType)
	}
	if !r.Action.Valid() {
		return fmt.Errorf("unknown action %q", r.Action)
	}
	if r.EntityID == "" {
		return fmt.Errorf("entity id is required")
	}

	switch r.Action {
	case ActionCreate:
		if r.NewValues == nil {
			return fmt.Errorf("create record requires new values")
		}
		if r.OldValues != nil {
			return fmt.Errorf("create record must not carry old values")
		}
	case ActionDelete:
		if r.OldValues == nil {
			return fmt.Errorf("delete record requires old values")
		}
		if r.NewValues != nil {
			return fmt.Errorf("delete record must not carry new values")
		}
	case ActionUpdate:
		if r.OldValues == nil || r.NewValues == nil {
			return fmt.Errorf("update record requires both old and new values")
		}
	}

	return nil
}
